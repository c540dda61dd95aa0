package mcpd_test

import (
	"os"
	"path/filepath"
	"testing"

	mcpd "github.com/effective-security/mcpd-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := mcpd.LoadConfig("")
	require.NoError(t, err)
	assert.Empty(t, cfg.Endpoint)

	file := filepath.Join(t.TempDir(), "mcpd.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
endpoint: http://localhost:8090/
api_key: secret
`), 0o644))

	cfg, err = mcpd.LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8090/", cfg.Endpoint)
	assert.Equal(t, "secret", cfg.APIKey)

	client, err := mcpd.NewFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8090", client.Endpoint())

	_, err = mcpd.NewFromConfig(&mcpd.Config{})
	assert.EqualError(t, err, "endpoint must be set")
}
