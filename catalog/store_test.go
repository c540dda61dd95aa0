package catalog_test

import (
	"context"
	"testing"

	"github.com/effective-security/mcpd-go/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	st := catalog.NewMemoryStore()
	ctx := context.Background()

	_, ok := st.Servers(ctx)
	assert.False(t, ok)
	_, ok = st.Tools(ctx, "time")
	assert.False(t, ok)

	st.SetServers(ctx, []string{"time", "fetch"})
	names, ok := st.Servers(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"time", "fetch"}, names)

	// an empty cached list is a hit, not a miss
	st.SetServers(ctx, nil)
	names, ok = st.Servers(ctx)
	assert.True(t, ok)
	assert.Empty(t, names)

	st.SetTools(ctx, "time", []catalog.Tool{{Name: "get_current_time"}})
	tools, ok := st.Tools(ctx, "time")
	require.True(t, ok)
	require.Len(t, tools, 1)
	assert.Equal(t, "get_current_time", tools[0].Name)

	// entries are independent
	_, ok = st.Tools(ctx, "fetch")
	assert.False(t, ok)

	st.Reset(ctx)
	_, ok = st.Servers(ctx)
	assert.False(t, ok)
	_, ok = st.Tools(ctx, "time")
	assert.False(t, ok)
}

func TestMemoryStoreCopies(t *testing.T) {
	t.Parallel()

	st := catalog.NewMemoryStore()
	ctx := context.Background()

	names := []string{"time"}
	st.SetServers(ctx, names)
	names[0] = "mutated"

	cached, ok := st.Servers(ctx)
	require.True(t, ok)
	assert.Equal(t, []string{"time"}, cached)
}
