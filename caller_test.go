package mcpd_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/effective-security/mcpd-go/mcpderror"
	"github.com/effective-security/x/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynamicCall(t *testing.T) {
	t.Parallel()

	daemon, client := newFakeDaemon(t)
	ctx := context.Background()

	res, err := client.Server("time").Tool("get_current_time").
		Invoke(ctx, values.MapAny{"timezone": "UTC"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"time": "2024-01-15T10:30:00Z"}, res)

	path := "/api/v1/servers/time/tools/get_current_time"
	assert.Equal(t, 1, daemon.count(path))
	assert.JSONEq(t, `{"timezone":"UTC"}`, daemon.body(path))
}

func TestDynamicCallUnknownServer(t *testing.T) {
	t.Parallel()

	daemon, client := newFakeDaemon(t)
	ctx := context.Background()

	// populate the server-list cache first
	_, err := client.Servers(ctx)
	require.NoError(t, err)

	_, err = client.Server("unknown_server").Tool("whatever").Invoke(ctx, nil)
	require.Error(t, err)
	assert.NotNil(t, mcpderror.From(err))
	assert.EqualError(t, err, `tool "whatever" not found on server "unknown_server"`)

	// the cached server list ruled the call out: no daemon traffic at all
	assert.Equal(t, 0, daemon.count("/api/v1/servers/unknown_server/tools"))
	assert.Equal(t, 0, daemon.count("/api/v1/servers/unknown_server/tools/whatever"))
}

func TestDynamicCallUnknownServerUncached(t *testing.T) {
	t.Parallel()

	_, client := newFakeDaemon(t)

	// nothing cached: the existence check fetches first, then surfaces
	// the daemon's not-found answer
	_, err := client.Server("unknown_server").Tool("whatever").Invoke(context.Background(), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, mcpderror.StatusCode(err))
}

func TestDynamicCallUnknownTool(t *testing.T) {
	t.Parallel()

	daemon, client := newFakeDaemon(t)

	_, err := client.Server("time").Tool("no_such_tool").Invoke(context.Background(), nil)
	require.Error(t, err)
	assert.EqualError(t, err, `tool "no_such_tool" not found on server "time"`)
	// the tool POST never went out
	assert.Equal(t, 0, daemon.count("/api/v1/servers/time/tools/no_such_tool"))
}

func TestServerProxyInvoke(t *testing.T) {
	t.Parallel()

	_, client := newFakeDaemon(t)

	res, err := client.Server("time").
		Invoke(context.Background(), "get_current_time", values.MapAny{"timezone": "UTC"})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"time": "2024-01-15T10:30:00Z"}, res)
}
