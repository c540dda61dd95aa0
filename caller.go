package mcpd

import (
	"context"

	"github.com/effective-security/mcpd-go/mcpderror"
	"github.com/effective-security/x/values"
)

// ServerProxy scopes tool access to one daemon server. Building a proxy
// performs no I/O and does not validate that the server exists.
type ServerProxy struct {
	client *Client
	server string
}

// Server returns a proxy for the named server, so a tool call reads
// naturally even though the daemon's tool set is unknown at compile time:
//
//	res, err := client.Server("time").Tool("get_current_time").Invoke(ctx, values.MapAny{"timezone": "UTC"})
func (c *Client) Server(name string) *ServerProxy {
	return &ServerProxy{
		client: c,
		server: name,
	}
}

// Tool returns a handle for the named tool. No I/O happens until Invoke.
func (p *ServerProxy) Tool(name string) *CallHandle {
	return &CallHandle{
		client: p.client,
		server: p.server,
		tool:   name,
	}
}

// Invoke is shorthand for Tool(name).Invoke(ctx, args).
func (p *ServerProxy) Invoke(ctx context.Context, tool string, args values.MapAny) (any, error) {
	return p.Tool(tool).Invoke(ctx, args)
}

// CallHandle is a pending tool call: a server and tool identifier pair
// plus the client that will execute it. It holds no other state.
type CallHandle struct {
	client *Client
	server string
	tool   string
}

// Invoke confirms the server/tool pair exists in the catalog, then executes
// the tool and returns the decoded JSON result. When the cached catalog
// already rules the pair out, it fails without any network call; when the
// server has never been queried, the existence check fetches its schemas
// first. Arguments are forwarded verbatim as the request body.
func (h *CallHandle) Invoke(ctx context.Context, args values.MapAny) (any, error) {
	ok, err := h.client.HasTool(ctx, h.server, h.tool)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFoundErr(h.server, h.tool)
	}
	return h.client.CallTool(ctx, h.server, h.tool, args)
}

func notFoundErr(server, tool string) error {
	return mcpderror.New("tool %q not found on server %q", tool, server)
}
