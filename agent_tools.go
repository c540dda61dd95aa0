package mcpd

import (
	"context"

	"github.com/effective-security/mcpd-go/toolfunc"
)

// AgentTools synthesizes one callable function per tool across all servers,
// fetching any schemas not yet cached. Exposed names are qualified as
// "<server>__<tool>" so tools with the same name on different servers never
// collide. The returned functions are independent and safe to clone; they
// reflect the schemas at synthesis time and are not updated by a later
// Refresh.
func (c *Client) AgentTools(ctx context.Context) ([]*toolfunc.Func, error) {
	servers, err := c.Servers(ctx)
	if err != nil {
		return nil, err
	}

	var funcs []*toolfunc.Func
	for _, server := range servers {
		tools, err := c.Tools(ctx, server)
		if err != nil {
			return nil, err
		}
		for _, tool := range tools {
			f, err := toolfunc.New(c, server, tool)
			if err != nil {
				return nil, err
			}
			funcs = append(funcs, f.WithName(server+"__"+tool.Name))
		}
	}
	return funcs, nil
}

// AgentTool synthesizes a callable function for a single tool.
// The exposed name is the tool's own name, unqualified.
func (c *Client) AgentTool(ctx context.Context, server, tool string) (*toolfunc.Func, error) {
	tools, err := c.Tools(ctx, server)
	if err != nil {
		return nil, err
	}
	for _, t := range tools {
		if t.Name == tool {
			return toolfunc.New(c, server, t)
		}
	}
	return nil, notFoundErr(server, tool)
}
