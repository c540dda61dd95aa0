package catalog

import (
	"context"
	"net/http"
	"net/url"
	"slices"

	"github.com/effective-security/mcpd-go/internal/transport"
	"github.com/effective-security/xlog"
	"github.com/invopop/jsonschema"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpd-go", "catalog")

// Tool is a tool schema as reported by the daemon.
// It is immutable once fetched; the catalog holds the authoritative copy.
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	InputSchema *jsonschema.Schema `json:"inputSchema,omitempty"`
}

type toolsResponse struct {
	Tools []Tool `json:"tools"`
}

// Catalog caches the daemon's server list and per-server tool schemas.
// Both are fetched lazily and kept as independent cache entries until
// Refresh drops them. Lookups are exact, case-sensitive string matches.
type Catalog struct {
	tx    *transport.Client
	store Store
}

// New returns a catalog over tx. When store is nil an in-memory store is used.
func New(tx *transport.Client, store Store) *Catalog {
	if store == nil {
		store = NewMemoryStore()
	}
	return &Catalog{
		tx:    tx,
		store: store,
	}
}

// Servers returns the daemon's server names, in the daemon's reported order.
// The list is fetched on first call and cached until Refresh.
func (c *Catalog) Servers(ctx context.Context) ([]string, error) {
	if names, ok := c.store.Servers(ctx); ok {
		return names, nil
	}

	var names []string
	if err := c.tx.Request(ctx, http.MethodGet, "/api/v1/servers", nil, &names); err != nil {
		return nil, err
	}
	c.store.SetServers(ctx, names)

	logger.ContextKV(ctx, xlog.DEBUG, "servers", len(names))
	return names, nil
}

// Tools returns the tool schemas of one server, fetching and caching them
// on first request for that server. Daemon errors, including not-found for
// unknown servers, are propagated unchanged.
func (c *Catalog) Tools(ctx context.Context, server string) ([]Tool, error) {
	if tools, ok := c.store.Tools(ctx, server); ok {
		return tools, nil
	}

	var res toolsResponse
	err := c.tx.Request(ctx, http.MethodGet, "/api/v1/servers/"+url.PathEscape(server)+"/tools", nil, &res)
	if err != nil {
		return nil, err
	}
	c.store.SetTools(ctx, server, res.Tools)

	logger.ContextKV(ctx, xlog.DEBUG, "server", server, "tools", len(res.Tools))
	return res.Tools, nil
}

// AllTools returns the tool schemas of every known server,
// fetching any server not yet cached.
func (c *Catalog) AllTools(ctx context.Context) (map[string][]Tool, error) {
	names, err := c.Servers(ctx)
	if err != nil {
		return nil, err
	}

	all := make(map[string][]Tool, len(names))
	for _, server := range names {
		tools, err := c.Tools(ctx, server)
		if err != nil {
			return nil, err
		}
		all[server] = tools
	}
	return all, nil
}

// HasTool reports whether the named tool exists on the server.
// When the server list is already cached and does not contain the server,
// it reports false without touching the daemon.
func (c *Catalog) HasTool(ctx context.Context, server, tool string) (bool, error) {
	if names, ok := c.store.Servers(ctx); ok && !slices.Contains(names, server) {
		return false, nil
	}

	tools, err := c.Tools(ctx, server)
	if err != nil {
		return false, err
	}
	for _, t := range tools {
		if t.Name == tool {
			return true, nil
		}
	}
	return false, nil
}

// Refresh drops all cached state; the next access re-fetches from the daemon.
func (c *Catalog) Refresh(ctx context.Context) {
	c.store.Reset(ctx)
}
