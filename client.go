package mcpd

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/effective-security/mcpd-go/catalog"
	"github.com/effective-security/mcpd-go/internal/transport"
	"github.com/effective-security/mcpd-go/mcpderror"
	"github.com/effective-security/x/values"
)

// Doer performs a HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to an mcpd daemon: it discovers servers and tool schemas,
// invokes tools, and synthesizes callable functions for agent frameworks.
//
// The client owns its catalog and transport for its whole lifetime and
// holds no connections or handles that need explicit teardown. The catalog
// cache is designed for single-threaded use per instance; concurrent use
// may fetch the same entry twice but never corrupts it.
type Client struct {
	tx  *transport.Client
	cat *catalog.Catalog
}

type clientOptions struct {
	apiKey     string
	httpClient Doer
	store      catalog.Store
}

// Option configures a Client.
type Option func(*clientOptions)

// WithAPIKey sets the daemon credential, sent as the MCPD-API-KEY header
// on every request.
func WithAPIKey(apiKey string) Option {
	return func(o *clientOptions) {
		o.apiKey = apiKey
	}
}

// WithHTTPClient overrides the HTTP client used for daemon requests.
func WithHTTPClient(httpClient Doer) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// WithStore overrides the catalog cache, e.g. with catalog.NewRedisStore
// to share one schema cache across processes.
func WithStore(store catalog.Store) Option {
	return func(o *clientOptions) {
		o.store = store
	}
}

// New returns a client for the daemon at endpoint,
// e.g. "http://localhost:8090". A trailing slash is removed.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, mcpderror.New("endpoint must be set")
	}

	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	tx := transport.New(endpoint, o.apiKey, o.httpClient)
	return &Client{
		tx:  tx,
		cat: catalog.New(tx, o.store),
	}, nil
}

// Endpoint returns the normalized daemon base URL.
func (c *Client) Endpoint() string {
	return c.tx.Endpoint()
}

// Servers returns the names of all servers the daemon exposes,
// in the daemon's reported order. Cached until Refresh.
func (c *Client) Servers(ctx context.Context) ([]string, error) {
	return c.cat.Servers(ctx)
}

// Tools returns the tool schemas of one server. Cached per server until Refresh.
func (c *Client) Tools(ctx context.Context, server string) ([]catalog.Tool, error) {
	return c.cat.Tools(ctx, server)
}

// AllTools returns the tool schemas of every server, keyed by server name.
func (c *Client) AllTools(ctx context.Context) (map[string][]catalog.Tool, error) {
	return c.cat.AllTools(ctx)
}

// HasTool reports whether the named tool exists on the server.
func (c *Client) HasTool(ctx context.Context, server, tool string) (bool, error) {
	return c.cat.HasTool(ctx, server, tool)
}

// Refresh drops all cached catalog state; the next access re-fetches
// from the daemon.
func (c *Client) Refresh(ctx context.Context) {
	c.cat.Refresh(ctx)
}

// CallTool executes a tool on a server with the given arguments and
// returns the decoded JSON result. It is the low-level call shared by the
// dynamic namespace and synthesized functions; arguments are forwarded
// verbatim as the request body.
func (c *Client) CallTool(ctx context.Context, server, tool string, args values.MapAny) (any, error) {
	if args == nil {
		args = values.MapAny{}
	}

	path := "/api/v1/servers/" + url.PathEscape(server) + "/tools/" + url.PathEscape(tool)
	var out any
	if err := c.tx.Request(ctx, http.MethodPost, path, args, &out); err != nil {
		return nil, mcpderror.Wrap(err, "failed to call tool %q on server %q", tool, server)
	}
	return out, nil
}
