// Package transport issues HTTP requests against the mcpd daemon API.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/effective-security/mcpd-go/mcpderror"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/mcpd-go", "transport")

// APIKeyHeader carries the daemon credential when one is configured.
const APIKeyHeader = "MCPD-API-KEY"

// Doer performs a HTTP request.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is a stateless HTTP client for the daemon API.
// Every failure is reported as *mcpderror.Error with the HTTP status and
// raw body attached when a response was received.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient Doer
}

// New returns a client for the daemon at endpoint.
// A trailing slash on the endpoint is removed.
func New(endpoint, apiKey string, httpClient Doer) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   strings.TrimSuffix(endpoint, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// Endpoint returns the normalized daemon base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Request sends a JSON request to path, relative to the daemon endpoint,
// and decodes the JSON response into out when out is not nil.
func (c *Client) Request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return mcpderror.Wrap(err, "failed to marshal request for %s %s", method, path)
		}
		reader = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reader)
	if err != nil {
		return mcpderror.Wrap(err, "failed to create request for %s %s", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}

	r, err := c.httpClient.Do(req)
	if err != nil {
		return mcpderror.Wrap(err, "failed to connect to mcpd daemon at %s", c.endpoint)
	}
	defer func() {
		_ = r.Body.Close()
	}()

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return mcpderror.Wrap(err, "failed to read response for %s %s", method, path).
			WithResponse(r.StatusCode, "")
	}

	if r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices {
		logger.ContextKV(ctx, xlog.DEBUG,
			"method", method,
			"path", path,
			"status", r.StatusCode,
			"body", slices.StringUpto(string(raw), 256),
		)
		return mcpderror.New("mcpd daemon returned unexpected status for %s %s", method, path).
			WithResponse(r.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return mcpderror.Wrap(err, "failed to decode response for %s %s", method, path).
			WithResponse(r.StatusCode, string(raw))
	}
	return nil
}
