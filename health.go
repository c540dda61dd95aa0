package mcpd

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// HealthStatus is a server's health state as reported by the daemon.
type HealthStatus string

const (
	HealthOK          HealthStatus = "ok"
	HealthTimeout     HealthStatus = "timeout"
	HealthUnreachable HealthStatus = "unreachable"
	HealthUnknown     HealthStatus = "unknown"
)

// Healthy reports whether the status represents a server ready for requests.
func (s HealthStatus) Healthy() bool {
	return s == HealthOK
}

// Transient reports whether the status is a transient error state
// that may clear on its own.
func (s HealthStatus) Transient() bool {
	return s == HealthTimeout || s == HealthUnknown
}

// ServerHealth is the daemon's health report for one server.
type ServerHealth struct {
	Name           string       `json:"name"`
	Status         HealthStatus `json:"status"`
	Latency        string       `json:"latency,omitempty"`
	LastChecked    *time.Time   `json:"lastChecked,omitempty"`
	LastSuccessful *time.Time   `json:"lastSuccessful,omitempty"`
}

type serversHealthResponse struct {
	Servers []*ServerHealth `json:"servers"`
}

// ServerHealth returns the health report of one server.
func (c *Client) ServerHealth(ctx context.Context, server string) (*ServerHealth, error) {
	var health ServerHealth
	err := c.tx.Request(ctx, http.MethodGet, "/api/v1/health/servers/"+url.PathEscape(server), nil, &health)
	if err != nil {
		return nil, err
	}
	return &health, nil
}

// ServersHealth returns the health reports of all servers, keyed by server name.
func (c *Client) ServersHealth(ctx context.Context) (map[string]*ServerHealth, error) {
	var res serversHealthResponse
	if err := c.tx.Request(ctx, http.MethodGet, "/api/v1/health/servers", nil, &res); err != nil {
		return nil, err
	}

	byName := make(map[string]*ServerHealth, len(res.Servers))
	for _, health := range res.Servers {
		byName[health.Name] = health
	}
	return byName, nil
}

// IsServerHealthy reports whether the server is ready to accept requests.
// It returns false when the server is unknown, unhealthy, or the check fails.
func (c *Client) IsServerHealthy(ctx context.Context, server string) bool {
	health, err := c.ServerHealth(ctx, server)
	return err == nil && health.Status.Healthy()
}
