package mcpd

import (
	"github.com/effective-security/x/configloader"
)

// Config describes a daemon connection.
type Config struct {
	// Endpoint is the base URL of the mcpd daemon, e.g. "http://localhost:8090".
	Endpoint string `json:"endpoint" yaml:"endpoint"`
	// APIKey is the optional daemon credential.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// LoadConfig from file
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// NewFromConfig returns a client for the configured daemon.
func NewFromConfig(cfg *Config, opts ...Option) (*Client, error) {
	if cfg.APIKey != "" {
		opts = append([]Option{WithAPIKey(cfg.APIKey)}, opts...)
	}
	return New(cfg.Endpoint, opts...)
}
