// Package catalog caches the mcpd daemon's server list and per-server tool schemas, with pluggable in-memory and Redis-backed stores.
package catalog
