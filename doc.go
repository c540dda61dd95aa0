// Package mcpd is a client SDK for the mcpd daemon: it discovers MCP servers and their tool schemas, invokes tools through a dynamic server/tool namespace, and synthesizes schema-derived callable functions for agent frameworks.
package mcpd
