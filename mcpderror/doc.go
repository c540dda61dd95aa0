// Package mcpderror defines the single error kind returned by the mcpd SDK, carrying the failing HTTP status and response body alongside the chained cause.
package mcpderror
