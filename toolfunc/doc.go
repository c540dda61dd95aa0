// Package toolfunc synthesizes standalone callable functions from tool schemas, with schema-derived parameter descriptors and validation, for use by agent frameworks.
package toolfunc
