// Package tool publishes the callable operations this server exposes and
// dispatches invocations to their handlers. It is transport-agnostic: the
// MCP layer converts its descriptors and content blocks to wire types.
package tool
