// Package common provides shared helpers for MCP tool packages, such as
// instrumentation wrappers for tool handlers.
package common
