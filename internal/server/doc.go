// Package server provides the runtime context and HTTP serving surface for
// the LINE MCP server.
//
// ServerContext carries the immutable process configuration, the LINE
// client and the metrics recorder into tool handlers. HTTPServer mounts the
// streamable MCP transport at /mcp next to the health, info and LINE
// webhook endpoints, and MetricsServer exposes Prometheus metrics on a
// dedicated port so operational data stays off the application listener.
package server
