// Package instrumentation provides OpenTelemetry-based metrics and
// optional tracing for the LINE MCP server.
//
// Metrics cover MCP tool invocations, LINE API operations and inbound HTTP
// requests. The default exporter is Prometheus, scraped from a dedicated
// metrics server; OTLP and stdout exporters are available for environments
// with a collector. Instrumentation can be disabled entirely with
// INSTRUMENTATION_ENABLED=false.
package instrumentation
