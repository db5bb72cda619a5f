// Package cmd implements the command-line interface for line-mcp.
//
// The CLI is built with cobra and provides the following commands:
//
//   - serve: Start the MCP server (stdio or streamable-http transport)
//   - version: Print version information
//
// Running line-mcp without a subcommand starts the server.
package cmd
