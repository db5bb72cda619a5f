// Package config loads the process-wide configuration for the LINE MCP
// server from the environment.
//
// Configuration is read exactly once at startup and is immutable afterwards.
// Missing required variables are startup-fatal: FromEnv returns an error and
// the serve command exits with a non-zero status instead of surfacing the
// problem per request.
package config
