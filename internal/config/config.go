package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names recognized by FromEnv.
const (
	EnvChannelAccessToken = "LINE_CHANNEL_ACCESS_TOKEN"
	EnvGroupID            = "LINE_GROUP_ID"
	EnvPersonalUserID     = "LINE_PERSONAL_USER_ID"
	EnvPort               = "PORT"
	EnvTimeoutSeconds     = "LINE_TIMEOUT_SECONDS"
	EnvAPIEndpoint        = "LINE_API_ENDPOINT"
)

// Defaults applied when the optional variables are unset.
const (
	DefaultPort    = 8000
	DefaultTimeout = 10 * time.Second
)

// Config holds the process-wide configuration for the LINE MCP server.
// It is constructed once at startup and passed by reference into the
// server context and the LINE client; nothing reads the environment at
// call time.
type Config struct {
	// ChannelAccessToken is the bearer credential for the LINE Messaging API.
	ChannelAccessToken string

	// DefaultGroupID is the group targeted when a tool invocation does not
	// name one.
	DefaultGroupID string

	// PersonalUserID is the optional default target for personal sends.
	PersonalUserID string

	// Port is the listen port for the streamable HTTP transport.
	Port int

	// Timeout bounds each outbound call to the LINE API.
	Timeout time.Duration

	// APIEndpoint overrides the LINE API base URL. Empty means the
	// production endpoint.
	APIEndpoint string
}

// MissingVarError reports a required environment variable that is unset
// or empty.
type MissingVarError struct {
	Var string
}

func (e *MissingVarError) Error() string {
	return fmt.Sprintf("required environment variable %s is not set", e.Var)
}

// FromEnv builds a Config from the process environment.
// It returns an error if a required variable is missing or an optional
// variable has an unparseable value.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ChannelAccessToken: os.Getenv(EnvChannelAccessToken),
		DefaultGroupID:     os.Getenv(EnvGroupID),
		PersonalUserID:     os.Getenv(EnvPersonalUserID),
		Port:               DefaultPort,
		Timeout:            DefaultTimeout,
		APIEndpoint:        os.Getenv(EnvAPIEndpoint),
	}

	if cfg.ChannelAccessToken == "" {
		return nil, &MissingVarError{Var: EnvChannelAccessToken}
	}
	if cfg.DefaultGroupID == "" {
		return nil, &MissingVarError{Var: EnvGroupID}
	}

	if portStr := os.Getenv(EnvPort); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("invalid %s value %q: must be a port number", EnvPort, portStr)
		}
		cfg.Port = port
	}

	if timeoutStr := os.Getenv(EnvTimeoutSeconds); timeoutStr != "" {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid %s value %q: must be a positive number of seconds", EnvTimeoutSeconds, timeoutStr)
		}
		cfg.Timeout = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP transport (":<port>").
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
