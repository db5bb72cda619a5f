package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "minimal valid configuration",
			env: map[string]string{
				EnvChannelAccessToken: "token-abc",
				EnvGroupID:            "C907a5f13427d06fa58adf5c1920352ad",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != DefaultPort {
					t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
				}
				if cfg.Timeout != DefaultTimeout {
					t.Errorf("Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
				}
				if cfg.Addr() != ":8000" {
					t.Errorf("Addr() = %q, want %q", cfg.Addr(), ":8000")
				}
			},
		},
		{
			name: "all variables set",
			env: map[string]string{
				EnvChannelAccessToken: "token-abc",
				EnvGroupID:            "Cgroup",
				EnvPersonalUserID:     "Uuser",
				EnvPort:               "9000",
				EnvTimeoutSeconds:     "5",
				EnvAPIEndpoint:        "http://localhost:9999",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Port != 9000 {
					t.Errorf("Port = %d, want 9000", cfg.Port)
				}
				if cfg.Timeout != 5*time.Second {
					t.Errorf("Timeout = %v, want 5s", cfg.Timeout)
				}
				if cfg.PersonalUserID != "Uuser" {
					t.Errorf("PersonalUserID = %q, want %q", cfg.PersonalUserID, "Uuser")
				}
				if cfg.APIEndpoint != "http://localhost:9999" {
					t.Errorf("APIEndpoint = %q", cfg.APIEndpoint)
				}
			},
		},
		{
			name: "missing channel access token",
			env: map[string]string{
				EnvGroupID: "Cgroup",
			},
			wantErr:     true,
			errContains: EnvChannelAccessToken,
		},
		{
			name: "missing group id",
			env: map[string]string{
				EnvChannelAccessToken: "token-abc",
			},
			wantErr:     true,
			errContains: EnvGroupID,
		},
		{
			name: "invalid port",
			env: map[string]string{
				EnvChannelAccessToken: "token-abc",
				EnvGroupID:            "Cgroup",
				EnvPort:               "not-a-port",
			},
			wantErr:     true,
			errContains: EnvPort,
		},
		{
			name: "negative timeout",
			env: map[string]string{
				EnvChannelAccessToken: "token-abc",
				EnvGroupID:            "Cgroup",
				EnvTimeoutSeconds:     "-3",
			},
			wantErr:     true,
			errContains: EnvTimeoutSeconds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{
				EnvChannelAccessToken, EnvGroupID, EnvPersonalUserID,
				EnvPort, EnvTimeoutSeconds, EnvAPIEndpoint,
			} {
				t.Setenv(key, tt.env[key])
			}

			cfg, err := FromEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("FromEnv() expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("FromEnv() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}

			if err != nil {
				t.Fatalf("FromEnv() unexpected error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestMissingVarError(t *testing.T) {
	t.Setenv(EnvChannelAccessToken, "")
	t.Setenv(EnvGroupID, "")

	_, err := FromEnv()
	if err == nil {
		t.Fatal("FromEnv() expected error, got nil")
	}

	var missing *MissingVarError
	if !errors.As(err, &missing) {
		t.Fatalf("FromEnv() error = %T, want *MissingVarError", err)
	}
	if missing.Var != EnvChannelAccessToken {
		t.Errorf("MissingVarError.Var = %q, want %q", missing.Var, EnvChannelAccessToken)
	}
}
