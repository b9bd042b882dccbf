// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadWithKoanf_Defaults(t *testing.T) {
	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Server.Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Database.Path != "/data/snacksmart.duckdb" {
		t.Errorf("Database.Path = %q, want /data/snacksmart.duckdb", cfg.Database.Path)
	}
	if cfg.Security.SessionTimeout != 24*time.Hour {
		t.Errorf("Security.SessionTimeout = %s, want 24h", cfg.Security.SessionTimeout)
	}
	if cfg.Mail.Enabled {
		t.Error("Mail.Enabled should default to false")
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "json" {
		t.Errorf("Logging defaults = %q/%q, want info/json", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadWithKoanf_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DUCKDB_PATH", ":memory:")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, https://admin.example.com")
	t.Setenv("SESSION_TIMEOUT", "2h")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Database.Path != ":memory:" {
		t.Errorf("Database.Path = %q, want :memory:", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Security.SessionTimeout != 2*time.Hour {
		t.Errorf("Security.SessionTimeout = %s, want 2h", cfg.Security.SessionTimeout)
	}

	want := []string{"https://shop.example.com", "https://admin.example.com"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
server:
  port: 4000
database:
  path: /tmp/shop.duckdb
security:
  session_timeout: 12h
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() failed: %v", err)
	}

	if cfg.Server.Port != 4000 {
		t.Errorf("Server.Port = %d, want 4000 from file", cfg.Server.Port)
	}
	if cfg.Database.Path != "/tmp/shop.duckdb" {
		t.Errorf("Database.Path = %q, want /tmp/shop.duckdb from file", cfg.Database.Path)
	}
	if cfg.Security.SessionTimeout != 12*time.Hour {
		t.Errorf("Security.SessionTimeout = %s, want 12h from file", cfg.Security.SessionTimeout)
	}
}

func TestLoadWithKoanf_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("server:\n  port: 4000\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "5000")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() failed: %v", err)
	}

	if cfg.Server.Port != 5000 {
		t.Errorf("Server.Port = %d, want env override 5000", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "invalid port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: true,
		},
		{
			name:    "unknown environment",
			mutate:  func(c *Config) { c.Server.Environment = "staging" },
			wantErr: true,
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
		},
		{
			name: "production without jwt secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = ""
			},
			wantErr: true,
		},
		{
			name: "production with strong jwt secret",
			mutate: func(c *Config) {
				c.Server.Environment = "production"
				c.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
			},
		},
		{
			name:    "short jwt secret rejected everywhere",
			mutate:  func(c *Config) { c.Security.JWTSecret = "too-short" },
			wantErr: true,
		},
		{
			name: "mail enabled without host",
			mutate: func(c *Config) {
				c.Mail.Enabled = true
				c.Mail.From = "noreply@example.com"
			},
			wantErr: true,
		},
		{
			name: "mail enabled fully configured",
			mutate: func(c *Config) {
				c.Mail.Enabled = true
				c.Mail.Host = "smtp.example.com"
				c.Mail.From = "noreply@example.com"
			},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name: "rate limit disabled skips limit validation",
			mutate: func(c *Config) {
				c.Security.RateLimitDisabled = true
				c.Security.RateLimitReqs = 0
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("Validate() should have failed")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}
