// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package config provides centralized configuration for all application
// components: HTTP server, DuckDB database, security, outbound mail, and
// logging.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml) for persistent settings
//  3. Environment Variables: Override any setting
//
// Config is immutable after Load() and safe for concurrent read access.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all application configuration loaded from defaults, an
// optional YAML file, and environment variables.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	Mail     MailConfig     `koanf:"mail"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8080)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
//   - ENVIRONMENT: "development" or "production"
//   - PUBLIC_URL: External base URL used in confirmation email links
type ServerConfig struct {
	Port        int           `koanf:"port"`
	Host        string        `koanf:"host"`
	Timeout     time.Duration `koanf:"timeout"`
	Environment string        `koanf:"environment"`
	PublicURL   string        `koanf:"public_url"`
}

// DatabaseConfig holds DuckDB settings.
//
// Environment Variables:
//   - DUCKDB_PATH: Database file path, or :memory: for in-memory
//   - DUCKDB_MAX_MEMORY: DuckDB memory_limit pragma (e.g. "2GB")
//   - DUCKDB_THREADS: Worker threads, 0 = runtime.NumCPU()
//   - SEED_DEMO_DATA: Populate demo catalog, accounts, and orders on first start
type DatabaseConfig struct {
	Path         string `koanf:"path"`
	MaxMemory    string `koanf:"max_memory"`
	Threads      int    `koanf:"threads"`
	SeedDemoData bool   `koanf:"seed_demo_data"`
}

// SecurityConfig holds authentication and rate limiting settings.
//
// Environment Variables:
//   - JWT_SECRET: HS256 signing key, required in production (min 32 chars)
//   - SESSION_TIMEOUT: Access token lifetime (default: 24h)
//   - CONFIRM_TOKEN_TTL: Email confirmation token lifetime (default: 48h)
//   - RATE_LIMIT_REQUESTS / RATE_LIMIT_WINDOW: Per-IP rate limit
//   - DISABLE_RATE_LIMIT: Turn rate limiting off entirely
//   - CORS_ORIGINS: Comma-separated allowed origins
type SecurityConfig struct {
	JWTSecret         string        `koanf:"jwt_secret"`
	SessionTimeout    time.Duration `koanf:"session_timeout"`
	ConfirmTokenTTL   time.Duration `koanf:"confirm_token_ttl"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// MailConfig holds outbound SMTP settings for account confirmation email.
// Delivery is best-effort: registration succeeds even when SMTP is down.
//
// Environment Variables:
//   - MAIL_ENABLED: Master toggle (default: false, emails are logged instead)
//   - SMTP_HOST / SMTP_PORT / SMTP_USERNAME / SMTP_PASSWORD
//   - MAIL_FROM: From address for outbound mail
type MailConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	From     string `koanf:"from"`
}

// LoggingConfig holds log output settings.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json or console (default: json)
//   - LOG_CALLER: Include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}

	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateSecurity(); err != nil {
		return err
	}

	if err := c.validateMail(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}
	switch strings.ToLower(c.Server.Environment) {
	case "development", "production":
		return nil
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
}

func (c *Config) validateDatabase() error {
	if c.Database.Path == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	// A missing secret is tolerated in development (one is generated at
	// startup) but fatal in production where tokens must survive restarts.
	if c.IsProduction() && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters, got %d", len(c.Security.JWTSecret))
	}
	if c.Security.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be positive, got %s", c.Security.SessionTimeout)
	}
	if c.Security.ConfirmTokenTTL <= 0 {
		return fmt.Errorf("CONFIRM_TOKEN_TTL must be positive, got %s", c.Security.ConfirmTokenTTL)
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateMail() error {
	if !c.Mail.Enabled {
		return nil
	}
	if c.Mail.Host == "" {
		return fmt.Errorf("SMTP_HOST is required when MAIL_ENABLED=true")
	}
	if c.Mail.Port < 1 || c.Mail.Port > 65535 {
		return fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", c.Mail.Port)
	}
	if c.Mail.From == "" {
		return fmt.Errorf("MAIL_FROM is required when MAIL_ENABLED=true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}
