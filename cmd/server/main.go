// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package main is the entry point for the SnackSmart server application.
//
// SnackSmart is a healthy-snack storefront backend: a public product catalog
// with per-visitor preference tracking and recommendations, customer accounts
// with email confirmation, a cart and checkout flow with coupon support, and
// an admin back office for inventory, customers, coupons, and sales.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Database: Initialize DuckDB and run schema migrations
//  3. Authentication: JWT managers for customer and admin tokens
//  4. Mail: SMTP confirmation delivery behind a circuit breaker
//  5. HTTP Server: REST API under /api/v1 plus Prometheus /metrics
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (see internal/config for the full list)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the database connection
//
// # Example Usage
//
// Development with an in-memory database and demo data:
//
//	export DUCKDB_PATH=:memory:
//	export SEED_DEMO_DATA=true
//	./snacksmart
//
// Production:
//
//	export ENVIRONMENT=production
//	export DUCKDB_PATH=/data/snacksmart.db
//	export JWT_SECRET=$(openssl rand -base64 32)
//	export PUBLIC_URL=https://shop.example.com
//	export MAIL_ENABLED=true
//	export SMTP_HOST=smtp.example.com
//	export SMTP_PORT=587
//	export MAIL_FROM=no-reply@example.com
//	./snacksmart
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Fardin376/snacksmart/internal/api"
	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/config"
	"github.com/Fardin376/snacksmart/internal/database"
	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/mail"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Msg("Starting SnackSmart")

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("mail_enabled", cfg.Mail.Enabled).
		Bool("rate_limit_disabled", cfg.Security.RateLimitDisabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if cfg.Database.SeedDemoData {
		logging.Info().Msg("Demo data seeding enabled (SEED_DEMO_DATA=true)")
		if err := db.SeedDemoData(context.Background()); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed demo data")
		}
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}
	authMiddleware := auth.NewMiddleware(jwtManager)

	mailer := mail.New(&cfg.Mail, cfg.Server.PublicURL)

	handler := api.NewHandler(db, cfg, jwtManager, mailer)
	chiMW := api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		RateLimitRequests:  cfg.Security.RateLimitReqs,
		RateLimitWindow:    cfg.Security.RateLimitWindow,
		RateLimitDisabled:  cfg.Security.RateLimitDisabled,
	})
	router := api.NewRouter(handler, authMiddleware, chiMW)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		serverErr <- srv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("HTTP server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed, forcing close")
		if err := srv.Close(); err != nil {
			logging.Error().Err(err).Msg("Forced close failed")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}
