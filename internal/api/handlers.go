// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"
	"time"

	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/config"
	"github.com/Fardin376/snacksmart/internal/database"
	"github.com/Fardin376/snacksmart/internal/mail"
	"github.com/Fardin376/snacksmart/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files by concern:
//   - handlers_health.go: liveness
//   - handlers_auth.go: customer register/login/confirm
//   - handlers_products.go: catalog listing with preference-biased sort
//   - handlers_preferences.go: interaction tracking and recommendations
//   - handlers_cart.go: customer cart and checkout
//   - handlers_admin_auth.go: back-office login and profile
//   - handlers_admins.go: admin account management (Super Admin)
//   - handlers_customers.go: customer management
//   - handlers_inventory.go: product CRUD and stock
//   - handlers_sales.go: sales summaries and dashboard
//   - handlers_coupons.go: coupon validation and CRUD
type Handler struct {
	db         *database.DB
	config     *config.Config
	jwtManager *auth.JWTManager
	mailer     *mail.Mailer
	startTime  time.Time
}

// NewHandler creates an API handler with all required dependencies.
func NewHandler(db *database.DB, cfg *config.Config, jwtManager *auth.JWTManager, mailer *mail.Mailer) *Handler {
	return &Handler{
		db:         db,
		config:     cfg,
		jwtManager: jwtManager,
		mailer:     mailer,
		startTime:  time.Now(),
	}
}

// identityFromRequest resolves the preference identity for a request: the
// authenticated user ID when a valid access token was attached by the
// optional auth middleware, else the caller-supplied session ID. The session
// ID is an opaque client-generated string; no structure is assumed beyond
// non-emptiness. Returns a zero Identity when neither form is present.
func identityFromRequest(r *http.Request, sessionID string) recommend.Identity {
	if claims, ok := auth.ClaimsFromContext(r.Context()); ok {
		if userID, err := claims.AccountID(); err == nil {
			return recommend.Authenticated(userID)
		}
	}
	if sessionID != "" {
		return recommend.Guest(sessionID)
	}
	return recommend.Identity{}
}

// sessionIDFromQuery reads the guest session ID from query or header.
func sessionIDFromQuery(r *http.Request) string {
	if id := r.URL.Query().Get("sessionId"); id != "" {
		return id
	}
	return r.Header.Get("X-Session-ID")
}
