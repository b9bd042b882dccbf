// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/models"
)

type contextKey string

// ClaimsContextKey is the request context key holding the validated *Claims.
const ClaimsContextKey contextKey = "claims"

// Middleware provides Chi-compatible authentication middleware backed by the
// JWT manager. It only gates requests; role checks beyond Super Admin are
// done in the handlers where the error response needs request context.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates authentication middleware around the JWT manager.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// RequireUser gates routes that need a logged-in customer.
func (m *Middleware) RequireUser() func(http.Handler) http.Handler {
	return m.require(PurposeAccess, "")
}

// RequireAdmin gates back-office routes open to any admin role.
func (m *Middleware) RequireAdmin() func(http.Handler) http.Handler {
	return m.require(PurposeAdmin, "")
}

// RequireSuperAdmin gates admin-account management routes.
func (m *Middleware) RequireSuperAdmin() func(http.Handler) http.Handler {
	return m.require(PurposeAdmin, models.RoleSuperAdmin)
}

func (m *Middleware) require(purpose, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := m.authenticate(r, purpose)
			if err != nil {
				logging.Warn().
					Err(err).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("Authentication failed")
				respondAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
				return
			}

			if role != "" && claims.Role != role {
				logging.Warn().
					Str("subject", claims.Subject).
					Str("role", claims.Role).
					Str("path", r.URL.Path).
					Msg("Access denied: insufficient role")
				respondAuthError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Optional attaches claims to the context when a valid customer token is
// present but never rejects the request. Preference endpoints use this to
// serve both logged-in customers and anonymous sessions.
func (m *Middleware) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := m.authenticate(r, PurposeAccess)
			if err == nil {
				ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// authenticate extracts and validates the bearer token for the given purpose.
func (m *Middleware) authenticate(r *http.Request, purpose string) (*Claims, error) {
	token, err := extractToken(r)
	if err != nil {
		return nil, err
	}
	return m.jwtManager.ValidateToken(token, purpose)
}

// extractToken extracts the JWT from the Authorization header or the token
// cookie.
func extractToken(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err != nil {
			return "", fmt.Errorf("missing token")
		}
		return cookie.Value, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fmt.Errorf("invalid authorization header")
	}

	return parts[1], nil
}

// ClaimsFromContext returns the validated claims attached by the middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// respondAuthError writes an error envelope directly. The api package's
// response helpers are not used here to keep auth free of an api import.
func respondAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
