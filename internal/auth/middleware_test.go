// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fardin376/snacksmart/internal/models"
)

func testMiddleware(t *testing.T) (*Middleware, *JWTManager) {
	t.Helper()
	manager, err := NewJWTManager(testSecurityConfig())
	if err != nil {
		t.Fatalf("NewJWTManager() failed: %v", err)
	}
	return NewMiddleware(manager), manager
}

func claimsEcho(t *testing.T, gotClaims **Claims) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		*gotClaims = claims
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireUser(t *testing.T) {
	mw, manager := testMiddleware(t)

	token, err := manager.GenerateUserToken(5, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateUserToken() failed: %v", err)
	}
	adminToken, err := manager.GenerateAdminToken(1, "admin@example.com", models.RoleStaffAdmin)
	if err != nil {
		t.Fatalf("GenerateAdminToken() failed: %v", err)
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{"valid bearer token", "Bearer " + token, http.StatusOK},
		{"missing token", "", http.StatusUnauthorized},
		{"malformed header", "Token " + token, http.StatusUnauthorized},
		{"admin token on customer route", "Bearer " + adminToken, http.StatusUnauthorized},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var claims *Claims
			handler := mw.RequireUser()(claimsEcho(t, &claims))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantStatus == http.StatusOK && claims == nil {
				t.Error("claims should be attached to the request context")
			}
		})
	}
}

func TestRequireUser_TokenCookie(t *testing.T) {
	mw, manager := testMiddleware(t)

	token, err := manager.GenerateUserToken(5, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateUserToken() failed: %v", err)
	}

	var claims *Claims
	handler := mw.RequireUser()(claimsEcho(t, &claims))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for cookie token", rec.Code)
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	mw, manager := testMiddleware(t)

	superToken, err := manager.GenerateAdminToken(1, "super@example.com", models.RoleSuperAdmin)
	if err != nil {
		t.Fatalf("GenerateAdminToken() failed: %v", err)
	}
	staffToken, err := manager.GenerateAdminToken(2, "staff@example.com", models.RoleStaffAdmin)
	if err != nil {
		t.Fatalf("GenerateAdminToken() failed: %v", err)
	}

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"super admin allowed", superToken, http.StatusOK},
		{"staff admin forbidden", staffToken, http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var claims *Claims
			handler := mw.RequireSuperAdmin()(claimsEcho(t, &claims))

			req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/admins", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}

func TestOptional(t *testing.T) {
	mw, manager := testMiddleware(t)

	token, err := manager.GenerateUserToken(9, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateUserToken() failed: %v", err)
	}

	t.Run("anonymous request passes through", func(t *testing.T) {
		var claims *Claims
		handler := mw.Optional()(claimsEcho(t, &claims))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/preferences/track", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 for anonymous request", rec.Code)
		}
		if claims != nil {
			t.Error("anonymous request should carry no claims")
		}
	})

	t.Run("valid token attaches claims", func(t *testing.T) {
		var claims *Claims
		handler := mw.Optional()(claimsEcho(t, &claims))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/preferences/track", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if claims == nil {
			t.Fatal("valid token should attach claims")
		}
		if id, err := claims.AccountID(); err != nil || id != 9 {
			t.Errorf("AccountID() = %d, %v; want 9", id, err)
		}
	})

	t.Run("garbage token is ignored", func(t *testing.T) {
		var claims *Claims
		handler := mw.Optional()(claimsEcho(t, &claims))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/preferences/track", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200 when bad token is ignored", rec.Code)
		}
		if claims != nil {
			t.Error("invalid token should not attach claims")
		}
	})
}
