// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/config"
	"github.com/Fardin376/snacksmart/internal/database"
	"github.com/Fardin376/snacksmart/internal/mail"
	"github.com/Fardin376/snacksmart/internal/models"
)

// testServerSemaphore serializes test servers: each owns an in-memory
// DuckDB, and concurrent DuckDB lifecycles are unreliable under CI
// resource pressure.
var testServerSemaphore = make(chan struct{}, 1)

type testServer struct {
	*httptest.Server
	db         *database.DB
	jwtManager *auth.JWTManager
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:        8080,
			Host:        "127.0.0.1",
			Timeout:     30 * time.Second,
			Environment: "development",
			PublicURL:   "http://localhost:8080",
		},
		Database: config.DatabaseConfig{
			Path:      ":memory:",
			MaxMemory: "1GB",
		},
		Security: config.SecurityConfig{
			JWTSecret:         "test-secret-key-for-unit-tests-0123456789",
			SessionTimeout:    time.Hour,
			ConfirmTokenTTL:   48 * time.Hour,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		Mail: config.MailConfig{Enabled: false},
	}
}

// setupTestServer builds the full stack against an in-memory database:
// real router, real middleware, mail disabled.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	testServerSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testServerSemaphore
	})

	cfg := testConfig()

	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatalf("failed to create JWT manager: %v", err)
	}

	mailer := mail.New(&cfg.Mail, cfg.Server.PublicURL)
	handler := NewHandler(db, cfg, jwtManager, mailer)
	chiMW := NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Security.CORSOrigins,
		RateLimitDisabled:  true,
	})
	router := NewRouter(handler, auth.NewMiddleware(jwtManager), chiMW)

	srv := httptest.NewServer(router.Setup())
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, db: db, jwtManager: jwtManager}
}

// doJSON performs a request with an optional JSON body and bearer token,
// decoding the envelope.
func (ts *testServer) doJSON(t *testing.T, method, path string, body interface{}, token string) (int, *models.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var envelope models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response envelope: %v", err)
	}
	return resp.StatusCode, &envelope
}

// dataMap extracts the envelope data as a map.
func dataMap(t *testing.T, envelope *models.APIResponse) map[string]interface{} {
	t.Helper()
	m, ok := envelope.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("envelope data is %T, want object", envelope.Data)
	}
	return m
}

// createConfirmedUser inserts a confirmed customer and returns an access
// token for it.
func (ts *testServer) createConfirmedUser(t *testing.T, email string) (int, string) {
	t.Helper()

	hash, err := auth.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user, err := ts.db.CreateUser(context.Background(), "Test", "Customer", email, hash)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	if err := ts.db.ConfirmUser(context.Background(), user.ID); err != nil {
		t.Fatalf("failed to confirm user: %v", err)
	}

	token, err := ts.jwtManager.GenerateUserToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user.ID, token
}

// createAdmin inserts an admin and returns an admin token.
func (ts *testServer) createAdmin(t *testing.T, email, role string) (int, string) {
	t.Helper()

	hash, err := auth.HashPassword("Password1!")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin, err := ts.db.CreateAdmin(context.Background(), "Test Admin", email, hash, role)
	if err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}

	token, err := ts.jwtManager.GenerateAdminToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}
	return admin.ID, token
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	status, envelope := ts.doJSON(t, http.MethodGet, "/api/v1/health", nil, "")
	if status != http.StatusOK {
		t.Fatalf("health returned %d", status)
	}
	data := dataMap(t, envelope)
	if data["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", data["status"])
	}
	if data["database"] != "connected" {
		t.Errorf("database = %v, want connected", data["database"])
	}
}

func TestRegisterConfirmLoginFlow(t *testing.T) {
	ts := setupTestServer(t)

	register := map[string]string{
		"firstName": "Jamie",
		"lastName":  "Lee",
		"email":     "jamie@example.com",
		"password":  "Password1!",
	}
	status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/auth/register", register, "")
	if status != http.StatusCreated {
		t.Fatalf("register returned %d", status)
	}

	// Duplicate email is a conflict.
	status, envelope := ts.doJSON(t, http.MethodPost, "/api/v1/auth/register", register, "")
	if status != http.StatusConflict {
		t.Errorf("duplicate register returned %d, want 409", status)
	}
	if envelope.Error == nil || envelope.Error.Code != "CONFLICT" {
		t.Errorf("duplicate register error = %+v", envelope.Error)
	}

	// Weak password rejected.
	weak := map[string]string{
		"firstName": "Weak", "lastName": "Pass",
		"email": "weak@example.com", "password": "alllowercase1",
	}
	if status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/auth/register", weak, ""); status != http.StatusBadRequest {
		t.Errorf("weak password register returned %d, want 400", status)
	}

	login := map[string]string{"email": "jamie@example.com", "password": "Password1!"}

	// Unconfirmed accounts cannot log in.
	if status, _ = ts.doJSON(t, http.MethodPost, "/api/v1/auth/login", login, ""); status != http.StatusForbidden {
		t.Fatalf("unconfirmed login returned %d, want 403", status)
	}

	// Confirm via the emailed token.
	user, err := ts.db.GetUserByEmail(context.Background(), "jamie@example.com")
	if err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	confirmToken, err := ts.jwtManager.GenerateConfirmToken(user.ID, user.Email)
	if err != nil {
		t.Fatalf("failed to build confirm token: %v", err)
	}
	if status, _ = ts.doJSON(t, http.MethodGet, "/api/v1/auth/confirm?token="+confirmToken, nil, ""); status != http.StatusOK {
		t.Fatalf("confirm returned %d", status)
	}

	// A garbage token is a 400.
	if status, _ = ts.doJSON(t, http.MethodGet, "/api/v1/auth/confirm?token=garbage", nil, ""); status != http.StatusBadRequest {
		t.Errorf("bad confirm token returned %d, want 400", status)
	}

	status, envelope = ts.doJSON(t, http.MethodPost, "/api/v1/auth/login", login, "")
	if status != http.StatusOK {
		t.Fatalf("login returned %d", status)
	}
	data := dataMap(t, envelope)
	if data["token"] == "" || data["token"] == nil {
		t.Error("login should return a token")
	}

	// Wrong password is a 401.
	bad := map[string]string{"email": "jamie@example.com", "password": "WrongPass1"}
	if status, _ = ts.doJSON(t, http.MethodPost, "/api/v1/auth/login", bad, ""); status != http.StatusUnauthorized {
		t.Errorf("wrong password login returned %d, want 401", status)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	ts := setupTestServer(t)

	userID, _ := ts.createConfirmedUser(t, "gone@example.com")
	if err := ts.db.SetUserActive(context.Background(), userID, false); err != nil {
		t.Fatalf("failed to deactivate: %v", err)
	}

	login := map[string]string{"email": "gone@example.com", "password": "Password1!"}
	if status, _ := ts.doJSON(t, http.MethodPost, "/api/v1/auth/login", login, ""); status != http.StatusForbidden {
		t.Errorf("deactivated login returned %d, want 403", status)
	}
}

func TestGetUserOwnProfileOnly(t *testing.T) {
	ts := setupTestServer(t)

	userID, token := ts.createConfirmedUser(t, "me@example.com")
	otherID, _ := ts.createConfirmedUser(t, "other@example.com")

	status, _ := ts.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/auth/users/%d", userID), nil, token)
	if status != http.StatusOK {
		t.Errorf("own profile returned %d", status)
	}

	status, _ = ts.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/auth/users/%d", otherID), nil, token)
	if status != http.StatusForbidden {
		t.Errorf("foreign profile returned %d, want 403", status)
	}

	status, _ = ts.doJSON(t, http.MethodGet, fmt.Sprintf("/api/v1/auth/users/%d", userID), nil, "")
	if status != http.StatusUnauthorized {
		t.Errorf("anonymous profile returned %d, want 401", status)
	}
}
