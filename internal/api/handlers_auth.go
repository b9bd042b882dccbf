// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"
	"strings"

	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/models"
)

// Register creates a customer account and sends the confirmation email.
// The account is created even when email delivery fails; delivery is
// best-effort.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Internal server error", err)
		return
	}

	user, err := h.db.CreateUser(r.Context(), req.FirstName, req.LastName, req.Email, hash)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	token, err := h.jwtManager.GenerateConfirmToken(user.ID, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Internal server error", err)
		return
	}
	if err := h.mailer.SendConfirmation(r.Context(), user, token); err != nil {
		// Already logged and counted by the mailer.
		logging.Ctx(r.Context()).Warn().Int("user_id", user.ID).Msg("Registration completed without confirmation email")
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "Account created. Check your email to confirm your address.",
		"user":    user,
	})
}

// Login authenticates a customer and issues an access token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	user, err := h.db.GetUserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		// Same response for unknown email and wrong password.
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
		return
	}
	if !user.IsActive {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Account is deactivated", nil)
		return
	}
	if !user.Confirmed {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Confirm your email address before logging in", nil)
		return
	}

	token, err := h.jwtManager.GenerateUserToken(user.ID, user.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		User:    user,
	})
}

// ConfirmEmail validates the emailed confirmation token and flips the
// account to confirmed. Re-confirming an already confirmed account succeeds.
func (h *Handler) ConfirmEmail(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing confirmation token", nil)
		return
	}

	claims, err := h.jwtManager.ValidateToken(token, auth.PurposeConfirm)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid or expired confirmation token", nil)
		return
	}

	userID, err := claims.AccountID()
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid or expired confirmation token", nil)
		return
	}

	if err := h.db.ConfirmUser(r.Context(), userID); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{
		"message": "Email confirmed. You can now log in.",
	})
}

// GetUser returns a customer profile. Customers may only read their own
// profile.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return
	}
	callerID, err := claims.AccountID()
	if err != nil || callerID != id {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Cannot access another account", nil)
		return
	}

	user, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"user": user})
}
