// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"

	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/models"
)

// callerAdminID extracts the authenticated admin's ID and role.
func callerAdminID(w http.ResponseWriter, r *http.Request) (int, string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return 0, "", false
	}
	adminID, err := claims.AccountID()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return 0, "", false
	}
	return adminID, claims.Role, true
}

// AdminLogin authenticates a back-office operator and issues an admin token
// carrying the operator's role.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	admin, err := h.db.GetAdminByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(admin.PasswordHash, req.Password) {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password", nil)
		return
	}
	if !admin.IsActive {
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Account is deactivated", nil)
		return
	}

	token, err := h.jwtManager.GenerateAdminToken(admin.ID, admin.Email, admin.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Message: "Login successful",
		Token:   token,
		Admin:   admin,
	})
}

// AdminProfile returns the authenticated operator's account.
func (h *Handler) AdminProfile(w http.ResponseWriter, r *http.Request) {
	adminID, _, ok := callerAdminID(w, r)
	if !ok {
		return
	}

	admin, err := h.db.GetAdminByID(r.Context(), adminID)
	if err != nil {
		respondStoreError(w, err, "Admin not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"admin": admin})
}
