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

// ListAdmins returns all back-office accounts.
func (h *Handler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := h.db.ListAdmins(r.Context())
	if err != nil {
		respondStoreError(w, err, "Admin not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"admins": admins})
}

// CreateAdmin creates a back-office account. Super Admin only (enforced by
// route middleware).
func (h *Handler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAdminRequest
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

	admin, err := h.db.CreateAdmin(r.Context(), req.Name, req.Email, hash, req.Role)
	if err != nil {
		respondStoreError(w, err, "Admin not found")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"admin": admin})
}

// UpdateAdmin modifies a back-office account. Operators cannot deactivate
// their own account; locking yourself out is always a mistake.
func (h *Handler) UpdateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	callerID, _, ok := callerAdminID(w, r)
	if !ok {
		return
	}

	var req models.UpdateAdminRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if id == callerID && req.IsActive != nil && !*req.IsActive {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot deactivate your own account", nil)
		return
	}

	admin, err := h.db.UpdateAdmin(r.Context(), id, &req)
	if err != nil {
		respondStoreError(w, err, "Admin not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"admin": admin})
}

// DeactivateAdmin disables a back-office account without touching its other
// fields. Super Admin only (enforced by route middleware); self-deactivation
// is rejected.
func (h *Handler) DeactivateAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	callerID, _, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	if id == callerID {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot deactivate your own account", nil)
		return
	}

	inactive := false
	admin, err := h.db.UpdateAdmin(r.Context(), id, &models.UpdateAdminRequest{IsActive: &inactive})
	if err != nil {
		respondStoreError(w, err, "Admin not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"admin": admin})
}

// DeleteAdmin removes a back-office account. Self-deletion is rejected for
// the same reason as self-deactivation.
func (h *Handler) DeleteAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}
	callerID, _, ok := callerAdminID(w, r)
	if !ok {
		return
	}
	if id == callerID {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Cannot delete your own account", nil)
		return
	}

	if err := h.db.DeleteAdmin(r.Context(), id); err != nil {
		respondStoreError(w, err, "Admin not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Admin deleted"})
}
