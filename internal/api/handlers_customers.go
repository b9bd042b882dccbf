// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"

	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/models"
)

// ListCustomers returns all customer accounts, newest first.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.db.ListCustomers(r.Context())
	if err != nil {
		respondStoreError(w, err, "Customer not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"customers": customers})
}

// GetCustomer returns one customer account.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	customer, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "Customer not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"customer": customer})
}

// UpdateCustomerStatus toggles a customer's active flag. Deactivation keeps
// order history intact; the customer just cannot log in.
func (h *Handler) UpdateCustomerStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCustomerStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.SetUserActive(r.Context(), id, *req.IsActive); err != nil {
		respondStoreError(w, err, "Customer not found")
		return
	}

	logging.Ctx(r.Context()).Info().Int("customer_id", id).Bool("active", *req.IsActive).Msg("Customer status changed")
	respondSuccess(w, http.StatusOK, map[string]string{"message": "Customer status updated"})
}
