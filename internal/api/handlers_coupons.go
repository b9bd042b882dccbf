// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Fardin376/snacksmart/internal/models"
)

// parseCouponDate accepts YYYY-MM-DD or RFC 3339.
func parseCouponDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ValidateCoupon is the public checkout-time validation endpoint. Inactive,
// expired, and unknown codes all answer 404: coupon state is not probeable.
func (h *Handler) ValidateCoupon(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Missing coupon code", nil)
		return
	}

	coupon, err := h.db.ValidateCoupon(r.Context(), code)
	if err != nil {
		respondStoreError(w, err, "Coupon not found or not valid")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"coupon": coupon})
}

// ListCoupons returns all coupons with their derived status.
func (h *Handler) ListCoupons(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.db.ListCoupons(r.Context())
	if err != nil {
		respondStoreError(w, err, "Coupon not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"coupons": coupons})
}

// CreateCoupon adds a coupon code with a validity window.
func (h *Handler) CreateCoupon(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCouponRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	validFrom, err := parseCouponDate(req.ValidFrom)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid validFrom date", nil)
		return
	}
	validTo, err := parseCouponDate(req.ValidTo)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid validTo date", nil)
		return
	}
	if !validTo.After(validFrom) {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "validTo must be after validFrom", nil)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	coupon, err := h.db.CreateCoupon(r.Context(), req.Code, req.Type, req.Value, validFrom, validTo, isActive)
	if err != nil {
		respondStoreError(w, err, "Coupon not found")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"coupon": coupon})
}

// UpdateCoupon partially updates a coupon.
func (h *Handler) UpdateCoupon(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateCouponRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	var validFrom, validTo *time.Time
	if req.ValidFrom != "" {
		t, err := parseCouponDate(req.ValidFrom)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid validFrom date", nil)
			return
		}
		validFrom = &t
	}
	if req.ValidTo != "" {
		t, err := parseCouponDate(req.ValidTo)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid validTo date", nil)
			return
		}
		validTo = &t
	}

	coupon, err := h.db.UpdateCoupon(r.Context(), id, &req, validFrom, validTo)
	if err != nil {
		respondStoreError(w, err, "Coupon not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"coupon": coupon})
}

// DeactivateCoupon switches a coupon off without deleting it.
func (h *Handler) DeactivateCoupon(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	inactive := false
	coupon, err := h.db.UpdateCoupon(r.Context(), id, &models.UpdateCouponRequest{IsActive: &inactive}, nil, nil)
	if err != nil {
		respondStoreError(w, err, "Coupon not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"coupon": coupon})
}

// DeleteCoupon removes a coupon permanently.
func (h *Handler) DeleteCoupon(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.db.DeleteCoupon(r.Context(), id); err != nil {
		respondStoreError(w, err, "Coupon not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Coupon deleted"})
}
