// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"errors"
	"net/http"

	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/database"
	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/metrics"
	"github.com/Fardin376/snacksmart/internal/models"
)

// callerUserID extracts the authenticated customer's ID. The auth middleware
// guarantees claims are present on these routes.
func callerUserID(w http.ResponseWriter, r *http.Request) (int, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return 0, false
	}
	userID, err := claims.AccountID()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required", nil)
		return 0, false
	}
	return userID, true
}

// GetCart returns the customer's cart with product details.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(w, r)
	if !ok {
		return
	}

	items, err := h.db.ListCartItems(r.Context(), userID)
	if err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"cart": items})
}

// AddToCart adds a product to the cart, merging quantities for repeats.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(w, r)
	if !ok {
		return
	}

	var req models.AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.AddToCart(r.Context(), userID, req.ProductID, req.Quantity); err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]string{"message": "Added to cart"})
}

// UpdateCartItem sets the quantity of a cart row.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(w, r)
	if !ok {
		return
	}

	var req models.UpdateCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.SetCartQuantity(r.Context(), userID, req.ProductID, req.Quantity); err != nil {
		respondStoreError(w, err, "Cart item not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Cart updated"})
}

// RemoveCartItem removes one product from the cart.
func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(w, r)
	if !ok {
		return
	}
	productID, ok := urlParamInt(w, r, "productID")
	if !ok {
		return
	}

	if err := h.db.RemoveCartItem(r.Context(), userID, productID); err != nil {
		respondStoreError(w, err, "Cart item not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Removed from cart"})
}

// ClearCart empties the cart. Clearing an empty cart succeeds.
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(w, r)
	if !ok {
		return
	}

	if err := h.db.ClearCart(r.Context(), userID); err != nil {
		respondStoreError(w, err, "Cart not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// checkoutRequest is the payload for POST /api/v1/cart/checkout.
type checkoutRequest struct {
	CouponCode string `json:"couponCode"`
}

// Checkout converts the cart into a completed order inside one transaction:
// stock is reserved per item, an optional coupon discount is applied, and
// the cart is emptied. Any failure rolls the whole order back.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerUserID(w, r)
	if !ok {
		return
	}

	var req checkoutRequest
	if r.Body != nil && r.ContentLength > 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}

	order, err := h.db.Checkout(r.Context(), userID, req.CouponCode)
	if err != nil {
		switch {
		case errors.Is(err, database.ErrInsufficientStock):
			metrics.RecordCheckout("insufficient_stock", 0)
		case errors.Is(err, database.ErrNotFound):
			metrics.RecordCheckout("empty_cart", 0)
		default:
			metrics.RecordCheckout("error", 0)
		}
		respondStoreError(w, err, "Cart is empty or coupon is invalid")
		return
	}

	metrics.RecordCheckout("completed", order.Total)
	logging.Ctx(r.Context()).Info().Int("order_id", order.ID).Float64("total", order.Total).Msg("Order placed")

	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed",
		"order":   order,
	})
}
