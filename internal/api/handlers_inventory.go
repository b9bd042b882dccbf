// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"

	"github.com/Fardin376/snacksmart/internal/models"
)

// ListInventory returns every product including inactive ones, with stock
// and status, for the back-office.
func (h *Handler) ListInventory(w http.ResponseWriter, r *http.Request) {
	products, err := h.db.ListAllProducts(r.Context())
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"products": products})
}

// CreateProduct adds a catalog item.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	product, err := h.db.CreateProduct(r.Context(), &req)
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusCreated, map[string]interface{}{"product": product})
}

// UpdateProduct partially updates a catalog item. Omitted fields are left
// unchanged.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	product, err := h.db.UpdateProduct(r.Context(), id, &req)
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"product": product})
}

// UpdateStock sets a product's stock level.
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	var req models.UpdateStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	if err := h.db.UpdateStock(r.Context(), id, *req.Stock); err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Stock updated"})
}

// DeleteProduct deactivates a product. Rows stay in place so order history
// and preference rows keep resolving; the product just leaves the
// storefront.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	if err := h.db.DeactivateProduct(r.Context(), id); err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Product deactivated"})
}
