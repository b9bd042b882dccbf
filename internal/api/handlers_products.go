// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"
	"strings"

	"github.com/Fardin376/snacksmart/internal/database"
	"github.com/Fardin376/snacksmart/internal/models"
	"github.com/Fardin376/snacksmart/internal/recommend"
)

// ListProducts returns the active catalog, optionally filtered by a search
// term and explicitly sorted. When no explicit sort is requested and the
// caller has an interaction history, the default ordering is biased toward
// previously viewed products and preferred categories.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("search"))
	sortKey := resolveSortKey(r.URL.Query().Get("sort_by"), r.URL.Query().Get("sort_order"))

	products, err := h.db.ListProducts(r.Context(), search, sortKey)
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	// An explicit sort wins over the preference bias.
	if sortKey == "" {
		identity := identityFromRequest(r, sessionIDFromQuery(r))
		if !identity.IsZero() {
			prefs, err := h.db.ListPreferences(r.Context(), identity)
			if err != nil {
				respondStoreError(w, err, "Product not found")
				return
			}
			if profile := recommend.BuildProfile(prefs); !profile.Empty() {
				recommend.SortByPreference(products, profile)
			}
		}
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"products": products})
}

// resolveSortKey maps the query parameters onto a catalog sort key.
// Unknown values fall back to the default ordering.
func resolveSortKey(sortBy, sortOrder string) string {
	switch sortBy {
	case "price":
		if sortOrder == "desc" {
			return database.SortPriceDesc
		}
		return database.SortPriceAsc
	case "name":
		return database.SortName
	case "newest":
		return database.SortNewest
	default:
		return ""
	}
}

// GetProduct returns one active product.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamInt(w, r, "id")
	if !ok {
		return
	}

	product, err := h.db.GetProduct(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}
	if product.Status != models.ProductStatusActive {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"product": product})
}

// ListCategories returns the distinct categories of active products.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.db.ListCategories(r.Context())
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
