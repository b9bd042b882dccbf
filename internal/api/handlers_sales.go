// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"
	"time"

	"github.com/Fardin376/snacksmart/internal/models"
)

// defaultSalesWindow is used when the summary query omits a date range.
const defaultSalesWindow = 30 * 24 * time.Hour

// parseDateParam parses a YYYY-MM-DD query parameter.
func parseDateParam(r *http.Request, key string) (time.Time, bool) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return time.Time{}, false
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SalesSummary returns order count, revenue, and average order value over a
// date range, defaulting to the last 30 days.
func (h *Handler) SalesSummary(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from, ok := parseDateParam(r, "from")
	if !ok {
		from = now.Add(-defaultSalesWindow)
	}
	to, ok := parseDateParam(r, "to")
	if !ok {
		to = now
	} else {
		// Make the end date inclusive.
		to = to.AddDate(0, 0, 1)
	}

	summary, err := h.db.SalesSummary(r.Context(), from, to)
	if err != nil {
		respondStoreError(w, err, "Summary not available")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"summary": summary})
}

// TopProducts returns the best sellers by quantity, capped at 5 by default.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", 5)

	top, err := h.db.TopProducts(r.Context(), limit)
	if err != nil {
		respondStoreError(w, err, "Summary not available")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"topProducts": top})
}

// RecentOrders returns the latest orders with customer and item details.
func (h *Handler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", 10)

	orders, err := h.db.ListOrders(r.Context(), models.OrderFilter{Limit: limit})
	if err != nil {
		respondStoreError(w, err, "Orders not available")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// ListOrders returns orders filtered by status and date range.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	filter := models.OrderFilter{
		Status: r.URL.Query().Get("status"),
		Limit:  getIntParam(r, "limit", 0),
	}
	if from, ok := parseDateParam(r, "from"); ok {
		filter.FromDate = from
	}
	if to, ok := parseDateParam(r, "to"); ok {
		filter.ToDate = to.AddDate(0, 0, 1)
	}

	orders, err := h.db.ListOrders(r.Context(), filter)
	if err != nil {
		respondStoreError(w, err, "Orders not available")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// DashboardStats returns the back-office landing page counters.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.db.DashboardStats(r.Context(), time.Now())
	if err != nil {
		respondStoreError(w, err, "Stats not available")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{"stats": stats})
}
