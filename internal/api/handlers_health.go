// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"
	"time"
)

// HealthCheck reports liveness and database reachability.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	dbStatus := "connected"
	if err := h.db.Ping(r.Context()); err != nil {
		status = "degraded"
		dbStatus = "unreachable"
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"uptime_seconds": int64(time.Since(h.startTime).Seconds()),
	})
}
