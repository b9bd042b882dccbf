// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"

	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/metrics"
	"github.com/Fardin376/snacksmart/internal/models"
	"github.com/Fardin376/snacksmart/internal/recommend"
)

// TrackInteraction records a product interaction for the caller's identity,
// evicting the oldest rows beyond the bounded history. Requires exactly one
// identity form: a valid access token, or a session ID in the body.
func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	var req models.TrackRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidationError(w, apiErr)
		return
	}

	identity := identityFromRequest(r, req.SessionID)
	if identity.IsZero() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Either authentication or a session ID is required", nil)
		return
	}

	pref, err := h.db.TrackInteraction(r.Context(), identity, req.ProductID, req.ActionType)
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	metrics.RecordInteraction(req.ActionType, identity.IsAuthenticated())
	logging.Ctx(r.Context()).Debug().Int("product_id", req.ProductID).Str("action", req.ActionType).Msg("Interaction tracked")

	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"message":    "Interaction tracked",
		"preference": pref,
	})
}

// RecentPreferences returns the caller's raw interaction history alongside
// up to four deduplicated recently-seen active products. Callers with no
// identity get empty lists, not an error.
func (h *Handler) RecentPreferences(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r, sessionIDFromQuery(r))

	prefs, err := h.db.ListPreferences(r.Context(), identity)
	if err != nil {
		respondStoreError(w, err, "Product not found")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"preferences": prefs,
		"products":    recommend.RecentProducts(prefs, recommend.MaxRecentProducts),
	})
}

// Recommendations derives product suggestions from the caller's interaction
// history: active products in the preferred categories, minus everything
// already seen, capped. No identity or no history yields an empty list.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	identity := identityFromRequest(r, sessionIDFromQuery(r))

	recommendations := []models.ProductSummary{}
	if !identity.IsZero() {
		prefs, err := h.db.ListPreferences(r.Context(), identity)
		if err != nil {
			respondStoreError(w, err, "Product not found")
			return
		}

		if profile := recommend.BuildProfile(prefs); !profile.Empty() {
			candidates, err := h.db.RecommendationCandidates(r.Context(), profile.Categories())
			if err != nil {
				respondStoreError(w, err, "Product not found")
				return
			}
			recommendations = recommend.Recommend(candidates, profile)
		}
	}

	metrics.RecommendationsServed.Inc()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"recommendations": recommendations,
	})
}

// ClearPreferences deletes the caller's whole interaction history. Unlike
// the read endpoints, a missing identity is an error here: the caller asked
// for a state change that cannot be scoped.
func (h *Handler) ClearPreferences(w http.ResponseWriter, r *http.Request) {
	var req models.ClearRequest
	if r.Body != nil && r.ContentLength > 0 {
		if !decodeJSON(w, r, &req) {
			return
		}
	}
	if req.SessionID == "" {
		req.SessionID = sessionIDFromQuery(r)
	}

	identity := identityFromRequest(r, req.SessionID)
	if identity.IsZero() {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Either authentication or a session ID is required", nil)
		return
	}

	cleared, err := h.db.ClearPreferences(r.Context(), identity)
	if err != nil {
		respondStoreError(w, err, "Preferences not found")
		return
	}

	logging.Ctx(r.Context()).Info().Int64("cleared", cleared).Msg("Preference history cleared")
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"message": "Preferences cleared",
	})
}
