// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Fardin376/snacksmart/internal/models"
	"github.com/Fardin376/snacksmart/internal/recommend"
)

func TestTrackInteraction(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Kale Chips", "Chips", 5.99, 10)
	user := createTestUser(t, db, "prefs@example.com")
	identity := recommend.Authenticated(user.ID)

	pref, err := db.TrackInteraction(ctx, identity, product.ID, models.ActionView)
	if err != nil {
		t.Fatalf("TrackInteraction() failed: %v", err)
	}
	if pref.ID == 0 {
		t.Error("tracked interaction should have an assigned ID")
	}
	if pref.Action != models.ActionView {
		t.Errorf("Action = %q, want %q", pref.Action, models.ActionView)
	}
	if pref.Category == nil || *pref.Category != "Chips" {
		t.Errorf("Category = %v, want Chips", pref.Category)
	}

	if _, err := db.TrackInteraction(ctx, identity, 99999, models.ActionClick); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product should return ErrNotFound, got %v", err)
	}
}

func TestTrackInteractionBoundsHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	identity := recommend.Guest("session-bounded")

	// 25 distinct products, interacted with in order. Only the newest 20
	// interactions may survive.
	var productIDs []int
	for i := 0; i < recommend.HistoryLimit+5; i++ {
		p := createTestProduct(t, db, fmt.Sprintf("Snack %02d", i), "Chips", 1.99, 10)
		productIDs = append(productIDs, p.ID)
		if _, err := db.TrackInteraction(ctx, identity, p.ID, models.ActionView); err != nil {
			t.Fatalf("TrackInteraction() failed at %d: %v", i, err)
		}
	}

	prefs, err := db.ListPreferences(ctx, identity)
	if err != nil {
		t.Fatalf("ListPreferences() failed: %v", err)
	}
	if len(prefs) != recommend.HistoryLimit {
		t.Fatalf("history holds %d rows, want %d", len(prefs), recommend.HistoryLimit)
	}

	// Newest first, and the five oldest interactions evicted.
	if prefs[0].ProductID != productIDs[len(productIDs)-1] {
		t.Errorf("newest interaction = product %d, want %d", prefs[0].ProductID, productIDs[len(productIDs)-1])
	}
	surviving := make(map[int]bool, len(prefs))
	for _, p := range prefs {
		surviving[p.ProductID] = true
	}
	for _, evicted := range productIDs[:5] {
		if surviving[evicted] {
			t.Errorf("product %d should have been evicted from the history", evicted)
		}
	}
}

func TestPreferenceIdentityIsolation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Pumpkin Seeds", "Seeds", 5.49, 10)
	user := createTestUser(t, db, "isolated@example.com")

	authed := recommend.Authenticated(user.ID)
	guest := recommend.Guest("session-a")
	otherGuest := recommend.Guest("session-b")

	if _, err := db.TrackInteraction(ctx, authed, product.ID, models.ActionView); err != nil {
		t.Fatalf("TrackInteraction() failed: %v", err)
	}
	if _, err := db.TrackInteraction(ctx, guest, product.ID, models.ActionClick); err != nil {
		t.Fatalf("TrackInteraction() failed: %v", err)
	}

	for name, tc := range map[string]struct {
		id   recommend.Identity
		want int
	}{
		"authenticated": {authed, 1},
		"guest":         {guest, 1},
		"other guest":   {otherGuest, 0},
	} {
		prefs, err := db.ListPreferences(ctx, tc.id)
		if err != nil {
			t.Fatalf("%s: ListPreferences() failed: %v", name, err)
		}
		if len(prefs) != tc.want {
			t.Errorf("%s: got %d preferences, want %d", name, len(prefs), tc.want)
		}
	}
}

func TestListPreferencesJoinsProduct(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Quinoa Chips", "Chips", 4.49, 10)
	identity := recommend.Guest("session-join")

	if _, err := db.TrackInteraction(ctx, identity, product.ID, models.ActionView); err != nil {
		t.Fatalf("TrackInteraction() failed: %v", err)
	}

	prefs, err := db.ListPreferences(ctx, identity)
	if err != nil {
		t.Fatalf("ListPreferences() failed: %v", err)
	}
	if len(prefs) != 1 {
		t.Fatalf("got %d preferences, want 1", len(prefs))
	}
	if prefs[0].Product == nil {
		t.Fatal("preference should carry the joined product")
	}
	if prefs[0].Product.Name != "Quinoa Chips" || prefs[0].Product.Price != 4.49 {
		t.Errorf("joined product = %+v", prefs[0].Product)
	}

	// A zero identity has no history.
	prefs, err = db.ListPreferences(ctx, recommend.Identity{})
	if err != nil {
		t.Fatalf("ListPreferences() failed: %v", err)
	}
	if len(prefs) != 0 {
		t.Errorf("zero identity returned %d preferences, want 0", len(prefs))
	}
}

func TestRecommendationCandidates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestProduct(t, db, "Kale Chips", "Chips", 5.99, 10)
	createTestProduct(t, db, "Quinoa Chips", "Chips", 4.49, 10)
	createTestProduct(t, db, "Pumpkin Seeds", "Seeds", 5.49, 10)
	retired := createTestProduct(t, db, "Retired Chips", "Chips", 1.99, 0)
	if err := db.DeactivateProduct(ctx, retired.ID); err != nil {
		t.Fatalf("DeactivateProduct() failed: %v", err)
	}

	candidates, err := db.RecommendationCandidates(ctx, []string{"Chips"})
	if err != nil {
		t.Fatalf("RecommendationCandidates() failed: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2: %v", len(candidates), candidates)
	}
	for _, c := range candidates {
		if c.Category != "Chips" {
			t.Errorf("candidate %q outside requested categories", c.Name)
		}
		if c.Name == "Retired Chips" {
			t.Error("inactive products must not be recommended")
		}
	}

	// Without categories the filter is dropped: all active products qualify.
	candidates, err = db.RecommendationCandidates(ctx, nil)
	if err != nil {
		t.Fatalf("RecommendationCandidates() failed: %v", err)
	}
	if len(candidates) != 3 {
		t.Errorf("no categories should yield all active products, got %d", len(candidates))
	}
}

func TestClearPreferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	product := createTestProduct(t, db, "Seaweed Snacks", "Seaweed", 2.99, 10)
	identity := recommend.Guest("session-clear")

	for i := 0; i < 3; i++ {
		if _, err := db.TrackInteraction(ctx, identity, product.ID, models.ActionView); err != nil {
			t.Fatalf("TrackInteraction() failed: %v", err)
		}
	}

	cleared, err := db.ClearPreferences(ctx, identity)
	if err != nil {
		t.Fatalf("ClearPreferences() failed: %v", err)
	}
	if cleared != 3 {
		t.Errorf("cleared %d rows, want 3", cleared)
	}

	prefs, err := db.ListPreferences(ctx, identity)
	if err != nil {
		t.Fatalf("ListPreferences() failed: %v", err)
	}
	if len(prefs) != 0 {
		t.Errorf("history should be empty after clear, got %d rows", len(prefs))
	}

	// Clearing again, and clearing a zero identity, are no-ops.
	cleared, err = db.ClearPreferences(ctx, identity)
	if err != nil || cleared != 0 {
		t.Errorf("repeated clear = (%d, %v), want (0, nil)", cleared, err)
	}
	cleared, err = db.ClearPreferences(ctx, recommend.Identity{})
	if err != nil || cleared != 0 {
		t.Errorf("zero identity clear = (%d, %v), want (0, nil)", cleared, err)
	}
}
