// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package recommend derives product recommendations and preference-biased
// catalog ordering from an identity's recent interaction history.
//
// The signal model is deliberately small: the last HistoryLimit interactions
// per identity, from which two sets are extracted: the product IDs the
// identity has interacted with and the distinct categories it has touched.
// Recommendations are active products in the preferred categories minus the
// already-seen products; preference sort floats seen products and preferred
// categories to the front of a catalog listing without disturbing ties.
package recommend

import (
	"sort"

	"github.com/Fardin376/snacksmart/internal/models"
)

// History and result caps for the preference subsystem.
const (
	// HistoryLimit is the bounded interaction history per identity: at most
	// this many rows are retained, oldest evicted first.
	HistoryLimit = 20

	// MaxRecommendations caps the recommendation result.
	MaxRecommendations = 10

	// MaxRecentProducts caps the deduplicated "recently seen" product strip.
	MaxRecentProducts = 4
)

// Profile is the preference signal extracted from an identity's recent
// interaction history.
type Profile struct {
	seen       map[int]struct{}
	categories map[string]struct{}
}

// BuildProfile extracts the seen-product and preferred-category sets from
// interaction rows. Rows with no category (the product was uncategorized at
// write time) contribute only their product ID.
func BuildProfile(prefs []models.Preference) Profile {
	p := Profile{
		seen:       make(map[int]struct{}, len(prefs)),
		categories: make(map[string]struct{}),
	}
	for i := range prefs {
		p.seen[prefs[i].ProductID] = struct{}{}
		if c := prefs[i].Category; c != nil && *c != "" {
			p.categories[*c] = struct{}{}
		}
	}
	return p
}

// Empty reports whether the profile carries no signal at all.
func (p Profile) Empty() bool {
	return len(p.seen) == 0 && len(p.categories) == 0
}

// Seen reports whether the identity interacted with the product.
func (p Profile) Seen(productID int) bool {
	_, ok := p.seen[productID]
	return ok
}

// PrefersCategory reports whether the category appears in the history.
func (p Profile) PrefersCategory(category string) bool {
	_, ok := p.categories[category]
	return ok
}

// SeenIDs returns the seen product IDs in ascending order.
func (p Profile) SeenIDs() []int {
	ids := make([]int, 0, len(p.seen))
	for id := range p.seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Categories returns the preferred categories in lexical order.
func (p Profile) Categories() []string {
	cats := make([]string, 0, len(p.categories))
	for c := range p.categories {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}
