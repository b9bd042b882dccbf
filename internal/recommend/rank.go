// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package recommend

import (
	"sort"

	"github.com/Fardin376/snacksmart/internal/models"
)

// SortByPreference reorders products in place so that products the identity
// has interacted with sort first, then products in a preferred category,
// with all remaining orderings left exactly as encountered. There is no
// secondary key: equal-rank products keep their input order, so a listing
// already sorted by another criterion degrades gracefully.
//
// An empty profile leaves the slice untouched.
func SortByPreference(products []models.ProductSummary, profile Profile) {
	if profile.Empty() {
		return
	}
	sort.SliceStable(products, func(i, j int) bool {
		return rank(&products[i], profile) < rank(&products[j], profile)
	})
}

// rank buckets a product for preference ordering: 0 = seen, 1 = preferred
// category, 2 = everything else. Lower sorts first.
func rank(p *models.ProductSummary, profile Profile) int {
	switch {
	case profile.Seen(p.ID):
		return 0
	case profile.PrefersCategory(p.Category):
		return 1
	default:
		return 2
	}
}

// Recommend filters candidate products (active, already restricted to the
// profile's preferred categories) down to the ones the identity has not yet
// interacted with, capped at MaxRecommendations. Candidate order is
// preserved.
func Recommend(candidates []models.ProductSummary, profile Profile) []models.ProductSummary {
	recs := make([]models.ProductSummary, 0, MaxRecommendations)
	for i := range candidates {
		if profile.Seen(candidates[i].ID) {
			continue
		}
		recs = append(recs, candidates[i])
		if len(recs) == MaxRecommendations {
			break
		}
	}
	return recs
}

// RecentProducts collapses interaction rows (newest first) into the unique
// active products behind them, preserving most-recent-first order and
// capping the result at limit. Rows whose product is missing or inactive
// are skipped, even though the interaction itself is retained.
func RecentProducts(prefs []models.Preference, limit int) []models.Product {
	products := make([]models.Product, 0, limit)
	seen := make(map[int]struct{}, len(prefs))
	for i := range prefs {
		p := prefs[i].Product
		if p == nil || p.Status != models.ProductStatusActive {
			continue
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		products = append(products, *p)
		if len(products) == limit {
			break
		}
	}
	return products
}
