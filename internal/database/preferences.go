// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Fardin376/snacksmart/internal/models"
	"github.com/Fardin376/snacksmart/internal/recommend"
)

// TrackInteraction records one interaction for an identity and trims that
// identity's history to recommend.HistoryLimit rows, oldest evicted first.
// The product's category is copied onto the row at write time.
//
// Insert and trim run in a single transaction so concurrent tracks for the
// same identity cannot leave more than HistoryLimit rows behind.
//
// Returns ErrNotFound when the product does not exist.
func (db *DB) TrackInteraction(ctx context.Context, id recommend.Identity, productID int, action string) (*models.Preference, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	product, err := db.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	var category *string
	if product.Category != "" {
		c := product.Category
		category = &c
	}

	userID, sessionID := identityColumns(id)

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var pref models.Preference
	err = tx.QueryRowContext(ctx, `
		INSERT INTO user_preferences (user_id, session_id, product_id, action_type, category)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, user_id, session_id, product_id, action_type, category, created_at`,
		userID, sessionID, productID, action, category).
		Scan(&pref.ID, &pref.UserID, &pref.SessionID, &pref.ProductID,
			&pref.Action, &pref.Category, &pref.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert preference: %w", err)
	}

	// Evict everything older than the newest HistoryLimit rows. Rank by
	// created_at with id as tiebreaker so same-timestamp rows evict
	// deterministically.
	clause, arg := identityClause(id)
	_, err = tx.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM user_preferences
		WHERE %[1]s AND id NOT IN (
			SELECT id FROM user_preferences
			WHERE %[1]s
			ORDER BY created_at DESC, id DESC
			LIMIT ?
		)`, clause), arg, arg, recommend.HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to trim preference history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit preference write: %w", err)
	}

	pref.Product = product
	return &pref, nil
}

// ListPreferences returns an identity's interaction history newest first,
// each row joined with its catalog product when it still exists. A zero
// identity yields an empty result.
func (db *DB) ListPreferences(ctx context.Context, id recommend.Identity) ([]models.Preference, error) {
	if id.IsZero() {
		return []models.Preference{}, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	clause, arg := identityClause(id)
	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT up.id, up.user_id, up.session_id, up.product_id, up.action_type, up.category, up.created_at,
			p.id, p.name, p.description, p.category, p.price, p.stock, p.status, p.image, p.created_at
		FROM user_preferences up
		LEFT JOIN products p ON p.id = up.product_id
		WHERE %s
		ORDER BY up.created_at DESC, up.id DESC`, clause), arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	defer closeQuietly(rows)

	prefs := []models.Preference{}
	for rows.Next() {
		var pref models.Preference
		var (
			prodID          *int
			prodName        *string
			prodDescription *string
			prodCategory    *string
			prodPrice       *float64
			prodStock       *int
			prodStatus      *string
			prodImage       *string
			prodCreatedAt   sql.NullTime
		)
		err := rows.Scan(&pref.ID, &pref.UserID, &pref.SessionID, &pref.ProductID,
			&pref.Action, &pref.Category, &pref.CreatedAt,
			&prodID, &prodName, &prodDescription, &prodCategory, &prodPrice,
			&prodStock, &prodStatus, &prodImage, &prodCreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}

		if prodID != nil {
			pref.Product = &models.Product{
				ID:          *prodID,
				Name:        deref(prodName),
				Description: deref(prodDescription),
				Category:    deref(prodCategory),
				Price:       derefFloat(prodPrice),
				Stock:       derefInt(prodStock),
				Status:      deref(prodStatus),
				Image:       deref(prodImage),
				CreatedAt:   prodCreatedAt.Time,
			}
		}
		prefs = append(prefs, pref)
	}
	return prefs, rows.Err()
}

// RecommendationCandidates returns active products in any of the given
// categories, newest first. An empty category set means no category filter:
// identities whose history has no categorized rows still get general
// active-product results. The recommend package subtracts already-seen
// products and applies the result cap.
func (db *DB) RecommendationCandidates(ctx context.Context, categories []string) ([]models.ProductSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	categoryFilter := ""
	args := []interface{}{models.ProductStatusActive}
	if len(categories) > 0 {
		placeholders := ""
		for i, c := range categories {
			if i > 0 {
				placeholders += ", "
			}
			placeholders += "?"
			args = append(args, c)
		}
		categoryFilter = fmt.Sprintf(" AND category IN (%s)", placeholders)
	}

	rows, err := db.conn.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, description, category, price, image, created_at
		FROM products
		WHERE status = ?%s
		ORDER BY created_at DESC, id DESC`, categoryFilter), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendation candidates: %w", err)
	}
	defer closeQuietly(rows)

	products := []models.ProductSummary{}
	for rows.Next() {
		var p models.ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ClearPreferences deletes an identity's whole interaction history and
// returns how many rows were removed. Clearing an empty history is not an
// error.
func (db *DB) ClearPreferences(ctx context.Context, id recommend.Identity) (int64, error) {
	if id.IsZero() {
		return 0, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	clause, arg := identityClause(id)
	res, err := db.conn.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM user_preferences WHERE %s`, clause), arg)
	if err != nil {
		return 0, fmt.Errorf("failed to clear preferences: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n, nil
}

// identityClause returns the WHERE fragment and bind argument selecting one
// identity's rows.
func identityClause(id recommend.Identity) (string, interface{}) {
	if userID, ok := id.UserID(); ok {
		return "user_id = ?", userID
	}
	sessionID, _ := id.SessionID()
	return "session_id = ?", sessionID
}

// identityColumns returns the nullable column values for an insert.
func identityColumns(id recommend.Identity) (*int, *string) {
	if userID, ok := id.UserID(); ok {
		return &userID, nil
	}
	if sessionID, ok := id.SessionID(); ok {
		return nil, &sessionID
	}
	return nil, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}
