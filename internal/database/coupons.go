// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Fardin376/snacksmart/internal/models"
)

// ListCoupons returns all coupons with their derived display status.
func (db *DB) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, code, type, value, valid_from, valid_to, is_active, created_at
		FROM coupons ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	defer closeQuietly(rows)

	now := time.Now()
	coupons := []models.Coupon{}
	for rows.Next() {
		coupon, err := scanCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon: %w", err)
		}
		coupon.ComputedStatus = coupon.ComputeStatus(now)
		coupons = append(coupons, *coupon)
	}
	return coupons, rows.Err()
}

// GetCouponByCode returns the coupon with the given code (case-insensitive),
// or ErrNotFound.
func (db *DB) GetCouponByCode(ctx context.Context, code string) (*models.Coupon, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, code, type, value, valid_from, valid_to, is_active, created_at
		FROM coupons WHERE code = ?`, normalizeCouponCode(code))

	coupon, err := scanCoupon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}
	coupon.ComputedStatus = coupon.ComputeStatus(time.Now())
	return coupon, nil
}

// ValidateCoupon checks a code for checkout use: it must exist, be active,
// and the current time must fall inside its validity window. Invalid codes
// return ErrNotFound regardless of why, so callers can't probe for
// deactivated codes.
func (db *DB) ValidateCoupon(ctx context.Context, code string) (*models.ValidCoupon, error) {
	coupon, err := db.GetCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if coupon.ComputeStatus(time.Now()) != "active" {
		return nil, fmt.Errorf("coupon %s: %w", coupon.Code, ErrNotFound)
	}

	return &models.ValidCoupon{
		Code:  coupon.Code,
		Type:  coupon.Type,
		Value: coupon.Value,
	}, nil
}

// CreateCoupon inserts a coupon. Returns ErrDuplicate when the code is
// taken.
func (db *DB) CreateCoupon(ctx context.Context, code, couponType string, value float64, validFrom, validTo time.Time, isActive bool) (*models.Coupon, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	code = normalizeCouponCode(code)

	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coupons WHERE code = ?`, code).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to check coupon uniqueness: %w", err)
	}
	if count > 0 {
		return nil, fmt.Errorf("coupon %s: %w", code, ErrDuplicate)
	}

	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO coupons (code, type, value, valid_from, valid_to, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, code, type, value, valid_from, valid_to, is_active, created_at`,
		code, couponType, value, validFrom, validTo, isActive)

	coupon, err := scanCoupon(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	coupon.ComputedStatus = coupon.ComputeStatus(time.Now())
	return coupon, nil
}

// UpdateCoupon applies the set fields of req to a coupon. Returns
// ErrNotFound for an unknown ID and ErrDuplicate when changing the code to
// one already in use.
func (db *DB) UpdateCoupon(ctx context.Context, id int, req *models.UpdateCouponRequest, validFrom, validTo *time.Time) (*models.Coupon, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, code, type, value, valid_from, valid_to, is_active, created_at
		FROM coupons WHERE id = ?`, id)
	current, err := scanCoupon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	if req.Code != "" {
		code := normalizeCouponCode(req.Code)
		if code != current.Code {
			var count int
			err := db.conn.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM coupons WHERE code = ?`, code).Scan(&count)
			if err != nil {
				return nil, fmt.Errorf("failed to check coupon uniqueness: %w", err)
			}
			if count > 0 {
				return nil, fmt.Errorf("coupon %s: %w", code, ErrDuplicate)
			}
			current.Code = code
		}
	}
	if req.Type != "" {
		current.Type = req.Type
	}
	if req.Value != nil {
		current.Value = *req.Value
	}
	if validFrom != nil {
		current.ValidFrom = *validFrom
	}
	if validTo != nil {
		current.ValidTo = *validTo
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	_, err = db.conn.ExecContext(ctx, `
		UPDATE coupons SET code = ?, type = ?, value = ?, valid_from = ?, valid_to = ?, is_active = ?
		WHERE id = ?`,
		current.Code, current.Type, current.Value, current.ValidFrom, current.ValidTo, current.IsActive, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	current.ComputedStatus = current.ComputeStatus(time.Now())
	return current, nil
}

// DeleteCoupon removes a coupon. Returns ErrNotFound for an unknown ID.
func (db *DB) DeleteCoupon(ctx context.Context, id int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM coupons WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon: %w", err)
	}
	return requireRowAffected(res, "coupon")
}

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func scanCoupon(row rowScanner) (*models.Coupon, error) {
	var c models.Coupon
	err := row.Scan(&c.ID, &c.Code, &c.Type, &c.Value, &c.ValidFrom, &c.ValidTo, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
