// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// Coupon discount types.
const (
	CouponTypePercentage = "percentage"
	CouponTypeFixed      = "fixed"
)

// Coupon is a checkout discount code. Codes are stored uppercase.
type Coupon struct {
	ID        int       `json:"id"`
	Code      string    `json:"code"`
	Type      string    `json:"type"`
	Value     float64   `json:"value"`
	ValidFrom time.Time `json:"validFrom"`
	ValidTo   time.Time `json:"validTo"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`

	// ComputedStatus is derived at read time: "inactive" when the flag is
	// off, "expired" outside the validity window, else "active".
	ComputedStatus string `json:"computedStatus,omitempty"`
}

// ComputeStatus derives the display status for a coupon at the given time.
func (c *Coupon) ComputeStatus(now time.Time) string {
	if !c.IsActive {
		return "inactive"
	}
	if now.Before(c.ValidFrom) || now.After(c.ValidTo) {
		return "expired"
	}
	return "active"
}

// CreateCouponRequest is the payload for POST /api/v1/admin/coupons.
type CreateCouponRequest struct {
	Code      string  `json:"code" validate:"required,min=3"`
	Type      string  `json:"type" validate:"required,oneof=percentage fixed"`
	Value     float64 `json:"value" validate:"required,gt=0"`
	ValidFrom string  `json:"validFrom" validate:"required"`
	ValidTo   string  `json:"validTo" validate:"required"`
	IsActive  *bool   `json:"isActive"`
}

// UpdateCouponRequest is the payload for PUT /api/v1/admin/coupons/{id}.
// Nil/empty fields leave the corresponding column unchanged.
type UpdateCouponRequest struct {
	Code      string   `json:"code" validate:"omitempty,min=3"`
	Type      string   `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value     *float64 `json:"value" validate:"omitempty,gt=0"`
	ValidFrom string   `json:"validFrom"`
	ValidTo   string   `json:"validTo"`
	IsActive  *bool    `json:"isActive"`
}

// ValidCoupon is the public projection returned by coupon validation.
type ValidCoupon struct {
	Code  string  `json:"code"`
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}
