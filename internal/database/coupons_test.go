// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Fardin376/snacksmart/internal/models"
)

func TestCouponLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	coupon, err := db.CreateCoupon(ctx, "welcome10", "percentage", 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 30), true)
	if err != nil {
		t.Fatalf("CreateCoupon() failed: %v", err)
	}
	if coupon.Code != "WELCOME10" {
		t.Errorf("Code = %q, want normalized WELCOME10", coupon.Code)
	}

	if _, err := db.CreateCoupon(ctx, "WELCOME10", "fixed", 5, now, now.AddDate(0, 0, 1), true); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate code should return ErrDuplicate, got %v", err)
	}

	got, err := db.GetCouponByCode(ctx, "  welcome10 ")
	if err != nil {
		t.Fatalf("GetCouponByCode() failed: %v", err)
	}
	if got.ID != coupon.ID {
		t.Errorf("lookup returned coupon %d, want %d", got.ID, coupon.ID)
	}

	newValue := 15.0
	updated, err := db.UpdateCoupon(ctx, coupon.ID, &models.UpdateCouponRequest{Value: &newValue}, nil, nil)
	if err != nil {
		t.Fatalf("UpdateCoupon() failed: %v", err)
	}
	if updated.Value != 15 {
		t.Errorf("Value = %v, want 15", updated.Value)
	}
	if updated.Code != "WELCOME10" || updated.Type != "percentage" {
		t.Error("unset fields should be preserved")
	}

	if err := db.DeleteCoupon(ctx, coupon.ID); err != nil {
		t.Fatalf("DeleteCoupon() failed: %v", err)
	}
	if err := db.DeleteCoupon(ctx, coupon.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleting twice should return ErrNotFound, got %v", err)
	}
}

func TestValidateCoupon(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	seed := []struct {
		code     string
		from, to time.Time
		active   bool
	}{
		{"LIVE", now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true},
		{"EXPIRED", now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), true},
		{"FUTURE", now.AddDate(0, 1, 0), now.AddDate(0, 2, 0), true},
		{"DISABLED", now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), false},
	}
	for _, s := range seed {
		if _, err := db.CreateCoupon(ctx, s.code, "percentage", 10, s.from, s.to, s.active); err != nil {
			t.Fatalf("CreateCoupon(%s) failed: %v", s.code, err)
		}
	}

	valid, err := db.ValidateCoupon(ctx, "live")
	if err != nil {
		t.Fatalf("ValidateCoupon(LIVE) failed: %v", err)
	}
	if valid.Code != "LIVE" || valid.Type != "percentage" || valid.Value != 10 {
		t.Errorf("ValidateCoupon(LIVE) = %+v", valid)
	}

	// Every invalid reason looks the same to the caller: coupon state is
	// not probeable through the validation endpoint.
	for _, code := range []string{"EXPIRED", "FUTURE", "DISABLED", "MISSING"} {
		if _, err := db.ValidateCoupon(ctx, code); !errors.Is(err, ErrNotFound) {
			t.Errorf("ValidateCoupon(%s) = %v, want ErrNotFound", code, err)
		}
	}
}

func TestListCouponsComputesStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	if _, err := db.CreateCoupon(ctx, "LIVE", "percentage", 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true); err != nil {
		t.Fatalf("CreateCoupon() failed: %v", err)
	}
	if _, err := db.CreateCoupon(ctx, "GONE", "fixed", 5, now.AddDate(0, -2, 0), now.AddDate(0, -1, 0), true); err != nil {
		t.Fatalf("CreateCoupon() failed: %v", err)
	}

	coupons, err := db.ListCoupons(ctx)
	if err != nil {
		t.Fatalf("ListCoupons() failed: %v", err)
	}
	statuses := make(map[string]string, len(coupons))
	for _, c := range coupons {
		statuses[c.Code] = c.ComputedStatus
	}
	if statuses["LIVE"] != "active" {
		t.Errorf("LIVE status = %q, want active", statuses["LIVE"])
	}
	if statuses["GONE"] != "expired" {
		t.Errorf("GONE status = %q, want expired", statuses["GONE"])
	}
}
