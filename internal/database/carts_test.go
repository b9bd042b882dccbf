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
)

func TestAddToCart(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "cart@example.com")
	product := createTestProduct(t, db, "Kale Chips", "Chips", 5.99, 5)

	if err := db.AddToCart(ctx, user.ID, product.ID, 2); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}

	// Adding the same product merges quantities instead of creating a row.
	if err := db.AddToCart(ctx, user.ID, product.ID, 1); err != nil {
		t.Fatalf("AddToCart() merge failed: %v", err)
	}

	items, err := db.ListCartItems(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCartItems() failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d cart rows, want 1", len(items))
	}
	if items[0].Quantity != 3 {
		t.Errorf("Quantity = %d, want 3", items[0].Quantity)
	}
	if items[0].Name != "Kale Chips" || items[0].Price != 5.99 {
		t.Errorf("cart row should carry product fields, got %+v", items[0])
	}

	// Merged quantity may not exceed stock.
	if err := db.AddToCart(ctx, user.ID, product.ID, 3); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("overselling should return ErrInsufficientStock, got %v", err)
	}

	// Non-positive quantities are treated as 1.
	other := createTestProduct(t, db, "Pumpkin Seeds", "Seeds", 5.49, 10)
	if err := db.AddToCart(ctx, user.ID, other.ID, 0); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}
	items, err = db.ListCartItems(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCartItems() failed: %v", err)
	}
	for _, item := range items {
		if item.ProductID == other.ID && item.Quantity != 1 {
			t.Errorf("zero quantity should default to 1, got %d", item.Quantity)
		}
	}

	// Unknown and inactive products are rejected alike.
	if err := db.AddToCart(ctx, user.ID, 99999, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product should return ErrNotFound, got %v", err)
	}
	retired := createTestProduct(t, db, "Retired Snack", "Chips", 1.99, 10)
	if err := db.DeactivateProduct(ctx, retired.ID); err != nil {
		t.Fatalf("DeactivateProduct() failed: %v", err)
	}
	if err := db.AddToCart(ctx, user.ID, retired.ID, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("inactive product should return ErrNotFound, got %v", err)
	}
}

func TestSetCartQuantityAndRemove(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "qty@example.com")
	product := createTestProduct(t, db, "Trail Mix", "Mix", 8.49, 4)

	if err := db.AddToCart(ctx, user.ID, product.ID, 1); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}

	if err := db.SetCartQuantity(ctx, user.ID, product.ID, 4); err != nil {
		t.Fatalf("SetCartQuantity() failed: %v", err)
	}
	if err := db.SetCartQuantity(ctx, user.ID, product.ID, 5); !errors.Is(err, ErrInsufficientStock) {
		t.Errorf("quantity beyond stock should return ErrInsufficientStock, got %v", err)
	}
	if err := db.SetCartQuantity(ctx, user.ID, 99999, 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product should return ErrNotFound, got %v", err)
	}

	if err := db.RemoveCartItem(ctx, user.ID, product.ID); err != nil {
		t.Fatalf("RemoveCartItem() failed: %v", err)
	}
	items, err := db.ListCartItems(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCartItems() failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("cart should be empty after removal, got %d rows", len(items))
	}
	if err := db.RemoveCartItem(ctx, user.ID, product.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("removing a missing row should return ErrNotFound, got %v", err)
	}

	// ClearCart is idempotent.
	if err := db.ClearCart(ctx, user.ID); err != nil {
		t.Errorf("ClearCart() on an empty cart failed: %v", err)
	}
}

func TestCheckout(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "checkout@example.com")
	chips := createTestProduct(t, db, "Kale Chips", "Chips", 5.00, 10)
	seeds := createTestProduct(t, db, "Pumpkin Seeds", "Seeds", 2.50, 10)

	if err := db.AddToCart(ctx, user.ID, chips.ID, 2); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}
	if err := db.AddToCart(ctx, user.ID, seeds.ID, 4); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}

	order, err := db.Checkout(ctx, user.ID, "")
	if err != nil {
		t.Fatalf("Checkout() failed: %v", err)
	}
	if order.Total != 20.00 {
		t.Errorf("Total = %v, want 20.00", order.Total)
	}
	if order.Status != "completed" {
		t.Errorf("Status = %q, want completed", order.Status)
	}
	if len(order.Items) != 2 {
		t.Errorf("order has %d items, want 2", len(order.Items))
	}

	// Stock was reserved.
	got, err := db.GetProduct(ctx, chips.ID)
	if err != nil {
		t.Fatalf("GetProduct() failed: %v", err)
	}
	if got.Stock != 8 {
		t.Errorf("chips stock = %d, want 8", got.Stock)
	}
	got, err = db.GetProduct(ctx, seeds.ID)
	if err != nil {
		t.Fatalf("GetProduct() failed: %v", err)
	}
	if got.Stock != 6 {
		t.Errorf("seeds stock = %d, want 6", got.Stock)
	}

	// The cart was emptied, so checking out again fails.
	if _, err := db.Checkout(ctx, user.ID, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("empty-cart checkout should return ErrNotFound, got %v", err)
	}
}

func TestCheckoutInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, db, "oversell@example.com")
	product := createTestProduct(t, db, "Apple Chips", "Dried Fruit", 3.99, 3)

	if err := db.AddToCart(ctx, user.ID, product.ID, 3); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}

	// Stock drops after the item entered the cart.
	if err := db.UpdateStock(ctx, product.ID, 1); err != nil {
		t.Fatalf("UpdateStock() failed: %v", err)
	}

	if _, err := db.Checkout(ctx, user.ID, ""); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("checkout should return ErrInsufficientStock, got %v", err)
	}

	// The failed checkout rolled back: no stock consumed, cart intact.
	got, err := db.GetProduct(ctx, product.ID)
	if err != nil {
		t.Fatalf("GetProduct() failed: %v", err)
	}
	if got.Stock != 1 {
		t.Errorf("stock = %d after rollback, want 1", got.Stock)
	}
	items, err := db.ListCartItems(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListCartItems() failed: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("cart should survive a failed checkout, got %d rows", len(items))
	}
}

func TestCheckoutWithCoupons(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	now := time.Now()
	if _, err := db.CreateCoupon(ctx, "TENOFF", "percentage", 10, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true); err != nil {
		t.Fatalf("CreateCoupon() failed: %v", err)
	}
	if _, err := db.CreateCoupon(ctx, "BIGFIXED", "fixed", 500, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1), true); err != nil {
		t.Fatalf("CreateCoupon() failed: %v", err)
	}

	product := createTestProduct(t, db, "Dark Chocolate Bar", "Chocolate", 10.00, 100)

	tests := []struct {
		name      string
		email     string
		code      string
		wantTotal float64
		wantErr   error
	}{
		{"percentage discount", "pct@example.com", "TENOFF", 18.00, nil},
		{"fixed discount floors at zero", "fixed@example.com", "BIGFIXED", 0, nil},
		{"unknown code rejected", "badcode@example.com", "NOPE", 0, ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user := createTestUser(t, db, tc.email)
			if err := db.AddToCart(ctx, user.ID, product.ID, 2); err != nil {
				t.Fatalf("AddToCart() failed: %v", err)
			}

			order, err := db.Checkout(ctx, user.ID, tc.code)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Checkout() error = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Checkout() failed: %v", err)
			}
			if order.Total != tc.wantTotal {
				t.Errorf("Total = %v, want %v", order.Total, tc.wantTotal)
			}
		})
	}
}
