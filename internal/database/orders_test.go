// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"testing"
	"time"

	"github.com/Fardin376/snacksmart/internal/models"
)

// placeTestOrder runs a real checkout so orders carry proper items.
func placeTestOrder(t *testing.T, db *DB, userID int, productID, quantity int) *models.Order {
	t.Helper()

	ctx := context.Background()
	if err := db.AddToCart(ctx, userID, productID, quantity); err != nil {
		t.Fatalf("AddToCart() failed: %v", err)
	}
	order, err := db.Checkout(ctx, userID, "")
	if err != nil {
		t.Fatalf("Checkout() failed: %v", err)
	}
	return order
}

func TestListOrders(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	product := createTestProduct(t, db, "Kale Chips", "Chips", 5.00, 100)

	placeTestOrder(t, db, alice.ID, product.ID, 1)
	placeTestOrder(t, db, bob.ID, product.ID, 2)

	orders, err := db.ListOrders(ctx, models.OrderFilter{})
	if err != nil {
		t.Fatalf("ListOrders() failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	for _, o := range orders {
		if o.User == nil || o.User.Email == "" {
			t.Error("order should carry the joined customer")
		}
		if len(o.Items) == 0 {
			t.Error("order should carry its items")
		}
		if len(o.Items) > 0 && o.Items[0].Product == nil {
			t.Error("order items should carry the joined product")
		}
	}

	orders, err = db.ListOrders(ctx, models.OrderFilter{Status: "pending"})
	if err != nil {
		t.Fatalf("ListOrders() failed: %v", err)
	}
	if len(orders) != 0 {
		t.Errorf("no pending orders expected, got %d", len(orders))
	}

	orders, err = db.ListOrders(ctx, models.OrderFilter{Limit: 1})
	if err != nil {
		t.Fatalf("ListOrders() failed: %v", err)
	}
	if len(orders) != 1 {
		t.Errorf("limit 1 returned %d orders", len(orders))
	}
}

func TestSalesSummaryAndTopProducts(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	chips := createTestProduct(t, db, "Kale Chips", "Chips", 5.00, 100)
	seeds := createTestProduct(t, db, "Pumpkin Seeds", "Seeds", 2.00, 100)

	placeTestOrder(t, db, alice.ID, chips.ID, 2) // 10.00
	placeTestOrder(t, db, bob.ID, chips.ID, 1)   // 5.00
	placeTestOrder(t, db, bob.ID, seeds.ID, 3)   // 6.00

	now := time.Now()
	summary, err := db.SalesSummary(ctx, now.AddDate(0, 0, -1), now.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("SalesSummary() failed: %v", err)
	}
	if summary.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", summary.TotalOrders)
	}
	if summary.TotalRevenue != 21.00 {
		t.Errorf("TotalRevenue = %v, want 21.00", summary.TotalRevenue)
	}
	if summary.AverageOrderValue != 7.00 {
		t.Errorf("AverageOrderValue = %v, want 7.00", summary.AverageOrderValue)
	}

	// A window with no orders yields zeros, not an error.
	summary, err = db.SalesSummary(ctx, now.AddDate(-1, 0, 0), now.AddDate(0, -6, 0))
	if err != nil {
		t.Fatalf("SalesSummary() failed: %v", err)
	}
	if summary.TotalOrders != 0 || summary.TotalRevenue != 0 || summary.AverageOrderValue != 0 {
		t.Errorf("empty window summary = %+v, want zeros", summary)
	}

	top, err := db.TopProducts(ctx, 5)
	if err != nil {
		t.Fatalf("TopProducts() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d top products, want 2", len(top))
	}
	if top[0].Product.ID != chips.ID || top[0].Quantity != 3 || top[0].Revenue != 15.00 {
		t.Errorf("top seller = %+v, want chips x3 for 15.00", top[0])
	}
	if top[1].Product.ID != seeds.ID || top[1].Quantity != 3 || top[1].Revenue != 6.00 {
		t.Errorf("runner-up = %+v, want seeds x3 for 6.00", top[1])
	}
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice@example.com")
	createTestUser(t, db, "bob@example.com")
	chips := createTestProduct(t, db, "Kale Chips", "Chips", 5.00, 100)
	createTestProduct(t, db, "Pumpkin Seeds", "Seeds", 2.00, 100)

	placeTestOrder(t, db, alice.ID, chips.ID, 2)

	stats, err := db.DashboardStats(ctx, time.Now())
	if err != nil {
		t.Fatalf("DashboardStats() failed: %v", err)
	}
	if stats.TotalCustomers != 2 {
		t.Errorf("TotalCustomers = %d, want 2", stats.TotalCustomers)
	}
	if stats.TotalProducts != 2 {
		t.Errorf("TotalProducts = %d, want 2", stats.TotalProducts)
	}
	if stats.TodaySales != 1 {
		t.Errorf("TodaySales = %d, want 1", stats.TodaySales)
	}
	if stats.MonthRevenue != 10.00 {
		t.Errorf("MonthRevenue = %v, want 10.00", stats.MonthRevenue)
	}
}

func TestSeedDemoData(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("SeedDemoData() failed: %v", err)
	}
	// Seeding twice must not duplicate anything.
	if err := db.SeedDemoData(ctx); err != nil {
		t.Fatalf("repeated SeedDemoData() failed: %v", err)
	}

	products, err := db.ListProducts(ctx, "", "")
	if err != nil {
		t.Fatalf("ListProducts() failed: %v", err)
	}
	if len(products) != 10 {
		t.Errorf("seeded catalog has %d products, want 10", len(products))
	}

	admin, err := db.GetAdminByEmail(ctx, "admin@snacksmart.com")
	if err != nil {
		t.Fatalf("GetAdminByEmail() failed: %v", err)
	}
	if admin.Role != models.RoleSuperAdmin {
		t.Errorf("seeded admin role = %q, want %q", admin.Role, models.RoleSuperAdmin)
	}

	orders, err := db.ListOrders(ctx, models.OrderFilter{})
	if err != nil {
		t.Fatalf("ListOrders() failed: %v", err)
	}
	if len(orders) != 5 {
		t.Errorf("seeded %d orders, want 5", len(orders))
	}

	coupons, err := db.ListCoupons(ctx)
	if err != nil {
		t.Fatalf("ListCoupons() failed: %v", err)
	}
	if len(coupons) != 4 {
		t.Errorf("seeded %d coupons, want 4", len(coupons))
	}
}
