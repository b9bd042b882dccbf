// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Fardin376/snacksmart/internal/auth"
	"github.com/Fardin376/snacksmart/internal/logging"
	"github.com/Fardin376/snacksmart/internal/models"
)

// SeedDemoData populates a demo catalog, accounts, orders, and coupons for
// development and demos. It is idempotent: a database that already has
// products is left alone.
//
// Demo logins: admin@snacksmart.com / admin123 (Super Admin),
// staff@snacksmart.com / staff123, and five customers with password
// user123.
func (db *DB) SeedDemoData(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var count int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		logging.Debug().Msg("Demo data already present, skipping seed")
		return nil
	}

	if err := db.seedAdmins(ctx); err != nil {
		return err
	}
	users, err := db.seedUsers(ctx)
	if err != nil {
		return err
	}
	products, err := db.seedProducts(ctx)
	if err != nil {
		return err
	}
	if err := db.seedOrders(ctx, users, products); err != nil {
		return err
	}
	if err := db.seedCoupons(ctx); err != nil {
		return err
	}

	logging.Info().
		Int("products", len(products)).
		Int("customers", len(users)).
		Msg("Demo data seeded")
	return nil
}

func (db *DB) seedAdmins(ctx context.Context) error {
	adminHash, err := auth.HashPassword("admin123")
	if err != nil {
		return err
	}
	staffHash, err := auth.HashPassword("staff123")
	if err != nil {
		return err
	}

	admins := []struct {
		name, email, hash, role string
	}{
		{"Admin User", "admin@snacksmart.com", adminHash, models.RoleSuperAdmin},
		{"Staff Member", "staff@snacksmart.com", staffHash, models.RoleStaffAdmin},
		{"John Manager", "john.m@snacksmart.com", staffHash, models.RoleStaffAdmin},
	}
	for _, a := range admins {
		if _, err := db.CreateAdmin(ctx, a.name, a.email, a.hash, a.role); err != nil {
			return fmt.Errorf("failed to seed admin %s: %w", a.email, err)
		}
	}
	return nil
}

func (db *DB) seedUsers(ctx context.Context) ([]models.User, error) {
	hash, err := auth.HashPassword("user123")
	if err != nil {
		return nil, err
	}

	seeds := []struct {
		first, last, email string
		active             bool
	}{
		{"John", "Doe", "john@example.com", true},
		{"Jane", "Smith", "jane@example.com", true},
		{"Bob", "Johnson", "bob@example.com", false},
		{"Alice", "Williams", "alice@example.com", true},
		{"Charlie", "Brown", "charlie@example.com", true},
	}

	users := make([]models.User, 0, len(seeds))
	for _, s := range seeds {
		user, err := db.CreateUser(ctx, s.first, s.last, s.email, hash)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", s.email, err)
		}
		if err := db.ConfirmUser(ctx, user.ID); err != nil {
			return nil, err
		}
		if !s.active {
			if err := db.SetUserActive(ctx, user.ID, false); err != nil {
				return nil, err
			}
		}
		users = append(users, *user)
	}
	return users, nil
}

func (db *DB) seedProducts(ctx context.Context) ([]models.Product, error) {
	seeds := []models.CreateProductRequest{
		{Name: "Trail Mix - Superfood", Description: "Nuts, seeds, and goji berries mix", Category: "Mix", Price: 8.49, Stock: 120},
		{Name: "Sweet Potato Chips", Description: "Baked sweet potato chips with sea salt", Category: "Chips", Price: 4.79, Stock: 250},
		{Name: "Seaweed Snacks", Description: "Roasted seaweed sheets with sesame", Category: "Seaweed", Price: 2.99, Stock: 80},
		{Name: "Rice Cakes - Whole Grain", Description: "Lightly salted whole grain rice cakes", Category: "Cakes", Price: 3.29, Stock: 150},
		{Name: "Quinoa Chips", Description: "Baked quinoa chips with sea salt", Category: "Chips", Price: 4.49, Stock: 200},
		{Name: "Apple Chips", Description: "Crispy baked apple chips, no sugar added", Category: "Dried Fruit", Price: 3.99, Stock: 30},
		{Name: "Chickpea Puffs", Description: "Crunchy roasted chickpea snack", Category: "Chips", Price: 3.49, Stock: 156},
		{Name: "Kale Chips", Description: "Organic baked kale chips with olive oil", Category: "Chips", Price: 5.99, Stock: 89},
		{Name: "Pumpkin Seeds", Description: "Roasted and lightly salted", Category: "Seeds", Price: 5.49, Stock: 342},
		{Name: "Dark Chocolate Bar", Description: "85% cacao dark chocolate", Category: "Chocolate", Price: 3.99, Stock: 298},
	}

	products := make([]models.Product, 0, len(seeds))
	for i := range seeds {
		product, err := db.CreateProduct(ctx, &seeds[i])
		if err != nil {
			return nil, fmt.Errorf("failed to seed product %s: %w", seeds[i].Name, err)
		}
		products = append(products, *product)
	}
	return products, nil
}

func (db *DB) seedOrders(ctx context.Context, users []models.User, products []models.Product) error {
	if len(users) < 5 || len(products) < 10 {
		return fmt.Errorf("seed order prerequisites missing")
	}

	type line struct {
		product  int // index into products
		quantity int
	}
	orders := []struct {
		user   int // index into users
		status string
		lines  []line
	}{
		{0, models.OrderStatusCompleted, []line{{0, 1}, {1, 2}}},
		{1, models.OrderStatusCompleted, []line{{2, 3}}},
		{3, models.OrderStatusCompleted, []line{{4, 1}, {7, 4}}},
		{2, models.OrderStatusPending, []line{{6, 1}}},
		{4, models.OrderStatusCompleted, []line{{9, 5}}},
	}

	for _, o := range orders {
		total := 0.0
		for _, l := range o.lines {
			total += products[l.product].Price * float64(l.quantity)
		}

		var orderID int
		err := db.conn.QueryRowContext(ctx, `
			INSERT INTO orders (user_id, total, status) VALUES (?, ?, ?) RETURNING id`,
			users[o.user].ID, total, o.status).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("failed to seed order: %w", err)
		}

		for _, l := range o.lines {
			p := products[l.product]
			_, err := db.conn.ExecContext(ctx, `
				INSERT INTO order_items (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
				orderID, p.ID, l.quantity, p.Price)
			if err != nil {
				return fmt.Errorf("failed to seed order item: %w", err)
			}
		}
	}
	return nil
}

func (db *DB) seedCoupons(ctx context.Context) error {
	now := time.Now()
	coupons := []struct {
		code       string
		couponType string
		value      float64
		from, to   time.Time
		active     bool
	}{
		// One live welcome code plus expired or disabled codes so the
		// back-office list shows every derived status.
		{"WELCOME10", models.CouponTypePercentage, 10, now.AddDate(0, -1, 0), now.AddDate(1, 0, 0), true},
		{"SAVE5", models.CouponTypeFixed, 5, now.AddDate(-1, 0, 0), now.AddDate(0, -6, 0), false},
		{"SUMMER20", models.CouponTypePercentage, 20, now.AddDate(0, -8, 0), now.AddDate(0, -2, 0), false},
		{"WINTER20", models.CouponTypePercentage, 10, now.AddDate(0, 3, 0), now.AddDate(0, 4, 0), true},
	}

	for _, c := range coupons {
		if _, err := db.CreateCoupon(ctx, c.code, c.couponType, c.value, c.from, c.to, c.active); err != nil {
			return fmt.Errorf("failed to seed coupon %s: %w", c.code, err)
		}
	}
	return nil
}
