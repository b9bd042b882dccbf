// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Fardin376/snacksmart/internal/models"
)

// ListOrders returns orders matching the filter, newest first, each with
// its line items and the purchasing customer's public profile.
func (db *DB) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT o.id, o.user_id, o.total, o.status, o.created_at,
			u.first_name, u.last_name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE 1=1`
	args := []interface{}{}

	if filter.Status != "" {
		query += ` AND o.status = ?`
		args = append(args, filter.Status)
	}
	if !filter.FromDate.IsZero() {
		query += ` AND o.created_at >= ?`
		args = append(args, filter.FromDate)
	}
	if !filter.ToDate.IsZero() {
		query += ` AND o.created_at <= ?`
		args = append(args, filter.ToDate)
	}

	query += ` ORDER BY o.created_at DESC, o.id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer closeQuietly(rows)

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		var u models.User
		err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.CreatedAt,
			&u.FirstName, &u.LastName, &u.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		u.ID = o.UserID
		o.User = &u
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range orders {
		items, err := db.listOrderItems(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Items = items
	}
	return orders, nil
}

// listOrderItems returns an order's line items joined with their products.
func (db *DB) listOrderItems(ctx context.Context, orderID int) ([]models.OrderItem, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.price,
			p.id, p.name, p.description, p.category, p.price, p.stock, p.status, p.image, p.created_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ?
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	defer closeQuietly(rows)

	items := []models.OrderItem{}
	for rows.Next() {
		var oi models.OrderItem
		var p models.Product
		err := rows.Scan(&oi.ID, &oi.OrderID, &oi.ProductID, &oi.Quantity, &oi.Price,
			&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Stock, &p.Status, &p.Image, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		oi.Product = &p
		items = append(items, oi)
	}
	return items, rows.Err()
}

// SalesSummary aggregates completed orders in the given window. Zero
// times mean an unbounded window.
func (db *DB) SalesSummary(ctx context.Context, from, to time.Time) (*models.SalesSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders WHERE status = ?`
	args := []interface{}{models.OrderStatusCompleted}

	if !from.IsZero() {
		query += ` AND created_at >= ?`
		args = append(args, from)
	}
	if !to.IsZero() {
		query += ` AND created_at <= ?`
		args = append(args, to)
	}

	var s models.SalesSummary
	if err := db.conn.QueryRowContext(ctx, query, args...).Scan(&s.TotalOrders, &s.TotalRevenue); err != nil {
		return nil, fmt.Errorf("failed to aggregate sales: %w", err)
	}
	if s.TotalOrders > 0 {
		s.AverageOrderValue = s.TotalRevenue / float64(s.TotalOrders)
	}
	return &s, nil
}

// TopProducts returns the best sellers across completed orders, ranked by
// total quantity sold, capped at limit.
func (db *DB) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if limit <= 0 {
		limit = 5
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT p.id, p.name, p.description, p.category, p.price, p.stock, p.status, p.image, p.created_at,
			SUM(oi.quantity) AS sold, SUM(oi.quantity * oi.price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id AND o.status = ?
		JOIN products p ON p.id = oi.product_id
		GROUP BY p.id, p.name, p.description, p.category, p.price, p.stock, p.status, p.image, p.created_at
		ORDER BY sold DESC, revenue DESC, p.id ASC
		LIMIT ?`, models.OrderStatusCompleted, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer closeQuietly(rows)

	top := []models.TopProduct{}
	for rows.Next() {
		var tp models.TopProduct
		err := rows.Scan(&tp.Product.ID, &tp.Product.Name, &tp.Product.Description,
			&tp.Product.Category, &tp.Product.Price, &tp.Product.Stock, &tp.Product.Status,
			&tp.Product.Image, &tp.Product.CreatedAt, &tp.Quantity, &tp.Revenue)
		if err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		top = append(top, tp)
	}
	return top, rows.Err()
}

// DashboardStats assembles the admin landing-page counters: customer and
// product totals, today's completed order count, and this month's revenue.
func (db *DB) DashboardStats(ctx context.Context, now time.Time) (*models.DashboardStats, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var stats models.DashboardStats

	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&stats.TotalCustomers); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&stats.TotalProducts); err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM orders WHERE status = ? AND created_at >= ?`,
		models.OrderStatusCompleted, dayStart).Scan(&stats.TodaySales)
	if err != nil {
		return nil, fmt.Errorf("failed to count today's sales: %w", err)
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	err = db.conn.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM orders WHERE status = ? AND created_at >= ?`,
		models.OrderStatusCompleted, monthStart).Scan(&stats.MonthRevenue)
	if err != nil {
		return nil, fmt.Errorf("failed to sum month revenue: %w", err)
	}

	return &stats, nil
}
