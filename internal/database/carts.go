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

	"github.com/Fardin376/snacksmart/internal/models"
)

// ListCartItems returns a customer's cart, flattened with product details.
func (db *DB) ListCartItems(ctx context.Context, userID int) ([]models.CartItem, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT ci.id, ci.user_id, ci.product_id, ci.quantity, ci.created_at,
			p.name, p.description, p.price, p.image, p.stock, p.category
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.user_id = ?
		ORDER BY ci.created_at DESC, ci.id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	defer closeQuietly(rows)

	items := []models.CartItem{}
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt,
			&item.Name, &item.Description, &item.Price, &item.Image, &item.Stock, &item.Category)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddToCart adds quantity units of a product to the customer's cart,
// merging with an existing row for the same product. The merged quantity is
// checked against current stock.
//
// Returns ErrNotFound for an unknown or inactive product and
// ErrInsufficientStock when the merged quantity exceeds stock.
func (db *DB) AddToCart(ctx context.Context, userID, productID, quantity int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if quantity <= 0 {
		quantity = 1
	}

	product, err := db.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if product.Status != models.ProductStatusActive {
		return fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var existing int
	err = tx.QueryRowContext(ctx,
		`SELECT quantity FROM cart_items WHERE user_id = ? AND product_id = ?`,
		userID, productID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if quantity > product.Stock {
			return fmt.Errorf("product %d: want %d of %d: %w", productID, quantity, product.Stock, ErrInsufficientStock)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO cart_items (user_id, product_id, quantity) VALUES (?, ?, ?)`,
			userID, productID, quantity)
		if err != nil {
			return fmt.Errorf("failed to insert cart item: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to query cart item: %w", err)
	default:
		merged := existing + quantity
		if merged > product.Stock {
			return fmt.Errorf("product %d: want %d of %d: %w", productID, merged, product.Stock, ErrInsufficientStock)
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?`,
			merged, userID, productID)
		if err != nil {
			return fmt.Errorf("failed to update cart item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit cart write: %w", err)
	}
	return nil
}

// SetCartQuantity replaces the quantity of a cart row. Returns ErrNotFound
// when the product is not in the cart and ErrInsufficientStock when the new
// quantity exceeds stock.
func (db *DB) SetCartQuantity(ctx context.Context, userID, productID, quantity int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	product, err := db.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if quantity > product.Stock {
		return fmt.Errorf("product %d: want %d of %d: %w", productID, quantity, product.Stock, ErrInsufficientStock)
	}

	res, err := db.conn.ExecContext(ctx,
		`UPDATE cart_items SET quantity = ? WHERE user_id = ? AND product_id = ?`,
		quantity, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to update cart quantity: %w", err)
	}
	return requireRowAffected(res, "cart item")
}

// RemoveCartItem removes a product from the customer's cart.
func (db *DB) RemoveCartItem(ctx context.Context, userID, productID int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id = ? AND product_id = ?`, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return requireRowAffected(res, "cart item")
}

// ClearCart empties the customer's cart. Clearing an empty cart is fine.
func (db *DB) ClearCart(ctx context.Context, userID int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Checkout converts the customer's cart into a completed order in one
// transaction: per-item stock re-check, stock decrement, order and
// order_items creation with unit prices frozen, optional coupon discount,
// and cart clearing. Returns the created order with its items.
//
// Returns ErrNotFound for an empty cart and ErrInsufficientStock when any
// line exceeds current stock; either aborts the whole checkout.
func (db *DB) Checkout(ctx context.Context, userID int, couponCode string) (*models.Order, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	items, err := db.ListCartItems(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cart is empty: %w", ErrNotFound)
	}

	var coupon *models.ValidCoupon
	if couponCode != "" {
		coupon, err = db.ValidateCoupon(ctx, couponCode)
		if err != nil {
			return nil, err
		}
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	total := 0.0
	for _, item := range items {
		// Re-check stock inside the transaction; the cart row may be stale.
		res, err := tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - ? WHERE id = ? AND stock >= ?`,
			item.Quantity, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("failed to read rows affected: %w", err)
		}
		if n == 0 {
			return nil, fmt.Errorf("product %d: %w", item.ProductID, ErrInsufficientStock)
		}
		total += item.Price * float64(item.Quantity)
	}

	if coupon != nil {
		switch coupon.Type {
		case models.CouponTypePercentage:
			total -= total * coupon.Value / 100
		case models.CouponTypeFixed:
			total -= coupon.Value
		}
		if total < 0 {
			total = 0
		}
	}

	order := &models.Order{UserID: userID, Status: models.OrderStatusCompleted}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (user_id, total, status) VALUES (?, ?, ?)
		RETURNING id, total, created_at`,
		userID, total, order.Status).
		Scan(&order.ID, &order.Total, &order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range items {
		var oi models.OrderItem
		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES (?, ?, ?, ?)
			RETURNING id`,
			order.ID, item.ProductID, item.Quantity, item.Price).Scan(&oi.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		oi.OrderID = order.ID
		oi.ProductID = item.ProductID
		oi.Quantity = item.Quantity
		oi.Price = item.Price
		order.Items = append(order.Items, oi)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after checkout: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit checkout: %w", err)
	}
	return order, nil
}
