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

// Catalog sort keys accepted by ListProducts.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortName      = "name"
)

// ListProducts returns active catalog products as storefront summaries.
// search filters by name, description, or category (case-insensitive
// substring); sortKey
// selects the base ordering and defaults to newest-first. Preference-biased
// reordering happens in the recommend package on top of this result.
func (db *DB) ListProducts(ctx context.Context, search, sortKey string) ([]models.ProductSummary, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, name, description, category, price, image, created_at
		FROM products WHERE status = ?`
	args := []interface{}{models.ProductStatusActive}

	if search != "" {
		query += ` AND (name ILIKE ? OR description ILIKE ? OR category ILIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	switch sortKey {
	case SortPriceAsc:
		query += ` ORDER BY price ASC, id ASC`
	case SortPriceDesc:
		query += ` ORDER BY price DESC, id ASC`
	case SortName:
		query += ` ORDER BY name ASC, id ASC`
	default:
		query += ` ORDER BY created_at DESC, id DESC`
	}

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer closeQuietly(rows)

	products := []models.ProductSummary{}
	for rows.Next() {
		var p models.ProductSummary
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price, &p.Image, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListAllProducts returns every product including inactive ones, with stock
// and status, for the back-office inventory view.
func (db *DB) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, description, category, price, stock, status, image, created_at
		FROM products ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list all products: %w", err)
	}
	defer closeQuietly(rows)

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// GetProduct returns the product with the given ID, or ErrNotFound.
func (db *DB) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, description, category, price, stock, status, image, created_at
		FROM products WHERE id = ?`, id)

	product, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	return product, nil
}

// CreateProduct inserts a catalog item and returns it with its assigned ID.
func (db *DB) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	status := req.Status
	if status == "" {
		status = models.ProductStatusActive
	}

	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO products (name, description, category, price, stock, status, image)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id, name, description, category, price, stock, status, image, created_at`,
		req.Name, req.Description, req.Category, req.Price, req.Stock, status, req.Image)

	product, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// UpdateProduct applies the non-nil fields of req to a product. Returns
// ErrNotFound for an unknown ID. Category changes do not rewrite preference
// history rows, which keep the category observed at interaction time.
func (db *DB) UpdateProduct(ctx context.Context, id int, req *models.UpdateProductRequest) (*models.Product, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	current, err := db.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		current.Name = *req.Name
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Category != nil {
		current.Category = *req.Category
	}
	if req.Price != nil {
		current.Price = *req.Price
	}
	if req.Stock != nil {
		current.Stock = *req.Stock
	}
	if req.Image != nil {
		current.Image = *req.Image
	}
	if req.Status != nil {
		current.Status = *req.Status
	}

	_, err = db.conn.ExecContext(ctx, `
		UPDATE products SET name = ?, description = ?, category = ?, price = ?,
			stock = ?, status = ?, image = ? WHERE id = ?`,
		current.Name, current.Description, current.Category, current.Price,
		current.Stock, current.Status, current.Image, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return current, nil
}

// UpdateStock sets a product's stock level. Returns ErrNotFound for an
// unknown ID.
func (db *DB) UpdateStock(ctx context.Context, id, stock int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `UPDATE products SET stock = ? WHERE id = ?`, stock, id)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return requireRowAffected(res, "product")
}

// DeactivateProduct hides a product from the storefront without removing
// it, so order history and preference rows keep resolving. This is the
// back-office "delete".
func (db *DB) DeactivateProduct(ctx context.Context, id int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE products SET status = ? WHERE id = ?`, models.ProductStatusInactive, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate product: %w", err)
	}
	return requireRowAffected(res, "product")
}

// ListCategories returns the distinct categories of active products.
func (db *DB) ListCategories(ctx context.Context) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT DISTINCT category FROM products
		WHERE status = ? AND category <> ''
		ORDER BY category`, models.ProductStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer closeQuietly(rows)

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Category, &p.Price,
		&p.Stock, &p.Status, &p.Image, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
