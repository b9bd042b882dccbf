// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

/*
schema.go - Database Schema Management

This file manages the DuckDB schema: table creation, ID sequences, and
indexes.

Tables:
  - users: customer accounts with email confirmation and active flag
  - admins: back-office accounts (Super Admin / Staff Admin)
  - products: catalog items; inactive rows are hidden from the storefront
    but kept for order history
  - orders / order_items: purchases with unit price denormalized at
    purchase time
  - cart_items: one row per (user, product), quantities merged on add
  - coupons: discount codes with a validity window
  - user_preferences: bounded interaction history, keyed by user_id for
    customers or session_id for guests (exactly one is set per row);
    category is copied from the product at write time

Schema Strategy:
All columns are defined in the initial CREATE TABLE statements, executed
with IF NOT EXISTS on every startup. DuckDB sequences provide integer IDs
since DuckDB has no auto-increment column type.
*/
package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates the sequences and core tables.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range tableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// tableCreationQueries returns the sequence and table creation SQL.
func tableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS seq_users_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_admins_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_products_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_orders_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_order_items_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_cart_items_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_coupons_id START 1`,
		`CREATE SEQUENCE IF NOT EXISTS seq_user_preferences_id START 1`,

		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_users_id'),
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			confirmed BOOLEAN NOT NULL DEFAULT FALSE,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS admins (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_admins_id'),
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_products_id'),
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			price DOUBLE NOT NULL,
			stock INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'active',
			image TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_orders_id'),
			user_id INTEGER NOT NULL,
			total DOUBLE NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// price is the unit price at purchase time
		`CREATE TABLE IF NOT EXISTS order_items (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_order_items_id'),
			order_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			price DOUBLE NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS cart_items (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_cart_items_id'),
			user_id INTEGER NOT NULL,
			product_id INTEGER NOT NULL,
			quantity INTEGER NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id, product_id)
		)`,

		`CREATE TABLE IF NOT EXISTS coupons (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_coupons_id'),
			code TEXT NOT NULL UNIQUE,
			type TEXT NOT NULL,
			value DOUBLE NOT NULL,
			valid_from TIMESTAMP NOT NULL,
			valid_to TIMESTAMP NOT NULL,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Exactly one of user_id/session_id is set per row.
		`CREATE TABLE IF NOT EXISTS user_preferences (
			id INTEGER PRIMARY KEY DEFAULT nextval('seq_user_preferences_id'),
			user_id INTEGER,
			session_id TEXT,
			product_id INTEGER NOT NULL,
			action_type TEXT NOT NULL,
			category TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			CHECK ((user_id IS NULL) <> (session_id IS NULL))
		)`,
	}
}

// createIndexes creates indexes for common query patterns.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_products_status ON products (status)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders (user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status_created ON orders (status, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items (product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cart_items_user ON cart_items (user_id)`,
		// History reads and trims both scan one identity newest-first.
		`CREATE INDEX IF NOT EXISTS idx_preferences_user ON user_preferences (user_id, created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_preferences_session ON user_preferences (session_id, created_at)`,
	}

	for _, query := range indexes {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create index: %s: %w", query, err)
		}
	}

	return nil
}
