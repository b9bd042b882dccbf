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

	"github.com/Fardin376/snacksmart/internal/models"
)

// CreateUser inserts a customer account and returns it with its assigned ID.
// Returns ErrDuplicate when the email is already registered.
func (db *DB) CreateUser(ctx context.Context, firstName, lastName, email, passwordHash string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))

	taken, err := db.emailTaken(ctx, "users", email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email %s: %w", email, ErrDuplicate)
	}

	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash)
		VALUES (?, ?, ?, ?)
		RETURNING id, first_name, last_name, email, password_hash, confirmed, is_active, created_at`,
		firstName, lastName, email, passwordHash)

	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail returns the customer with the given email, or ErrNotFound.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, password_hash, confirmed, is_active, created_at
		FROM users WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}
	return user, nil
}

// GetUserByID returns the customer with the given ID, or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, password_hash, confirmed, is_active, created_at
		FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user by id: %w", err)
	}
	return user, nil
}

// ConfirmUser flips the confirmed flag after the email link is followed.
// Confirming an already-confirmed account is a no-op, not an error: the
// same link may be clicked twice.
func (db *DB) ConfirmUser(ctx context.Context, id int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `UPDATE users SET confirmed = TRUE WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to confirm user: %w", err)
	}
	return requireRowAffected(res, "user")
}

// SetUserActive toggles a customer's active flag. Deactivated customers
// cannot log in but keep their order history.
func (db *DB) SetUserActive(ctx context.Context, id int, active bool) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `UPDATE users SET is_active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("failed to update user status: %w", err)
	}
	return requireRowAffected(res, "user")
}

// ListCustomers returns all customer accounts, newest first.
func (db *DB) ListCustomers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, first_name, last_name, email, password_hash, confirmed, is_active, created_at
		FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer closeQuietly(rows)

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.Confirmed, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// emailTaken reports whether an email is already registered in the given
// account table. Duplicate checks run inside the same request before the
// insert; a concurrent duplicate insert is still caught by the UNIQUE
// constraint.
func (db *DB) emailTaken(ctx context.Context, table, email string) (bool, error) {
	var count int
	// table is a compile-time constant at every call site, never user input
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE email = ?`, table)
	if err := db.conn.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return count > 0, nil
}

// requireRowAffected converts a zero-row UPDATE/DELETE into ErrNotFound.
func requireRowAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
