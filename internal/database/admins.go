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

// CreateAdmin inserts a back-office account. Returns ErrDuplicate when the
// email is already registered.
func (db *DB) CreateAdmin(ctx context.Context, name, email, passwordHash, role string) (*models.Admin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	email = strings.ToLower(strings.TrimSpace(email))

	taken, err := db.emailTaken(ctx, "admins", email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("email %s: %w", email, ErrDuplicate)
	}

	row := db.conn.QueryRowContext(ctx, `
		INSERT INTO admins (name, email, password_hash, role)
		VALUES (?, ?, ?, ?)
		RETURNING id, name, email, password_hash, role, is_active, created_at`,
		name, email, passwordHash, role)

	admin, err := scanAdmin(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

// GetAdminByEmail returns the admin with the given email, or ErrNotFound.
func (db *DB) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM admins WHERE email = ?`,
		strings.ToLower(strings.TrimSpace(email)))

	admin, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin by email: %w", err)
	}
	return admin, nil
}

// GetAdminByID returns the admin with the given ID, or ErrNotFound.
func (db *DB) GetAdminByID(ctx context.Context, id int) (*models.Admin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM admins WHERE id = ?`, id)

	admin, err := scanAdmin(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query admin by id: %w", err)
	}
	return admin, nil
}

// ListAdmins returns all back-office accounts, newest first.
func (db *DB) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, is_active, created_at
		FROM admins ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	defer closeQuietly(rows)

	admins := []models.Admin{}
	for rows.Next() {
		admin, err := scanAdmin(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan admin: %w", err)
		}
		admins = append(admins, *admin)
	}
	return admins, rows.Err()
}

// UpdateAdmin applies the non-zero fields of req to an admin account.
// Returns ErrNotFound for an unknown ID and ErrDuplicate when changing the
// email to one already in use.
func (db *DB) UpdateAdmin(ctx context.Context, id int, req *models.UpdateAdminRequest) (*models.Admin, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	current, err := db.GetAdminByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		current.Name = req.Name
	}
	if req.Email != "" {
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if email != current.Email {
			taken, err := db.emailTaken(ctx, "admins", email)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, fmt.Errorf("email %s: %w", email, ErrDuplicate)
			}
			current.Email = email
		}
	}
	if req.Role != "" {
		current.Role = req.Role
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	_, err = db.conn.ExecContext(ctx, `
		UPDATE admins SET name = ?, email = ?, role = ?, is_active = ? WHERE id = ?`,
		current.Name, current.Email, current.Role, current.IsActive, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}
	return current, nil
}

// DeleteAdmin removes a back-office account. Returns ErrNotFound for an
// unknown ID. The handler prevents self-deletion before calling this.
func (db *DB) DeleteAdmin(ctx context.Context, id int) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admin: %w", err)
	}
	return requireRowAffected(res, "admin")
}

func scanAdmin(row rowScanner) (*models.Admin, error) {
	var a models.Admin
	err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
