// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// Admin roles. Super Admins may manage other admin accounts; Staff Admins
// are limited to inventory, customers, sales, and coupons.
const (
	RoleSuperAdmin = "Super Admin"
	RoleStaffAdmin = "Staff Admin"
)

// Admin is a back-office operator account.
type Admin struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateAdminRequest is the payload for POST /api/v1/admin/admins.
type CreateAdminRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,admin_role"`
}

// UpdateAdminRequest is the payload for PUT /api/v1/admin/admins/{id}.
// All fields are optional; zero values are ignored.
type UpdateAdminRequest struct {
	Name     string `json:"name" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Role     string `json:"role" validate:"omitempty,admin_role"`
	IsActive *bool  `json:"isActive"`
}
