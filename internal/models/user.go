// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// User is a storefront customer account.
//
// Accounts start unconfirmed; a confirmation email carries a short-lived JWT
// that flips Confirmed when followed. Admins can deactivate accounts via
// IsActive without deleting order history.
type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Confirmed    bool      `json:"confirmed"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest is the payload for POST /api/v1/auth/register.
// Password policy: 8+ characters with upper, lower, digit, and special
// character.
type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,min=3,max=50"`
	LastName  string `json:"lastName" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,account_password"`
}

// LoginRequest is the payload for POST /api/v1/auth/login and
// POST /api/v1/admin/auth/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the access token and public profile after login.
type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    interface{} `json:"user,omitempty"`
	Admin   interface{} `json:"admin,omitempty"`
}

// UpdateCustomerStatusRequest toggles a customer's IsActive flag.
type UpdateCustomerStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}
