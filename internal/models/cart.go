// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// CartItem is a row in a customer's cart, flattened with product details for
// direct rendering. One row per (user, product); adding an existing product
// merges quantities.
type CartItem struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	ProductID   int       `json:"productId"`
	Quantity    int       `json:"quantity"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AddToCartRequest is the payload for POST /api/v1/cart.
// Quantity defaults to 1 when omitted.
type AddToCartRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"omitempty,gt=0"`
}

// UpdateCartRequest is the payload for PUT /api/v1/cart.
type UpdateCartRequest struct {
	ProductID int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gte=1"`
}
