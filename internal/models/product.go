// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// Product status values. Inactive products stay in the catalog tables for
// order history but are excluded from storefront listings, recent-preference
// products, and recommendations.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product is a catalog item.
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductSummary is the reduced projection returned by catalog listings and
// the recommendation endpoints (no stock or status exposure).
type ProductSummary struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateProductRequest is the payload for product creation (storefront and
// inventory endpoints share it).
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=100"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category" validate:"omitempty,max=50"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"min=0"`
	Image       string  `json:"image" validate:"omitempty,url"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateProductRequest is the payload for PUT /api/v1/admin/inventory/products/{id}.
// Nil pointers leave the corresponding column unchanged.
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Category    *string  `json:"category" validate:"omitempty,max=50"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,min=0"`
	Image       *string  `json:"image" validate:"omitempty,url"`
	Status      *string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateStockRequest is the payload for PATCH .../products/{id}/stock.
type UpdateStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}
