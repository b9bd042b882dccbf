// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package models

import "time"

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is a customer purchase. Sales aggregation only counts completed
// orders.
type Order struct {
	ID        int         `json:"id"`
	UserID    int         `json:"userId"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	User      *User       `json:"user,omitempty"`
	Items     []OrderItem `json:"orderItems,omitempty"`
}

// OrderItem is a single line of an order. Price is the unit price at
// purchase time, denormalized so later catalog price changes don't rewrite
// history.
type OrderItem struct {
	ID        int      `json:"id"`
	OrderID   int      `json:"orderId"`
	ProductID int      `json:"productId"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

// SalesSummary aggregates completed orders for the back-office dashboard.
type SalesSummary struct {
	TotalOrders       int     `json:"totalOrders"`
	TotalRevenue      float64 `json:"totalRevenue"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// TopProduct is a best-seller row: per-product quantity and revenue across
// completed orders, ranked by quantity.
type TopProduct struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// DashboardStats is the landing-page summary for the admin dashboard.
type DashboardStats struct {
	TotalCustomers int     `json:"totalCustomers"`
	TotalProducts  int     `json:"totalProducts"`
	TodaySales     int     `json:"todaySales"`
	MonthRevenue   float64 `json:"monthRevenue"`
}

// OrderFilter narrows order listings. Zero values mean "no filter".
type OrderFilter struct {
	Status   string
	FromDate time.Time
	ToDate   time.Time
	Limit    int
}
