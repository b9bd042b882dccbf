// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Fardin376/snacksmart/internal/auth"
)

// Router wires handlers, auth middleware, and the chi middleware factories.
type Router struct {
	handler        *Handler
	authMiddleware *auth.Middleware
	chiMiddleware  *ChiMiddleware
}

// NewRouter creates a Router from its dependencies.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMW *ChiMiddleware) *Router {
	return &Router{
		handler:        handler,
		authMiddleware: authMiddleware,
		chiMiddleware:  chiMW,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(Metrics())

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitByIP())

		r.Get("/health", router.handler.HealthCheck)

		// Customer auth. Login and register are limited hard to slow
		// credential stuffing.
		r.Route("/auth", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitAuth)).Post("/register", router.handler.Register)
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitLogin)).Post("/login", router.handler.Login)
			r.Get("/confirm", router.handler.ConfirmEmail)
			r.With(router.authMiddleware.RequireUser()).Get("/users/{id}", router.handler.GetUser)
		})

		// Public catalog. Optional auth so the preference bias can apply.
		r.Group(func(r chi.Router) {
			r.Use(router.authMiddleware.Optional())
			r.Get("/products", router.handler.ListProducts)
			r.Get("/products/{id}", router.handler.GetProduct)
			r.Get("/products/categories", router.handler.ListCategories)
		})

		r.Get("/coupons/{code}/validate", router.handler.ValidateCoupon)

		// Preference subsystem. All endpoints take either a bearer token or
		// a caller-supplied session ID.
		r.Route("/preferences", func(r chi.Router) {
			r.Use(router.authMiddleware.Optional())
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitTrack)).Post("/track", router.handler.TrackInteraction)
			r.Get("/recent", router.handler.RecentPreferences)
			r.Get("/recommendations", router.handler.Recommendations)
			r.Delete("/clear", router.handler.ClearPreferences)
		})

		// Customer cart.
		r.Route("/cart", func(r chi.Router) {
			r.Use(router.authMiddleware.RequireUser())
			r.Get("/", router.handler.GetCart)
			r.Post("/", router.handler.AddToCart)
			r.Put("/", router.handler.UpdateCartItem)
			r.Delete("/", router.handler.ClearCart)
			r.Delete("/{productID}", router.handler.RemoveCartItem)
			r.Post("/checkout", router.handler.Checkout)
		})

		// Back-office.
		r.Route("/admin", func(r chi.Router) {
			r.With(router.chiMiddleware.RateLimitCustom(RateLimitLogin)).Post("/auth/login", router.handler.AdminLogin)

			r.Group(func(r chi.Router) {
				r.Use(router.authMiddleware.RequireAdmin())

				r.Get("/auth/profile", router.handler.AdminProfile)
				r.Get("/dashboard/stats", router.handler.DashboardStats)

				r.Route("/customers", func(r chi.Router) {
					r.Get("/", router.handler.ListCustomers)
					r.Get("/{id}", router.handler.GetCustomer)
					r.Patch("/{id}/status", router.handler.UpdateCustomerStatus)
				})

				r.Route("/inventory/products", func(r chi.Router) {
					r.Get("/", router.handler.ListInventory)
					r.With(router.chiMiddleware.RateLimitCustom(RateLimitWrite)).Post("/", router.handler.CreateProduct)
					r.Put("/{id}", router.handler.UpdateProduct)
					r.Patch("/{id}/stock", router.handler.UpdateStock)
					r.Delete("/{id}", router.handler.DeleteProduct)
				})

				r.Route("/sales", func(r chi.Router) {
					r.Get("/summary", router.handler.SalesSummary)
					r.Get("/top-products", router.handler.TopProducts)
					r.Get("/recent-orders", router.handler.RecentOrders)
					r.Get("/orders", router.handler.ListOrders)
				})

				r.Route("/coupons", func(r chi.Router) {
					r.Get("/", router.handler.ListCoupons)
					r.Post("/", router.handler.CreateCoupon)
					r.Put("/{id}", router.handler.UpdateCoupon)
					r.Patch("/{id}/deactivate", router.handler.DeactivateCoupon)
					r.Delete("/{id}", router.handler.DeleteCoupon)
				})
			})

			// Admin account management: any admin can list and update,
			// but creating, deactivating, and deleting accounts is Super
			// Admin territory.
			r.Route("/admins", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(router.authMiddleware.RequireAdmin())
					r.Get("/", router.handler.ListAdmins)
					r.Put("/{id}", router.handler.UpdateAdmin)
				})

				r.Group(func(r chi.Router) {
					r.Use(router.authMiddleware.RequireSuperAdmin())
					r.Post("/", router.handler.CreateAdmin)
					r.Patch("/{id}/deactivate", router.handler.DeactivateAdmin)
					r.Delete("/{id}", router.handler.DeleteAdmin)
				})
			})
		})
	})

	return r
}
