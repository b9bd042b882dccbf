// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package api provides the HTTP surface of the storefront: a chi router,
// middleware (CORS, rate limits, request IDs, Prometheus instrumentation),
// and handlers for the public catalog, the preference subsystem, customer
// carts, and the admin back-office.
package api
