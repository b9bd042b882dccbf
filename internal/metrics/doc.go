// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

// Package metrics exposes Prometheus instrumentation for the storefront:
// API latency and throughput, DuckDB query performance, checkout and
// preference-tracking counters, and confirmation email delivery.
package metrics
