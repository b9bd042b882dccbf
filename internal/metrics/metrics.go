// SnackSmart - E-Commerce Storefront Backend
// Copyright 2026 Fardin
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Fardin376/snacksmart

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Database metrics.
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// Storefront metrics.
	CheckoutsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkouts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"result"}, // "completed", "insufficient_stock", "empty_cart", "error"
	)

	OrderRevenue = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_revenue_total",
			Help: "Cumulative revenue from completed orders",
		},
	)

	InteractionsTracked = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "preference_interactions_total",
			Help: "Total number of tracked product interactions",
		},
		[]string{"action", "identity"}, // identity: "user" or "guest"
	)

	RecommendationsServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendations_served_total",
			Help: "Total number of recommendation responses",
		},
	)

	// Email delivery metrics.
	EmailsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "confirmation_emails_total",
			Help: "Total number of confirmation email attempts",
		},
		[]string{"result"}, // "sent", "failed", "skipped"
	)

	// Circuit breaker state: 0 = closed, 1 = half-open, 2 = open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordDBQuery records a database query duration and its error state.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordCheckout records a checkout attempt and, when completed, its revenue.
func RecordCheckout(result string, total float64) {
	CheckoutsTotal.WithLabelValues(result).Inc()
	if result == "completed" {
		OrderRevenue.Add(total)
	}
}

// RecordInteraction records a tracked product interaction.
func RecordInteraction(action string, authenticated bool) {
	identity := "guest"
	if authenticated {
		identity = "user"
	}
	InteractionsTracked.WithLabelValues(action, identity).Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
