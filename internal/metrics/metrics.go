// Package metrics provides the Prometheus collectors of the quote server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partquote_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "partquote_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Session metrics
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "partquote_sessions_active",
			Help: "Number of live quoting sessions",
		},
	)

	// Configuration metrics
	PartsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partquote_parts_created_total",
			Help: "Total number of parts created",
		},
		[]string{"source"},
	)

	SelectionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partquote_selections_total",
			Help: "Total number of configuration selections",
		},
		[]string{"step"},
	)

	// Quote metrics
	QuotesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "partquote_quotes_submitted_total",
			Help: "Total number of submitted quotes",
		},
	)

	QuoteValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "partquote_quote_total_dollars",
			Help:    "Total value of submitted quotes",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 50000},
		},
	)

	OrdersConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "partquote_orders_confirmed_total",
			Help: "Total number of confirmed orders",
		},
		[]string{"payment_method"},
	)
)
