// Package metrics provides Prometheus metrics for the gold tracker backend.
// Scrape these at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gold_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Price Source Metrics
	PriceFetchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gold_price_fetches_total",
			Help: "Total number of upstream price fetches attempted",
		},
	)

	PriceFetchErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gold_price_fetch_errors_total",
			Help: "Total number of upstream price fetches that failed",
		},
	)

	PriceCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gold_price_cache_hits_total",
			Help: "Total number of price lookups served from the cache",
		},
	)

	// Purchase Metrics
	PurchaseWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gold_purchase_writes_total",
			Help: "Total number of purchase create/update/delete operations",
		},
		[]string{"operation"},
	)
)
