// Package metrics provides centralized Prometheus metrics for the catalog API client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream metrics track calls to the remote catalog API
var (
	// CatalogRequestsTotal counts upstream calls by resource, method and result
	CatalogRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of requests sent to the catalog API",
		},
		[]string{"resource", "method", "result"},
	)

	// CatalogRequestDuration measures upstream call latency in seconds
	CatalogRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "Catalog API request duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"resource", "method"},
	)

	// CatalogResponseSize measures upstream response body size in bytes
	CatalogResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_response_size_bytes",
			Help:    "Catalog API response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 6),
		},
		[]string{"resource"},
	)

	// CircuitBreakerState reports the breaker state (0 closed, 1 half-open, 2 open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_api_circuit_breaker_state",
			Help: "Circuit breaker state for the catalog API (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

// Cache metrics track the response cache in front of the catalog API
var (
	// CacheLookupsTotal counts cache lookups by resource and outcome
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Total number of catalog cache lookups",
		},
		[]string{"resource", "outcome"}, // outcome: hit, miss, shared, error
	)

	// CacheInvalidationsTotal counts invalidations per tag
	CacheInvalidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_invalidations_total",
			Help: "Total number of cache tag invalidations",
		},
		[]string{"tag"},
	)

	// CacheEntries tracks the number of cached responses
	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_cache_entries",
			Help: "Number of responses held in the catalog cache",
		},
	)
)
