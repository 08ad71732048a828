package http

import (
	"net/http"
	"strconv"
	"time"

	"egreen-site/internal/handler/http/pathutil"
	"egreen-site/internal/handler/http/responsewriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics are the server-side request metrics. Routes are labelled by
// template so "/en/products/p01" and "/fr/products/p02" share a series.
type HTTPMetrics struct {
	requests  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	inFlight  prometheus.Gauge
	bodyBytes *prometheus.HistogramVec
}

// NewHTTPMetrics registers the request metrics with reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	f := promauto.With(reg)
	return &HTTPMetrics{
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served, by method, route and status",
		}, []string{"method", "route", "status"}),
		// Cached pages answer in a few ms. Cache misses wait on the catalog API.
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: []float64{.002, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),
		inFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "HTTP requests currently being served",
		}),
		bodyBytes: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response body size in bytes",
			Buckets: prometheus.ExponentialBuckets(128, 4, 7),
		}, []string{"route"}),
	}
}

var defaultHTTPMetrics = NewHTTPMetrics(prometheus.DefaultRegisterer)

// Middleware records every request passing through it.
func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.inFlight.Inc()
		defer m.inFlight.Dec()

		route := pathutil.NormalizePath(r.URL.Path)
		rw := responsewriter.Wrap(w)
		start := time.Now()

		next.ServeHTTP(rw, r)

		m.duration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(r.Method, route, strconv.Itoa(rw.StatusCode())).Inc()
		m.bodyBytes.WithLabelValues(route).Observe(float64(rw.BytesWritten()))
	})
}

// MetricsMiddleware records requests in the default registry.
func MetricsMiddleware(next http.Handler) http.Handler {
	return defaultHTTPMetrics.Middleware(next)
}

// MetricsHandler serves the default registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
