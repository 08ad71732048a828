package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestHTTPMetrics_RouteLabels(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	for _, path := range []string{"/en/products/p01", "/ar/products/p02", "/fr/products/p03?x=1"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 3.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/:locale/products/:id", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requests), "one series for all product pages")
	assert.Equal(t, 1, testutil.CollectAndCount(m.bodyBytes))
}

func TestHTTPMetrics_StatusCodes(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusBadGateway} {
		handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/en/articles", nil))
	}

	for _, status := range []string{"200", "404", "502"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/:locale/articles", status)), status)
	}
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration), "latency is not split by status")
}

func TestHTTPMetrics_InFlight(t *testing.T) {
	m := NewHTTPMetrics(prometheus.NewRegistry())

	var during float64
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(m.inFlight)
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, 1.0, during)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.inFlight))
}

func TestMetricsHandler_ExposesDefaultRegistry(t *testing.T) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "http_requests_total"))
}
