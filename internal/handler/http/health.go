// Package http holds the storefront's HTTP middleware and operational
// endpoints. Route handlers live in the product, category, article, contact
// and revalidate subpackages.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy", "degraded" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string         `json:"status"`            // "healthy", "degraded" or "unhealthy"
	Message string         `json:"message,omitempty"` // Optional status message
	Details map[string]any `json:"details,omitempty"` // Optional additional details
}

// BreakerProbe reports the circuit state of the catalog API client.
type BreakerProbe interface {
	BreakerState() gobreaker.State
}

// Sizer reports how many entries a store holds.
type Sizer interface {
	Len() int
}

// HealthHandler reports whether the catalog API is reachable, judged by the
// client's circuit breaker, plus cache and rate limiter occupancy.
type HealthHandler struct {
	Catalog        BreakerProbe
	Cache          Sizer          // optional
	ContactLimiter *IPRateLimiter // optional
	Version        string
}

// ServeHTTP returns 200 while the breaker is closed or half-open and 503
// once it has opened.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)

	catalogCheck := h.checkCatalog()
	checks["catalog_api"] = catalogCheck

	if h.Cache != nil {
		checks["cache"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"entries": h.Cache.Len()},
		}
	}
	if h.ContactLimiter != nil {
		checks["rate_limiter"] = CheckStatus{
			Status:  "healthy",
			Details: map[string]any{"active_visitors": h.ContactLimiter.Len()},
		}
	}

	// degraded は警告扱いで 200 を返す
	status := catalogCheck.Status
	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	writeHealth(w, statusCode, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	})
}

func (h *HealthHandler) checkCatalog() CheckStatus {
	if h.Catalog == nil {
		return CheckStatus{Status: "unhealthy", Message: "not configured"}
	}
	state := h.Catalog.BreakerState()
	details := map[string]any{"circuit_breaker": state.String()}
	switch state {
	case gobreaker.StateOpen:
		return CheckStatus{Status: "unhealthy", Message: "catalog api circuit open", Details: details}
	case gobreaker.StateHalfOpen:
		return CheckStatus{Status: "degraded", Message: "catalog api recovering", Details: details}
	default:
		return CheckStatus{Status: "healthy", Details: details}
	}
}

func writeHealth(w http.ResponseWriter, code int, v HealthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Error("health: failed to encode response", slog.Any("error", err))
	}
}

// ReadyHandler handles readiness probes. The site is ready unless the
// catalog API breaker is open.
type ReadyHandler struct {
	Catalog BreakerProbe
}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.Catalog == nil {
		http.Error(w, "catalog api not configured", http.StatusServiceUnavailable)
		return
	}
	if h.Catalog.BreakerState() == gobreaker.StateOpen {
		http.Error(w, "catalog api unavailable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler handles liveness probes. It always answers 200.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
