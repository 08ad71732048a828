package pagination

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts listing requests.
	// Labels: listing (products, articles), status (HTTP status code), page_range (1-10, 11-50, ...)
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pagination_requests_total",
			Help: "Total number of paginated listing requests",
		},
		[]string{"listing", "status", "page_range"},
	)

	// ClampedTotal counts responses where the server served a different page
	// than the one requested.
	ClampedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pagination_clamped_total",
			Help: "Total number of listing responses whose page was corrected by the server",
		},
		[]string{"listing"},
	)

	// ErrorsTotal counts pagination errors by type.
	// Labels: type (validation, upstream)
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pagination_errors_total",
			Help: "Total number of pagination errors",
		},
		[]string{"type"},
	)
)

// RecordRequest records a listing request metric.
func RecordRequest(listing string, statusCode int, page int) {
	RequestsTotal.WithLabelValues(listing, fmt.Sprintf("%d", statusCode), getPageRangeBucket(page)).Inc()
}

// RecordClamped records a server-side page correction.
func RecordClamped(listing string) {
	ClampedTotal.WithLabelValues(listing).Inc()
}

// RecordError records an error metric.
// errorType should be one of: "validation", "upstream"
func RecordError(errorType string) {
	ErrorsTotal.WithLabelValues(errorType).Inc()
}

// getPageRangeBucket returns the page range bucket for a given page number.
func getPageRangeBucket(page int) string {
	switch {
	case page <= 10:
		return "1-10"
	case page <= 50:
		return "11-50"
	case page <= 100:
		return "51-100"
	default:
		return "100+"
	}
}
