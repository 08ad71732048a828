package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a listing request with structured fields.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Info("Paginated request",
		"request_id", requestID,
		"page", params.Page,
		"limit", params.Limit,
		"category", params.Category)
}

// LogResponse logs a listing response with the page the server served.
func LogResponse(logger *slog.Logger, requestID string, params Params, meta Metadata, returnedCount int, duration time.Duration) {
	logger.Info("Paginated response",
		"request_id", requestID,
		"requested_page", params.Page,
		"served_page", meta.CurrentPage,
		"total_pages", meta.TotalPages,
		"returned_count", returnedCount,
		"duration_ms", duration.Milliseconds())
}
