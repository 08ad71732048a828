// Package observability provides the logging, metrics and tracing
// infrastructure shared by the storefront server and the catalog CLI.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus metrics for the catalog API client and cache
//   - tracing: OpenTelemetry tracer and HTTP middleware
//
// Example usage:
//
//	import (
//	    "egreen-site/internal/observability/logging"
//	    "egreen-site/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordCacheLookup("product", "hit")
//	}
package observability
