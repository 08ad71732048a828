// Package metrics provides Prometheus metrics for the remote catalog API and
// the response cache in front of it.
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint together with the HTTP server metrics.
//
// Example usage:
//
//	import "egreen-site/internal/observability/metrics"
//
//	start := time.Now()
//	body, err := call()
//	metrics.RecordCatalogRequest("product", "GET", "success", time.Since(start), len(body))
package metrics
