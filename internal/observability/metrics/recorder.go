package metrics

import "time"

// RecordCatalogRequest records one upstream call. result is "success" or an
// error kind such as "not_found".
func RecordCatalogRequest(resource, method, result string, duration time.Duration, size int) {
	CatalogRequestsTotal.WithLabelValues(resource, method, result).Inc()
	CatalogRequestDuration.WithLabelValues(resource, method).Observe(duration.Seconds())
	if size > 0 {
		CatalogResponseSize.WithLabelValues(resource).Observe(float64(size))
	}
}

// RecordCacheLookup records the outcome of a cache lookup.
func RecordCacheLookup(resource, outcome string) {
	CacheLookupsTotal.WithLabelValues(resource, outcome).Inc()
}

// RecordCacheInvalidation records an invalidation of tag and the resulting
// number of cached entries.
func RecordCacheInvalidation(tag string, remaining int) {
	CacheInvalidationsTotal.WithLabelValues(tag).Inc()
	CacheEntries.Set(float64(remaining))
}

// UpdateCacheEntries sets the cached response count.
func UpdateCacheEntries(n int) {
	CacheEntries.Set(float64(n))
}

// UpdateCircuitBreakerState sets the breaker state gauge.
func UpdateCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
