// Package resilience provides fault tolerance patterns for calls to the
// remote catalog API.
//
// The circuitbreaker subpackage wraps sony/gobreaker so a failing catalog API
// is short-circuited instead of being hammered by every page view. Reads are
// never retried automatically; a failed fetch surfaces to the caller, which
// may retry on user request.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.CatalogAPIConfig())
//	body, err := circuitbreaker.Do(cb, func() ([]byte, error) {
//	    return callCatalogAPI()
//	})
package resilience
