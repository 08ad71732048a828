package http

import (
	"net/http"

	"egreen-site/internal/handler/http/respond"
)

// RevalidateTokenHeader carries the shared secret for cache revalidation.
const RevalidateTokenHeader = "X-Revalidate-Token"

// Input limits enforced by InputValidation.
const (
	maxTokenHeaderBytes = 1024
	maxPathBytes        = 2048
	maxQueryBytes       = 2048
	maxBodyBytes        = 64 << 10
)

// InputValidation returns middleware that rejects oversized inputs before
// they reach a handler: the revalidation token header, the path, the query
// string (search terms) and the body (contact form).
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.Header.Get(RevalidateTokenHeader)) > maxTokenHeaderBytes {
				respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "revalidate token header too large"})
				return
			}
			if len(r.URL.Path) > maxPathBytes {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			if len(r.URL.RawQuery) > maxQueryBytes {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "query string too long"})
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}
