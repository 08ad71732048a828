package http

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// CORSConfig is the cross-origin policy for the storefront front end.
type CORSConfig struct {
	// AllowedOrigins lists permitted origins. "*" allows any origin.
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	// MaxAge is how long browsers may cache a preflight, in seconds.
	MaxAge int
	Logger *slog.Logger
}

// DefaultCORSConfig allows the read routes and the contact form.
func DefaultCORSConfig(origins []string) CORSConfig {
	return CORSConfig{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}
}

func (c CORSConfig) allows(origin string) bool {
	return slices.Contains(c.AllowedOrigins, "*") || slices.Contains(c.AllowedOrigins, origin)
}

// CORS returns middleware applying cfg. Requests without an Origin header
// pass through untouched; disallowed origins get no CORS headers, so the
// browser blocks the response. Allowed preflights are answered with 204.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !cfg.allows(origin) {
				if cfg.Logger != nil {
					cfg.Logger.Warn("CORS: origin not allowed",
						slog.String("origin", origin),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.AllowedHeaders, ", "))
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
