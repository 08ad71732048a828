package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{name: "with request ID", ctx: WithRequestID(context.Background(), "test-id-123"), expected: "test-id-123"},
		{name: "without request ID", ctx: context.Background(), expected: ""},
		{name: "with invalid type in context", ctx: context.WithValue(context.Background(), RequestIDKey, 12345), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromContext(tt.ctx))
		})
	}
}

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		propagate bool
	}{
		{name: "existing id is propagated", header: "existing-request-id-456", propagate: true},
		{name: "missing id is generated", header: ""},
		{name: "id with spaces is replaced", header: "has spaces"},
		{name: "id with newline is replaced", header: "abc\r\ninjected: 1"},
		{name: "oversized id is replaced", header: strings.Repeat("a", MaxLength+1)},
		{name: "id at limit is kept", header: strings.Repeat("a", MaxLength), propagate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured string
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/en/products", nil)
			if tt.header != "" {
				req.Header[RequestIDHeader] = []string{tt.header}
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, captured, rec.Header().Get(RequestIDHeader))
			if tt.propagate {
				assert.Equal(t, tt.header, captured)
				return
			}
			_, err := uuid.Parse(captured)
			require.NoError(t, err, "generated id should be a UUID")
		})
	}
}

func TestMiddleware_UniqueIDs(t *testing.T) {
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
		id := rec.Header().Get(RequestIDHeader)
		assert.False(t, seen[id], "duplicate request ID %s", id)
		seen[id] = true
	}
}
