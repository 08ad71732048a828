package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"egreen-site/internal/handler/http/respond"
)

// Timeout returns middleware that answers 504 when the handler has not
// responded within duration. The handler's context is cancelled so pending
// catalog API calls are abandoned.
//
// The handler writes to its own header map; only one of the handler and the
// timeout path ever writes to the real response.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutResponseWriter{w: w, h: make(http.Header)}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case p := <-panicked:
				// 上位の Recover に委ねる
				panic(p)
			case <-done:
				return
			case <-ctx.Done():
				tw.mu.Lock()
				defer tw.mu.Unlock()
				tw.timedOut = true
				if !tw.wroteHeader {
					respond.JSON(w, http.StatusGatewayTimeout, map[string]string{"error": "request timeout"})
				}
			}
		})
	}
}

// timeoutResponseWriter holds the handler's headers until it writes and
// drops writes once the timeout has answered.
type timeoutResponseWriter struct {
	w           http.ResponseWriter
	h           http.Header
	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
}

func (tw *timeoutResponseWriter) Header() http.Header {
	return tw.h
}

func (tw *timeoutResponseWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	tw.writeHeaderLocked(statusCode)
}

func (tw *timeoutResponseWriter) writeHeaderLocked(statusCode int) {
	if tw.timedOut || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	dst := tw.w.Header()
	for k, vv := range tw.h {
		dst[k] = vv
	}
	tw.w.WriteHeader(statusCode)
}

func (tw *timeoutResponseWriter) Write(data []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	tw.writeHeaderLocked(http.StatusOK)
	return tw.w.Write(data)
}
