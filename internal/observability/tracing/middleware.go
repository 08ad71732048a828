package tracing

import (
	"net/http"

	"egreen-site/internal/handler/http/pathutil"
	"egreen-site/internal/handler/http/responsewriter"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader carries the trace ID back to the caller.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request, continuing any W3C trace
// context the caller sent. Spans are named "<METHOD> <route>" where route is
// the path with locale and IDs replaced by placeholders, so
// "/en/products/p01" becomes "GET /:locale/products/:id".
//
//	handler := tracing.Middleware(mux)
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := tracer.Start(ctx, r.Method+" "+route, trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.path", r.URL.Path),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", rw.StatusCode()),
		)
		// 4xx is the caller's problem, not ours
		if rw.StatusCode() >= http.StatusInternalServerError {
			span.SetAttributes(attribute.Bool("error", true))
		}
	})
}
