// Package tracing provides OpenTelemetry tracing integration.
//
// Middleware starts a server span per incoming request, named after the
// route template, and propagates W3C trace context. StartClientSpan wraps
// outgoing catalog API calls so the two are linked in a single trace.
//
// Setup installs the SDK provider at startup. Without it the global no-op
// provider is used and spans cost nothing. Tests install an in-memory
// exporter from go.opentelemetry.io/otel/sdk/trace/tracetest.
//
//	ctx, span := tracing.StartClientSpan(ctx, "catalogapi GET product")
//	defer tracing.EndWithError(span, err)
package tracing
