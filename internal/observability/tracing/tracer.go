package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "egreen-site"

// tracer is the global tracer instance for the storefront.
var tracer = otel.Tracer(instrumentationName)

// GetTracer returns the global tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// Setup installs an SDK tracer provider that samples sampleRatio of new
// traces and follows the parent's decision otherwise, and the W3C trace
// context and baggage propagators. Exporters are passed as opts, e.g.
// sdktrace.WithBatcher(exp). The returned function flushes and shuts the
// provider down.
func Setup(serviceName, version string, sampleRatio float64, opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	res := sdkresource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
	)
	all := append([]sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio))),
	}, opts...)

	tp := sdktrace.NewTracerProvider(all...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	tracer = tp.Tracer(instrumentationName)
	return tp.Shutdown
}

// StartClientSpan starts a span for an outgoing call to a remote service.
func StartClientSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...),
	)
}

// EndWithError records err on span, when non-nil, and ends it.
func EndWithError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
