package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"egreen-site/internal/handler/http/requestid"

	"go.opentelemetry.io/otel/trace"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Options configures New.
type Options struct {
	Level  string    // debug, info, warn or error; empty means info
	Format string    // json or text; empty means json
	Output io.Writer // nil means stdout
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// New creates a structured logger. Source locations are added at debug level.
func New(opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	hopts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	switch strings.ToLower(opts.Format) {
	case "", FormatJSON:
		return slog.New(slog.NewJSONHandler(out, hopts)), nil
	case FormatText:
		return slog.New(slog.NewTextHandler(out, hopts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
}

// NewLogger creates a JSON logger on stdout with the level taken from
// LOG_LEVEL. An unknown level falls back to info.
func NewLogger() *slog.Logger {
	logger, err := New(Options{Level: os.Getenv("LOG_LEVEL")})
	if err != nil {
		logger, _ = New(Options{})
	}
	return logger
}

// WithRequestID returns logger enriched with the request ID and, when a span
// is recording, the trace ID found in ctx.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if reqID := requestid.FromContext(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		logger = logger.With("trace_id", sc.TraceID().String())
	}
	return logger
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"
