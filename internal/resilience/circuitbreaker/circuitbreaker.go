// Package circuitbreaker guards calls to the catalog API with
// github.com/sony/gobreaker so an outage is short-circuited instead of being
// hit by every page view.
package circuitbreaker

import (
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"
)

// Config holds the breaker settings.
type Config struct {
	Name string

	// MaxRequests is how many trial calls pass while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts; Timeout is how long the
	// breaker stays open before going half-open.
	Interval time.Duration
	Timeout  time.Duration

	// The breaker trips once at least MinRequests calls were counted and the
	// failure ratio reaches FailureThreshold (0.6 = 60%).
	FailureThreshold float64
	MinRequests      uint32

	// IsSuccessful decides whether an error counts against the circuit.
	// Nil means only a nil error is a success.
	IsSuccessful func(err error) bool

	// OnStateChange is called after each transition, in addition to logging.
	OnStateChange func(name string, from, to gobreaker.State)

	// Logger receives state changes; nil means slog.Default().
	Logger *slog.Logger
}

// CatalogAPIConfig returns the settings for the catalog REST API. Pages
// cannot render without it, so the open state is kept short.
func CatalogAPIConfig() Config {
	return Config{
		Name:             "catalog-api",
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          15 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
	}
}

// CircuitBreaker is a named gobreaker instance.
type CircuitBreaker struct {
	cb   *gobreaker.CircuitBreaker
	name string
}

// New creates a breaker from cfg.
func New(cfg Config) *CircuitBreaker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	minRequests, threshold := cfg.MinRequests, cfg.FailureThreshold

	return &CircuitBreaker{
		name: cfg.Name,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:         cfg.Name,
			MaxRequests:  cfg.MaxRequests,
			Interval:     cfg.Interval,
			Timeout:      cfg.Timeout,
			IsSuccessful: cfg.IsSuccessful,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.Requests >= minRequests &&
					float64(c.TotalFailures)/float64(c.Requests) >= threshold
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("circuit breaker state changed",
					slog.String("circuit", name),
					slog.String("from", from.String()),
					slog.String("to", to.String()))
				if cfg.OnStateChange != nil {
					cfg.OnStateChange(name, from, to)
				}
			},
		}),
	}
}

// Do runs fn through cb. While the circuit is open fn is not called and the
// error satisfies IsRejection.
func Do[T any](cb *CircuitBreaker, fn func() (T, error)) (T, error) {
	out, err := cb.cb.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		var zero T
		if v, ok := out.(T); ok {
			return v, err
		}
		return zero, err
	}
	return out.(T), nil
}

// State returns the current state.
func (cb *CircuitBreaker) State() gobreaker.State { return cb.cb.State() }

// Name returns the breaker name.
func (cb *CircuitBreaker) Name() string { return cb.name }

// IsOpen reports whether calls are currently being rejected.
func (cb *CircuitBreaker) IsOpen() bool { return cb.cb.State() == gobreaker.StateOpen }

// IsRejection reports whether err came from the breaker rather than from
// the wrapped call.
func IsRejection(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
