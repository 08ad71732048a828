// Package catalogapi is the client for the remote catalog REST API.
//
// Every read goes through a tag-aware response Cache that de-duplicates
// concurrent identical requests. Responses are validated against the
// expected envelope before they are cached, and every failure is reported
// as a *FetchError. Reads are never retried automatically.
package catalogapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"egreen-site/internal/observability/metrics"
	"egreen-site/internal/observability/tracing"
	"egreen-site/internal/resilience/circuitbreaker"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel/attribute"
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds the client settings.
type Config struct {
	// BaseURL is the API root, e.g. https://api.example.com/api/v1.
	BaseURL string

	// Timeout bounds a single upstream call.
	Timeout time.Duration

	// MaxBodyBytes caps how much of a response is read.
	MaxBodyBytes int64

	// MutationRate and MutationBurst throttle POST requests.
	MutationRate  float64
	MutationBurst int

	UserAgent string
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{
		Timeout:       10 * time.Second,
		MaxBodyBytes:  4 << 20,
		MutationRate:  1,
		MutationBurst: 3,
		UserAgent:     "egreen-site/1.0",
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("catalog api base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid catalog api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid catalog api base url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("invalid catalog api base url: missing host")
	}
	if c.Timeout <= 0 {
		return errors.New("catalog api timeout must be positive")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("catalog api max body bytes must be positive")
	}
	if c.MutationRate <= 0 || c.MutationBurst <= 0 {
		return errors.New("catalog api mutation rate and burst must be positive")
	}
	return nil
}

// Client talks to the catalog API.
type Client struct {
	cfg     Config
	baseURL string
	doer    Doer
	cache   *Cache
	breaker *circuitbreaker.CircuitBreaker
	limiter *MutationLimiter
	logger  *slog.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithCache shares a cache between clients. Without it each client gets its own.
func WithCache(cache *Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) { c.breaker = cb }
}

// WithLogger sets the logger used for upstream failures and invalidations.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client. Zero-valued fields in cfg take their defaults.
func New(cfg Config, opts ...Option) (*Client, error) {
	def := DefaultConfig()
	if cfg.Timeout == 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxBodyBytes == 0 {
		cfg.MaxBodyBytes = def.MaxBodyBytes
	}
	if cfg.MutationRate == 0 {
		cfg.MutationRate = def.MutationRate
	}
	if cfg.MutationBurst == 0 {
		cfg.MutationBurst = def.MutationBurst
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:     cfg,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: cfg.Timeout}
	}
	if c.cache == nil {
		c.cache = NewCache()
	}
	if c.breaker == nil {
		bc := circuitbreaker.CatalogAPIConfig()
		bc.IsSuccessful = countsAsSuccess
		bc.Logger = c.logger
		bc.OnStateChange = func(name string, _, to gobreaker.State) {
			metrics.UpdateCircuitBreakerState(name, int(to))
		}
		c.breaker = circuitbreaker.New(bc)
	}
	if c.limiter == nil {
		c.limiter = NewMutationLimiter(cfg.MutationRate, cfg.MutationBurst)
	}
	return c, nil
}

// Cache returns the client's response cache.
func (c *Client) Cache() *Cache { return c.cache }

// BreakerState returns the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State { return c.breaker.State() }

// Invalidate drops cached responses carrying any of tags.
func (c *Client) Invalidate(tags ...Tag) int {
	removed := c.cache.Invalidate(tags...)
	remaining := c.cache.Len()
	for _, t := range tags {
		metrics.RecordCacheInvalidation(string(t), remaining)
	}
	c.logger.Info("catalog cache invalidated",
		slog.Any("tags", tags),
		slog.Int("removed", removed))
	return removed
}

// send performs one upstream call through the circuit breaker and returns the
// body once its envelope has been validated. resource labels metrics and spans.
func (c *Client) send(ctx context.Context, method, resource, path string, payload []byte) ([]byte, error) {
	start := time.Now()
	ctx, span := tracing.StartClientSpan(ctx, "catalogapi "+method+" "+resource,
		attribute.String("catalog.resource", resource),
		attribute.String("http.method", method),
	)

	body, err := circuitbreaker.Do(c.breaker, func() ([]byte, error) {
		return c.roundTrip(ctx, method, path, payload)
	})
	if err != nil && circuitbreaker.IsRejection(err) {
		err = &FetchError{Kind: KindNetwork, Message: "catalog api unavailable", Err: err}
	}
	result := "success"
	if fe, ok := AsFetchError(err); ok {
		result = fe.Kind.String()
		span.SetAttributes(attribute.Int("http.status_code", fe.Status))
	}
	metrics.RecordCatalogRequest(resource, method, result, time.Since(start), len(body))
	tracing.EndWithError(span, err)

	if err != nil {
		level := slog.LevelWarn
		if IsNotFound(err) {
			level = slog.LevelDebug
		}
		c.logger.Log(ctx, level, "catalog api request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err))
		return nil, err
	}
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Message: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, &FetchError{Kind: KindNetwork, Status: resp.StatusCode, Message: "read response", Err: err}
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, &FetchError{Kind: KindMalformed, Status: resp.StatusCode, Message: "response body too large"}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &FetchError{Kind: KindNotFound, Status: resp.StatusCode, Message: errorMessage(body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &FetchError{Kind: KindServer, Status: resp.StatusCode, Message: errorMessage(body)}
	}

	if _, err := parseEnvelope(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return body, nil
}

// fetch reads resource through the cache and decodes it into T. The shape is
// checked before the body is cached so a malformed response is never stored.
func fetch[T any](ctx context.Context, c *Client, resource, path string, q Query, tags []Tag, check func(*T) error) (*T, error) {
	key := CacheKey(path, q)
	target := path
	if sig := q.Signature(); sig != "" {
		target += "?" + sig
	}

	body, outcome, err := c.cache.Do(ctx, key, tags, func(fctx context.Context) ([]byte, error) {
		b, err := c.send(fctx, http.MethodGet, resource, target, nil)
		if err != nil {
			return nil, err
		}
		if _, err := decodeData(b, check); err != nil {
			return nil, err
		}
		return b, nil
	})
	if err != nil {
		metrics.RecordCacheLookup(resource, "error")
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return nil, &FetchError{Kind: KindNetwork, Message: "request cancelled", Err: err}
		}
		return nil, err
	}
	metrics.RecordCacheLookup(resource, outcome.String())
	if outcome == OutcomeMiss {
		metrics.UpdateCacheEntries(c.cache.Len())
	}
	return decodeData(body, check)
}
