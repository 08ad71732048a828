package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // REVALIDATE_TIMEZONE on hosts without zoneinfo

	"github.com/prometheus/client_golang/prometheus"
	flag "github.com/spf13/pflag"

	"egreen-site/internal/config"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/infra/worker"
	"egreen-site/internal/observability/logging"
	"egreen-site/internal/observability/tracing"

	artUC "egreen-site/internal/usecase/article"
	contactUC "egreen-site/internal/usecase/contact"
	prodUC "egreen-site/internal/usecase/product"

	hhttp "egreen-site/internal/handler/http"
	harticle "egreen-site/internal/handler/http/article"
	hcategory "egreen-site/internal/handler/http/category"
	hcontact "egreen-site/internal/handler/http/contact"
	hproduct "egreen-site/internal/handler/http/product"
	"egreen-site/internal/handler/http/requestid"
	hrevalidate "egreen-site/internal/handler/http/revalidate"
)

func main() {
	configPath := flag.StringP("config", "c", os.Getenv("SITE_CONFIG"), "path to an optional YAML config file")
	flag.Parse()

	cfg, warnings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)
	config.LogWarnings(logger, warnings)

	shutdownTracing := initTracing(logger, cfg)
	components := setupServer(logger, cfg)

	runServer(logger, cfg, components)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracing(ctx); err != nil {
		logger.Error("tracer shutdown failed", slog.Any("error", err))
	}
}

// initLogger builds the process logger from the log section and makes it
// the slog default.
func initLogger(cfg *config.Config) *slog.Logger {
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		// Validate has already checked level and format
		logger = logging.NewLogger()
	}
	slog.SetDefault(logger)
	return logger
}

// initTracing installs the tracer provider when tracing is enabled and
// returns its shutdown function.
func initTracing(logger *slog.Logger, cfg *config.Config) func(context.Context) error {
	if !cfg.Tracing.Enabled {
		return func(context.Context) error { return nil }
	}
	logger.Info("tracing enabled", slog.Float64("sample_ratio", cfg.Tracing.SampleRatio))
	return tracing.Setup("egreen-site", cfg.Server.Version, cfg.Tracing.SampleRatio)
}

// ServerComponents holds what runServer needs besides the handler.
type ServerComponents struct {
	Handler        http.Handler
	ContactLimiter *hhttp.IPRateLimiter
	Scheduler      *worker.Scheduler // nil when scheduled revalidation is off
}

// setupServer builds the catalog client, the use cases and the routes.
func setupServer(logger *slog.Logger, cfg *config.Config) *ServerComponents {
	locales, err := i18n.NewResolver(cfg.I18n())
	if err != nil {
		logger.Error("invalid locale configuration", slog.Any("error", err))
		os.Exit(1)
	}

	client, err := catalogapi.New(cfg.CatalogAPI(), catalogapi.WithLogger(logger))
	if err != nil {
		logger.Error("failed to create catalog api client", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("catalog api client ready",
		slog.String("base_url", cfg.Catalog.BaseURL),
		slog.Duration("timeout", cfg.Catalog.Timeout))

	prodSvc := &prodUC.Service{API: client, Locales: locales, PageSize: cfg.Catalog.PageSize, Logger: logger}
	artSvc := &artUC.Service{API: client, Locales: locales}
	contactSvc := &contactUC.Service{API: client}

	contactLimiter := hhttp.NewIPRateLimiter(cfg.Contact.RateLimit, cfg.Contact.Burst, cfg.Contact.IdleTTL)
	contactLimiter.TrustProxy = cfg.Contact.TrustProxy
	if cfg.Contact.TrustProxy {
		logger.Info("contact rate limiting: trusting X-Forwarded-For / X-Real-IP")
	} else {
		logger.Info("contact rate limiting: using RemoteAddr (proxy headers ignored)")
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", &hhttp.HealthHandler{
		Catalog:        client,
		Cache:          client.Cache(),
		ContactLimiter: contactLimiter,
		Version:        cfg.Server.Version,
	})
	mux.Handle("GET /ready", &hhttp.ReadyHandler{Catalog: client})
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	hproduct.Register(mux, prodSvc, locales, cfg.Pagination(), logger)
	hcategory.Register(mux, prodSvc, locales, logger)
	harticle.Register(mux, artSvc, locales, logger)
	hcontact.Register(mux, contactSvc, locales, contactLimiter, logger)
	hrevalidate.Register(mux, client, cfg.Revalidate.Token, logger)
	if cfg.Revalidate.Token == "" {
		logger.Warn("REVALIDATE_TOKEN is empty: POST /revalidate is disabled")
	}

	scheduler := setupScheduler(logger, cfg, client)

	return &ServerComponents{
		Handler:        applyMiddleware(logger, cfg, mux),
		ContactLimiter: contactLimiter,
		Scheduler:      scheduler,
	}
}

// setupScheduler prepares the cron revalidation job, or returns nil when no
// schedule is configured.
func setupScheduler(logger *slog.Logger, cfg *config.Config, client *catalogapi.Client) *worker.Scheduler {
	if cfg.Revalidate.Schedule == "" {
		logger.Info("scheduled revalidation disabled")
		return nil
	}

	job := &worker.Job{
		Cache:   client,
		Metrics: worker.NewMetrics(prometheus.DefaultRegisterer),
		Logger:  logger,
	}
	if cfg.Revalidate.Warm {
		job.Warmers = map[string]worker.Warmer{
			"products": func(ctx context.Context) error {
				_, err := client.ListProducts(ctx, catalogapi.Query{Page: 1, Limit: cfg.Catalog.PageSize})
				return err
			},
			"categories": func(ctx context.Context) error {
				_, err := client.ListCategories(ctx)
				return err
			},
			"articles": func(ctx context.Context) error {
				_, err := client.ListArticles(ctx)
				return err
			},
		}
	}

	scheduler, err := worker.NewScheduler(worker.Config{
		Schedule: cfg.Revalidate.Schedule,
		Timezone: cfg.Revalidate.Timezone,
		Tags:     cfg.RevalidateTags(),
		Timeout:  cfg.Revalidate.Timeout,
		Warm:     cfg.Revalidate.Warm,
	}, job, logger)
	if err != nil {
		logger.Error("failed to create revalidation scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	return scheduler
}

// applyMiddleware wraps the handler with the middleware chain.
// Order, outermost first: Request ID → Tracing → Logging → Recovery → Metrics
// → Security headers → CORS → Input validation → Timeout.
func applyMiddleware(logger *slog.Logger, cfg *config.Config, handler http.Handler) http.Handler {
	corsConfig := hhttp.DefaultCORSConfig(cfg.CORS.AllowedOrigins)
	logger.Info("CORS enabled",
		slog.Any("allowed_origins", corsConfig.AllowedOrigins),
		slog.Any("allowed_methods", corsConfig.AllowedMethods))

	chain := handler

	// Apply in reverse order (innermost to outermost)
	chain = hhttp.Timeout(cfg.Server.RequestTimeout)(chain)
	chain = hhttp.InputValidation()(chain)
	chain = hhttp.CORS(corsConfig)(chain)
	chain = hhttp.SecurityHeaders(hhttp.APIPolicy())(chain)
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Recover(logger)(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = tracing.Middleware(chain)
	chain = requestid.Middleware(chain)

	return chain
}

// runServer starts the HTTP server and background work, and blocks until
// SIGINT or SIGTERM, then shuts everything down gracefully.
func runServer(logger *slog.Logger, cfg *config.Config, components *ServerComponents) {
	// Create a context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hhttp.StartRateLimitCleanup(ctx, components.ContactLimiter, hhttp.DefaultCleanupInterval)

	if components.Scheduler != nil {
		components.Scheduler.Start()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", cfg.Server.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if components.Scheduler != nil {
		if err := components.Scheduler.Stop(shutdownCtx); err != nil {
			logger.Warn("revalidation job did not finish before shutdown", slog.Any("error", err))
		}
	}

	// Cancel background goroutines (rate limit cleanup)
	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
