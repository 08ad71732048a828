package config

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	pkgconfig "egreen-site/internal/pkg/config"
)

// Metrics tracks how the site configuration was loaded.
var Metrics = pkgconfig.NewConfigMetrics("site")

// envLoader applies environment overrides and collects the warnings of
// rejected values.
type envLoader struct {
	warnings []string
}

func apply[T any](l *envLoader, field string, dst *T, r pkgconfig.Result[T]) {
	if r.FallbackApplied {
		l.warnings = append(l.warnings, r.Warning)
		Metrics.RecordFallback(field)
		return
	}
	*dst = r.Value
}

// applyEnv overlays environment variables onto c. A rejected value leaves
// the field unchanged.
func (c *Config) applyEnv() []string {
	l := &envLoader{}

	apply(l, "addr", &c.Server.Addr, pkgconfig.LoadEnv("SITE_ADDR", c.Server.Addr, parseString, nil))
	apply(l, "read_header_timeout", &c.Server.ReadHeaderTimeout, pkgconfig.LoadEnvDuration("SITE_READ_HEADER_TIMEOUT", c.Server.ReadHeaderTimeout, pkgconfig.ValidatePositiveDuration))
	apply(l, "request_timeout", &c.Server.RequestTimeout, pkgconfig.LoadEnvDuration("SITE_REQUEST_TIMEOUT", c.Server.RequestTimeout, pkgconfig.ValidatePositiveDuration))
	apply(l, "shutdown_timeout", &c.Server.ShutdownTimeout, pkgconfig.LoadEnvDuration("SITE_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout, pkgconfig.ValidatePositiveDuration))
	c.Server.Version = pkgconfig.LoadEnvString("VERSION", c.Server.Version)

	apply(l, "locales", &c.Locales.Supported, pkgconfig.LoadEnvList("SITE_LOCALES", c.Locales.Supported, nil))
	c.Locales.Fallback = pkgconfig.LoadEnvString("SITE_FALLBACK_LOCALE", c.Locales.Fallback)
	apply(l, "rtl_locales", &c.Locales.RTL, pkgconfig.LoadEnvList("SITE_RTL_LOCALES", c.Locales.RTL, nil))

	apply(l, "catalog_base_url", &c.Catalog.BaseURL, pkgconfig.LoadEnvWithFallback("CATALOG_API_BASE_URL", c.Catalog.BaseURL, pkgconfig.ValidateHTTPURL))
	apply(l, "catalog_timeout", &c.Catalog.Timeout, pkgconfig.LoadEnvDuration("CATALOG_API_TIMEOUT", c.Catalog.Timeout, pkgconfig.ValidatePositiveDuration))
	apply(l, "catalog_max_body_bytes", &c.Catalog.MaxBodyBytes, pkgconfig.LoadEnv("CATALOG_API_MAX_BODY_BYTES", c.Catalog.MaxBodyBytes, parseInt64, positiveInt64))
	apply(l, "catalog_mutation_rate", &c.Catalog.MutationRate, pkgconfig.LoadEnvFloat("CATALOG_API_MUTATION_RATE", c.Catalog.MutationRate, pkgconfig.ValidatePositiveFloat))
	apply(l, "catalog_mutation_burst", &c.Catalog.MutationBurst, pkgconfig.LoadEnvInt("CATALOG_API_MUTATION_BURST", c.Catalog.MutationBurst, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 100)
	}))
	apply(l, "catalog_page_size", &c.Catalog.PageSize, pkgconfig.LoadEnvInt("CATALOG_API_PAGE_SIZE", c.Catalog.PageSize, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 100)
	}))

	apply(l, "contact_rate_limit", &c.Contact.RateLimit, pkgconfig.LoadEnvFloat("CONTACT_RATE_LIMIT", c.Contact.RateLimit, pkgconfig.ValidatePositiveFloat))
	apply(l, "contact_rate_burst", &c.Contact.Burst, pkgconfig.LoadEnvInt("CONTACT_RATE_BURST", c.Contact.Burst, func(v int) error {
		return pkgconfig.ValidateIntRange(v, 1, 1000)
	}))
	apply(l, "contact_trust_proxy", &c.Contact.TrustProxy, pkgconfig.LoadEnvBool("CONTACT_TRUST_PROXY", c.Contact.TrustProxy))

	apply(l, "cors_allowed_origins", &c.CORS.AllowedOrigins, pkgconfig.LoadEnvList("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins, nil))

	c.Revalidate.Token = pkgconfig.LoadEnvString("REVALIDATE_TOKEN", c.Revalidate.Token)
	apply(l, "revalidate_schedule", &c.Revalidate.Schedule, pkgconfig.LoadEnvWithFallback("REVALIDATE_SCHEDULE", c.Revalidate.Schedule, pkgconfig.ValidateCronSchedule))
	apply(l, "revalidate_timezone", &c.Revalidate.Timezone, pkgconfig.LoadEnvWithFallback("REVALIDATE_TIMEZONE", c.Revalidate.Timezone, pkgconfig.ValidateTimezone))
	apply(l, "revalidate_tags", &c.Revalidate.Tags, pkgconfig.LoadEnvList("REVALIDATE_TAGS", c.Revalidate.Tags, validateTags))
	apply(l, "revalidate_timeout", &c.Revalidate.Timeout, pkgconfig.LoadEnvDuration("REVALIDATE_TIMEOUT", c.Revalidate.Timeout, pkgconfig.ValidatePositiveDuration))
	apply(l, "revalidate_warm", &c.Revalidate.Warm, pkgconfig.LoadEnvBool("REVALIDATE_WARM", c.Revalidate.Warm))

	c.Log.Level = pkgconfig.LoadEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = pkgconfig.LoadEnvString("LOG_FORMAT", c.Log.Format)

	apply(l, "tracing_enabled", &c.Tracing.Enabled, pkgconfig.LoadEnvBool("TRACING_ENABLED", c.Tracing.Enabled))
	apply(l, "tracing_sample_ratio", &c.Tracing.SampleRatio, pkgconfig.LoadEnvFloat("TRACING_SAMPLE_RATIO", c.Tracing.SampleRatio, validateRatio))

	Metrics.SetFallbackActive(len(l.warnings) > 0)
	Metrics.RecordLoadTimestamp()
	return l.warnings
}

// LogWarnings logs each ignored environment value.
func LogWarnings(logger *slog.Logger, warnings []string) {
	for _, w := range warnings {
		logger.Warn("Configuration fallback applied", slog.String("warning", w))
	}
}

func parseString(s string) (string, error) { return strings.TrimSpace(s), nil }

func parseInt64(s string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer format")
	}
	return v, nil
}

func positiveInt64(v int64) error {
	if v <= 0 {
		return fmt.Errorf("value must be positive, got %d", v)
	}
	return nil
}

func validateRatio(v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("ratio must be between 0.0 and 1.0, got %v", v)
	}
	return nil
}
