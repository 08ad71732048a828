package config

import (
	"errors"
	"fmt"
	"strings"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/domain/entity"
	"egreen-site/internal/i18n"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/observability/logging"
	pkgconfig "egreen-site/internal/pkg/config"
)

// minTokenLength is the shortest revalidation token accepted.
const minTokenLength = 16

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, errors.New("server.addr: cannot be empty"))
	}
	add("server.read_header_timeout", pkgconfig.ValidatePositiveDuration(c.Server.ReadHeaderTimeout))
	add("server.request_timeout", pkgconfig.ValidatePositiveDuration(c.Server.RequestTimeout))
	add("server.shutdown_timeout", pkgconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout))

	add("locales", c.I18n().Validate())

	add("catalog.base_url", pkgconfig.ValidateHTTPURL(c.Catalog.BaseURL))
	if c.Catalog.BaseURL != "" {
		add("catalog", c.CatalogAPI().Validate())
	}
	add("catalog.page_size", c.Pagination().Validate())

	add("contact.rate_limit", pkgconfig.ValidatePositiveFloat(c.Contact.RateLimit))
	add("contact.burst", pkgconfig.ValidateIntRange(c.Contact.Burst, 1, 1000))
	add("contact.idle_ttl", pkgconfig.ValidatePositiveDuration(c.Contact.IdleTTL))

	for _, o := range c.CORS.AllowedOrigins {
		if o != "*" {
			add("cors.allowed_origins", pkgconfig.ValidateHTTPURL(o))
		}
	}

	if c.Revalidate.Token != "" && len(c.Revalidate.Token) < minTokenLength {
		errs = append(errs, fmt.Errorf("revalidate.token: must be at least %d characters", minTokenLength))
	}
	if c.Revalidate.Schedule != "" {
		add("revalidate.schedule", pkgconfig.ValidateCronSchedule(c.Revalidate.Schedule))
		add("revalidate.timezone", pkgconfig.ValidateTimezone(c.Revalidate.Timezone))
	}
	add("revalidate.tags", validateTags(c.Revalidate.Tags))
	add("revalidate.timeout", pkgconfig.ValidatePositiveDuration(c.Revalidate.Timeout))

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		add("log.level", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", logging.FormatJSON, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	add("tracing.sample_ratio", validateRatio(c.Tracing.SampleRatio))

	return errors.Join(errs...)
}

func validateTags(tags []string) error {
	for _, t := range tags {
		if _, ok := catalogapi.ParseTag(t); !ok {
			return fmt.Errorf("unknown tag %q", t)
		}
	}
	return nil
}

// I18n returns the locale configuration.
func (c *Config) I18n() i18n.Config {
	return i18n.Config{
		Supported: toLocales(c.Locales.Supported),
		Fallback:  entity.Locale(strings.TrimSpace(c.Locales.Fallback)),
		RTL:       toLocales(c.Locales.RTL),
	}
}

// CatalogAPI returns the catalog client configuration.
func (c *Config) CatalogAPI() catalogapi.Config {
	cfg := catalogapi.DefaultConfig()
	cfg.BaseURL = c.Catalog.BaseURL
	cfg.Timeout = c.Catalog.Timeout
	cfg.MaxBodyBytes = c.Catalog.MaxBodyBytes
	cfg.MutationRate = c.Catalog.MutationRate
	cfg.MutationBurst = c.Catalog.MutationBurst
	if c.Server.Version != "" {
		cfg.UserAgent = "egreen-site/" + c.Server.Version
	}
	return cfg
}

// Pagination returns the list query configuration. The default limit is the
// catalog page size.
func (c *Config) Pagination() pagination.Config {
	cfg := pagination.DefaultConfig()
	cfg.DefaultLimit = c.Catalog.PageSize
	return cfg
}

// RevalidateTags returns the tags the scheduled job invalidates; none
// configured means every tag.
func (c *Config) RevalidateTags() []catalogapi.Tag {
	if len(c.Revalidate.Tags) == 0 {
		return catalogapi.AllTags()
	}
	out := make([]catalogapi.Tag, 0, len(c.Revalidate.Tags))
	for _, raw := range c.Revalidate.Tags {
		if t, ok := catalogapi.ParseTag(raw); ok {
			out = append(out, t)
		}
	}
	return out
}

// Logging returns the logger options.
func (c *Config) Logging() logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format}
}

func toLocales(codes []string) []entity.Locale {
	out := make([]entity.Locale, 0, len(codes))
	for _, code := range codes {
		out = append(out, entity.Locale(strings.ToLower(strings.TrimSpace(code))))
	}
	return out
}
