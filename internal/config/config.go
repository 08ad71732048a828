// Package config loads the storefront configuration.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional YAML file, and environment variables. Environment values that
// cannot be parsed are ignored with a warning (fail-open); the merged result
// is then validated and any remaining problem is fatal.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"egreen-site/internal/common/pagination"
	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/observability/logging"
)

// Config is the complete storefront configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Locales    LocalesConfig    `yaml:"locales"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Contact    ContactConfig    `yaml:"contact"`
	CORS       CORSConfig       `yaml:"cors"`
	Revalidate RevalidateConfig `yaml:"revalidate"`
	Log        LogConfig        `yaml:"log"`
	Tracing    TracingConfig    `yaml:"tracing"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr              string        `yaml:"addr"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	Version           string        `yaml:"version"`
}

// LocalesConfig lists the locales the site serves.
type LocalesConfig struct {
	Supported []string `yaml:"supported"`
	Fallback  string   `yaml:"fallback"`
	RTL       []string `yaml:"rtl"`
}

// CatalogConfig configures the catalog API client.
type CatalogConfig struct {
	BaseURL       string        `yaml:"base_url"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes"`
	MutationRate  float64       `yaml:"mutation_rate"`
	MutationBurst int           `yaml:"mutation_burst"`
	PageSize      int           `yaml:"page_size"`
}

// ContactConfig throttles contact form submissions per client IP.
type ContactConfig struct {
	RateLimit  float64       `yaml:"rate_limit"`
	Burst      int           `yaml:"burst"`
	IdleTTL    time.Duration `yaml:"idle_ttl"`
	TrustProxy bool          `yaml:"trust_proxy"`
}

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// RevalidateConfig configures cache revalidation. An empty Token disables
// the HTTP hook; an empty Schedule disables the scheduled job.
type RevalidateConfig struct {
	Token    string        `yaml:"token"`
	Schedule string        `yaml:"schedule"`
	Timezone string        `yaml:"timezone"`
	Tags     []string      `yaml:"tags"`
	Timeout  time.Duration `yaml:"timeout"`
	Warm     bool          `yaml:"warm"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// Default returns the configuration used when nothing is set. BaseURL has no
// default and must be configured.
func Default() Config {
	cat := catalogapi.DefaultConfig()
	return Config{
		Server: ServerConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			RequestTimeout:    15 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			Version:           "dev",
		},
		Locales: LocalesConfig{
			Supported: []string{"en", "ar", "fr"},
			Fallback:  "en",
			RTL:       []string{"ar"},
		},
		Catalog: CatalogConfig{
			Timeout:       cat.Timeout,
			MaxBodyBytes:  cat.MaxBodyBytes,
			MutationRate:  cat.MutationRate,
			MutationBurst: cat.MutationBurst,
			PageSize:      pagination.DefaultConfig().DefaultLimit,
		},
		Contact: ContactConfig{
			RateLimit: 0.1,
			Burst:     3,
			IdleTTL:   10 * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Revalidate: RevalidateConfig{
			Timezone: "UTC",
			Timeout:  30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: logging.FormatJSON,
		},
		Tracing: TracingConfig{
			SampleRatio: 1,
		},
	}
}

// Load builds the configuration from the defaults, the YAML file at path
// (skipped when path is empty) and the environment. The returned warnings
// describe environment values that were ignored.
func Load(path string) (*Config, []string, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, nil, err
		}
	}
	warnings := cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, warnings, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, warnings, nil
}

// mergeFile overlays the YAML file at path. Keys absent from the file keep
// their current values.
func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from a command-line flag, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}
