// Package i18n projects multilingual entity fields onto the active locale.
//
// The set of supported locales, the fallback locale and the right-to-left
// locales are explicit configuration rather than incidental map lookups.
// Resolution never fails: a missing translation falls back to the fallback
// locale, and a missing field resolves to the empty string.
package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"egreen-site/internal/domain/entity"
)

// Text directions returned by Direction.
const (
	DirectionLTR = "ltr"
	DirectionRTL = "rtl"
)

// Config describes the locales the site serves.
type Config struct {
	// Supported is the closed, ordered set of locale codes.
	Supported []entity.Locale

	// Fallback is used when a field has no value for the requested locale.
	// Empty means the first supported locale.
	Fallback entity.Locale

	// RTL lists locales rendered right-to-left.
	RTL []entity.Locale
}

// DefaultConfig returns the site's locales: English, Arabic and French,
// falling back to English.
func DefaultConfig() Config {
	return Config{
		Supported: []entity.Locale{entity.LocaleEN, entity.LocaleAR, entity.LocaleFR},
		Fallback:  entity.LocaleEN,
		RTL:       []entity.Locale{entity.LocaleAR},
	}
}

// Validate checks that the configuration names at least one locale and that
// the fallback and RTL locales are among the supported ones.
func (c Config) Validate() error {
	if len(c.Supported) == 0 {
		return errors.New("at least one supported locale is required")
	}
	seen := make(map[entity.Locale]bool, len(c.Supported))
	for _, l := range c.Supported {
		if strings.TrimSpace(string(l)) == "" {
			return errors.New("supported locale cannot be empty")
		}
		if seen[l] {
			return fmt.Errorf("duplicate supported locale %q", l)
		}
		seen[l] = true
	}
	if c.Fallback != "" && !seen[c.Fallback] {
		return fmt.Errorf("fallback locale %q is not supported", c.Fallback)
	}
	for _, l := range c.RTL {
		if !seen[l] {
			return fmt.Errorf("rtl locale %q is not supported", l)
		}
	}
	return nil
}

// Resolver selects display strings for a locale.
// A Resolver is immutable and safe for concurrent use.
type Resolver struct {
	supported []entity.Locale
	index     map[entity.Locale]bool
	rtl       map[entity.Locale]bool
	fallback  entity.Locale
}

// NewResolver validates cfg and builds a Resolver from it.
func NewResolver(cfg Config) (*Resolver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid locale config: %w", err)
	}

	r := &Resolver{
		supported: append([]entity.Locale(nil), cfg.Supported...),
		index:     make(map[entity.Locale]bool, len(cfg.Supported)),
		rtl:       make(map[entity.Locale]bool, len(cfg.RTL)),
		fallback:  cfg.Fallback,
	}
	if r.fallback == "" {
		r.fallback = cfg.Supported[0]
	}
	for _, l := range cfg.Supported {
		r.index[l] = true
	}
	for _, l := range cfg.RTL {
		r.rtl[l] = true
	}
	return r, nil
}

// MustNewResolver is like NewResolver but panics on invalid configuration.
// It is intended for package-level defaults and tests.
func MustNewResolver(cfg Config) *Resolver {
	r, err := NewResolver(cfg)
	if err != nil {
		panic(err)
	}
	return r
}

// Resolve returns field[locale], or field[fallback] when the locale has no
// value, or "" when neither is present or field is nil.
// HTML-bearing fields are returned as raw markup.
func (r *Resolver) Resolve(field entity.LocalizedString, locale entity.Locale) string {
	if v, ok := field.Get(locale); ok {
		return v
	}
	if v, ok := field.Get(r.fallback); ok {
		return v
	}
	return ""
}

// Parse normalises a locale code ("EN", "fr-FR", "ar_EG") to its base
// language and reports whether that language is supported.
func (r *Resolver) Parse(raw string) (entity.Locale, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", "-"))
	if raw == "" {
		return "", false
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	l := entity.Locale(base.String())
	if !r.index[l] {
		return "", false
	}
	return l, true
}

// IsSupported reports whether l is one of the configured locales.
func (r *Resolver) IsSupported(l entity.Locale) bool {
	return r.index[l]
}

// Supported returns the configured locales in order.
func (r *Resolver) Supported() []entity.Locale {
	return append([]entity.Locale(nil), r.supported...)
}

// Fallback returns the locale used when a translation is missing.
func (r *Resolver) Fallback() entity.Locale {
	return r.fallback
}

// Direction returns the text direction for l.
func (r *Resolver) Direction(l entity.Locale) string {
	if r.rtl[l] {
		return DirectionRTL
	}
	return DirectionLTR
}
