package entity

import "strings"

// Locale is a display-language code such as "en", "ar" or "fr".
type Locale string

// Locales served by the site.
const (
	LocaleEN Locale = "en"
	LocaleAR Locale = "ar"
	LocaleFR Locale = "fr"
)

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// LocalizedString maps a locale code to the display string for that locale.
// The API guarantees at least one locale is populated, but readers must not
// rely on any particular one being present.
type LocalizedString map[Locale]string

// Get returns the trimmed value for the locale and whether it is non-empty.
// Get is safe on a nil LocalizedString.
func (s LocalizedString) Get(l Locale) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(s[l])
	if v == "" {
		return "", false
	}
	return v, true
}

// IsZero reports whether no locale carries a non-empty value.
func (s LocalizedString) IsZero() bool {
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Clone returns a copy of s so callers can modify it without affecting
// shared snapshots.
func (s LocalizedString) Clone() LocalizedString {
	if s == nil {
		return nil
	}
	out := make(LocalizedString, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
