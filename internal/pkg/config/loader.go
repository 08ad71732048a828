// Package config provides fail-open environment loaders and the validators
// shared by the site's configuration.
//
// A loader never returns an error. When a variable is set but cannot be
// parsed or fails validation, the default is kept and a warning describing
// the rejected value is returned for the caller to log and count.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Result is the outcome of loading one value.
type Result[T any] struct {
	Value T

	// Warning describes why the default was used. Empty unless
	// FallbackApplied is true.
	Warning string

	FallbackApplied bool
}

// LoadEnv reads envKey, parses it with parse and checks it with validate.
// An unset or empty variable yields defaultValue without a warning.
// validate may be nil.
func LoadEnv[T any](envKey string, defaultValue T, parse func(string) (T, error), validate func(T) error) Result[T] {
	raw := os.Getenv(envKey)
	if raw == "" {
		return Result[T]{Value: defaultValue}
	}

	v, err := parse(raw)
	if err == nil && validate != nil {
		err = validate(v)
	}
	if err != nil {
		return Result[T]{
			Value:           defaultValue,
			Warning:         fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'", envKey, raw, err, defaultValue),
			FallbackApplied: true,
		}
	}
	return Result[T]{Value: v}
}

// LoadEnvString returns envKey or defaultValue when it is unset.
func LoadEnvString(envKey, defaultValue string) string {
	return LoadEnv(envKey, defaultValue, parseString, nil).Value
}

// LoadEnvWithFallback loads a string checked by validator.
//
//	result := LoadEnvWithFallback("REVALIDATE_SCHEDULE", "*/15 * * * *", ValidateCronSchedule)
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) Result[string] {
	return LoadEnv(envKey, defaultValue, parseString, validator)
}

// LoadEnvDuration loads a Go duration string such as "30s" or "1h30m".
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) Result[time.Duration] {
	return LoadEnv(envKey, defaultValue, time.ParseDuration, validator)
}

// LoadEnvInt loads a base-10 integer.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) Result[int] {
	return LoadEnv(envKey, defaultValue, func(s string) (int, error) {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return 0, fmt.Errorf("invalid integer format")
		}
		return v, nil
	}, validator)
}

// LoadEnvFloat loads a floating point number.
func LoadEnvFloat(envKey string, defaultValue float64, validator func(float64) error) Result[float64] {
	return LoadEnv(envKey, defaultValue, func(s string) (float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number format")
		}
		return v, nil
	}, validator)
}

// LoadEnvBool accepts the values strconv.ParseBool accepts.
func LoadEnvBool(envKey string, defaultValue bool) Result[bool] {
	return LoadEnv(envKey, defaultValue, func(s string) (bool, error) {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return false, fmt.Errorf("invalid boolean format, expected 'true' or 'false'")
		}
		return v, nil
	}, nil)
}

// LoadEnvList loads a comma-separated list. Items are trimmed and empty items
// dropped; a list with no items is rejected.
func LoadEnvList(envKey string, defaultValue []string, validator func([]string) error) Result[[]string] {
	return LoadEnv(envKey, defaultValue, func(s string) ([]string, error) {
		var out []string
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return nil, fmt.Errorf("list cannot be empty")
		}
		return out, nil
	}, validator)
}

func parseString(s string) (string, error) { return s, nil }
