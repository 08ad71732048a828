// Package worker runs the scheduled cache revalidation job.
//
// On every tick of its cron schedule the job invalidates the configured
// cache tags and, optionally, warms the cache again by fetching the entry
// pages so the next visitor does not pay for the upstream round trip.
package worker

import (
	"errors"
	"fmt"
	"time"

	"egreen-site/internal/infra/catalogapi"
	"egreen-site/internal/pkg/config"
)

// Config controls the revalidation job.
type Config struct {
	// Schedule is a five-field cron expression, e.g. "*/15 * * * *".
	Schedule string

	// Timezone is the IANA name the schedule is evaluated in.
	Timezone string

	// Tags are invalidated on every run. Empty means every tag.
	Tags []catalogapi.Tag

	// Timeout bounds one run, warm-up included.
	Timeout time.Duration

	// Warm refetches the entry pages after invalidation.
	Warm bool
}

// DefaultConfig returns a job that runs every 15 minutes in UTC and
// invalidates every tag.
func DefaultConfig() Config {
	return Config{
		Schedule: "*/15 * * * *",
		Timezone: "UTC",
		Tags:     catalogapi.AllTags(),
		Timeout:  30 * time.Second,
	}
}

// Validate checks the configuration and reports every invalid field.
func (c Config) Validate() error {
	var errs []error

	if err := config.ValidateCronSchedule(c.Schedule); err != nil {
		errs = append(errs, fmt.Errorf("schedule: %w", err))
	}
	if err := config.ValidateTimezone(c.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("timezone: %w", err))
	}
	if err := config.ValidateDuration(c.Timeout, time.Second, 10*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("timeout: %w", err))
	}
	for _, t := range c.Tags {
		if _, ok := catalogapi.ParseTag(string(t)); !ok {
			errs = append(errs, fmt.Errorf("tags: unknown tag %q", t))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %w", errors.Join(errs...))
	}
	return nil
}

func (c Config) tags() []catalogapi.Tag {
	if len(c.Tags) == 0 {
		return catalogapi.AllTags()
	}
	return c.Tags
}
