package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"egreen-site/internal/handler/http/respond"
	"egreen-site/internal/infra/catalogapi"
)

// maxWarmConcurrency bounds parallel warm-up fetches.
const maxWarmConcurrency = 4

// Invalidator drops cached responses by tag.
type Invalidator interface {
	Invalidate(tags ...catalogapi.Tag) int
}

// Warmer fetches one resource so it is cached again.
type Warmer func(ctx context.Context) error

// Job invalidates cache tags and optionally warms the cache.
type Job struct {
	Cache   Invalidator
	Config  Config
	Warmers map[string]Warmer
	Metrics *Metrics
	Logger  *slog.Logger
}

// Run performs one revalidation. Warm-up failures are reported but the
// invalidation itself always happens.
func (j *Job) Run(ctx context.Context) error {
	logger := j.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	timeout := j.Config.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tags := j.Config.tags()
	removed := j.Cache.Invalidate(tags...)
	j.Metrics.recordRemoved(removed)

	var err error
	if j.Config.Warm && len(j.Warmers) > 0 {
		err = j.warm(ctx)
	}

	duration := time.Since(start)
	if err != nil {
		j.Metrics.recordRun("failure", duration.Seconds())
		logger.Error("revalidation warm-up failed",
			slog.Any("tags", tags),
			slog.Int("removed", removed),
			slog.String("error", respond.SanitizeError(err)),
			slog.Duration("duration", duration))
		return err
	}

	j.Metrics.recordRun("success", duration.Seconds())
	logger.Info("revalidation completed",
		slog.Any("tags", tags),
		slog.Int("removed", removed),
		slog.Bool("warmed", j.Config.Warm),
		slog.Duration("duration", duration))
	return nil
}

func (j *Job) warm(ctx context.Context) error {
	names := make([]string, 0, len(j.Warmers))
	for name := range j.Warmers {
		names = append(names, name)
	}
	sort.Strings(names)

	var g errgroup.Group
	g.SetLimit(maxWarmConcurrency)
	for _, name := range names {
		w := j.Warmers[name]
		g.Go(func() error {
			if err := w(ctx); err != nil {
				return fmt.Errorf("warm %s: %w", name, err)
			}
			return nil
		})
	}
	return g.Wait()
}
