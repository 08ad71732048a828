package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler runs a Job on its cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	job    *Job
	logger *slog.Logger
}

// NewScheduler validates cfg and prepares job to run on its schedule. The
// job's Config is replaced by cfg.
func NewScheduler(cfg Config, job *Job, logger *slog.Logger) (*Scheduler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	job.Config = cfg

	s := &Scheduler{
		// 前回の実行が終わっていなければ次の実行はスキップする
		cron:   cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		job:    job,
		logger: logger,
	}
	if _, err := s.cron.AddFunc(cfg.Schedule, s.tick); err != nil {
		return nil, fmt.Errorf("add cron job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	// The error is logged and counted by Run.
	_ = s.job.Run(context.Background())
}

// Start begins running the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("revalidation scheduler started",
		slog.String("schedule", s.job.Config.Schedule),
		slog.String("timezone", s.job.Config.Timezone),
		slog.Time("next_run", s.Next()))
}

// Next returns the next scheduled run, or the zero time before Start.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Stop stops the schedule and waits for a running job until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("revalidation scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
