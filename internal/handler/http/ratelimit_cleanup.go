package http

import (
	"context"
	"log/slog"
	"time"
)

// DefaultCleanupInterval is how often idle rate limit visitors are swept.
const DefaultCleanupInterval = 5 * time.Minute

// StartRateLimitCleanup sweeps idle visitors from limiter every interval
// until ctx is cancelled. It blocks; run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter *IPRateLimiter, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case <-ticker.C:
			removed := limiter.Cleanup()
			slog.Debug("rate limit cleanup completed",
				slog.Int("visitors_removed", removed),
				slog.Int("visitors_active", limiter.Len()))
		}
	}
}
