package catalogapi

import (
	"context"

	"golang.org/x/time/rate"
)

// MutationLimiter throttles write requests with a token bucket so a burst of
// form submissions cannot flood the API.
type MutationLimiter struct {
	limiter *rate.Limiter
}

// NewMutationLimiter allows requestsPerSecond sustained and burst at once.
//
// Example:
//
//	limiter := NewMutationLimiter(1.0, 3) // 1 req/s with burst of 3
func NewMutationLimiter(requestsPerSecond float64, burst int) *MutationLimiter {
	return &MutationLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Wait blocks until a token is available or ctx is done.
func (m *MutationLimiter) Wait(ctx context.Context) error {
	return m.limiter.Wait(ctx)
}

