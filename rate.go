package main

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter controls how fast queries are written. A nil *RateLimiter
// means unlimited.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a rate limiter for qps queries per second, or
// returns nil when qps is not positive
func NewRateLimiter(qps int) *RateLimiter {
	if qps <= 0 {
		return nil
	}

	// Allow some burst capacity
	burst := qps / 10
	if burst < 1 {
		burst = 1
	}

	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(qps), burst),
	}
}

// Wait blocks until the rate limiter allows another query
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r == nil {
		return ctx.Err()
	}
	return r.limiter.Wait(ctx)
}

// GetLimit returns the current rate limit, 0 when unlimited
func (r *RateLimiter) GetLimit() float64 {
	if r == nil {
		return 0
	}
	return float64(r.limiter.Limit())
}
