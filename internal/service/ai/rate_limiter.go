package ai

import (
	"context"

	"golang.org/x/time/rate"
)

// DefaultRateLimit is the default number of correction requests per second.
const DefaultRateLimit = 5

// RateLimiter is a token bucket shared by every correction call regardless of
// provider. The burst equals one second of requests.
type RateLimiter struct {
	limiter *rate.Limiter
}

func NewRateLimiter(qps int) *RateLimiter {
	qps = normalizeQPS(qps)
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(qps), qps)}
}

// Wait blocks until a request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}

// SetLimit changes the requests per second. Values <= 0 restore the default.
func (r *RateLimiter) SetLimit(qps int) {
	qps = normalizeQPS(qps)
	r.limiter.SetLimit(rate.Limit(qps))
	r.limiter.SetBurst(qps)
}

// Limit returns the current requests per second.
func (r *RateLimiter) Limit() int {
	return int(r.limiter.Limit())
}

func normalizeQPS(qps int) int {
	if qps <= 0 {
		return DefaultRateLimit
	}
	return qps
}
