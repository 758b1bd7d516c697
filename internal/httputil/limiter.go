// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import "golang.org/x/time/rate"

// NCBI allows 3 requests per second without an API key and 10 with one.
const (
	anonymousRPS = 3
	keyedRPS     = 10
)

// NewLimiter returns a token-bucket limiter sized to the NCBI rate budget.
// The burst equals the per-second allowance, so a fresh limiter admits a
// full second's worth of requests immediately.
func NewLimiter(hasKey bool) *rate.Limiter {
	if hasKey {
		return rate.NewLimiter(rate.Limit(keyedRPS), keyedRPS)
	}
	return rate.NewLimiter(rate.Limit(anonymousRPS), anonymousRPS)
}
