package ratelim

import "github.com/julienschmidt/httprouter"

var defaultLimiter = NewRateLimiter()

// RateLimit wraps a handler with the process-wide default limiter.
func RateLimit(next httprouter.Handle) httprouter.Handle {
	return defaultLimiter.Limit(next)
}
