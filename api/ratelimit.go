package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// keyedLimiter hands each client key its own token bucket.
type keyedLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func newKeyedLimiter(rps float64, burst int) *keyedLimiter {
	return &keyedLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(rps),
		burst:    burst,
	}
}

func (kl *keyedLimiter) Allow(key string) bool {
	kl.mu.RLock()
	limiter, exists := kl.limiters[key]
	kl.mu.RUnlock()

	if !exists {
		kl.mu.Lock()
		if limiter, exists = kl.limiters[key]; !exists {
			limiter = rate.NewLimiter(kl.limit, kl.burst)
			kl.limiters[key] = limiter
		}
		kl.mu.Unlock()
	}
	return limiter.Allow()
}
