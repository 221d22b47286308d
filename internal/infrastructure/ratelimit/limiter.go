// Package ratelimit throttles outbound calls per supplier.
package ratelimit

import (
	"context"
	"sync"

	"golang.org/x/time/rate"
)

// Config is the token bucket shape applied to a supplier.
type Config struct {
	RequestsPerSecond float64
	BurstSize         int
}

// DefaultConfig returns the limit applied to suppliers without an explicit one.
func DefaultConfig() Config {
	return Config{
		RequestsPerSecond: 10,
		BurstSize:         20,
	}
}

// SupplierLimiter holds one token bucket per supplier code.
type SupplierLimiter struct {
	mu       sync.RWMutex
	limiters map[string]*rate.Limiter
	defaults Config
}

// NewSupplierLimiter creates a limiter that lazily builds buckets from defaults.
func NewSupplierLimiter(defaults Config) *SupplierLimiter {
	return &SupplierLimiter{
		limiters: make(map[string]*rate.Limiter),
		defaults: defaults,
	}
}

// Limiter returns the bucket for supplier, creating it on first use.
func (l *SupplierLimiter) Limiter(supplier string) *rate.Limiter {
	l.mu.RLock()
	limiter, ok := l.limiters[supplier]
	l.mu.RUnlock()
	if ok {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok = l.limiters[supplier]; ok {
		return limiter
	}

	limiter = newLimiter(l.defaults)
	l.limiters[supplier] = limiter
	return limiter
}

// SetLimit replaces the bucket for supplier.
func (l *SupplierLimiter) SetLimit(supplier string, cfg Config) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.limiters[supplier] = newLimiter(cfg)
}

// Wait blocks until the supplier has a token or ctx is done.
func (l *SupplierLimiter) Wait(ctx context.Context, supplier string) error {
	return l.Limiter(supplier).Wait(ctx)
}

// Allow reports whether a call may proceed right now without waiting.
func (l *SupplierLimiter) Allow(supplier string) bool {
	return l.Limiter(supplier).Allow()
}

// newLimiter treats a non-positive rate as unlimited.
func newLimiter(cfg Config) *rate.Limiter {
	if cfg.RequestsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
}
