package auth

import (
	"context"
	"sync"
	"time"
)

// RateLimiter limits repeated attempts by an opaque key (client IP for
// the access-code endpoint).
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// TokenBucketLimiter implements token bucket rate limiting. Each key
// gets maxTokens attempts, refilled one token per refillRate.
type TokenBucketLimiter struct {
	mu         sync.Mutex
	buckets    map[string]*bucket
	maxTokens  int
	refillRate time.Duration
	now        func() time.Time
}

type bucket struct {
	tokens     int
	lastRefill time.Time
}

// NewTokenBucketLimiter creates a new token bucket rate limiter
func NewTokenBucketLimiter(maxTokens int, refillRate time.Duration) *TokenBucketLimiter {
	return &TokenBucketLimiter{
		buckets:    make(map[string]*bucket),
		maxTokens:  maxTokens,
		refillRate: refillRate,
		now:        time.Now,
	}
}

// NewTokenBucketLimiterWithClock is NewTokenBucketLimiter with an
// injected clock for deterministic tests.
func NewTokenBucketLimiterWithClock(maxTokens int, refillRate time.Duration, now func() time.Time) *TokenBucketLimiter {
	l := NewTokenBucketLimiter(maxTokens, refillRate)
	l.now = now
	return l
}

// Allow checks if an attempt is allowed, consuming a token when it is.
func (l *TokenBucketLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, exists := l.buckets[key]
	if !exists {
		b = &bucket{tokens: l.maxTokens, lastRefill: now}
		l.buckets[key] = b
	}

	if l.refillRate > 0 {
		refill := int(now.Sub(b.lastRefill) / l.refillRate)
		if refill > 0 {
			b.tokens += refill
			if b.tokens > l.maxTokens {
				b.tokens = l.maxTokens
			}
			b.lastRefill = now
		}
	}

	if b.tokens <= 0 {
		return false, nil
	}
	b.tokens--
	return true, nil
}

// Reset restores the full budget for a key.
func (l *TokenBucketLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, key)
	return nil
}
