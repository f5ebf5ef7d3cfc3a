package ratelimiter

import (
	"context"
	"fmt"
	"time"
)

// Config describes a token bucket: it holds at most Capacity tokens and
// gains RefillRate tokens every RefillInterval.
type Config struct {
	Capacity       int
	RefillRate     int
	RefillInterval time.Duration
}

// Validate reports whether all parameters are positive and the interval is
// at least one millisecond.
func (c Config) Validate() error {
	switch {
	case c.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	case c.RefillRate <= 0:
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	case c.RefillInterval <= 0:
		return fmt.Errorf("%w: refill interval must be positive, got %s", ErrInvalidConfig, c.RefillInterval)
	case c.RefillInterval < time.Millisecond:
		// RedisStore works in whole milliseconds.
		return fmt.Errorf("%w: refill interval must be at least 1ms, got %s", ErrInvalidConfig, c.RefillInterval)
	}
	return nil
}

// Store persists bucket state.
//
// ConsumeTokens refills the bucket for key, then takes tokens when enough
// are available. It returns the token count left after the request, which
// is negative when the request was denied; a denied request leaves the
// bucket unchanged. Zero tokens reads the state without consuming.
type Store interface {
	ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (remaining int, resetAt time.Time, err error)
	Reset(ctx context.Context, key string) error
}

// RateLimiter decides whether a request identified by key may proceed.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (*Result, error)
	AllowN(ctx context.Context, key string, n int) (*Result, error)
}

// Result is the outcome of a rate limit decision.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
	allowed   bool
}

// Allowed reports whether the request may proceed.
func (r *Result) Allowed() bool {
	return r.allowed
}

// RetryAfter returns how long a denied caller should wait, or zero.
func (r *Result) RetryAfter() time.Duration {
	if r.allowed {
		return 0
	}
	return max(0, time.Until(r.ResetAt))
}

// Bucket is a token bucket RateLimiter over a Store.
type Bucket struct {
	store  Store
	config Config
}

// NewBucket validates config and returns a limiter backed by store.
func NewBucket(store Store, config Config) (*Bucket, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store is required", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Bucket{store: store, config: config}, nil
}

// Allow consumes one token for key.
func (b *Bucket) Allow(ctx context.Context, key string) (*Result, error) {
	return b.AllowN(ctx, key, 1)
}

// AllowN consumes n tokens for key when available.
func (b *Bucket) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	if n > b.config.Capacity {
		return nil, fmt.Errorf("%w: %d exceeds capacity %d", ErrInvalidTokenCount, n, b.config.Capacity)
	}
	return b.consume(ctx, key, n)
}

// Status reports the state for key without consuming tokens.
func (b *Bucket) Status(ctx context.Context, key string) (*Result, error) {
	return b.consume(ctx, key, 0)
}

// Reset restores the bucket for key to full capacity.
func (b *Bucket) Reset(ctx context.Context, key string) error {
	return b.store.Reset(ctx, key)
}

func (b *Bucket) consume(ctx context.Context, key string, n int) (*Result, error) {
	remaining, resetAt, err := b.store.ConsumeTokens(ctx, key, n, b.config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return &Result{
		Limit:     b.config.Capacity,
		Remaining: max(0, remaining),
		ResetAt:   resetAt,
		allowed:   remaining >= 0,
	}, nil
}

// refill advances bucket state to now. It returns the refilled token count
// and the new refill time, which moves in whole intervals so partial
// intervals are not lost.
func refill(tokens int, lastRefill, now time.Time, config Config) (int, time.Time) {
	elapsed := now.Sub(lastRefill)
	if elapsed < config.RefillInterval {
		return tokens, lastRefill
	}

	intervals := int64(elapsed / config.RefillInterval)
	// Enough intervals to fill the bucket from empty; more would only overflow.
	fillIntervals := int64(config.Capacity/config.RefillRate + 1)
	if intervals >= fillIntervals {
		return config.Capacity, now
	}

	tokens = min(tokens+int(intervals)*config.RefillRate, config.Capacity)
	return tokens, lastRefill.Add(time.Duration(intervals) * config.RefillInterval)
}
