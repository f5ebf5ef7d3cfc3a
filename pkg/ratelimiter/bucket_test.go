package ratelimiter_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/qrdata/pkg/ratelimiter"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock {
	return &clock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newBucket(t *testing.T, cfg ratelimiter.Config) (*ratelimiter.Bucket, *clock) {
	t.Helper()

	c := newClock()
	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(ratelimiter.WithClock(c.Now)), cfg)
	require.NoError(t, err)
	return b, c
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second}
	assert.NoError(t, valid.Validate())

	for _, cfg := range []ratelimiter.Config{
		{Capacity: 0, RefillRate: 1, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 0, RefillInterval: time.Second},
		{Capacity: 1, RefillRate: 1, RefillInterval: 0},
		{Capacity: 1, RefillRate: 1, RefillInterval: time.Microsecond},
		{Capacity: 1, RefillRate: 1, RefillInterval: 999 * time.Microsecond},
	} {
		assert.ErrorIs(t, cfg.Validate(), ratelimiter.ErrInvalidConfig)
	}

	assert.NoError(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Millisecond}.Validate())

	_, err := ratelimiter.NewBucket(nil, valid)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidConfig)
}

func TestBucket_AllowUntilEmpty(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 3, RefillRate: 1, RefillInterval: time.Minute})

	for i := 2; i >= 0; i-- {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed())
		assert.Equal(t, i, res.Remaining)
		assert.Equal(t, 3, res.Limit)
		assert.Zero(t, res.RetryAfter())
	}

	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, res.Allowed())
	assert.Equal(t, 0, res.Remaining)

	other, err := b.Allow(ctx, "other")
	require.NoError(t, err)
	assert.True(t, other.Allowed(), "keys are independent")
}

func TestBucket_DeniedRequestsDoNotConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, c := newBucket(t, ratelimiter.Config{Capacity: 2, RefillRate: 1, RefillInterval: time.Minute})

	for range 2 {
		_, err := b.Allow(ctx, "k")
		require.NoError(t, err)
	}
	for range 10 {
		res, err := b.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed())
	}

	c.Advance(time.Minute)

	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed(), "one refill is enough after denied attempts")
}

func TestBucket_Refill(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, c := newBucket(t, ratelimiter.Config{Capacity: 10, RefillRate: 2, RefillInterval: time.Second})

	_, err := b.AllowN(ctx, "k", 10)
	require.NoError(t, err)

	c.Advance(1500 * time.Millisecond)
	res, err := b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Remaining)

	// The half interval carried over completes here.
	c.Advance(500 * time.Millisecond)
	res, err = b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Remaining)

	c.Advance(time.Hour)
	res, err = b.Status(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Remaining, "refill never exceeds capacity")
}

func TestBucket_RetryAfter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, err := ratelimiter.NewBucket(ratelimiter.NewMemoryStore(), ratelimiter.Config{
		Capacity: 1, RefillRate: 1, RefillInterval: time.Minute,
	})
	require.NoError(t, err)

	_, err = b.Allow(ctx, "k")
	require.NoError(t, err)

	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, res.Allowed())
	assert.Greater(t, res.RetryAfter(), 50*time.Second)
	assert.LessOrEqual(t, res.RetryAfter(), time.Minute)
}

func TestBucket_AllowNValidation(t *testing.T) {
	t.Parallel()

	b, _ := newBucket(t, ratelimiter.Config{Capacity: 5, RefillRate: 1, RefillInterval: time.Second})

	_, err := b.AllowN(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)

	_, err = b.AllowN(context.Background(), "k", 6)
	assert.ErrorIs(t, err, ratelimiter.ErrInvalidTokenCount)
}

func TestBucket_Reset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})

	_, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	res, err := b.Allow(ctx, "k")
	require.NoError(t, err)
	require.False(t, res.Allowed())

	require.NoError(t, b.Reset(ctx, "k"))

	res, err = b.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, res.Allowed())
}

type failingStore struct{}

func (failingStore) ConsumeTokens(context.Context, string, int, ratelimiter.Config) (int, time.Time, error) {
	return 0, time.Time{}, errors.New("connection refused")
}

func (failingStore) Reset(context.Context, string) error { return nil }

func TestBucket_StoreError(t *testing.T) {
	t.Parallel()

	b, err := ratelimiter.NewBucket(failingStore{}, ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Second})
	require.NoError(t, err)

	_, err = b.Allow(context.Background(), "k")
	assert.ErrorIs(t, err, ratelimiter.ErrStoreUnavailable)
}

func TestBucket_ConcurrentSafety(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	b, _ := newBucket(t, ratelimiter.Config{Capacity: 500, RefillRate: 1, RefillInterval: time.Hour})

	var wg sync.WaitGroup
	var allowed atomic.Int64
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				res, err := b.Allow(ctx, "shared")
				if err == nil && res.Allowed() {
					allowed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(500), allowed.Load())
}
