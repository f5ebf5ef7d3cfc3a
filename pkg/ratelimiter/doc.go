// Package ratelimiter implements token bucket rate limiting over pluggable
// stores.
//
// A bucket holds up to Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each allowed request takes tokens; a request that would
// overdraw the bucket is denied and takes nothing.
//
//	store := ratelimiter.NewMemoryStore()
//	go store.Start(ctx)
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       60,
//		RefillRate:     60,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//
//	res, err := limiter.Allow(ctx, clientip.GetIP(r))
//	if err != nil {
//		return err
//	}
//	if !res.Allowed() {
//		// wait res.RetryAfter()
//	}
//
// # Stores
//
// MemoryStore serves a single process and removes idle buckets in a
// background loop. RedisStore shares buckets between instances; refill and
// consumption run in one Lua script against the Redis clock, so concurrent
// callers cannot overdraw a bucket.
//
// Store failures wrap ErrStoreUnavailable.
package ratelimiter
