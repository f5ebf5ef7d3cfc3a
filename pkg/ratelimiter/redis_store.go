package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKeyPrefix namespaces bucket keys.
const DefaultRedisKeyPrefix = "ratelimit:"

// tokenBucketScript refills and consumes atomically using the Redis clock.
// KEYS[1] bucket key; ARGV capacity, refill rate, refill interval (ms), tokens.
// Returns {remaining, reset_at_ms}.
var tokenBucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local t = redis.call('TIME')
local now = tonumber(t[1]) * 1000 + math.floor(tonumber(t[2]) / 1000)

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last')
local tokens = tonumber(state[1])
local last = tonumber(state[2])
if tokens == nil or last == nil then
	tokens = capacity
	last = now
end

local intervals = math.floor((now - last) / interval)
if intervals > 0 then
	if intervals > math.floor(capacity / rate) then
		tokens = capacity
		last = now
	else
		tokens = math.min(capacity, tokens + intervals * rate)
		last = last + intervals * interval
	end
end

local remaining = tokens - requested
if remaining >= 0 then
	tokens = remaining
end

local ttl = math.ceil(capacity / rate) * interval + interval
redis.call('HSET', KEYS[1], 'tokens', tokens, 'last', last)
redis.call('PEXPIRE', KEYS[1], ttl)

return {remaining, last + interval}
`)

// RedisStore keeps buckets in Redis so that limits hold across instances.
// Idle buckets expire on their own once they would be full again.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix replaces DefaultRedisKeyPrefix.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.prefix = prefix
	}
}

// NewRedisStore creates a store over client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: redis client is required", ErrInvalidConfig)
	}

	rs := &RedisStore{client: client, prefix: DefaultRedisKeyPrefix}
	for _, opt := range opts {
		opt(rs)
	}
	return rs, nil
}

// ConsumeTokens implements Store.
func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	res, err := tokenBucketScript.Run(ctx, rs.client, []string{rs.prefix + key},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		tokens,
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("token bucket script: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("token bucket script: unexpected reply of %d values", len(res))
	}

	return int(res[0]), time.UnixMilli(res[1]), nil
}

// Reset implements Store.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	return rs.client.Del(ctx, rs.prefix+key).Err()
}

// Healthcheck pings Redis.
func (rs *RedisStore) Healthcheck(ctx context.Context) error {
	if err := rs.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
