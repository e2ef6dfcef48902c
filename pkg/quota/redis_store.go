package quota

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// tokenBucketScript runs the refill-and-consume step atomically on the
// Redis side so concurrent nodes cannot double-spend tokens. State is a
// hash of {tokens, last_refill_ms}; the key expires once the bucket would
// be full again anyway.
var tokenBucketScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local refill_rate = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])
local now_ms = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])
if tokens == nil or last_refill == nil then
  tokens = capacity
  last_refill = now_ms
end

local max_intervals = math.floor(capacity / refill_rate) + 1
local intervals = math.floor((now_ms - last_refill) / interval_ms)
if intervals > max_intervals then
  intervals = max_intervals
end
if intervals > 0 then
  tokens = math.min(tokens + intervals * refill_rate, capacity)
  last_refill = now_ms
end

tokens = tokens - requested

redis.call('HSET', KEYS[1], 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('PEXPIRE', KEYS[1], interval_ms * max_intervals * 2)

return {tokens, last_refill + interval_ms}
`)

// RedisStore implements Store on Redis, sharing bucket state across nodes.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the default "quota:" key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.keyPrefix = prefix
		}
	}
}

// NewRedisStore creates a Redis-backed store from a connected client.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client:    client,
		keyPrefix: "quota:",
	}

	for _, opt := range opts {
		opt(rs)
	}

	return rs
}

// ConsumeTokens runs the bucket script for the key.
func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, config Config) (int, time.Time, error) {
	now := time.Now()
	res, err := tokenBucketScript.Run(ctx, rs.client, []string{rs.keyPrefix + key},
		config.Capacity,
		config.RefillRate,
		config.RefillInterval.Milliseconds(),
		tokens,
		now.UnixMilli(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("quota redis store: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("quota redis store: unexpected script reply of length %d", len(res))
	}

	return int(res[0]), time.UnixMilli(res[1]), nil
}

// Reset clears bucket state for the key.
func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, rs.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("quota redis store: %w", err)
	}
	return nil
}
