package ratelimiter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// consumeScript applies the same refill rule as MemoryStore atomically on
// the server. Times are unix milliseconds.
var consumeScript = redis.NewScript(`
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local interval = tonumber(ARGV[3])
local take = tonumber(ARGV[4])
local now = tonumber(ARGV[5])

local state = redis.call('HMGET', KEYS[1], 'tokens', 'refill')
local tokens = tonumber(state[1])
local refill = tonumber(state[2])
if tokens == nil or refill == nil then
  tokens = capacity
  refill = now
end

local intervals = math.min(math.floor((now - refill) / interval), math.floor(capacity / rate) + 1)
if intervals > 0 then
  tokens = math.min(math.max(tokens, 0) + intervals * rate, capacity)
  refill = now
end

tokens = tokens - take
redis.call('HSET', KEYS[1], 'tokens', tokens, 'refill', refill)
redis.call('PEXPIRE', KEYS[1], ARGV[6])
return {tokens, refill}
`)

// RedisStore shares buckets between processes. Idle buckets expire on
// their own after an hour.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewRedisStore namespaces every key with prefix.
func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

func (rs *RedisStore) ConsumeTokens(ctx context.Context, key string, tokens int, cfg Config) (int, time.Time, error) {
	res, err := consumeScript.Run(ctx, rs.client, []string{rs.prefix + key},
		cfg.Capacity,
		cfg.RefillRate,
		cfg.RefillInterval.Milliseconds(),
		tokens,
		rs.now().UnixMilli(),
		staleAfter.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimiter: redis consume: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("ratelimiter: redis consume: unexpected reply %v", res)
	}
	return int(res[0]), time.UnixMilli(res[1]).Add(cfg.RefillInterval), nil
}

func (rs *RedisStore) Reset(ctx context.Context, key string) error {
	return rs.client.Del(ctx, rs.prefix+key).Err()
}
