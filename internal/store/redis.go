package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// RedisCache is a Cache shared by all replicas. Redis expires the keys, so
// an entry is visible for at most ttl after its last Put.
type RedisCache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisCache stores entries under prefix+"place:"+id.
func NewRedisCache(rdb redis.UniversalClient, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(id string) string { return c.prefix + "place:" + id }

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, placeID string) (*domain.NormalizedPlace, bool, error) {
	b, err := c.rdb.Get(ctx, c.key(placeID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis cache get: %w", err)
	}
	var p domain.NormalizedPlace
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, false, fmt.Errorf("redis cache decode: %w", err)
	}
	return &p, true, nil
}

// Put implements Cache.
func (c *RedisCache) Put(ctx context.Context, placeID string, p *domain.NormalizedPlace) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("redis cache encode: %w", err)
	}
	if err := c.rdb.Set(ctx, c.key(placeID), b, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis cache set: %w", err)
	}
	return nil
}

// RedisLimiter is a fixed-window Limiter shared by all replicas. The first
// INCR of a window creates the counter and sets its expiry; the key vanishing
// is the lazy reset.
type RedisLimiter struct {
	rdb    redis.UniversalClient
	prefix string
	limit  int
	window time.Duration
}

// windowIncr counts one hit and arms the window expiry when the counter is
// new or lost its TTL. Plain PEXPIRE keeps it working on Redis 6.
var windowIncr = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 or redis.call('PTTL', KEYS[1]) == -1 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// NewRedisLimiter allows limit requests per key per window.
func NewRedisLimiter(rdb redis.UniversalClient, prefix string, limit int, win time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, limit: limit, window: win}
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + "quota:" + key
	n, err := windowIncr.Run(ctx, l.rdb, []string{k}, l.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("redis limiter: %w", err)
	}
	return n <= int64(l.limit), nil
}

// NewRedisClient opens a client and verifies connectivity.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
