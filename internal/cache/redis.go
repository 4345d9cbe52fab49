package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on go-redis v9 so the memory tier can be swapped
// for a shared store without touching pipeline logic. Hit/miss stats stay
// process-local: they are ephemeral observability, not distributed state.
type RedisCache struct {
	client redis.UniversalClient
	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewRedisCache creates a Redis-backed cache around an existing client.
func NewRedisCache(client redis.UniversalClient) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		r.misses.Add(1)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	r.hits.Add(1)
	return val, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) Flush(ctx context.Context) error {
	return r.client.FlushDB(ctx).Err()
}

func (r *RedisCache) Stats(ctx context.Context) Stats {
	keys, err := r.client.DBSize(ctx).Result()
	if err != nil {
		keys = -1
	}
	return Stats{
		Hits:   r.hits.Load(),
		Misses: r.misses.Load(),
		Keys:   keys,
	}
}

// Client returns the underlying Redis client.
func (r *RedisCache) Client() redis.UniversalClient {
	return r.client
}
