package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NewFromConfig creates a Cache from config parameters.
// Supported types: memory (default), redis.
func NewFromConfig(ctx context.Context, cacheType, redisAddr, redisPassword string) (Cache, error) {
	switch cacheType {
	case "", "memory":
		return NewMemoryCache(), nil

	case "redis":
		if redisAddr == "" {
			return nil, fmt.Errorf("redis cache requires an address")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return NewRedisCache(client), nil

	default:
		return nil, fmt.Errorf("unknown cache type: %s", cacheType)
	}
}
