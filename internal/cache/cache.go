package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache is the process-wide key/value store used for final results and for
// AI-extraction intermediates. It provides no cross-request mutual exclusion:
// two concurrent misses for the same key both compute and both write, the
// later write winning.
type Cache interface {
	// Get returns the stored value, or nil when the key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with an absolute per-entry TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// Flush removes every entry.
	Flush(ctx context.Context) error

	// Stats reports process-local hit/miss counters and the live key count.
	Stats(ctx context.Context) Stats
}

// Stats is the observability snapshot exposed by the cache admin surface.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Keys   int64  `json:"keys"`
}

// Namespaces for the two cache tiers the pipeline owns.
const (
	NamespaceResults = "prices"
	NamespaceExtract = "ai"
)

// Key builds the opaque cache key for a (namespace, country, query) triple.
func Key(namespace, countryCode, query string) string {
	return fmt.Sprintf("%s:%s:%s", namespace, countryCode, query)
}
