package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const sweepInterval = 60 * time.Second

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is an in-memory cache with per-entry TTL. Expired entries are
// treated as absent on Get and removed by a periodic background sweep.
type MemoryCache struct {
	mu     sync.RWMutex
	items  map[string]memoryEntry
	hits   atomic.Uint64
	misses atomic.Uint64
	stop   chan struct{}
}

// NewMemoryCache creates a new in-memory cache and starts the sweep goroutine.
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		items: make(map[string]memoryEntry),
		stop:  make(chan struct{}),
	}
	go mc.sweep()
	return mc
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.items[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		m.misses.Add(1)
		return nil, nil
	}
	m.hits.Add(1)
	return entry.data, nil
}

func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.items[key] = memoryEntry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Flush(_ context.Context) error {
	m.mu.Lock()
	m.items = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Stats(_ context.Context) Stats {
	m.mu.RLock()
	keys := int64(len(m.items))
	m.mu.RUnlock()
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Keys:   keys,
	}
}

// Close stops the background sweep goroutine.
func (m *MemoryCache) Close() {
	close(m.stop)
}

func (m *MemoryCache) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for k, v := range m.items {
				if now.After(v.expiresAt) {
					delete(m.items, k)
				}
			}
			m.mu.Unlock()
		}
	}
}
