package store

import (
	"context"
	"sync"
	"time"

	"github.com/tbourn/go-places-backend/internal/domain"
)

// sweepEvery controls how often Put/Allow opportunistically drop stale
// entries so the maps stay bounded by the active key set.
const sweepEvery = 1024

type cacheEntry struct {
	place     *domain.NormalizedPlace
	createdAt time.Time
}

// MemoryCache is an in-process Cache. Expiry is checked on read.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     Clock
	entries map[string]cacheEntry
	puts    uint64
}

// NewMemoryCache returns a cache whose entries live for ttl. A nil clock
// means time.Now.
func NewMemoryCache(ttl time.Duration, now Clock) *MemoryCache {
	if now == nil {
		now = time.Now
	}
	return &MemoryCache{ttl: ttl, now: now, entries: make(map[string]cacheEntry)}
}

// Get implements Cache. The returned place is a copy.
func (c *MemoryCache) Get(_ context.Context, placeID string) (*domain.NormalizedPlace, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[placeID]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.createdAt) >= c.ttl {
		return nil, false, nil
	}
	return e.place.Clone(), true, nil
}

// Put implements Cache.
func (c *MemoryCache) Put(_ context.Context, placeID string, p *domain.NormalizedPlace) error {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[placeID] = cacheEntry{place: p.Clone(), createdAt: now}
	c.puts++
	if c.puts%sweepEvery == 0 {
		for k, e := range c.entries {
			if now.Sub(e.createdAt) >= c.ttl {
				delete(c.entries, k)
			}
		}
	}
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is an in-process fixed-window Limiter. A window is reset
// lazily by the first request that arrives after its deadline.
type MemoryLimiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     Clock
	windows map[string]*window
	calls   uint64
}

// NewMemoryLimiter allows limit requests per key per window.
func NewMemoryLimiter(limit int, win time.Duration, now Clock) *MemoryLimiter {
	if now == nil {
		now = time.Now
	}
	return &MemoryLimiter{limit: limit, window: win, now: now, windows: make(map[string]*window)}
}

// Allow implements Limiter.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	l.calls++
	if l.calls%sweepEvery == 0 {
		for k, w := range l.windows {
			if !now.Before(w.resetAt) {
				delete(l.windows, k)
			}
		}
	}

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(l.window)}
		l.windows[key] = w
	}
	if w.count >= l.limit {
		return false, nil
	}
	w.count++
	return true, nil
}
