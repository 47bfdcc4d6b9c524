package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Clock lets tests control cache time.
type Clock func() time.Time

type entry[T any] struct {
	value     T
	fetchedAt time.Time
	ttl       time.Duration
}

// Cache is a process-wide read-through cache with per-entry TTLs. A read
// strictly after fetchedAt+ttl refetches synchronously on the calling
// goroutine; there is no background refresh. Safe for concurrent use.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	now     Clock
	sfg     singleflight.Group // Prevents cache stampede
}

func New[T any]() *Cache[T] {
	return NewWithClock[T](time.Now)
}

func NewWithClock[T any](now Clock) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		now:     now,
	}
}

// GetOrFetch returns the cached value for key if it is younger than its TTL,
// otherwise calls fetch and caches the result. Concurrent misses for the
// same key are collapsed into a single fetch. A failed fetch is never
// cached, so the next read retries the backend.
func (c *Cache[T]) GetOrFetch(ctx context.Context, key string, ttl time.Duration, fetch func(ctx context.Context) (T, error)) (T, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	v, err, _ := c.sfg.Do(key, func() (interface{}, error) {
		// Another caller may have refreshed the entry while we waited.
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := fetch(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = entry[T]{value: value, fetchedAt: c.now(), ttl: ttl}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return v.(T), nil
}

func (c *Cache[T]) lookup(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.now().Sub(e.fetchedAt) > e.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Len reports the number of stored entries, expired or not.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
