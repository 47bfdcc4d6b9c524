package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move cache time forward manually.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(0, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestGetOrFetch_CachesValue(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[string](clock.Now)
	ctx := context.Background()

	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "value", nil
	}

	for i := 0; i < 5; i++ {
		v, err := c.GetOrFetch(ctx, "key", time.Minute, fetch)
		require.NoError(t, err)
		assert.Equal(t, "value", v)
	}

	assert.Equal(t, 1, calls)
}

func TestGetOrFetch_TTLExpiry(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[string](clock.Now)
	ctx := context.Background()

	// Backend value observed by fetch; changes mid-TTL.
	backend := "original"
	fetch := func(context.Context) (string, error) {
		return backend, nil
	}

	ttl := 600 * time.Second

	v, err := c.GetOrFetch(ctx, "product", ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, "original", v)

	// Backend changes at t=300s; cache must keep serving the old value.
	clock.Advance(300 * time.Second)
	backend = "updated"

	v, err = c.GetOrFetch(ctx, "product", ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, "original", v)

	// t=599s: still inside the TTL.
	clock.Advance(299 * time.Second)
	v, err = c.GetOrFetch(ctx, "product", ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, "original", v)

	// t=601s: past the TTL, the read must refetch.
	clock.Advance(2 * time.Second)
	v, err = c.GetOrFetch(ctx, "product", ttl, fetch)
	require.NoError(t, err)
	assert.Equal(t, "updated", v)
}

func TestGetOrFetch_FailureNotCached(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[int](clock.Now)
	ctx := context.Background()

	calls := 0
	failing := errors.New("store down")
	fetch := func(context.Context) (int, error) {
		calls++
		if calls == 1 {
			return 0, failing
		}
		return 42, nil
	}

	_, err := c.GetOrFetch(ctx, "key", time.Minute, fetch)
	assert.ErrorIs(t, err, failing)
	assert.Equal(t, 0, c.Len())

	// The next read retries the backend instead of serving a cached failure.
	v, err := c.GetOrFetch(ctx, "key", time.Minute, fetch)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 2, calls)
}

func TestGetOrFetch_KeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[string](clock.Now)
	ctx := context.Background()

	va, err := c.GetOrFetch(ctx, "a", time.Minute, func(context.Context) (string, error) { return "alpha", nil })
	require.NoError(t, err)
	vb, err := c.GetOrFetch(ctx, "b", time.Minute, func(context.Context) (string, error) { return "beta", nil })
	require.NoError(t, err)

	assert.Equal(t, "alpha", va)
	assert.Equal(t, "beta", vb)
	assert.Equal(t, 2, c.Len())
}

func TestGetOrFetch_ConcurrentMissesCollapse(t *testing.T) {
	clock := newFakeClock()
	c := NewWithClock[string](clock.Now)
	ctx := context.Background()

	var calls atomic.Int32
	fetch := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return "value", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.GetOrFetch(ctx, "key", time.Minute, fetch)
			assert.NoError(t, err)
			assert.Equal(t, "value", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}
