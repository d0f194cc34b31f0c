package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-places-backend/internal/domain"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock { return &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)} }

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func TestMemoryCache_TTL(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	c := NewMemoryCache(time.Hour, clk.Now)

	_, ok, err := c.Get(ctx, "A")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "A", &domain.NormalizedPlace{PlaceID: "A", Name: "Cafe"}))

	clk.Advance(59 * time.Minute)
	got, ok, _ := c.Get(ctx, "A")
	require.True(t, ok)
	assert.Equal(t, "Cafe", got.Name)

	clk.Advance(time.Minute)
	_, ok, _ = c.Get(ctx, "A")
	assert.False(t, ok, "entry must expire exactly at the TTL")
	assert.Equal(t, 1, c.Len(), "expired entries are not evicted on read")

	require.NoError(t, c.Put(ctx, "A", &domain.NormalizedPlace{PlaceID: "A", Name: "Cafe 2"}))
	got, ok, _ = c.Get(ctx, "A")
	require.True(t, ok)
	assert.Equal(t, "Cafe 2", got.Name, "put restarts the TTL")
}

func TestMemoryCache_ValuesAreCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(time.Hour, nil)
	in := &domain.NormalizedPlace{PlaceID: "A", Types: []string{"cafe"}}
	require.NoError(t, c.Put(ctx, "A", in))
	in.Types[0] = "mutated"

	got, _, _ := c.Get(ctx, "A")
	assert.Equal(t, "cafe", got.Types[0])
	got.Query = "changed"
	again, _, _ := c.Get(ctx, "A")
	assert.Empty(t, again.Query)
}

func TestMemoryCache_SweepDropsExpired(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	c := NewMemoryCache(time.Minute, clk.Now)
	for i := 0; i < sweepEvery-1; i++ {
		require.NoError(t, c.Put(ctx, fmt.Sprintf("k%d", i), &domain.NormalizedPlace{}))
	}
	clk.Advance(2 * time.Minute)
	require.NoError(t, c.Put(ctx, "fresh", &domain.NormalizedPlace{}))
	assert.Equal(t, 1, c.Len())
}

func TestMemoryLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	l := NewMemoryLimiter(10, time.Minute, clk.Now)

	for i := 0; i < 10; i++ {
		ok, err := l.Allow(ctx, "u1")
		require.NoError(t, err)
		require.True(t, ok, "request %d should be allowed", i+1)
	}
	ok, _ := l.Allow(ctx, "u1")
	assert.False(t, ok, "11th request within the window is rejected")

	ok, _ = l.Allow(ctx, "u2")
	assert.True(t, ok, "windows are per key")

	clk.Advance(59 * time.Second)
	ok, _ = l.Allow(ctx, "u1")
	assert.False(t, ok)

	clk.Advance(time.Second)
	ok, _ = l.Allow(ctx, "u1")
	assert.True(t, ok, "window resets lazily after its deadline")
}

func TestMemoryLimiter_RejectedRequestsDoNotExtendWindow(t *testing.T) {
	ctx := context.Background()
	clk := newFakeClock()
	l := NewMemoryLimiter(1, time.Minute, clk.Now)
	ok, _ := l.Allow(ctx, "u")
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		clk.Advance(10 * time.Second)
		ok, _ = l.Allow(ctx, "u")
		require.False(t, ok)
	}
	clk.Advance(10 * time.Second)
	ok, _ = l.Allow(ctx, "u")
	assert.True(t, ok)
}

func TestMemoryLimiter_Concurrent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLimiter(50, time.Hour, nil)
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow(ctx, "shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}
