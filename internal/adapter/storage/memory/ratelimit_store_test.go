package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestStore() (*RateLimitStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	s := NewRateLimitStore()
	s.now = clock.Now
	return s, clock
}

func TestRateLimitStore_Allow(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	for i := int64(1); i <= 10; i++ {
		res, err := store.Allow(ctx, "donation:1.1.1.1", 10, 15*time.Minute)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 10-i, res.Remaining)
	}

	res, err := store.Allow(ctx, "donation:1.1.1.1", 10, 15*time.Minute)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, int64(0), res.Remaining)
	assert.Equal(t, clock.Now().Add(15*time.Minute).Unix(), res.ResetAt)

	other, err := store.Allow(ctx, "donation:2.2.2.2", 10, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, other.Allowed)

	clock.Advance(15 * time.Minute)

	res, err = store.Allow(ctx, "donation:1.1.1.1", 10, 15*time.Minute)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, int64(9), res.Remaining)
}

func TestRateLimitStore_SweepsExpiredWindows(t *testing.T) {
	store, clock := newTestStore()
	ctx := context.Background()

	for _, ip := range []string{"a", "b", "c"} {
		_, err := store.Allow(ctx, ip, 5, time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, store.Len())

	clock.Advance(2 * time.Minute)
	_, err := store.Allow(ctx, "d", 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestRateLimitStore_Concurrent(t *testing.T) {
	store := NewRateLimitStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := store.Allow(ctx, "upload:9.9.9.9", 30, 15*time.Minute)
			if err == nil && res.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 30, allowed)
}
