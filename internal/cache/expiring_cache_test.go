package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"news-portal-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func newTestCache(t *testing.T) (*ExpiringCache[string], *testutil.FakeClock) {
	t.Helper()
	clock := testutil.NewFakeClock(epoch)
	c := New[string](Options{Clock: clock, SweepInterval: -1})
	return c, clock
}

func TestExpiringCache_SetThenGetWithinTTL(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("k", "v", time.Second))
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)

	clock.Advance(999 * time.Millisecond)
	v, ok = c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)
	require.True(t, c.Has("k"))
}

func TestExpiringCache_ExpiresAtExactDeadline(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("k", "v", 100*time.Millisecond))
	clock.Advance(100 * time.Millisecond)

	_, ok := c.Get("k")
	require.False(t, ok)
	require.False(t, c.Has("k"))
}

func TestExpiringCache_HasRemovesExpiredEntry(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("k", "v", time.Second))
	clock.Advance(2 * time.Second)

	require.False(t, c.Has("k"))
	require.Equal(t, 0, c.Stats().Entries, "expected lazy removal on Has")
}

func TestExpiringCache_OverwriteResetsExpiry(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("k", "v1", 100*time.Millisecond))
	clock.Advance(60 * time.Millisecond)
	require.NoError(t, c.Set("k", "v2", 100*time.Millisecond))
	clock.Advance(60 * time.Millisecond)

	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v2", v)
}

func TestExpiringCache_HitDoesNotExtendLifetime(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("k", "v", 100*time.Millisecond))
	for i := 0; i < 9; i++ {
		clock.Advance(10 * time.Millisecond)
		_, ok := c.Get("k")
		require.True(t, ok)
	}
	clock.Advance(10 * time.Millisecond)
	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestExpiringCache_DefaultTTL(t *testing.T) {
	c, clock := newTestCache(t)
	require.Equal(t, DefaultTTL, c.DefaultTTL())

	require.NoError(t, c.Set("k", "v", 0))
	clock.Advance(DefaultTTL - time.Nanosecond)
	require.True(t, c.Has("k"))
	clock.Advance(time.Nanosecond)
	require.False(t, c.Has("k"))
}

func TestExpiringCache_InvalidInput(t *testing.T) {
	c, _ := newTestCache(t)

	err := c.Set("", "v", time.Second)
	require.True(t, errors.Is(err, ErrEmptyKey))

	err = c.Set("k", "v", -time.Second)
	require.True(t, errors.Is(err, ErrInvalidTTL))
	require.Contains(t, err.Error(), `"k"`)

	require.False(t, c.Has("k"))
	require.Equal(t, uint64(0), c.Stats().Sets)
}

func TestExpiringCache_CleanupRemovesOnlyExpired(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("short", "a", 10*time.Millisecond))
	require.NoError(t, c.Set("long1", "b", 1000*time.Millisecond))
	require.NoError(t, c.Set("long2", "c", 1000*time.Millisecond))
	clock.Advance(20 * time.Millisecond)

	require.Equal(t, 1, c.Cleanup())
	require.Equal(t, 2, c.Size())
	require.True(t, c.Has("long1"))
	require.True(t, c.Has("long2"))
}

func TestExpiringCache_CleanupIsIdempotent(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("a", "1", 10*time.Millisecond))
	require.NoError(t, c.Set("b", "2", time.Second))
	clock.Advance(50 * time.Millisecond)

	c.Cleanup()
	first := c.Size()
	require.Equal(t, 0, c.Cleanup())
	require.Equal(t, first, c.Size())
	require.Equal(t, 1, first)
}

func TestExpiringCache_SizeExcludesExpired(t *testing.T) {
	c, clock := newTestCache(t)

	require.NoError(t, c.Set("a", "1", 10*time.Millisecond))
	require.NoError(t, c.Set("b", "2", 30*time.Millisecond))
	require.Equal(t, 2, c.Size())

	clock.Advance(10 * time.Millisecond)
	require.Equal(t, 1, c.Size())

	clock.Advance(20 * time.Millisecond)
	require.Equal(t, 0, c.Size())
}

func TestExpiringCache_Clear(t *testing.T) {
	for _, n := range []int{0, 1, 25} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			c, _ := newTestCache(t)
			for i := 0; i < n; i++ {
				require.NoError(t, c.Set(fmt.Sprintf("k%d", i), "v", time.Minute))
			}

			c.Clear()
			require.Equal(t, 0, c.Size())
			for i := 0; i < n; i++ {
				_, ok := c.Get(fmt.Sprintf("k%d", i))
				require.False(t, ok)
			}
		})
	}
}

func TestExpiringCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)

	require.NoError(t, c.Set("a", "1", time.Minute))
	require.NoError(t, c.Set("b", "2", time.Minute))
	c.Delete("a")
	c.Delete("missing")

	require.False(t, c.Has("a"))
	require.True(t, c.Has("b"))
}

func TestExpiringCache_LookupAndStats(t *testing.T) {
	c, clock := newTestCache(t)

	_, res := c.Lookup("k")
	require.Equal(t, Miss, res)

	require.NoError(t, c.Set("k", "v", time.Second))
	v, res := c.Lookup("k")
	require.Equal(t, Hit, res)
	require.Equal(t, "v", v)

	clock.Advance(time.Second)
	v, res = c.Lookup("k")
	require.Equal(t, Expired, res)
	require.Empty(t, v)

	// Already removed, so a second lookup is a plain miss.
	_, res = c.Lookup("k")
	require.Equal(t, Miss, res)

	s := c.Stats()
	require.Equal(t, uint64(1), s.Sets)
	require.Equal(t, uint64(1), s.Hits)
	require.Equal(t, uint64(2), s.Misses)
	require.Equal(t, uint64(1), s.Expired)
	require.Equal(t, 0, s.Entries)
	require.InDelta(t, 0.25, s.HitRatio(), 1e-9)
	require.Equal(t, "expired", Expired.String())
}

func TestExpiringCache_ValuesAreReturnedVerbatim(t *testing.T) {
	type payload struct {
		Items []int
	}
	c := New[*payload](Options{SweepInterval: -1})

	p := &payload{Items: []int{1, 2, 3}}
	require.NoError(t, c.Set("p", p, time.Minute))
	got, ok := c.Get("p")
	require.True(t, ok)
	require.Same(t, p, got)
}

func TestExpiringCache_IndependentInstances(t *testing.T) {
	a, _ := newTestCache(t)
	b, _ := newTestCache(t)

	require.NoError(t, a.Set("k", "a", time.Minute))
	require.False(t, b.Has("k"))
}

func TestExpiringCache_Concurrent(t *testing.T) {
	c := New[int](Options{SweepInterval: -1})

	keys := 50
	rounds := 200
	var wg sync.WaitGroup
	for i := 0; i < keys; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			for r := 0; r < rounds; r++ {
				_ = c.Set(key, r, time.Minute)
				_, _ = c.Get(key)
				_ = c.Has(key)
				if r%50 == 0 {
					c.Cleanup()
				}
			}
		}()
	}
	wg.Wait()

	require.Equal(t, keys, c.Size())
	for i := 0; i < keys; i++ {
		v, ok := c.Get(fmt.Sprintf("k%d", i))
		require.True(t, ok)
		require.Equal(t, rounds-1, v)
	}
}
