package cache

import (
	"bytes"
	"sync/atomic"
	"testing"
	"time"

	"news-portal-api/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSweeper_RemovesUnreadEntries(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	c := New[string](Options{Clock: clock, SweepInterval: 5 * time.Millisecond})
	c.Start()
	defer c.Stop()

	require.NoError(t, c.Set("ttl", "v", 20*time.Millisecond))
	require.NoError(t, c.Set("keep", "v", time.Hour))
	clock.Advance(30 * time.Millisecond)

	// Stats does not sweep, so Entries only drops once the background pass ran.
	require.Eventually(t, func() bool {
		return c.Stats().Entries == 1
	}, time.Second, 5*time.Millisecond)

	s := c.Stats()
	require.GreaterOrEqual(t, s.Sweeps, uint64(1))
	require.Equal(t, uint64(1), s.Swept)
	require.True(t, c.Has("keep"))
}

func TestSweeper_StartStopIdempotent(t *testing.T) {
	c := New[string](Options{SweepInterval: 10 * time.Millisecond})
	require.False(t, c.Running())

	c.Start()
	c.Start()
	require.True(t, c.Running())

	c.Stop()
	c.Stop()
	require.False(t, c.Running())

	// A stopped cache keeps serving reads and writes.
	require.NoError(t, c.Set("k", "v", time.Minute))
	v, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, "v", v)

	c.Start()
	require.True(t, c.Running())
	c.Stop()
}

func TestSweeper_DisabledWithNegativeInterval(t *testing.T) {
	c := New[string](Options{SweepInterval: -1})
	c.Start()
	require.False(t, c.Running())
	c.Stop()
}

func TestSweeper_StopHaltsSweeping(t *testing.T) {
	clock := testutil.NewFakeClock(epoch)
	c := New[string](Options{Clock: clock, SweepInterval: 5 * time.Millisecond})
	c.Start()
	c.Stop()

	sweeps := c.Stats().Sweeps
	require.NoError(t, c.Set("k", "v", time.Millisecond))
	clock.Advance(time.Second)
	time.Sleep(30 * time.Millisecond)

	s := c.Stats()
	require.Equal(t, sweeps, s.Sweeps)
	require.Equal(t, 1, s.Entries)
}

type panickyClock struct {
	*testutil.FakeClock
	fail atomic.Bool
}

func (c *panickyClock) Now() time.Time {
	if c.fail.Load() {
		panic("clock exploded")
	}
	return c.FakeClock.Now()
}

func TestSweeper_RecoversFromPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	clock := &panickyClock{FakeClock: testutil.NewFakeClock(epoch)}
	c := New[string](Options{Clock: clock, SweepInterval: -1, Logger: &logger})

	require.NoError(t, c.Set("k", "v", time.Second))

	clock.fail.Store(true)
	var err error
	require.NotPanics(t, func() { _, err = c.sweep() })
	require.Error(t, err)
	require.Contains(t, buf.String(), "sweep failed")
	require.Contains(t, buf.String(), "clock exploded")

	// The data lock must have been released by the failed pass.
	clock.fail.Store(false)
	clock.Advance(2 * time.Second)
	removed, err := c.sweep()
	require.NoError(t, err)
	require.Equal(t, 1, removed)
	require.Equal(t, uint64(2), c.Stats().Sweeps)
}
