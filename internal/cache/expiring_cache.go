package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTTL           = 5 * time.Minute
	DefaultSweepInterval = 10 * time.Minute
)

var (
	ErrEmptyKey   = errors.New("cache: empty key")
	ErrInvalidTTL = errors.New("cache: ttl must be positive")
)

// entry stores a cached value with the time it was written and its absolute expiry.
type entry[V any] struct {
	value     V
	storedAt  time.Time
	expiresAt time.Time
}

func (e entry[V]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// Options controls construction of an ExpiringCache.
//
// Zero values select defaults: DefaultTTL, DefaultSweepInterval, SystemClock and a
// disabled logger. A negative SweepInterval disables background sweeping entirely.
type Options struct {
	DefaultTTL    time.Duration
	SweepInterval time.Duration
	Clock         Clock
	Logger        *zerolog.Logger
}

// ExpiringCache is a process-local map from string keys to values with absolute
// per-entry expiry. Expired entries are removed lazily on access and actively by
// Cleanup, which the background sweeper runs between Start and Stop.
//
// Every operation runs under a single mutex; none of them block on I/O.
type ExpiringCache[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	stats   Stats

	defaultTTL    time.Duration
	sweepInterval time.Duration
	clock         Clock
	logger        zerolog.Logger

	// Sweeper ownership. lifeMu is separate from mu so Stop can wait for an
	// in-flight sweep without holding the data lock.
	lifeMu sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs an empty cache. It does not start the background sweeper.
func New[V any](opts Options) *ExpiringCache[V] {
	c := &ExpiringCache[V]{
		entries:       make(map[string]entry[V]),
		defaultTTL:    opts.DefaultTTL,
		sweepInterval: opts.SweepInterval,
		clock:         opts.Clock,
		logger:        zerolog.Nop(),
	}
	if c.defaultTTL <= 0 {
		c.defaultTTL = DefaultTTL
	}
	if c.sweepInterval == 0 {
		c.sweepInterval = DefaultSweepInterval
	}
	if c.clock == nil {
		c.clock = SystemClock
	}
	if opts.Logger != nil {
		c.logger = opts.Logger.With().Str("component", "cache").Logger()
	}
	return c
}

// DefaultTTL returns the TTL applied when Set is called with ttl == 0.
func (c *ExpiringCache[V]) DefaultTTL() time.Duration {
	return c.defaultTTL
}

// Set creates or fully replaces the entry for key, stamping it with the current time.
//
// ttl == 0 selects the default TTL; a negative ttl is rejected.
func (c *ExpiringCache[V]) Set(key string, value V, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}
	if ttl < 0 {
		return fmt.Errorf("%w: %q got %s", ErrInvalidTTL, key, ttl)
	}
	if ttl == 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	c.entries[key] = entry[V]{
		value:     value,
		storedAt:  now,
		expiresAt: now.Add(ttl),
	}
	c.stats.Sets++
	return nil
}

// Get returns the stored value if it has not expired. An expired entry is removed.
// A hit does not extend the entry's lifetime.
func (c *ExpiringCache[V]) Get(key string) (V, bool) {
	v, res := c.Lookup(key)
	return v, res == Hit
}

// Has reports whether key holds a live entry, removing it if it has expired.
//
// Has followed by Get is not atomic: the entry may expire in between.
func (c *ExpiringCache[V]) Has(key string) bool {
	_, res := c.Lookup(key)
	return res == Hit
}

// Lookup is Get with the miss reason: Miss when the key was never stored (or was
// already removed), Expired when a stale entry was found and removed by this call.
func (c *ExpiringCache[V]) Lookup(key string) (V, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return zero, Miss
	}
	if e.expired(c.clock.Now()) {
		delete(c.entries, key)
		c.stats.Expired++
		return zero, Expired
	}
	c.stats.Hits++
	return e.value, Hit
}

// Delete removes a key if present.
func (c *ExpiringCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Clear removes all entries.
func (c *ExpiringCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[V])
}

// Cleanup removes every expired entry and returns how many were removed.
// It is O(n) in the number of stored entries.
func (c *ExpiringCache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cleanupLocked()
}

func (c *ExpiringCache[V]) cleanupLocked() int {
	if len(c.entries) == 0 {
		return 0
	}
	now := c.clock.Now()
	removed := 0
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			removed++
		}
	}
	c.stats.Swept += uint64(removed)
	return removed
}

// Size sweeps expired entries and returns the number of live ones.
// It is not O(1); see Cleanup.
func (c *ExpiringCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupLocked()
	return len(c.entries)
}

// Stats returns a snapshot of the cache counters. Entries is the raw map size and
// may include expired entries not yet swept.
func (c *ExpiringCache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.entries)
	return s
}

// Ensure ExpiringCache implements Cache at compile time.
var _ Cache[any] = (*ExpiringCache[any])(nil)
