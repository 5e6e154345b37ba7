package cache

import (
	"context"
	"fmt"
	"time"
)

// Start launches the background sweeper, which calls Cleanup every sweep interval
// until Stop is called. Start is a no-op if the sweeper is already running or if
// sweeping was disabled with a negative interval.
func (c *ExpiringCache[V]) Start() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	if c.cancel != nil || c.sweepInterval < 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	c.wg.Add(1)
	go c.sweepLoop(ctx, c.sweepInterval)

	c.logger.Debug().Dur("interval", c.sweepInterval).Msg("sweeper started")
}

// Stop cancels the background sweeper and waits for it to exit. The cache stays
// usable afterwards and can be started again. Stop is safe to call multiple times.
func (c *ExpiringCache[V]) Stop() {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()

	if c.cancel == nil {
		return
	}
	c.cancel()
	c.cancel = nil
	c.wg.Wait()

	c.logger.Debug().Msg("sweeper stopped")
}

// Running reports whether the background sweeper is active.
func (c *ExpiringCache[V]) Running() bool {
	c.lifeMu.Lock()
	defer c.lifeMu.Unlock()
	return c.cancel != nil
}

func (c *ExpiringCache[V]) sweepLoop(ctx context.Context, interval time.Duration) {
	defer c.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep runs one active cleanup pass. A panic inside the pass is logged and
// swallowed so the owning process keeps running.
func (c *ExpiringCache[V]) sweep() (removed int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cache: sweep panicked: %v", r)
			c.logger.Error().Err(err).Msg("sweep failed")
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats.Sweeps++
	removed = c.cleanupLocked()
	if removed > 0 {
		c.logger.Debug().Int("removed", removed).Int("remaining", len(c.entries)).Msg("swept expired entries")
	}
	return removed, nil
}
