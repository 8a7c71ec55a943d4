package session

import (
	"time"

	"github.com/liquidframes/motioncore/internal/store"
)

// Debounced persistence: every mutation re-arms a timer instead of
// writing immediately, so a burst of edits produces one file write. A
// stopped timer means the pending save was superseded, not lost; the
// re-armed timer carries the newer state.

func (c *Controller) scheduleSave() {
	c.mu.Lock()
	c.scheduleSaveLocked()
	c.mu.Unlock()
}

func (c *Controller) scheduleSaveLocked() {
	if c.path == "" {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		if err := c.Flush(); err != nil {
			c.log.Error().Err(err).Msg("debounced save failed")
		}
	})
}

// Flush writes the current state to disk immediately. The save mutex
// keeps at most one write in flight per workspace file.
func (c *Controller) Flush() error {
	if c.path == "" {
		return nil
	}
	c.mu.Lock()
	c.savedAt = c.now()
	snap := c.snapshotLocked()
	path := c.path
	c.mu.Unlock()

	c.saveMu.Lock()
	defer c.saveMu.Unlock()
	return store.Save(snap, path)
}

// Close cancels any pending debounced save and flushes once.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	return c.Flush()
}
