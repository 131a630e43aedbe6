package home

import (
	"context"
	"sync"

	"duit/internal/logging"
	"duit/internal/storage"
)

// Counter is the persisted number of times a blocked app was opened.
type Counter struct {
	adapter *storage.Adapter

	mu     sync.Mutex
	value  int
	loaded bool
}

// NewCounter returns a Counter backed by adapter.
func NewCounter(adapter *storage.Adapter) *Counter {
	return &Counter{adapter: adapter}
}

// Load reads the stored count the first time it is called. Absent or
// unreadable values count as 0.
func (c *Counter) Load(ctx context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)
	return c.value
}

func (c *Counter) loadLocked(ctx context.Context) {
	if c.loaded {
		return
	}
	c.loaded = true

	var n int
	if res := c.adapter.Load(ctx, storage.KeyBlockedCount, &n); res.Found() && n >= 0 {
		c.value = n
	}
}

// Value returns the in-memory count without touching storage.
func (c *Counter) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Increment adds one and persists the new value immediately.
func (c *Counter) Increment(ctx context.Context) (int, storage.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadLocked(ctx)

	c.value++
	res := c.adapter.Save(ctx, storage.KeyBlockedCount, c.value)
	logging.Home("Blocked count now %d (%s)", c.value, res.Status)
	return c.value, res
}
