package core

import "context"

// Purge removes mappings older than the retention period.
func (c *Core) Purge(_ context.Context) (removed int, err error) {
	c.mtx.Lock()
	c.statistics.Purge.Received++
	c.mtx.Unlock()

	removed, err = c.store.Purge(c.timeNow(), c.maxAge)

	c.mtx.Lock()
	if err != nil {
		c.statistics.Purge.Errors++
	}
	c.statistics.Purge.Removed += int64(removed)
	c.mtx.Unlock()
	return
}
