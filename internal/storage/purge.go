package storage

import "time"

const DefaultMaxAge = 24 * time.Hour

// Purge drops mappings whose age at now is maxAge or more. The document is
// rewritten only when something was removed.
func (c *Store) Purge(now time.Time, maxAge time.Duration) (removed int, err error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	var mappings []Mapping
	mappings, err = c.load()
	if err != nil {
		return
	}

	kept := make([]Mapping, 0, len(mappings))
	for _, m := range mappings {
		if now.Sub(m.StoredDate) < maxAge {
			kept = append(kept, m)
		}
	}

	removed = len(mappings) - len(kept)
	if removed == 0 {
		return
	}
	err = c.save(kept)
	return
}
