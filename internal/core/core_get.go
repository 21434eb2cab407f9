package core

import (
	"context"
	"strings"

	"github.com/ipoluianov/jsonstore/internal/storage"
)

// Get looks up the mapping whose key equals the trimmed id.
func (c *Core) Get(ctx context.Context, id string) (mapping storage.Mapping, err error) {
	c.mtx.Lock()
	c.statistics.Get.Received++
	c.mtx.Unlock()

	id = strings.TrimSpace(id)
	if len(id) == 0 {
		err = validationError("id is required")
		c.mtx.Lock()
		c.statistics.Get.ErrorsValidation++
		c.mtx.Unlock()
		return
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = internalError("request cancelled", ctxErr)
		c.mtx.Lock()
		c.statistics.Get.ErrorsInternal++
		c.mtx.Unlock()
		return
	}

	mappings, loadErr := c.store.Load()
	if loadErr != nil {
		err = internalError("failed to read data", loadErr)
		c.mtx.Lock()
		c.statistics.Get.ErrorsInternal++
		c.mtx.Unlock()
		return
	}

	i := storage.Find(mappings, id)
	if i < 0 {
		err = notFoundError("Data not found or expired")
		c.mtx.Lock()
		c.statistics.Get.ErrorsNotFound++
		c.mtx.Unlock()
		return
	}

	mapping = mappings[i]
	c.mtx.Lock()
	c.statistics.Get.Success++
	c.mtx.Unlock()
	return
}
