package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/ipoluianov/jsonstore/internal/storage"
)

type PutResult struct {
	Key       string
	AccessURL string
}

// Put stores data under key, replacing an existing mapping with the same key
// in place. Data given as a JSON string must itself contain JSON text; the
// decoded value is stored.
func (c *Core) Put(ctx context.Context, key string, data json.RawMessage) (result PutResult, err error) {
	c.mtx.Lock()
	c.statistics.Put.Received++
	c.mtx.Unlock()

	key = strings.TrimSpace(key)
	if len(key) == 0 {
		err = validationError("key is required and must be a non-empty string")
	}

	var value json.RawMessage
	if err == nil {
		value, err = normalizeData(data)
	}

	if err != nil {
		c.mtx.Lock()
		c.statistics.Put.ErrorsValidation++
		c.mtx.Unlock()
		return
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		err = internalError("request cancelled", ctxErr)
		c.mtx.Lock()
		c.statistics.Put.ErrorsInternal++
		c.mtx.Unlock()
		return
	}

	storeErr := c.store.Update(func(mappings []storage.Mapping) ([]storage.Mapping, error) {
		m := storage.Mapping{
			Key:        key,
			Data:       value,
			StoredDate: c.timeNow().UTC(),
		}
		if i := storage.Find(mappings, key); i >= 0 {
			mappings[i] = m
		} else {
			mappings = append(mappings, m)
		}
		return mappings, nil
	})
	if storeErr != nil {
		err = internalError("failed to store data", storeErr)
		c.mtx.Lock()
		c.statistics.Put.ErrorsInternal++
		c.mtx.Unlock()
		return
	}

	result.Key = key
	result.AccessURL = AccessPath + "?id=" + url.QueryEscape(key)

	c.mtx.Lock()
	c.statistics.Put.Success++
	c.mtx.Unlock()
	return
}

func normalizeData(data json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, validationError("data is required")
	}

	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, validationError("data is not valid JSON")
		}
		inner := bytes.TrimSpace([]byte(text))
		if !json.Valid(inner) {
			return nil, validationError("data is not valid JSON")
		}
		return json.RawMessage(inner), nil
	}

	if !json.Valid(trimmed) {
		return nil, validationError("data is not valid JSON")
	}
	value := make(json.RawMessage, len(trimmed))
	copy(value, trimmed)
	return value, nil
}
