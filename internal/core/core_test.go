package core

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ipoluianov/jsonstore/internal/storage"
	"github.com/stretchr/testify/require"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()
	store := storage.NewStore(filepath.Join(t.TempDir(), "data.json"))
	return NewCore(store, storage.DefaultMaxAge)
}

func TestPutGetRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected string
	}{
		{name: "object", data: `{"a":1,"b":[true,null]}`, expected: `{"a":1,"b":[true,null]}`},
		{name: "array", data: `[1, "two", 3.5]`, expected: `[1,"two",3.5]`},
		{name: "number", data: `42`, expected: `42`},
		{name: "boolean", data: `false`, expected: `false`},
		{name: "json text in string", data: `"{\"a\":1}"`, expected: `{"a":1}`},
		{name: "string scalar in string", data: `"\"hello\""`, expected: `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCore(t)
			ctx := context.Background()

			res, err := c.Put(ctx, "  k1 ", json.RawMessage(tt.data))
			require.NoError(t, err)
			require.Equal(t, "k1", res.Key)
			require.Equal(t, "/getData?id=k1", res.AccessURL)

			m, err := c.Get(ctx, "k1")
			require.NoError(t, err)
			require.Equal(t, "k1", m.Key)
			require.JSONEq(t, tt.expected, string(m.Data))
		})
	}
}

func TestPutOverwriteKeepsPosition(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	first := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	c.timeNow = func() time.Time { return first }

	_, err := c.Put(ctx, "a", json.RawMessage(`1`))
	require.NoError(t, err)
	_, err = c.Put(ctx, "b", json.RawMessage(`2`))
	require.NoError(t, err)

	second := first.Add(time.Hour)
	c.timeNow = func() time.Time { return second }
	_, err = c.Put(ctx, "a", json.RawMessage(`{"v":2}`))
	require.NoError(t, err)

	mappings, err := c.Store().Load()
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	require.Equal(t, "a", mappings[0].Key)
	require.Equal(t, "b", mappings[1].Key)
	require.JSONEq(t, `{"v":2}`, string(mappings[0].Data))
	require.True(t, mappings[0].StoredDate.Equal(second))
	require.True(t, mappings[1].StoredDate.Equal(first))
}

func TestConcurrentPutsKeepEveryKey(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	const n = 50

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Put(ctx, fmt.Sprintf("key-%d", i), json.RawMessage(fmt.Sprint(i)))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	mappings, err := c.Store().Load()
	require.NoError(t, err)
	require.Len(t, mappings, n)
	for i := 0; i < n; i++ {
		m, err := c.Get(ctx, fmt.Sprintf("key-%d", i))
		require.NoError(t, err)
		require.JSONEq(t, fmt.Sprint(i), string(m.Data))
	}
	require.Equal(t, int64(n), c.Info().Put.Success)
}

func TestPutSameDataRefreshesDate(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	first := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	c.timeNow = func() time.Time { return first }
	_, err := c.Put(ctx, "a", json.RawMessage(`1`))
	require.NoError(t, err)

	c.timeNow = func() time.Time { return first.Add(time.Minute) }
	_, err = c.Put(ctx, "a", json.RawMessage(`1`))
	require.NoError(t, err)

	m, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, m.StoredDate.Equal(first.Add(time.Minute)))
}

func TestPutValidation(t *testing.T) {
	tests := []struct {
		name string
		key  string
		data string
	}{
		{name: "empty key", key: "", data: `1`},
		{name: "blank key", key: "   ", data: `1`},
		{name: "missing data", key: "k", data: ``},
		{name: "null data", key: "k", data: `null`},
		{name: "string that is not json", key: "k", data: `"not json"`},
		{name: "empty string", key: "k", data: `""`},
		{name: "broken raw json", key: "k", data: `{"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCore(t)
			_, err := c.Put(context.Background(), tt.key, json.RawMessage(tt.data))
			require.Error(t, err)
			require.True(t, IsValidation(err))

			_, statErr := os.Stat(c.Store().FilePath())
			require.True(t, os.IsNotExist(statErr), "store must not be touched")
			require.Equal(t, int64(1), c.Info().Put.ErrorsValidation)
		})
	}
}

func TestGetValidationAndNotFound(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	_, err := c.Get(ctx, " ")
	require.True(t, IsValidation(err))

	_, err = c.Get(ctx, "nonexistent-key")
	require.True(t, IsNotFound(err))

	_, err = c.Put(ctx, "Key", json.RawMessage(`1`))
	require.NoError(t, err)
	_, err = c.Get(ctx, "key")
	require.True(t, IsNotFound(err), "lookup is case-sensitive")

	stat := c.Info()
	require.Equal(t, int64(3), stat.Get.Received)
	require.Equal(t, int64(1), stat.Get.ErrorsValidation)
	require.Equal(t, int64(2), stat.Get.ErrorsNotFound)
}

func TestInternalErrorOnMalformedStore(t *testing.T) {
	c := newTestCore(t)
	require.NoError(t, os.WriteFile(c.Store().FilePath(), []byte("{broken"), 0644))

	_, err := c.Put(context.Background(), "k", json.RawMessage(`1`))
	require.Equal(t, KindInternal, KindOf(err))
	require.ErrorIs(t, err, storage.ErrMalformedDocument)

	_, err = c.Get(context.Background(), "k")
	require.Equal(t, KindInternal, KindOf(err))
}

func TestCancelledContext(t *testing.T) {
	c := newTestCore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Put(ctx, "k", json.RawMessage(`1`))
	require.Equal(t, KindInternal, KindOf(err))
	require.ErrorIs(t, err, context.Canceled)
}

func TestPurgeUsesRetention(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	c.timeNow = func() time.Time { return now.Add(-25 * time.Hour) }
	_, err := c.Put(ctx, "old", json.RawMessage(`1`))
	require.NoError(t, err)
	c.timeNow = func() time.Time { return now.Add(-23 * time.Hour) }
	_, err = c.Put(ctx, "young", json.RawMessage(`2`))
	require.NoError(t, err)

	c.timeNow = func() time.Time { return now }
	removed, err := c.Purge(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = c.Get(ctx, "old")
	require.True(t, IsNotFound(err))
	_, err = c.Get(ctx, "young")
	require.NoError(t, err)

	stat := c.Info()
	require.Equal(t, int64(1), stat.Purge.Removed)
	require.Equal(t, int64(1), stat.Info.Received)
}

func TestKindOf(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(os.ErrNotExist))
	require.Equal(t, KindValidation, KindOf(validationError("x")))
	require.False(t, IsNotFound(nil))
	require.Equal(t, "not found", KindNotFound.String())
}
