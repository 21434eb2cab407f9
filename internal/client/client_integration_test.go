package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/ipoluianov/jsonstore/internal/config"
	"github.com/ipoluianov/jsonstore/internal/core"
	"github.com/ipoluianov/jsonstore/internal/http_server"
	"github.com/ipoluianov/jsonstore/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestClientAgainstServer(t *testing.T) {
	dir := t.TempDir()
	conf := config.Default()
	conf.Storage.FilePath = filepath.Join(dir, "data.json")
	conf.Logs.Path = filepath.Join(dir, "logs")
	conf.Http.PublicDir = filepath.Join(dir, "public")

	s := http_server.NewHttpServer(conf, core.NewCore(storage.NewStore(conf.Storage.FilePath), storage.DefaultMaxAge))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = s.Stop(context.Background())
	})

	c := New(ts.URL, ts.Client())
	ctx := context.Background()

	key := GenerateKey(DefaultKeyLength)
	put, err := c.Put(ctx, key, json.RawMessage(`[1,{"b":"c"}]`))
	require.NoError(t, err)
	require.Equal(t, key, put.Key)

	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	require.JSONEq(t, `[1,{"b":"c"}]`, string(got.Data))

	_, err = c.Put(ctx, key, json.RawMessage(`"v2"`))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr), "a string that is not JSON text is rejected")
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	_, err = c.Put(ctx, key, json.RawMessage(`{"v":2}`))
	require.NoError(t, err)
	got, err = c.Get(ctx, key)
	require.NoError(t, err)
	require.JSONEq(t, `{"v":2}`, string(got.Data))
}
