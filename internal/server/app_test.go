package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrGRPC = "127.0.0.1:0"
	c.AdminAddr = "127.0.0.1:0"
	c.Storage = "sqlite"
	c.SQLitePath = filepath.Join(t.TempDir(), "kv.db")
	c.LogLevel = "error"
	return c
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(150 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestApp_RunReportsListenError(t *testing.T) {
	c := testConfig(t)
	c.EndpointAddrGRPC = "127.0.0.1:99999"
	c.AdminAddr = ""

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.Error(t, app.Run(context.Background()))
}

func TestNewApp_BadStorage(t *testing.T) {
	c := testConfig(t)
	c.Storage = "tape"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestNewApp_MemoryStoreExportsKeyCount(t *testing.T) {
	c := testConfig(t)
	c.Storage = "memory"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.NoError(t, app.storage.Store().SetData(context.Background(), "schedule_keys", []byte(`[]`)))

	rec := httptest.NewRecorder()
	app.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "gophschedule_stored_keys 1")
}
