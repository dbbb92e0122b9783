package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnaryInterceptor_CountsByCode(t *testing.T) {
	m := New()
	icpt := m.UnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/gophschedule.kv.KeyValueStore/GetData"}

	_, err := icpt(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)

	_, err = icpt(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unauthenticated, "no")
	})
	require.Error(t, err)

	body := scrape(t, m)
	assert.Contains(t, body, `gophschedule_rpc_requests_total{code="OK",method="GetData"} 1`)
	assert.Contains(t, body, `gophschedule_rpc_requests_total{code="Unauthenticated",method="GetData"} 1`)
	assert.Contains(t, body, `gophschedule_rpc_duration_seconds_count{method="GetData"} 2`)
}

func TestHandler_ServesMetrics(t *testing.T) {
	m := New()
	m.ObserveLogin("ok")

	body := scrape(t, m)
	assert.Contains(t, body, `gophschedule_logins_total{outcome="ok"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestTrackKeys(t *testing.T) {
	m := New()
	n := 2
	m.TrackKeys(func() int { return n })

	assert.Contains(t, scrape(t, m), "gophschedule_stored_keys 2")
	n = 5
	assert.Contains(t, scrape(t, m), "gophschedule_stored_keys 5")
}

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}
