// Package metrics records per-RPC Prometheus metrics for the kv server.
package metrics

import (
	"context"
	"net/http"
	"path"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type Metrics struct {
	registry *prometheus.Registry

	rpcTotal    *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	logins      *prometheus.CounterVec
}

// New creates metrics on a private registry that also carries the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		rpcTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gophschedule_rpc_requests_total",
			Help: "Total number of RPCs handled, by method and status code.",
		}, []string{"method", "code"}),
		rpcDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gophschedule_rpc_duration_seconds",
			Help:    "Histogram of RPC latencies.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
		logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gophschedule_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
	}
}

// UnaryInterceptor observes every unary RPC.
func (m *Metrics) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		method := path.Base(info.FullMethod)
		m.rpcTotal.WithLabelValues(method, status.Code(err).String()).Inc()
		m.rpcDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
		return resp, err
	}
}

// ObserveLogin counts a login attempt. outcome is "ok" or a short reason.
func (m *Metrics) ObserveLogin(outcome string) {
	m.logins.WithLabelValues(outcome).Inc()
}

// TrackKeys exports count as the number of keys held by the backend. It is
// meant for in-process stores that can count cheaply.
func (m *Metrics) TrackKeys(count func() int) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gophschedule_stored_keys",
		Help: "Number of keys in the in-process store.",
	}, func() float64 { return float64(count()) }))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
