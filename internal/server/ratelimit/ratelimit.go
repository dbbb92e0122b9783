// Package ratelimit throttles selected RPCs per remote peer.
package ratelimit

import (
	"context"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

// PeerLimiter keeps one token bucket per remote host.
type PeerLimiter struct {
	mu         sync.Mutex
	limiters   map[string]*limiterEntry
	rate       rate.Limit
	burst      int
	idle       time.Duration
	maxEntries int
	now        func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

// New allows r requests per second with bursts of b. Buckets unused for
// idle are dropped on the next lookup sweep.
func New(r rate.Limit, b int, idle time.Duration) *PeerLimiter {
	return &PeerLimiter{
		limiters:   make(map[string]*limiterEntry),
		rate:       r,
		burst:      b,
		idle:       idle,
		maxEntries: 10000,
		now:        time.Now,
	}
}

// Allow reports whether host may make another request now.
func (l *PeerLimiter) Allow(host string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	entry, ok := l.limiters[host]
	if !ok {
		if len(l.limiters) >= l.maxEntries {
			l.sweep(now)
		}
		entry = &limiterEntry{limiter: rate.NewLimiter(l.rate, l.burst)}
		l.limiters[host] = entry
	}
	entry.lastAccess = now
	return entry.limiter.AllowN(now, 1)
}

// sweep drops idle buckets, or the oldest one if none are idle.
func (l *PeerLimiter) sweep(now time.Time) {
	var oldest string
	var oldestTime time.Time
	for host, e := range l.limiters {
		if now.Sub(e.lastAccess) > l.idle {
			delete(l.limiters, host)
			continue
		}
		if oldest == "" || e.lastAccess.Before(oldestTime) {
			oldest, oldestTime = host, e.lastAccess
		}
	}
	if len(l.limiters) >= l.maxEntries && oldest != "" {
		delete(l.limiters, oldest)
	}
}

// UnaryInterceptor limits the listed full method names. Other methods pass.
func (l *PeerLimiter) UnaryInterceptor(methods ...string) grpc.UnaryServerInterceptor {
	limited := make(map[string]struct{}, len(methods))
	for _, m := range methods {
		limited[m] = struct{}{}
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if _, ok := limited[info.FullMethod]; ok && !l.Allow(peerHost(ctx)) {
			return nil, status.Error(codes.ResourceExhausted, "rate limit exceeded")
		}
		return handler(ctx, req)
	}
}

func peerHost(ctx context.Context) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return "unknown"
	}
	host, _, err := net.SplitHostPort(p.Addr.String())
	if err != nil {
		return p.Addr.String()
	}
	return host
}
