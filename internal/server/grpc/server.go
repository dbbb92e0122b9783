// Package grpc serves a kv.Store over the KeyValueStore gRPC service.
package grpc

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/kvpb"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
	"github.com/dmitrijs2005/gophschedule/internal/server/auth"
	"github.com/dmitrijs2005/gophschedule/internal/server/metrics"
	"github.com/dmitrijs2005/gophschedule/internal/server/ratelimit"
	"google.golang.org/grpc"
)

// Options configure the server.
type Options struct {
	Address   string
	JWTSecret []byte
	TokenTTL  time.Duration
	Login     auth.LoginPolicy
}

type GRPCServer struct {
	address   string
	store     kv.Store
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
	login     auth.LoginPolicy
	metrics   *metrics.Metrics
	limiter   *ratelimit.PeerLimiter
	now       func() time.Time
}

// NewGRPCServer builds a server. m and limiter are optional.
func NewGRPCServer(opts Options, store kv.Store, l logging.Logger, m *metrics.Metrics, limiter *ratelimit.PeerLimiter) *GRPCServer {
	if l == nil {
		l = logging.NewNop()
	}
	return &GRPCServer{
		address:   opts.Address,
		store:     store,
		logger:    l.With("module", "grpc_server"),
		jwtSecret: opts.JWTSecret,
		tokenTTL:  opts.TokenTTL,
		login:     opts.Login,
		metrics:   m,
		limiter:   limiter,
		now:       time.Now,
	}
}

func (s *GRPCServer) interceptors() []grpc.UnaryServerInterceptor {
	var chain []grpc.UnaryServerInterceptor
	if s.metrics != nil {
		chain = append(chain, s.metrics.UnaryInterceptor())
	}
	if s.limiter != nil {
		chain = append(chain, s.limiter.UnaryInterceptor(kvpb.LoginMethod))
	}
	return append(chain, s.accessTokenInterceptor)
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve serves on lis until ctx is done.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.interceptors()...))

	kvpb.RegisterKeyValueStoreServer(srv, s)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}

	return nil
}
