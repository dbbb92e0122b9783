// Package server wires configuration, storage, the gRPC endpoint and the
// admin HTTP endpoint into one process, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophschedule/internal/logging"
	"github.com/dmitrijs2005/gophschedule/internal/server/admin"
	"github.com/dmitrijs2005/gophschedule/internal/server/auth"
	"github.com/dmitrijs2005/gophschedule/internal/server/config"
	"github.com/dmitrijs2005/gophschedule/internal/server/metrics"
	"github.com/dmitrijs2005/gophschedule/internal/server/ratelimit"
	"github.com/dmitrijs2005/gophschedule/internal/server/storage"
	"golang.org/x/time/rate"

	gs "github.com/dmitrijs2005/gophschedule/internal/server/grpc"
)

const limiterIdle = 10 * time.Minute

type App struct {
	config  *config.Config
	logger  logging.Logger
	storage storage.Manager
	metrics *metrics.Metrics
	grpc    *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.New(os.Stdout, c.LogLevel, c.LogFormat)

	sm, err := storage.Open(ctx, c)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	if counter, ok := sm.Store().(interface{ Len() int }); ok {
		m.TrackKeys(counter.Len)
	}
	limiter := ratelimit.New(rate.Limit(c.LoginRatePerSecond), c.LoginBurst, limiterIdle)

	srv := gs.NewGRPCServer(gs.Options{
		Address:   c.EndpointAddrGRPC,
		JWTSecret: []byte(c.SecretKey),
		TokenTTL:  c.AccessTokenValidityDuration,
		Login:     auth.LoginPolicy{Window: c.LoginWindow, Owner: c.OwnerAddress},
	}, sm.Store(), logger, m, limiter)

	return &App{config: c, logger: logger, storage: sm, metrics: m, grpc: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until a signal arrives, ctx is cancelled or a listener fails.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	fail := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.grpc.Run(ctx); err != nil {
			fail(fmt.Errorf("grpc: %w", err))
		}
	}()

	if app.config.AdminAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := admin.NewRouter(app.storage.Store(), app.metrics)
			if err := admin.Run(ctx, app.config.AdminAddr, h, app.logger); err != nil {
				fail(fmt.Errorf("admin: %w", err))
			}
		}()
	}

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Warn(ctx, "closing storage", "error", err)
	}
	return firstErr
}
