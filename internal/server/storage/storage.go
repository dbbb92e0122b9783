// Package storage opens the kv backend selected in the server config.
package storage

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/kv/memory"
	"github.com/dmitrijs2005/gophschedule/internal/kv/postgres"
	"github.com/dmitrijs2005/gophschedule/internal/kv/s3store"
	"github.com/dmitrijs2005/gophschedule/internal/kv/sqlite"
	"github.com/dmitrijs2005/gophschedule/internal/server/config"
)

// Manager owns an open backend.
type Manager interface {
	Store() kv.Store
	Close() error
}

type manager struct {
	store kv.Store
	close func() error
}

func (m manager) Store() kv.Store {
	return m.store
}

func (m manager) Close() error {
	if m.close == nil {
		return nil
	}
	return m.close()
}

// Open connects to the backend named by cfg.Storage and applies migrations
// where the backend has them.
func Open(ctx context.Context, cfg *config.Config) (Manager, error) {
	switch cfg.Storage {
	case "memory":
		return manager{store: memory.New()}, nil

	case "sqlite":
		st, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite init error: %w", err)
		}
		return manager{store: st, close: st.Close}, nil

	case "postgres":
		st, db, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		return manager{store: st, close: db.Close}, nil

	case "s3":
		st, err := s3store.New(ctx, s3store.Config{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3RootUser,
			SecretKey:    cfg.S3RootPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 init error: %w", err)
		}
		return manager{store: st}, nil
	}

	return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
