// Package postgres is the kv.Store used by the server when it is backed by
// PostgreSQL (pgx stdlib driver, goose migrations).
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/dbx"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/kv/postgres/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to dsn and applies migrations. The returned *sql.DB must be
// closed by the caller.
func Open(ctx context.Context, dsn string) (*Store, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("db open error: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.Migrations)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migration error: %w", err)
	}

	return New(db), db, nil
}

func (s *Store) IsAvailable(ctx context.Context) (bool, error) {
	return s.db.PingContext(ctx) == nil, nil
}

func (s *Store) GetData(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_data WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return value, nil
}

func (s *Store) SetData(ctx context.Context, key string, value []byte) error {
	return s.SetDataAs(ctx, "", key, value)
}

// SetDataAs upserts value and records which identity wrote it.
func (s *Store) SetDataAs(ctx context.Context, writer, key string, value []byte) error {
	return upsert(ctx, s.db, writer, key, value)
}

// SetBatch writes all entries in a single transaction.
func (s *Store) SetBatch(ctx context.Context, entries []kv.Entry) error {
	return s.SetBatchAs(ctx, "", entries)
}

// SetBatchAs is SetBatch with the writer identity recorded on every row.
func (s *Store) SetBatchAs(ctx context.Context, writer string, entries []kv.Entry) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, e := range entries {
			if err := upsert(ctx, tx, writer, e.Key, e.Value); err != nil {
				return err
			}
		}
		return nil
	})
}

func upsert(ctx context.Context, db dbx.DBTX, writer, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := db.ExecContext(ctx, `
		INSERT INTO kv_data (key, value, writer, updated_at) VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, writer = EXCLUDED.writer, updated_at = now()
	`, key, value, writer)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
