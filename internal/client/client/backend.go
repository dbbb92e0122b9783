package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/kv/memory"
	"github.com/dmitrijs2005/gophschedule/internal/kv/postgres"
	"github.com/dmitrijs2005/gophschedule/internal/kv/s3store"
	"github.com/dmitrijs2005/gophschedule/internal/kv/sqlite"
)

// Backend kinds accepted by Open.
const (
	KindGRPC     = "grpc"
	KindSQLite   = "sqlite"
	KindPostgres = "postgres"
	KindS3       = "s3"
	KindMemory   = "memory"
)

// Options select and locate the store.
type Options struct {
	Kind    string
	Address string
	DSN     string
	S3      s3store.Config
}

// Backend is an opened store in read-only mode.
type Backend struct {
	Reader kv.Reader

	authorize func(ctx context.Context, cred Credential) (kv.Writer, error)
	closers   []func() error
}

// Authorize returns the authenticated access mode for cred.
func (b *Backend) Authorize(ctx context.Context, cred Credential) (kv.Writer, error) {
	if cred == nil {
		return nil, common.ErrorUnauthorized
	}
	return b.authorize(ctx, cred)
}

func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c())
	}
	return errors.Join(errs...)
}

// localBackend wraps a store the process talks to directly. The credential
// only gates access; there is nothing to exchange it for.
func localBackend(st kv.Store) *Backend {
	return &Backend{
		Reader: st,
		authorize: func(ctx context.Context, cred Credential) (kv.Writer, error) {
			return st, nil
		},
	}
}

// attributedWriter stamps every write with the credential's address.
type attributedWriter struct {
	store  *postgres.Store
	writer string
}

func (w attributedWriter) SetData(ctx context.Context, key string, value []byte) error {
	return w.store.SetDataAs(ctx, w.writer, key, value)
}

func (w attributedWriter) SetBatch(ctx context.Context, entries []kv.Entry) error {
	return w.store.SetBatchAs(ctx, w.writer, entries)
}

// Open connects to the store described by opts.
func Open(ctx context.Context, opts Options) (*Backend, error) {
	switch opts.Kind {
	case KindGRPC, "":
		c, err := NewGRPCClient(opts.Address)
		if err != nil {
			return nil, fmt.Errorf("grpc client: %w", err)
		}
		return &Backend{
			Reader: c,
			authorize: func(ctx context.Context, cred Credential) (kv.Writer, error) {
				return c.Login(ctx, cred)
			},
			closers: []func() error{c.Close},
		}, nil

	case KindSQLite:
		st, err := sqlite.Open(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		b := localBackend(st)
		b.closers = append(b.closers, st.Close)
		return b, nil

	case KindPostgres:
		st, db, err := postgres.Open(ctx, opts.DSN)
		if err != nil {
			return nil, err
		}
		return &Backend{
			Reader: st,
			authorize: func(ctx context.Context, cred Credential) (kv.Writer, error) {
				return attributedWriter{store: st, writer: cred.Address()}, nil
			},
			closers: []func() error{db.Close},
		}, nil

	case KindS3:
		st, err := s3store.New(ctx, opts.S3)
		if err != nil {
			return nil, err
		}
		return localBackend(st), nil

	case KindMemory:
		return localBackend(memory.New()), nil
	}

	return nil, fmt.Errorf("%w: unknown store kind %q", common.ErrInvalidInput, opts.Kind)
}
