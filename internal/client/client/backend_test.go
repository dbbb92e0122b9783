package client

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Memory(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, Options{Kind: KindMemory})
	require.NoError(t, err)
	defer b.Close()

	_, err = b.Authorize(ctx, nil)
	require.ErrorIs(t, err, common.ErrorUnauthorized)

	w, err := b.Authorize(ctx, newTestCred(t))
	require.NoError(t, err)
	require.NoError(t, w.SetData(ctx, "k", []byte("v")))

	got, err := b.Reader.GetData(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "schedule.db")

	b, err := Open(ctx, Options{Kind: KindSQLite, DSN: dsn})
	require.NoError(t, err)

	w, err := b.Authorize(ctx, newTestCred(t))
	require.NoError(t, err)
	require.NoError(t, w.SetData(ctx, "schedule_keys", []byte(`["a"]`)))
	require.NoError(t, b.Close())

	b, err = Open(ctx, Options{Kind: KindSQLite, DSN: dsn})
	require.NoError(t, err)
	defer b.Close()

	got, err := b.Reader.GetData(ctx, "schedule_keys")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a"]`), got)
}

func TestOpen_UnknownKind(t *testing.T) {
	_, err := Open(context.Background(), Options{Kind: "floppy"})
	require.ErrorIs(t, err, common.ErrInvalidInput)
}
