package memory

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ kv.Store       = (*Store)(nil)
	_ kv.BatchWriter = (*Store)(nil)
)

func TestStore_AbsentKeyIsEmpty(t *testing.T) {
	s := New()
	v, err := s.GetData(context.Background(), "schedule_keys")
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestStore_SetGetCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []byte("abc")
	require.NoError(t, s.SetData(ctx, "k", in))
	in[0] = 'x'

	out, err := s.GetData(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), out)

	out[0] = 'y'
	again, _ := s.GetData(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Availability(t *testing.T) {
	s := New()
	ctx := context.Background()

	ok, err := s.IsAvailable(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	s.SetAvailable(false)
	ok, _ = s.IsAvailable(ctx)
	assert.False(t, ok)
}

func TestStore_SetBatch(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.SetBatch(ctx, []kv.Entry{
		{Key: "schedule_1", Value: []byte("r")},
		{Key: "schedule_keys", Value: []byte(`["1"]`)},
	}))

	v, _ := s.GetData(ctx, "schedule_keys")
	assert.Equal(t, `["1"]`, string(v))
	assert.Equal(t, 2, s.Len())
}
