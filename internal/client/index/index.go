// Package index maintains the append-only list of schedule ids stored under
// IndexKey.
package index

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophschedule/internal/client/codec"
	"github.com/dmitrijs2005/gophschedule/internal/common"
	"github.com/dmitrijs2005/gophschedule/internal/kv"
	"github.com/dmitrijs2005/gophschedule/internal/logging"
)

const (
	IndexKey     = "schedule_keys"
	RecordPrefix = "schedule_"
)

// RecordKey is the store key of the record with the given id.
func RecordKey(id string) string {
	return RecordPrefix + id
}

type Manager struct {
	reader kv.Reader
	writer kv.Writer
	logger logging.Logger
}

// NewManager builds a Manager. writer may be nil for read-only use; AppendKey
// then fails with common.ErrorUnauthorized.
func NewManager(r kv.Reader, w kv.Writer, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{reader: r, writer: w, logger: logger}
}

// LoadKeys returns the ids in the index. An absent or malformed index reads
// as empty; only a failing store read is returned.
func (m *Manager) LoadKeys(ctx context.Context) ([]string, error) {
	data, err := m.reader.GetData(ctx, IndexKey)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	keys, err := codec.UnmarshalKeys(data)
	if err != nil {
		m.logger.Warn(ctx, "ignoring malformed schedule index", "key", IndexKey, "error", err)
		return []string{}, nil
	}
	return keys, nil
}

// NextIndex returns the encoded index with key appended. A malformed stored
// index is replaced by one holding only key. There is no duplicate check.
func (m *Manager) NextIndex(ctx context.Context, key string) ([]byte, error) {
	data, err := m.reader.GetData(ctx, IndexKey)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}

	keys, err := codec.UnmarshalKeys(data)
	if err != nil {
		if !errors.Is(err, common.ErrMalformedIndex) {
			return nil, err
		}
		m.logger.Warn(ctx, "overwriting malformed schedule index", "key", IndexKey, "error", err)
		keys = []string{}
	}

	return codec.MarshalKeys(append(keys, key))
}

// AppendKey adds key to the stored index with a read-modify-write. Concurrent
// appenders race and the last write wins.
func (m *Manager) AppendKey(ctx context.Context, key string) error {
	if m.writer == nil {
		return common.ErrorUnauthorized
	}

	b, err := m.NextIndex(ctx, key)
	if err != nil {
		return err
	}

	if err := m.writer.SetData(ctx, IndexKey, b); err != nil {
		return fmt.Errorf("%w: index: %w", common.ErrWriteFailed, err)
	}
	return nil
}
