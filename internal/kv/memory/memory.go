// Package memory is an in-process kv.Store used by tests and the demo
// backend of the CLI and server.
package memory

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophschedule/internal/kv"
)

type Store struct {
	mu          sync.RWMutex
	data        map[string][]byte
	unavailable bool
}

func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// SetAvailable toggles the availability flag reported by IsAvailable.
func (s *Store) SetAvailable(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unavailable = !ok
}

func (s *Store) IsAvailable(ctx context.Context) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.unavailable, nil
}

func (s *Store) GetData(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return []byte{}, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *Store) SetData(ctx context.Context, key string, value []byte) error {
	v := make([]byte, len(value))
	copy(v, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
	return nil
}

// SetBatch applies all entries under one lock.
func (s *Store) SetBatch(ctx context.Context, entries []kv.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		v := make([]byte, len(e.Value))
		copy(v, e.Value)
		s.data[e.Key] = v
	}
	return nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}
