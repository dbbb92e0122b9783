// Package kv defines the contract of the remote key/value store that holds
// schedule records and their index.
//
// Readers are available without a credential. A Writer is the authenticated
// variant: backends hand one out only to a caller bound to a writer identity.
// GetData returns empty bytes (and no error) for an absent key.
package kv

import "context"

// Reader is the read-only access mode.
type Reader interface {
	IsAvailable(ctx context.Context) (bool, error)
	GetData(ctx context.Context, key string) ([]byte, error)
}

// Writer is the authenticated access mode.
type Writer interface {
	SetData(ctx context.Context, key string, value []byte) error
}

// Store is a backend offering both access modes.
type Store interface {
	Reader
	Writer
}

// Entry is one key/value pair of a batch write.
type Entry struct {
	Key   string
	Value []byte
}

// BatchWriter is implemented by backends that can commit several writes
// atomically. Callers fall back to sequential SetData calls otherwise.
type BatchWriter interface {
	Writer
	SetBatch(ctx context.Context, entries []Entry) error
}
