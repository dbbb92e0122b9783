// Package batchx runs a keyed fetch over many keys with bounded concurrency
// and collects what succeeded alongside what did not.
package batchx

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultLimit bounds Collect when the caller passes a non-positive limit.
const DefaultLimit = 4

// Failure is a key that could not be fetched, with the reason.
type Failure struct {
	Key string
	Err error
}

func (f Failure) Error() string {
	return f.Key + ": " + f.Err.Error()
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result holds the items fetched and the keys that failed. Items and
// Failures both follow the order of the input keys.
type Result[T any] struct {
	Items    []T
	Failures []Failure
}

// FetchFunc fetches one key. Any error marks the key as failed.
type FetchFunc[T any] func(ctx context.Context, key string) (T, error)

type slot[T any] struct {
	item T
	err  error
}

// Collect calls fn for every key, at most limit at a time. A failing key never
// stops the others. The only error returned is ctx's, if it was cancelled
// before every key was attempted.
func Collect[T any](ctx context.Context, keys []string, limit int, fn FetchFunc[T]) (Result[T], error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	slots := make([]slot[T], len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, key := range keys {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			item, err := fn(gctx, key)
			slots[i] = slot[T]{item: item, err: err}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}

	res := Result[T]{Items: make([]T, 0, len(keys))}
	for i, s := range slots {
		if s.err != nil {
			res.Failures = append(res.Failures, Failure{Key: keys[i], Err: s.err})
			continue
		}
		res.Items = append(res.Items, s.item)
	}
	return res, nil
}
