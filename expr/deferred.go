package expr

import (
	"context"
	"sync"
)

// FromFunc builds a Deferred from a plain function returning a scalar
// value, for the common case where the callback never needs to yield a
// nested expression.
func FromFunc[V any](fn func(ctx context.Context) (V, error)) Deferred[V] {
	return NewDeferred(func(ctx context.Context) (Param[V], error) {
		v, err := fn(ctx)
		if err != nil {
			var zero Param[V]
			return zero, err
		}
		return Scalar(v), nil
	})
}

// FromMutex builds a Deferred that reads the current value behind a mutex
// each time it is invoked, so a query built once can pick up a value (e.g.
// a dynamically adjusted LIMIT) set after the query was composed but before
// it executes.
func FromMutex[V any](mu *sync.Mutex, get func() V) Deferred[V] {
	return NewDeferred(func(ctx context.Context) (Param[V], error) {
		mu.Lock()
		defer mu.Unlock()
		return Scalar(get()), nil
	})
}
