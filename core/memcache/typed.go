package memcache

import (
	"context"
	"time"
)

// GetFrom fetches key from e and casts the stored value to T.
func GetFrom[T any](ctx context.Context, e *Engine, key string) (T, error) {
	return lookupAs[T](ctx, e, key, false)
}

// GetRefreshFrom behaves like GetFrom and additionally slides the entry's
// expiration forward by the TTL captured at the last put.
func GetRefreshFrom[T any](ctx context.Context, e *Engine, key string) (T, error) {
	return lookupAs[T](ctx, e, key, true)
}

func lookupAs[T any](ctx context.Context, e *Engine, key string, refresh bool) (out T, err error) {
	h, err := e.Lookup(ctx, key, refresh)
	if err != nil {
		return out, err
	}
	out, err = As[T](h)
	if err != nil {
		e.metrics.LookupResult(LookupInvalidCast)
	}
	return out, err
}

// Typed is a type-safe view over an engine for values of type T.
type Typed[T any] struct {
	e *Engine
}

// NewTyped wraps e in a typed view.
func NewTyped[T any](e *Engine) *Typed[T] { return &Typed[T]{e: e} }

func (t *Typed[T]) Put(ctx context.Context, key string, val T, ttl time.Duration) error {
	return t.e.Put(ctx, key, val, ttl)
}

func (t *Typed[T]) Get(ctx context.Context, key string) (T, error) {
	return GetFrom[T](ctx, t.e, key)
}

func (t *Typed[T]) GetRefresh(ctx context.Context, key string) (T, error) {
	return GetRefreshFrom[T](ctx, t.e, key)
}

func (t *Typed[T]) Remove(ctx context.Context, key string) error {
	return t.e.Remove(ctx, key)
}
