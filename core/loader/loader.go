package loader

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/codewandler/memcache-go/core/memcache"
)

// LoadFunc produces the value for a key that is not in the cache.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Loader is a read-through view over a cache engine. On a miss (or an
// expired entry) it runs the load function at most once per key across all
// concurrent callers and stores the result with the loader's TTL.
type Loader[T any] struct {
	e     *memcache.Engine
	ttl   time.Duration
	group singleflight.Group
}

// New creates a Loader that stores loaded values on e with the given TTL.
func New[T any](e *memcache.Engine, ttl time.Duration) *Loader[T] {
	return &Loader[T]{e: e, ttl: ttl}
}

// Get returns the cached value for key, loading and caching it on a miss.
// Concurrent callers for the same key share a single load execution and
// receive the same result.
func (l *Loader[T]) Get(ctx context.Context, key string, load LoadFunc[T]) (out T, err error) {
	out, err = memcache.GetFrom[T](ctx, l.e, key)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, memcache.ErrNoValue) && !errors.Is(err, memcache.ErrExpired) {
		return out, err
	}

	v, err, _ := l.group.Do(key, func() (any, error) {
		loaded, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.e.Put(ctx, key, loaded, l.ttl); err != nil {
			return nil, err
		}
		return loaded, nil
	})
	if err != nil {
		return out, err
	}
	return v.(T), nil
}
