package memcache

import (
	"context"
	"sync"
	"time"
)

var (
	muDefault sync.Mutex
	defEngine *Engine
)

// Init creates the process-wide default engine. It must be called exactly
// once, during startup; a second call panics. Use New directly when several
// independent engines are needed.
func Init(opt Options) *Engine {
	muDefault.Lock()
	defer muDefault.Unlock()
	if defEngine != nil {
		panic("memcache: Init must only be called once")
	}
	defEngine = New(opt)
	return defEngine
}

// Default returns the engine created by Init. Calling it before Init is a
// programming error and panics.
func Default() *Engine {
	muDefault.Lock()
	defer muDefault.Unlock()
	if defEngine == nil {
		panic("memcache: not initialized, call Init first")
	}
	return defEngine
}

// Get fetches key from the default engine as type T.
func Get[T any](ctx context.Context, key string) (T, error) {
	return GetFrom[T](ctx, Default(), key)
}

// GetRefresh fetches key from the default engine as type T and slides the
// entry's expiration forward by the TTL captured at the last put.
func GetRefresh[T any](ctx context.Context, key string) (T, error) {
	return GetRefreshFrom[T](ctx, Default(), key)
}

// Put stores value under key on the default engine with expiry now+ttl.
func Put(ctx context.Context, key string, value any, ttl time.Duration) error {
	return Default().Put(ctx, key, value, ttl)
}

// Remove deletes key from the default engine.
func Remove(ctx context.Context, key string) error {
	return Default().Remove(ctx, key)
}
