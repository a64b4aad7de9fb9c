// Package loader provides a read-through layer over a memcache engine with
// single-flight deduplication of cache misses.
//
// Single-flight ensures that only one load is in-flight for a given key at a
// time. If multiple goroutines miss the same key concurrently, only the
// first call executes the load function; the others block until it completes
// and receive the same result. This prevents thundering-herd load on the
// backing source when a popular entry expires.
//
// # Usage
//
//	users := loader.New[*User](engine, 5*time.Minute)
//
//	u, err := users.Get(ctx, "user:123", func(ctx context.Context) (*User, error) {
//	    return db.GetUser(ctx, "123")
//	})
package loader
