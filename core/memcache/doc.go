// Package memcache provides an in-process key-value cache that stores values
// of arbitrary types with per-entry TTL expiration.
//
// # Design
//
// An [Engine] runs a single owner goroutine holding the cache table. Every
// read and mutation is a command sent through a bounded mailbox, so commands
// execute strictly one at a time in arrival order. This makes the table safe
// without locks: no goroutine other than the owner ever touches it.
//
// Expired entries are evicted lazily, either at the moment a get hits them
// or by a full-table sweep. The sweep runs opportunistically after a command
// once the earliest known expiration has passed, so there is no background
// timer and no per-entry scheduling.
//
// # Usage
//
//	e := memcache.New(memcache.Options{})
//	defer e.Close()
//
//	_ = e.Put(ctx, "user:123", user, 5*time.Minute)
//
//	u, err := memcache.GetFrom[*User](ctx, e, "user:123")
//	switch {
//	case errors.Is(err, memcache.ErrNoValue):
//	    // never stored, or already removed
//	case errors.Is(err, memcache.ErrExpired):
//	    // was stored, TTL passed; the entry is evicted as a side effect
//	case errors.Is(err, memcache.ErrInvalidCast):
//	    // stored under this key, but not a *User
//	}
//
// GetRefresh extends a live entry's deadline by the TTL captured at the last
// put, measured from the refresh:
//
//	u, err := memcache.GetRefreshFrom[*User](ctx, e, "user:123")
//
// # Type-Safe Usage
//
// Use [NewTyped] when a key space holds a single type:
//
//	users := memcache.NewTyped[*User](e)
//	_ = users.Put(ctx, "user:123", user, 5*time.Minute)
//	u, err := users.Get(ctx, "user:123")
//
// # Default Engine
//
// For the common one-cache-per-process case, [Init] installs a default
// engine once during startup and the package-level [Get], [GetRefresh],
// [Put] and [Remove] operate on it. Calling Init twice, or any of these
// before Init, panics: both indicate a programming defect, not a runtime
// condition.
//
// Values handed out by a get are shared, not copied. Callers must not
// mutate a retrieved value in place; put a new value instead.
package memcache
