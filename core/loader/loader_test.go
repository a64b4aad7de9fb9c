package loader

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codewandler/memcache-go/core/memcache"
)

func TestLoader_MissThenHit(t *testing.T) {
	e := memcache.New(memcache.Options{})
	defer e.Close()
	ctx := context.Background()

	var loads atomic.Int64
	l := New[int](e, time.Minute)

	load := func(ctx context.Context) (int, error) {
		loads.Add(1)
		return 42, nil
	}

	v, err := l.Get(ctx, "answer", load)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, int64(1), loads.Load())

	// Served from the cache, no second load
	v, err = l.Get(ctx, "answer", load)
	require.NoError(t, err)
	require.Equal(t, 42, v)
	require.Equal(t, int64(1), loads.Load())
}

func TestLoader_Singleflight(t *testing.T) {
	e := memcache.New(memcache.Options{})
	defer e.Close()
	ctx := context.Background()

	var loads atomic.Int64
	l := New[string](e, time.Minute)

	load := func(ctx context.Context) (string, error) {
		loads.Add(1)
		time.Sleep(50 * time.Millisecond)
		return "shared", nil
	}

	const callers = 10
	var wg sync.WaitGroup
	results := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := l.Get(ctx, "hot", load)
			require.NoError(t, err)
			results[i] = v
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(1), loads.Load())
	for _, v := range results {
		require.Equal(t, "shared", v)
	}
}

func TestLoader_LoadError(t *testing.T) {
	e := memcache.New(memcache.Options{})
	defer e.Close()
	ctx := context.Background()

	boom := errors.New("backend down")
	l := New[int](e, time.Minute)

	_, err := l.Get(ctx, "bad", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	require.ErrorIs(t, err, boom)

	// Errors are not cached; the next call loads again.
	v, err := l.Get(ctx, "bad", func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)
	require.Equal(t, 7, v)
}

func TestLoader_ReloadsAfterExpiry(t *testing.T) {
	e := memcache.New(memcache.Options{})
	defer e.Close()
	ctx := context.Background()

	var loads atomic.Int64
	l := New[int](e, 50*time.Millisecond)

	load := func(ctx context.Context) (int, error) {
		loads.Add(1)
		return int(loads.Load()), nil
	}

	v, err := l.Get(ctx, "k", load)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	time.Sleep(80 * time.Millisecond)

	v, err = l.Get(ctx, "k", load)
	require.NoError(t, err)
	require.Equal(t, 2, v)
	require.Equal(t, int64(2), loads.Load())
}
