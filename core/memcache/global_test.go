package memcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The default engine is process-wide state, so its whole lifecycle is
// exercised in a single test: use before Init panics, Init works once,
// the package-level operations route to it, and a second Init panics.
func TestGlobal(t *testing.T) {
	ctx := context.Background()

	require.Panics(t, func() { Default() })
	require.Panics(t, func() { _ = Put(ctx, "k", 1, time.Minute) })

	e := Init(Options{ID: "default-test"})
	require.NotNil(t, e)
	require.Same(t, e, Default())

	require.NoError(t, Put(ctx, "foo", 69, time.Second))

	v, err := Get[int](ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, 69, v)

	_, err = Get[string](ctx, "foo")
	require.ErrorIs(t, err, ErrInvalidCast)

	v, err = GetRefresh[int](ctx, "foo")
	require.NoError(t, err)
	require.Equal(t, 69, v)

	require.NoError(t, Remove(ctx, "foo"))
	_, err = Get[int](ctx, "foo")
	require.ErrorIs(t, err, ErrNoValue)

	require.Panics(t, func() { Init(Options{}) })
}
