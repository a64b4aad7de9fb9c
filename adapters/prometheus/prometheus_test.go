package prometheus

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewandler/memcache-go/core/memcache"
)

func TestNewEngineMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewEngineMetrics(reg)

	require.NotNil(t, m)

	// Command handling
	timer := m.CommandDuration("get")
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.CommandProcessed("get")
	m.CommandProcessed("put")

	// Lookups
	m.LookupResult(memcache.LookupHit)
	m.LookupResult(memcache.LookupNoValue)
	m.LookupResult(memcache.LookupExpired)
	m.LookupResult(memcache.LookupInvalidCast)

	// Mailbox and table
	m.MailboxDepth(10)
	m.TableSize(3)

	// Sweep
	timer = m.SweepDuration()
	assert.NotNil(t, timer)
	timer.ObserveDuration()

	m.SweepEvicted(5)

	// Verify metrics were registered
	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)

	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}

	assert.True(t, names["memcache_command_duration_seconds"])
	assert.True(t, names["memcache_commands_total"])
	assert.True(t, names["memcache_lookups_total"])
	assert.True(t, names["memcache_mailbox_depth"])
	assert.True(t, names["memcache_table_size"])
	assert.True(t, names["memcache_sweep_duration_seconds"])
	assert.True(t, names["memcache_sweep_evicted_total"])
}

func TestEngineMetrics_WiredIntoEngine(t *testing.T) {
	reg := prometheus.NewRegistry()
	e := memcache.New(memcache.Options{Metrics: NewEngineMetrics(reg)})
	defer e.Close()
	ctx := context.Background()

	require.NoError(t, e.Put(ctx, "foo", 69, time.Minute))

	v, err := memcache.GetFrom[int](ctx, e, "foo")
	require.NoError(t, err)
	require.Equal(t, 69, v)

	_, err = memcache.GetFrom[int](ctx, e, "missing")
	require.ErrorIs(t, err, memcache.ErrNoValue)

	require.Eventually(t, func() bool {
		mfs, err := reg.Gather()
		require.NoError(t, err)
		for _, mf := range mfs {
			if mf.GetName() == "memcache_commands_total" {
				var total float64
				for _, m := range mf.GetMetric() {
					total += m.GetCounter().GetValue()
				}
				return total >= 3
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}
