package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/codewandler/memcache-go/core/memcache"
	"github.com/codewandler/memcache-go/core/metrics"
)

// engineMetrics implements memcache.EngineMetrics using Prometheus.
type engineMetrics struct {
	commandDuration *prometheus.HistogramVec
	commandsTotal   *prometheus.CounterVec
	lookupsTotal    *prometheus.CounterVec
	mailboxDepth    prometheus.Gauge
	tableSize       prometheus.Gauge
	sweepDuration   prometheus.Histogram
	sweepEvicted    prometheus.Counter
}

// NewEngineMetrics creates a new Prometheus implementation of
// memcache.EngineMetrics and registers its collectors with reg.
func NewEngineMetrics(reg prometheus.Registerer) memcache.EngineMetrics {
	m := &engineMetrics{
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "memcache_command_duration_seconds",
			Help:    "Command handling time in seconds",
			Buckets: defaultBuckets,
		}, []string{"command"}),

		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memcache_commands_total",
			Help: "Total number of commands processed",
		}, []string{"command"}),

		lookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "memcache_lookups_total",
			Help: "Total number of lookups by result",
		}, []string{"result"}),

		mailboxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memcache_mailbox_depth",
			Help: "Current command mailbox queue depth",
		}),

		tableSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "memcache_table_size",
			Help: "Current number of entries in the cache table",
		}),

		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "memcache_sweep_duration_seconds",
			Help:    "GC sweep duration in seconds",
			Buckets: defaultBuckets,
		}),

		sweepEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "memcache_sweep_evicted_total",
			Help: "Total number of entries evicted by GC sweeps",
		}),
	}

	reg.MustRegister(
		m.commandDuration,
		m.commandsTotal,
		m.lookupsTotal,
		m.mailboxDepth,
		m.tableSize,
		m.sweepDuration,
		m.sweepEvicted,
	)

	return m
}

func (m *engineMetrics) CommandDuration(cmd string) metrics.Timer {
	return newTimer(m.commandDuration.WithLabelValues(cmd))
}

func (m *engineMetrics) CommandProcessed(cmd string) {
	m.commandsTotal.WithLabelValues(cmd).Inc()
}

func (m *engineMetrics) LookupResult(result string) {
	m.lookupsTotal.WithLabelValues(result).Inc()
}

func (m *engineMetrics) MailboxDepth(depth int) {
	m.mailboxDepth.Set(float64(depth))
}

func (m *engineMetrics) TableSize(size int) {
	m.tableSize.Set(float64(size))
}

func (m *engineMetrics) SweepDuration() metrics.Timer {
	return newTimer(m.sweepDuration)
}

func (m *engineMetrics) SweepEvicted(count int) {
	m.sweepEvicted.Add(float64(count))
}

var _ memcache.EngineMetrics = (*engineMetrics)(nil)
