package memcache

import "github.com/codewandler/memcache-go/core/metrics"

// Lookup result labels reported through EngineMetrics.LookupResult.
const (
	LookupHit         = "hit"
	LookupNoValue     = "no_value"
	LookupExpired     = "expired"
	LookupInvalidCast = "invalid_cast"
)

// EngineMetrics defines the metrics interface for the cache engine pillar.
// All methods are thread-safe.
type EngineMetrics interface {
	// Command handling
	CommandDuration(cmd string) metrics.Timer
	CommandProcessed(cmd string)

	// Lookups
	LookupResult(result string)

	// Mailbox and table
	MailboxDepth(depth int)
	TableSize(size int)

	// GC sweep
	SweepDuration() metrics.Timer
	SweepEvicted(count int)
}

// nopEngineMetrics is a no-op implementation of EngineMetrics.
type nopEngineMetrics struct{}

func (nopEngineMetrics) CommandDuration(string) metrics.Timer { return metrics.NopTimer() }
func (nopEngineMetrics) CommandProcessed(string)              {}
func (nopEngineMetrics) LookupResult(string)                  {}
func (nopEngineMetrics) MailboxDepth(int)                     {}
func (nopEngineMetrics) TableSize(int)                        {}
func (nopEngineMetrics) SweepDuration() metrics.Timer         { return metrics.NopTimer() }
func (nopEngineMetrics) SweepEvicted(int)                     {}

// NopEngineMetrics returns a no-op EngineMetrics implementation.
func NopEngineMetrics() EngineMetrics { return nopEngineMetrics{} }
