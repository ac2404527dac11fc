package metrics

import (
	"sync"
)

// Counter names used across the check service.
const (
	ChecksTotal        = "checks_total"
	ChecksAccepted     = "checks_accepted"
	ChecksRejected     = "checks_rejected"
	ChecksFlagged      = "checks_flagged"
	PrechecksTotal     = "prechecks_total"
	VerdictCacheHits   = "verdict_cache_hits"
	VerdictCacheMisses = "verdict_cache_misses"
	LookupFailures     = "lookup_failures"
)

type Metrics interface {
	Inc(name string)
}

// InMemoryMetrics is a simple counter store, safe for concurrent use.
type InMemoryMetrics struct {
	mu       sync.Mutex
	counters map[string]int64
}

func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{
		counters: make(map[string]int64),
	}
}

func (m *InMemoryMetrics) Inc(name string) {
	m.mu.Lock()
	m.counters[name]++
	m.mu.Unlock()
}

func (m *InMemoryMetrics) Snapshot() map[string]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make(map[string]int64, len(m.counters))
	for name, count := range m.counters {
		result[name] = count
	}
	return result
}
