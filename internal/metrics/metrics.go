// Package metrics provides metrics collection for crcbrute searches.
//
// The collector uses atomic counters and a fixed-bucket duration histogram,
// so it can run on the search hot path without locks and without external
// dependencies. It satisfies the search package's MetricsCollector
// interface.
//
// Usage:
//
//	collector := metrics.NewCollector("crc32-recovery")
//
//	opts := search.DefaultOptions()
//	opts.Metrics = collector
//
//	// After the search:
//	snapshot := collector.GetSnapshot()
package metrics

import (
	"sync/atomic"
	"time"
)

// Collector tracks search metrics.
type Collector struct {
	name string

	// Candidate counters
	candidatesTried  atomic.Uint64
	candidatesPruned atomic.Uint64

	// Outcome counters
	matchesFound   atomic.Uint64
	searchesTotal  atomic.Uint64
	lastSearchUnix atomic.Int64

	// Search wall-clock durations
	searchDurations *durationHistogram
}

// NewCollector creates a new metrics collector. The name tags the snapshot
// so collectors from several searches can be told apart.
func NewCollector(name string) *Collector {
	return &Collector{
		name:            name,
		searchDurations: newDurationHistogram(),
	}
}

// RecordCandidates adds a worker's candidate counts. Workers batch their
// local counts and record once, keeping the hot loop free of shared writes.
func (c *Collector) RecordCandidates(tried, pruned uint64) {
	c.candidatesTried.Add(tried)
	c.candidatesPruned.Add(pruned)
}

// RecordMatch records one verified parameter set.
func (c *Collector) RecordMatch() {
	c.matchesFound.Add(1)
}

// RecordSearch records a completed search run.
func (c *Collector) RecordSearch(candidates uint64, duration time.Duration) {
	c.searchesTotal.Add(1)
	c.lastSearchUnix.Store(time.Now().Unix())
	c.searchDurations.observe(duration)
}

// GetSnapshot returns a snapshot of current metrics.
func (c *Collector) GetSnapshot() *Snapshot {
	return &Snapshot{
		Name:              c.name,
		CandidatesTried:   c.candidatesTried.Load(),
		CandidatesPruned:  c.candidatesPruned.Load(),
		MatchesFound:      c.matchesFound.Load(),
		SearchesTotal:     c.searchesTotal.Load(),
		SearchDurationP50: c.searchDurations.percentile(0.50),
		SearchDurationP95: c.searchDurations.percentile(0.95),
		SearchDurationP99: c.searchDurations.percentile(0.99),
		LastSearchUnixSec: c.lastSearchUnix.Load(),
	}
}

// Reset resets all metrics (useful for testing).
func (c *Collector) Reset() {
	c.candidatesTried.Store(0)
	c.candidatesPruned.Store(0)
	c.matchesFound.Store(0)
	c.searchesTotal.Store(0)
	c.lastSearchUnix.Store(0)
	c.searchDurations = newDurationHistogram()
}

// Snapshot is a point-in-time view of metrics.
type Snapshot struct {
	Name string

	// Candidate counters
	CandidatesTried  uint64
	CandidatesPruned uint64

	// Outcome counters
	MatchesFound  uint64
	SearchesTotal uint64

	// Duration percentiles
	SearchDurationP50 time.Duration
	SearchDurationP95 time.Duration
	SearchDurationP99 time.Duration

	LastSearchUnixSec int64
}

// durationHistogram is a simple histogram for tracking durations.
// Uses fixed buckets for simplicity (no external dependencies).
type durationHistogram struct {
	buckets [10]atomic.Uint64
}

func newDurationHistogram() *durationHistogram {
	return &durationHistogram{}
}

// observe records a duration in the appropriate bucket.
func (h *durationHistogram) observe(d time.Duration) {
	micros := d.Microseconds()
	var bucket int

	// Bucket boundaries (microseconds):
	// 0: < 1μs, 1: 1-10μs, 2: 10-100μs, 3: 100μs-1ms
	// 4: 1-10ms, 5: 10-100ms, 6: 100ms-1s, 7: 1-10s, 8: 10-100s, 9: >100s
	switch {
	case micros < 1:
		bucket = 0
	case micros < 10:
		bucket = 1
	case micros < 100:
		bucket = 2
	case micros < 1000:
		bucket = 3
	case micros < 10000:
		bucket = 4
	case micros < 100000:
		bucket = 5
	case micros < 1000000:
		bucket = 6
	case micros < 10000000:
		bucket = 7
	case micros < 100000000:
		bucket = 8
	default:
		bucket = 9
	}

	h.buckets[bucket].Add(1)
}

// percentile approximates a percentile from histogram buckets.
func (h *durationHistogram) percentile(p float64) time.Duration {
	var total uint64
	for i := 0; i < 10; i++ {
		total += h.buckets[i].Load()
	}
	if total == 0 {
		return 0
	}

	target := uint64(float64(total) * p)
	if target == 0 {
		target = 1
	}

	var count uint64
	for i := 0; i < 10; i++ {
		count += h.buckets[i].Load()
		if count >= target {
			// Return the upper bound of this bucket.
			switch i {
			case 0:
				return time.Microsecond
			case 1:
				return 10 * time.Microsecond
			case 2:
				return 100 * time.Microsecond
			case 3:
				return time.Millisecond
			case 4:
				return 10 * time.Millisecond
			case 5:
				return 100 * time.Millisecond
			case 6:
				return time.Second
			case 7:
				return 10 * time.Second
			case 8:
				return 100 * time.Second
			default:
				return 1000 * time.Second
			}
		}
	}
	return 0
}
