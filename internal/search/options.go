package search

import (
	"runtime"
	"time"

	"github.com/vnykmshr/crcbrute/internal/logging"
)

// Options configures search behavior.
type Options struct {
	// Workers is the number of parallel search goroutines
	// Default: runtime.GOMAXPROCS(0)
	Workers int

	// MatchLimit stops the search once this many matches are found
	// Set to 0 to find all matches in the space
	// Default: 0 (find all)
	MatchLimit int

	// Budget caps the sweep-phase candidate count
	// Default: enum.DefaultBudget
	Budget uint64

	// SeedOnly restricts the search to the known-variant seed list
	// Default: false
	SeedOnly bool

	// DisablePrune turns off the sample-pair prefilter
	// Default: false (prune when the corpus allows it)
	DisablePrune bool

	// SampleSeed seeds polynomial sampling for widths whose sweep space
	// exceeds the budget
	// Default: 0
	SampleSeed uint64

	// Logger for structured logging (nil = no logging)
	Logger logging.Logger

	// Metrics for collecting search metrics (nil = no metrics)
	Metrics MetricsCollector

	// newEvaluator overrides evaluator construction; a test seam for
	// counting evaluator invocations. nil uses the table-caching default.
	newEvaluator func() Evaluator
}

// DefaultOptions returns the default search configuration.
func DefaultOptions() *Options {
	return &Options{
		Workers: runtime.GOMAXPROCS(0),
	}
}

// withDefaults returns a copy of the options with zero values filled in.
// The caller's struct is never modified.
func (o *Options) withDefaults() *Options {
	opts := *o
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = noopMetrics{}
	}
	return &opts
}

// MetricsCollector defines the interface for recording search metrics.
type MetricsCollector interface {
	RecordCandidates(tried, pruned uint64)
	RecordMatch()
	RecordSearch(candidates uint64, duration time.Duration)
}

type noopMetrics struct{}

func (noopMetrics) RecordCandidates(uint64, uint64)    {}
func (noopMetrics) RecordMatch()                       {}
func (noopMetrics) RecordSearch(uint64, time.Duration) {}
