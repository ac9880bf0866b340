// Package search coordinates the CRC parameter search: it validates the
// corpus, partitions the candidate space across workers, verifies candidates
// and streams matches to the caller.
//
// Basic usage:
//
//	corpus := []search.Sample{{Data: []byte("123456789"), Expected: 0xCBF43926}}
//	report, err := search.Search(context.Background(), 32, corpus, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range report.Results {
//	    fmt.Println(r.Params)
//	}
package search

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vnykmshr/crcbrute/internal/catalog"
	"github.com/vnykmshr/crcbrute/internal/crc"
	"github.com/vnykmshr/crcbrute/internal/enum"
	"github.com/vnykmshr/crcbrute/internal/logging"
)

// Result is a parameter set that reproduced every sample in the corpus.
type Result struct {
	// Params is the verified parameter set
	Params crc.Params

	// Name is the catalog name when the parameters match a known variant,
	// "" otherwise
	Name string
}

// Report summarizes a completed search.
type Report struct {
	// Results holds every verified parameter set, deduplicated
	Results []Result

	// Candidates is the number of candidates considered
	Candidates uint64

	// Pruned is the number of candidates rejected by the prefilter before
	// full verification
	Pruned uint64

	// Exhaustive reports whether the candidate space covered the full
	// sweep rather than a sampled subset; a no-match outcome from a
	// non-exhaustive search is weaker evidence
	Exhaustive bool

	// Elapsed is the wall-clock search duration
	Elapsed time.Duration
}

// Handler is called for each match as it is found. Returning an error stops
// the search.
type Handler func(Result) error

// stopPollInterval is how many candidates a worker processes between
// context checks. The atomic stop flag is still observed per candidate.
const stopPollInterval = 1024

// Search runs the parameter search and returns the collected report.
// A report with zero results and a nil error means no parameter set in the
// explored space satisfied the corpus, which is a valid outcome.
func Search(ctx context.Context, width uint8, corpus []Sample, opts *Options) (*Report, error) {
	return SearchStream(ctx, width, corpus, opts, nil)
}

// SearchStream runs the parameter search, invoking handler for each match
// as it is found so long-running searches show progress. The handler runs on
// the collector goroutine; matches are serialized through it.
func SearchStream(ctx context.Context, width uint8, corpus []Sample, opts *Options, handler Handler) (*Report, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	opts = opts.withDefaults()

	if err := Validate(width, corpus); err != nil {
		return nil, err
	}

	space := enum.NewSpace(width, enum.Config{
		SeedOnly:   opts.SeedOnly,
		Budget:     opts.Budget,
		SampleSeed: opts.SampleSeed,
	})

	var prefilter *enum.Prefilter
	if !opts.DisablePrune {
		prefilter = corpusPrefilter(width, corpus)
	}

	opts.Logger.Info("search starting",
		logging.F("width", width),
		logging.F("samples", len(corpus)),
		logging.F("candidates", space.Size()),
		logging.F("workers", opts.Workers),
		logging.F("exhaustive", space.Exhaustive()),
		logging.F("prefilter", prefilter != nil),
	)

	start := time.Now()

	var stop atomic.Bool
	watchDone := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			stop.Store(true)
		case <-watchDone:
		}
	}()
	defer close(watchDone)

	var (
		tried  atomic.Uint64
		pruned atomic.Uint64
	)

	results := make(chan Result, opts.Workers)
	var wg sync.WaitGroup
	for _, part := range space.Partition(opts.Workers) {
		wg.Add(1)
		go func(part enum.Range) {
			defer wg.Done()
			runWorker(ctx, space, part, corpus, prefilter, opts, &stop, &tried, &pruned, results)
		}(part)
	}

	// Collector: the results channel is the only shared sink; dedup,
	// match-limit and the streaming handler all live here.
	var (
		collected  []Result
		handlerErr error
	)
	seen := make(map[crc.Params]struct{})
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		for res := range results {
			if _, dup := seen[res.Params]; dup {
				continue
			}
			if opts.MatchLimit > 0 && len(collected) >= opts.MatchLimit {
				continue
			}
			seen[res.Params] = struct{}{}

			opts.Metrics.RecordMatch()
			opts.Logger.Info("match found", logging.F("params", res.Params.String()), logging.F("name", res.Name))

			if handler != nil && handlerErr == nil {
				if err := handler(res); err != nil {
					handlerErr = err
					stop.Store(true)
					continue
				}
			}
			collected = append(collected, res)
			if opts.MatchLimit > 0 && len(collected) >= opts.MatchLimit {
				stop.Store(true)
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectDone

	report := &Report{
		Results:    collected,
		Candidates: tried.Load(),
		Pruned:     pruned.Load(),
		Exhaustive: space.Exhaustive(),
		Elapsed:    time.Since(start),
	}
	opts.Metrics.RecordSearch(report.Candidates, report.Elapsed)
	opts.Logger.Info("search finished",
		logging.F("matches", len(report.Results)),
		logging.F("candidates", report.Candidates),
		logging.F("pruned", report.Pruned),
		logging.F("elapsed", report.Elapsed.String()),
	)

	if handlerErr != nil {
		return report, fmt.Errorf("handler error: %w", handlerErr)
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// runWorker walks one contiguous partition. It owns its evaluator and local
// counters; the only shared state it touches is the stop flag and the
// results channel.
func runWorker(ctx context.Context, space *enum.Space, part enum.Range, corpus []Sample,
	prefilter *enum.Prefilter, opts *Options, stop *atomic.Bool,
	tried, pruned *atomic.Uint64, results chan<- Result) {

	var ev Evaluator
	if opts.newEvaluator != nil {
		ev = opts.newEvaluator()
	} else {
		ev = defaultEvaluator(corpus)
	}

	var localTried, localPruned uint64
	defer func() {
		tried.Add(localTried)
		pruned.Add(localPruned)
		opts.Metrics.RecordCandidates(localTried, localPruned)
	}()

	for i := part.Start; i < part.End; i++ {
		if stop.Load() {
			return
		}
		if localTried%stopPollInterval == 0 && ctx.Err() != nil {
			return
		}

		p := space.At(i)
		localTried++

		if prefilter != nil && !prefilter.Allow(p) {
			localPruned++
			continue
		}
		if Verify(ev, p, corpus) {
			results <- Result{Params: p, Name: catalog.Match(p)}
		}
	}
}

// corpusPrefilter builds the sample-pair prefilter from the first two
// samples of equal byte length, if any.
func corpusPrefilter(width uint8, corpus []Sample) *enum.Prefilter {
	for i := 0; i < len(corpus); i++ {
		for j := i + 1; j < len(corpus); j++ {
			if len(corpus[i].Data) != len(corpus[j].Data) {
				continue
			}
			pf, ok := enum.NewPrefilter(width, corpus[i].Data, corpus[i].Expected, corpus[j].Data, corpus[j].Expected)
			if ok {
				return pf
			}
		}
	}
	return nil
}
