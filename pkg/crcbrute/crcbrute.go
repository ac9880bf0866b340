// Package crcbrute recovers CRC algorithm parameters from observed
// checksums.
//
// Given a corpus of (message, checksum) pairs sharing one register width,
// Search enumerates candidate parameter sets — polynomial, initial value,
// reflection settings, final XOR — and reports every set that reproduces all
// observed checksums. Several sets may satisfy a small corpus; that is
// expected, not an error.
//
// Example usage:
//
//	corpus := []crcbrute.Sample{
//	    {Data: []byte("123456789"), Expected: 0xCBF43926},
//	}
//
//	report, err := crcbrute.Search(context.Background(), 32, corpus, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range report.Results {
//	    fmt.Printf("%s %s\n", r.Name, r.Params)
//	}
//
// Forge solves the inverse problem: given known parameters, a message prefix
// and a target checksum, it brute-forces a suffix that drives the CRC of the
// whole message to the target.
package crcbrute

import (
	"context"
	"runtime"
	"time"

	"github.com/vnykmshr/crcbrute/internal/catalog"
	"github.com/vnykmshr/crcbrute/internal/crc"
	"github.com/vnykmshr/crcbrute/internal/forge"
	"github.com/vnykmshr/crcbrute/internal/logging"
	"github.com/vnykmshr/crcbrute/internal/search"
)

// Version is the current version of crcbrute.
// This is the single source of truth for the application version.
const Version = "1.0.0"

// Errors returned by Search and Forge. A search that completes with zero
// matches returns a nil error; the empty Report.Results is the outcome.
var (
	// ErrInvalidWidth indicates a width outside 1..64.
	ErrInvalidWidth = search.ErrInvalidWidth

	// ErrEmptyCorpus indicates a corpus with no samples.
	ErrEmptyCorpus = search.ErrEmptyCorpus

	// ErrWidthMismatch indicates a sample checksum that does not fit the width.
	ErrWidthMismatch = search.ErrWidthMismatch

	// ErrNoSuffix indicates Forge exhausted the suffix space without a hit.
	ErrNoSuffix = forge.ErrNoSuffix
)

// Params describes a CRC algorithm in the Rocksoft parameter model.
type Params struct {
	// Width is the register size in bits (1 to 64)
	Width uint8

	// Poly is the generator polynomial, implicit leading bit omitted
	Poly uint64

	// Init is the register value before any input is processed
	Init uint64

	// RefIn reflects each input byte before it enters the register
	RefIn bool

	// RefOut reflects the final register before the XOR mask
	RefOut bool

	// XOROut is XORed with the final register
	XOROut uint64
}

// String renders the parameters in the usual catalog notation.
func (p Params) String() string { return p.internal().String() }

// Validate reports whether the parameter set is well formed.
func (p Params) Validate() error { return p.internal().Validate() }

func (p Params) internal() crc.Params {
	return crc.Params{Width: p.Width, Poly: p.Poly, Init: p.Init,
		RefIn: p.RefIn, RefOut: p.RefOut, XOROut: p.XOROut}
}

func fromInternal(p crc.Params) Params {
	return Params{Width: p.Width, Poly: p.Poly, Init: p.Init,
		RefIn: p.RefIn, RefOut: p.RefOut, XOROut: p.XOROut}
}

// Sample pairs a message with its expected checksum.
type Sample struct {
	// Data is the message bytes
	Data []byte

	// Expected is the checksum the recovered parameters must reproduce
	Expected uint64
}

// Result is a parameter set that satisfied every sample in the corpus.
type Result struct {
	// Params is the verified parameter set
	Params Params

	// Name is the catalog name when the parameters match a known variant
	Name string
}

// Report summarizes a completed search.
type Report struct {
	// Results holds every verified parameter set, deduplicated
	Results []Result

	// Candidates is the number of candidates considered
	Candidates uint64

	// Pruned is the number of candidates rejected before full verification
	Pruned uint64

	// Exhaustive reports whether the full sweep space was covered rather
	// than a sampled subset
	Exhaustive bool

	// Elapsed is the wall-clock search duration
	Elapsed time.Duration
}

// Variant is a published CRC algorithm from the built-in catalog.
type Variant struct {
	// Name is the catalog name, e.g. "CRC-32/ISO-HDLC"
	Name string

	// Params is the full parameter set
	Params Params

	// Check is the CRC of ASCII "123456789" under Params
	Check uint64
}

// Variants returns the built-in catalog entries for a width, or the whole
// catalog when width is 0.
func Variants(width uint8) []Variant {
	var src []catalog.Variant
	if width == 0 {
		src = catalog.Variants()
	} else {
		src = catalog.ByWidth(width)
	}
	out := make([]Variant, len(src))
	for i, v := range src {
		out[i] = Variant{Name: v.Name, Params: fromInternal(v.Params), Check: v.Check}
	}
	return out
}

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
	// Default: 4M candidates
	Budget uint64

	// SeedOnly restricts the search to the known-variant seed list
	// Default: false
	SeedOnly bool

	// DisablePrune turns off the sample-pair prefilter
	// Default: false
	DisablePrune bool

	// SampleSeed seeds polynomial sampling for widths whose sweep space
	// exceeds the budget
	// Default: 0
	SampleSeed uint64

	// Logger for structured logging (nil = no logging)
	Logger Logger

	// Metrics for collecting search metrics (nil = no metrics)
	Metrics MetricsCollector
}

// DefaultOptions returns the default search configuration: all CPUs, no
// match limit, default budget, full sweep with pruning enabled.
func DefaultOptions() *Options {
	return &Options{Workers: runtime.GOMAXPROCS(0)}
}

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, fields ...LogField)
	Info(msg string, fields ...LogField)
	Warn(msg string, fields ...LogField)
	Error(msg string, fields ...LogField)
}

// LogField is a structured logging field.
type LogField struct {
	Key   string
	Value interface{}
}

// MetricsCollector defines the interface for recording search metrics.
type MetricsCollector interface {
	RecordCandidates(tried, pruned uint64)
	RecordMatch()
	RecordSearch(candidates uint64, duration time.Duration)
}

func (o *Options) internal() *search.Options {
	if o == nil {
		return nil
	}
	opts := &search.Options{
		Workers:      o.Workers,
		MatchLimit:   o.MatchLimit,
		Budget:       o.Budget,
		SeedOnly:     o.SeedOnly,
		DisablePrune: o.DisablePrune,
		SampleSeed:   o.SampleSeed,
		Metrics:      o.Metrics,
	}
	if o.Logger != nil {
		opts.Logger = loggerAdapter{o.Logger}
	}
	return opts
}

// loggerAdapter bridges the public Logger to the internal logging package.
type loggerAdapter struct {
	l Logger
}

func (a loggerAdapter) Debug(msg string, fields ...logging.Field) {
	a.l.Debug(msg, publicFields(fields)...)
}
func (a loggerAdapter) Info(msg string, fields ...logging.Field) {
	a.l.Info(msg, publicFields(fields)...)
}
func (a loggerAdapter) Warn(msg string, fields ...logging.Field) {
	a.l.Warn(msg, publicFields(fields)...)
}
func (a loggerAdapter) Error(msg string, fields ...logging.Field) {
	a.l.Error(msg, publicFields(fields)...)
}

func publicFields(fields []logging.Field) []LogField {
	out := make([]LogField, len(fields))
	for i, f := range fields {
		out[i] = LogField{Key: f.Key, Value: f.Value}
	}
	return out
}

// Checksum computes the CRC of data under p.
func Checksum(p Params, data []byte) uint64 {
	return crc.Checksum(p.internal(), data)
}

// Verify reports whether the CRC of data under p matches expected.
func Verify(p Params, data []byte, expected uint64) bool {
	return crc.Verify(p.internal(), data, expected)
}

// Search runs the parameter search over the corpus and returns the report.
// An empty Report.Results with a nil error means no parameter set in the
// explored space satisfied the corpus.
func Search(ctx context.Context, width uint8, corpus []Sample, opts *Options) (*Report, error) {
	return SearchStream(ctx, width, corpus, opts, nil)
}

// SearchStream runs the parameter search, calling handler for each match as
// it is found. A handler error stops the search.
func SearchStream(ctx context.Context, width uint8, corpus []Sample, opts *Options, handler func(Result) error) (*Report, error) {
	internalCorpus := make([]search.Sample, len(corpus))
	for i, s := range corpus {
		internalCorpus[i] = search.Sample{Data: s.Data, Expected: s.Expected}
	}

	var h search.Handler
	if handler != nil {
		h = func(r search.Result) error {
			return handler(Result{Params: fromInternal(r.Params), Name: r.Name})
		}
	}

	report, err := search.SearchStream(ctx, width, internalCorpus, opts.internal(), h)
	if report == nil {
		return nil, err
	}

	out := &Report{
		Candidates: report.Candidates,
		Pruned:     report.Pruned,
		Exhaustive: report.Exhaustive,
		Elapsed:    report.Elapsed,
	}
	for _, r := range report.Results {
		out.Results = append(out.Results, Result{Params: fromInternal(r.Params), Name: r.Name})
	}
	return out, err
}

// Forge finds a 4-byte little-endian suffix s such that the CRC of
// prefix||s under p equals target.
func Forge(ctx context.Context, p Params, prefix []byte, target uint64, opts *Options) ([]byte, error) {
	return forge.Forge(ctx, p.internal(), prefix, target, forgeOptions(opts))
}

// ForgeASCII finds an 8-byte printable suffix with the same property.
func ForgeASCII(ctx context.Context, p Params, prefix []byte, target uint64, opts *Options) ([]byte, error) {
	return forge.ForgeASCII(ctx, p.internal(), prefix, target, forgeOptions(opts))
}

func forgeOptions(o *Options) *forge.Options {
	if o == nil {
		return nil
	}
	opts := &forge.Options{Workers: o.Workers}
	if o.Logger != nil {
		opts.Logger = loggerAdapter{o.Logger}
	}
	return opts
}
