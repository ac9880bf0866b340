// Package enum produces the candidate parameter space for a fixed CRC width.
//
// A Space is a lazy, indexable sequence of crc.Params: Size reports its
// length, At maps any index to a candidate deterministically, and Partition
// splits the index range into disjoint contiguous sub-ranges for independent
// workers. Nothing is materialized, so resuming is plain index arithmetic.
//
// Candidates come in two phases. The seed phase lists catalog variants for
// the width followed by the cross of catalog polynomials with common
// init/xorout values and reflection settings, so likely configurations are
// tried first. The sweep phase walks the remaining polynomial space; when
// that space exceeds the configured budget the polynomials are sampled
// deterministically instead, and Exhaustive reports false.
package enum

import (
	"github.com/vnykmshr/crcbrute/internal/catalog"
	"github.com/vnykmshr/crcbrute/internal/crc"
)

// DefaultBudget bounds the sweep-phase candidate count when Config.Budget
// is zero. Widths up to 16 sweep every odd polynomial within this budget;
// wider registers fall back to sampling.
const DefaultBudget = 1 << 22

// Config controls how a Space is laid out.
type Config struct {
	// SeedOnly restricts the space to the seed phase
	SeedOnly bool

	// Budget caps the number of sweep-phase candidates (0 = DefaultBudget)
	Budget uint64

	// SampleSeed seeds polynomial sampling for widths whose sweep space
	// exceeds the budget
	SampleSeed uint64
}

// Range is a half-open interval of candidate indexes.
type Range struct {
	Start uint64
	End   uint64
}

// Len returns the number of indexes in the range.
func (r Range) Len() uint64 { return r.End - r.Start }

// sweep-phase dimension tables. All published CRC polynomials have the x^0
// term, so the sweep only visits odd polynomials.
var (
	sweepRefls = [4][2]bool{{false, false}, {true, true}, {false, true}, {true, false}}
)

// Space is the candidate space for one width.
type Space struct {
	width uint8
	seeds []crc.Params

	sweepInits   []uint64
	sweepXOROuts []uint64

	polyCount  uint64 // candidates in the poly dimension
	perPoly    uint64 // inits * xorouts * reflection settings
	exhaustive bool
	sampleSeed uint64
}

// NewSpace builds the candidate space for width. The width must already be
// validated by the caller.
func NewSpace(width uint8, cfg Config) *Space {
	mask := crc.Mask(width)
	s := &Space{
		width:        width,
		seeds:        seedParams(width),
		sweepInits:   []uint64{0, mask},
		sweepXOROuts: []uint64{0, mask},
		sampleSeed:   cfg.SampleSeed,
	}

	if cfg.SeedOnly {
		s.exhaustive = false
		return s
	}

	budget := cfg.Budget
	if budget == 0 {
		budget = DefaultBudget
	}

	s.perPoly = uint64(len(s.sweepInits)) * uint64(len(s.sweepXOROuts)) * uint64(len(sweepRefls))

	// Full odd-polynomial space is 2^(width-1).
	full := uint64(1) << (width - 1)
	if full <= budget/s.perPoly {
		s.polyCount = full
		s.exhaustive = true
		return s
	}
	s.polyCount = budget / s.perPoly
	return s
}

// Width returns the width the space was built for.
func (s *Space) Width() uint8 { return s.width }

// Size returns the total number of candidates.
func (s *Space) Size() uint64 {
	return uint64(len(s.seeds)) + s.polyCount*s.perPoly
}

// Exhaustive reports whether the sweep phase covers every odd polynomial
// with the swept init/xorout/reflection settings, as opposed to a sampled
// subset. Callers use this to judge confidence in a no-match outcome.
func (s *Space) Exhaustive() bool { return s.exhaustive }

// At returns the candidate at index i. The mapping is deterministic: the
// same index always yields the same candidate, which makes partitions
// restartable and free of duplicates.
func (s *Space) At(i uint64) crc.Params {
	if i < uint64(len(s.seeds)) {
		return s.seeds[i]
	}
	i -= uint64(len(s.seeds))

	polyIdx := i / s.perPoly
	rest := i % s.perPoly

	refl := sweepRefls[rest%uint64(len(sweepRefls))]
	rest /= uint64(len(sweepRefls))
	init := s.sweepInits[rest%uint64(len(s.sweepInits))]
	rest /= uint64(len(s.sweepInits))
	xorout := s.sweepXOROuts[rest]

	mask := crc.Mask(s.width)
	var poly uint64
	if s.exhaustive {
		poly = (polyIdx << 1) | 1
	} else {
		poly = (splitmix64(s.sampleSeed+polyIdx) & mask) | 1
	}

	return crc.Params{
		Width:  s.width,
		Poly:   poly & mask,
		Init:   init,
		RefIn:  refl[0],
		RefOut: refl[1],
		XOROut: xorout,
	}
}

// Partition splits the index space into n disjoint contiguous ranges whose
// union covers [0, Size()) exactly. Ranges differ in length by at most one;
// when n exceeds the space size the excess ranges are empty.
func (s *Space) Partition(n int) []Range {
	if n < 1 {
		n = 1
	}
	size := s.Size()
	out := make([]Range, n)
	base := size / uint64(n)
	extra := size % uint64(n)

	var start uint64
	for i := range out {
		length := base
		if uint64(i) < extra {
			length++
		}
		out[i] = Range{Start: start, End: start + length}
		start += length
	}
	return out
}

// seedParams builds the seed phase: catalog entries first, then catalog
// polynomials crossed with the common init/xorout values and the straight
// and fully reflected settings, deduplicated in order.
func seedParams(width uint8) []crc.Params {
	mask := crc.Mask(width)
	seen := make(map[crc.Params]struct{})
	var out []crc.Params

	add := func(p crc.Params) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	vars := catalog.ByWidth(width)
	for _, v := range vars {
		add(v.Params)
	}

	for _, v := range vars {
		for _, init := range []uint64{0, mask} {
			for _, refl := range [][2]bool{{false, false}, {true, true}} {
				for _, xorout := range []uint64{0, mask} {
					add(crc.Params{
						Width:  width,
						Poly:   v.Params.Poly,
						Init:   init,
						RefIn:  refl[0],
						RefOut: refl[1],
						XOROut: xorout,
					})
				}
			}
		}
	}
	return out
}

// splitmix64 is the SplitMix64 finalizer, used to draw sampled polynomials
// from an index deterministically.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	return x ^ (x >> 31)
}
