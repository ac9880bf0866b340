package search

import (
	"fmt"

	"github.com/vnykmshr/crcbrute/internal/crc"
)

// Sample pairs a message with its expected checksum. Samples are immutable
// once loaded; a corpus is a non-empty ordered slice of samples sharing one
// width.
type Sample struct {
	// Data is the message bytes
	Data []byte

	// Expected is the checksum the true parameters must reproduce
	Expected uint64
}

// Evaluator computes a CRC under a parameter set. Implementations must be
// pure: same inputs, same output, no shared state. Each worker owns its own
// instance, so implementations need not be safe for concurrent use.
type Evaluator interface {
	Checksum(p crc.Params, data []byte) uint64
}

// bitEvaluator evaluates with the bit-serial reference algorithm.
type bitEvaluator struct{}

func (bitEvaluator) Checksum(p crc.Params, data []byte) uint64 {
	return crc.Checksum(p, data)
}

// tableThreshold is the corpus byte count above which building a byte-wise
// table per candidate beats bit-serial evaluation. Table construction costs
// 256 bytes of bit-serial work, so small corpora stay on the direct path.
const tableThreshold = 1024

// cachingEvaluator builds a crc.Table per candidate and reuses it across
// the samples of that candidate. Not safe for concurrent use; each worker
// gets its own.
type cachingEvaluator struct {
	last  crc.Params
	table *crc.Table
}

func (e *cachingEvaluator) Checksum(p crc.Params, data []byte) uint64 {
	if e.table == nil || e.last != p {
		e.table = crc.NewTable(p)
		e.last = p
	}
	return e.table.Checksum(data)
}

// defaultEvaluator picks the evaluation strategy for a corpus.
func defaultEvaluator(corpus []Sample) Evaluator {
	var total int
	for _, s := range corpus {
		total += len(s.Data)
	}
	if total >= tableThreshold {
		return &cachingEvaluator{}
	}
	return bitEvaluator{}
}

// Verify reports whether p reproduces the expected checksum of every sample,
// in corpus order, stopping at the first mismatch.
func Verify(ev Evaluator, p crc.Params, corpus []Sample) bool {
	for i := range corpus {
		if ev.Checksum(p, corpus[i].Data) != corpus[i].Expected {
			return false
		}
	}
	return true
}

// Validate checks the search configuration: width within range, corpus
// non-empty, and every expected checksum representable in width bits. It
// runs before any enumeration, so a failed validation costs zero evaluator
// invocations.
func Validate(width uint8, corpus []Sample) error {
	if width < 1 || width > 64 {
		return fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}
	if len(corpus) == 0 {
		return ErrEmptyCorpus
	}
	mask := crc.Mask(width)
	for i, s := range corpus {
		if s.Expected&^mask != 0 {
			return fmt.Errorf("%w: sample %d expects 0x%x, width %d", ErrWidthMismatch, i, s.Expected, width)
		}
	}
	return nil
}
