// Package forge brute-forces a message suffix that drives a CRC to a chosen
// value: given a parameter set, a message prefix and a target checksum, it
// finds suffix bytes s such that the CRC of prefix||s equals the target.
//
// The search never hashes the prefix in its hot loop. CRCs are affine over
// GF(2): crc(a XOR b) = crc(a) XOR crc(b) XOR crc(0) for equal-length
// inputs. Precomputing x = crc(prefix||zeros) and c = crc(zeros) reduces the
// condition crc(prefix||s) == target to crc(s) == x XOR target XOR c, so
// each attempt hashes only the suffix.
package forge

import (
	"context"
	"encoding/binary"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/vnykmshr/crcbrute/internal/crc"
	"github.com/vnykmshr/crcbrute/internal/logging"
)

// ErrNoSuffix indicates the suffix space was exhausted without a hit.
var ErrNoSuffix = errors.New("crcbrute: no suffix found")

// Options configures a forge run.
type Options struct {
	// Workers is the number of parallel goroutines
	// Default: runtime.GOMAXPROCS(0)
	Workers int

	// Logger for structured logging (nil = no logging)
	Logger logging.Logger
}

func (o *Options) withDefaults() *Options {
	var opts Options
	if o != nil {
		opts = *o
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoopLogger{}
	}
	return &opts
}

// Forge finds a 4-byte little-endian suffix s with
// crc(prefix||s) == target. Workers scan disjoint contiguous ranges of the
// 32-bit suffix space; the first hit stops the run. When several suffixes
// satisfy the target, which one is returned depends on scheduling.
func Forge(ctx context.Context, p crc.Params, prefix []byte, target uint64, opts *Options) ([]byte, error) {
	return run(ctx, p, prefix, target, opts, 4, 1<<32, func(i uint64, buf []byte) {
		binary.LittleEndian.PutUint32(buf, uint32(i))
	})
}

// ForgeASCII finds an 8-byte printable suffix: candidate indexes cover a
// 40-bit space expanded five bits per character into the runs 'H'..'W' and
// 'h'..'w', so the result is always ASCII.
func ForgeASCII(ctx context.Context, p crc.Params, prefix []byte, target uint64, opts *Options) ([]byte, error) {
	return run(ctx, p, prefix, target, opts, 8, 1<<40, func(i uint64, buf []byte) {
		binary.LittleEndian.PutUint64(buf, asciiSuffix(i))
	})
}

func run(ctx context.Context, p crc.Params, prefix []byte, target uint64, opts *Options,
	suffixLen int, space uint64, fill func(uint64, []byte)) ([]byte, error) {

	opts = opts.withDefaults()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	mask := crc.Mask(p.Width)
	target &= mask

	zeros := make([]byte, suffixLen)
	padded := make([]byte, len(prefix)+suffixLen)
	copy(padded, prefix)

	x := crc.Checksum(p, padded)
	c := crc.Checksum(p, zeros)
	want := (x ^ target ^ c) & mask

	opts.Logger.Info("forge starting",
		logging.F("params", p.String()),
		logging.F("prefix_len", len(prefix)),
		logging.F("suffix_len", suffixLen),
		logging.F("workers", opts.Workers),
	)

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

	found := make(chan []byte, opts.Workers)
	var wg sync.WaitGroup

	chunk := space / uint64(opts.Workers)
	for w := 0; w < opts.Workers; w++ {
		lo := uint64(w) * chunk
		hi := lo + chunk
		if w == opts.Workers-1 {
			hi = space
		}
		wg.Add(1)
		go func(lo, hi uint64) {
			defer wg.Done()
			buf := make([]byte, suffixLen)
			table := crc.NewTable(p)
			for i := lo; i < hi; i++ {
				if stop.Load() {
					return
				}
				fill(i, buf)
				if table.Checksum(buf) == want {
					stop.Store(true)
					found <- append([]byte(nil), buf...)
					return
				}
			}
		}(lo, hi)
	}

	wg.Wait()
	close(found)

	if s, ok := <-found; ok {
		opts.Logger.Info("forge finished", logging.F("suffix", string(s)))
		return s, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrNoSuffix
}

// asciiSuffix spreads the low 40 bits of i five bits per byte and offsets
// each byte into the printable runs starting at 'H' and 'h'.
func asciiSuffix(i uint64) uint64 {
	i = ((i << 12) & 0x000F_FFFF_0000_0000) | (i & 0x0000_0000_000F_FFFF)
	i = ((i << 6) & 0x03FF_0000_03FF_0000) | (i & 0x0000_03FF_0000_03FF)
	i = ((i << 3) & 0x1F00_1F00_1F00_1F00) | (i & 0x001F_001F_001F_001F)
	i = ((i << 1) & 0x2020_2020_2020_2020) | (i & 0x0F0F_0F0F_0F0F_0F0F)
	return i + 0x4848_4848_4848_4848
}
