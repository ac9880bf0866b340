package enum

import (
	"github.com/vnykmshr/crcbrute/internal/crc"
	"github.com/vnykmshr/crcbrute/internal/gf2"
)

// Prefilter rejects candidates that cannot possibly verify, using the GF(2)
// linearity of the CRC register. Built from two equal-length samples, it
// exploits that init and xorout are affine offsets which cancel in the XOR
// difference of the pair: for the true parameters,
//
//	crc{init=0, xorout=0}(m1 XOR m2) == c1 XOR c2
//
// must hold regardless of init and xorout (bit reflection is itself linear,
// so the identity survives any refin/refout setting). Checking it costs one
// evaluation of the difference message instead of a full corpus pass over
// every init/xorout combination. Purely an optimization: it never rejects a
// parameter set that would verify.
type Prefilter struct {
	width uint8
	diff  []byte
	want  uint64

	// diffPoly holds the difference message as a GF(2) polynomial when it
	// is short enough for single-word arithmetic.
	diffPoly uint64
	short    bool
}

// NewPrefilter builds a prefilter from two samples of equal byte length.
// ok is false when the lengths differ or the difference is zero (identical
// messages carry no pruning signal unless their checksums disagree, which
// no parameter set can satisfy anyway).
func NewPrefilter(width uint8, d1 []byte, c1 uint64, d2 []byte, c2 uint64) (*Prefilter, bool) {
	if len(d1) != len(d2) {
		return nil, false
	}
	diff := make([]byte, len(d1))
	zero := true
	for i := range d1 {
		diff[i] = d1[i] ^ d2[i]
		if diff[i] != 0 {
			zero = false
		}
	}
	if zero {
		return nil, false
	}

	pf := &Prefilter{
		width: width,
		diff:  diff,
		want:  (c1 ^ c2) & crc.Mask(width),
	}

	// Strip leading zero bytes; with init 0 they leave the register
	// untouched and only shrink the polynomial below.
	trimmed := diff
	for len(trimmed) > 0 && trimmed[0] == 0 {
		trimmed = trimmed[1:]
	}
	if len(trimmed)*8+int(width) <= 64 {
		for _, b := range trimmed {
			pf.diffPoly = pf.diffPoly<<8 | uint64(b)
		}
		pf.short = true
	}
	return pf, true
}

// Allow reports whether the candidate is consistent with the sample pair.
// Only Poly, RefIn and RefOut participate; Init and XOROut are ignored by
// construction.
func (pf *Prefilter) Allow(p crc.Params) bool {
	if pf.short && !p.RefIn && !p.RefOut {
		// crc{0,0}(m) for an unreflected register is (m(x) * x^width)
		// mod (x^width + poly).
		full := uint64(1)<<p.Width | p.Poly
		return gf2.Mod(pf.diffPoly<<p.Width, full) == pf.want
	}

	probe := crc.Params{Width: pf.width, Poly: p.Poly, RefIn: p.RefIn, RefOut: p.RefOut}
	return crc.Checksum(probe, pf.diff) == pf.want
}
