// Package gf2 implements carry-less arithmetic on polynomials over GF(2),
// represented as uint64 bit masks with bit i holding the coefficient of x^i.
package gf2

import "math/bits"

// Mul returns the 128-bit carry-less product of a and b as (lo, hi).
func Mul(a, b uint64) (lo, hi uint64) {
	for i := 0; i < 64; i++ {
		mask := uint64(int64(a<<(63-i)) >> 63)
		lo ^= mask & (b << i)
		hi ^= mask & (b >> (64 - i))
	}
	return lo, hi
}

// DivMod returns the quotient and remainder of a divided by b over GF(2).
// ok is false when b is zero.
func DivMod(a, b uint64) (q, r uint64, ok bool) {
	if b == 0 {
		return 0, 0, false
	}
	r = a
	for bits.LeadingZeros64(r) <= bits.LeadingZeros64(b) {
		shift := bits.LeadingZeros64(b) - bits.LeadingZeros64(r)
		q ^= 1 << shift
		r ^= b << shift
	}
	return q, r, true
}

// Div returns the quotient of a divided by b. b must be non-zero.
func Div(a, b uint64) uint64 {
	q, _, _ := DivMod(a, b)
	return q
}

// Mod returns the remainder of a divided by b. b must be non-zero.
func Mod(a, b uint64) uint64 {
	_, r, _ := DivMod(a, b)
	return r
}

// Deg returns the degree of p, or -1 for the zero polynomial.
func Deg(p uint64) int {
	return 63 - bits.LeadingZeros64(p)
}
