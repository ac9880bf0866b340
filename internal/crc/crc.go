// Package crc evaluates CRC checksums under a fully parameterized model.
//
// A CRC algorithm is described by a Params value following the Rocksoft
// convention: register width, generator polynomial, initial register value,
// input/output bit reflection, and a final XOR mask. Checksum implements the
// bit-serial reference algorithm for every width from 1 to 64; Table provides
// a byte-wise fast path that is bit-identical to Checksum.
//
// Basic usage:
//
//	p := crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF,
//	    RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}
//	sum := crc.Checksum(p, []byte("123456789")) // 0xCBF43926
package crc

import (
	"fmt"
	"math/bits"
)

// Params describes a CRC algorithm in the Rocksoft parameter model.
type Params struct {
	// Width is the register size in bits (1 to 64)
	Width uint8

	// Poly is the generator polynomial with the implicit leading bit omitted
	Poly uint64

	// Init is the register value before any input is processed
	Init uint64

	// RefIn reflects each input byte before it enters the register
	RefIn bool

	// RefOut reflects the final register before the XOR mask is applied
	RefOut bool

	// XOROut is XORed with the (possibly reflected) final register
	XOROut uint64
}

// Mask returns the bit mask covering width bits.
func Mask(width uint8) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// Validate reports whether the parameter set is well formed: width within
// 1..64 and poly, init, xorout all fitting in width bits.
func (p Params) Validate() error {
	if p.Width < 1 || p.Width > 64 {
		return fmt.Errorf("crc: width %d out of range [1, 64]", p.Width)
	}
	mask := Mask(p.Width)
	if p.Poly&^mask != 0 {
		return fmt.Errorf("crc: poly 0x%x does not fit in %d bits", p.Poly, p.Width)
	}
	if p.Init&^mask != 0 {
		return fmt.Errorf("crc: init 0x%x does not fit in %d bits", p.Init, p.Width)
	}
	if p.XOROut&^mask != 0 {
		return fmt.Errorf("crc: xorout 0x%x does not fit in %d bits", p.XOROut, p.Width)
	}
	return nil
}

// String renders the parameters in the usual catalog notation.
func (p Params) String() string {
	digits := (int(p.Width) + 3) / 4
	return fmt.Sprintf("width=%d poly=0x%0*x init=0x%0*x refin=%t refout=%t xorout=0x%0*x",
		p.Width, digits, p.Poly, digits, p.Init, p.RefIn, p.RefOut, digits, p.XOROut)
}

// Reflect reverses the low width bits of v.
func Reflect(v uint64, width uint8) uint64 {
	return bits.Reverse64(v) >> (64 - width)
}

// Checksum computes the CRC of data under p using the bit-serial reference
// algorithm. It is pure and total: any register state is valid, there are no
// error conditions. An empty input yields Init (reflected if RefOut) XORed
// with XOROut.
func Checksum(p Params, data []byte) uint64 {
	mask := Mask(p.Width)
	top := uint64(1) << (p.Width - 1)

	reg := p.Init & mask
	for _, b := range data {
		if p.RefIn {
			b = bits.Reverse8(b)
		}
		for i := 7; i >= 0; i-- {
			feed := reg&top != 0
			if (b>>uint(i))&1 != 0 {
				feed = !feed
			}
			reg = (reg << 1) & mask
			if feed {
				reg ^= p.Poly
			}
		}
	}

	if p.RefOut {
		reg = Reflect(reg, p.Width)
	}
	return (reg ^ p.XOROut) & mask
}

// Verify reports whether the CRC of data under p matches expected.
func Verify(p Params, data []byte, expected uint64) bool {
	return Checksum(p, data) == expected
}
