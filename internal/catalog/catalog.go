// Package catalog holds the seed list of well-known CRC variants.
//
// Each entry carries its catalog check value, the CRC of the ASCII string
// "123456789"; the catalog test reproduces every check value through the
// evaluator, which pins the reflection convention of the whole module to the
// published vectors.
package catalog

import "github.com/vnykmshr/crcbrute/internal/crc"

// Variant is a named, published CRC parameter set.
type Variant struct {
	// Name is the catalog name, e.g. "CRC-32/ISO-HDLC"
	Name string

	// Params is the full parameter set
	Params crc.Params

	// Check is the CRC of ASCII "123456789" under Params
	Check uint64
}

// CheckInput is the message the Check values are computed over.
var CheckInput = []byte("123456789")

// variants lists the known algorithms in catalog order, narrow widths first.
// Within a width the most common variants come first so that seeded searches
// hit them early.
var variants = []Variant{
	{"CRC-3/GSM", crc.Params{Width: 3, Poly: 0x3, Init: 0x0, RefIn: false, RefOut: false, XOROut: 0x7}, 0x4},
	{"CRC-3/ROHC", crc.Params{Width: 3, Poly: 0x3, Init: 0x7, RefIn: true, RefOut: true, XOROut: 0x0}, 0x6},
	{"CRC-4/G-704", crc.Params{Width: 4, Poly: 0x3, Init: 0x0, RefIn: true, RefOut: true, XOROut: 0x0}, 0x7},
	{"CRC-4/INTERLAKEN", crc.Params{Width: 4, Poly: 0x3, Init: 0xF, RefIn: false, RefOut: false, XOROut: 0xF}, 0xB},
	{"CRC-5/USB", crc.Params{Width: 5, Poly: 0x05, Init: 0x1F, RefIn: true, RefOut: true, XOROut: 0x1F}, 0x19},
	{"CRC-5/G-704", crc.Params{Width: 5, Poly: 0x15, Init: 0x00, RefIn: true, RefOut: true, XOROut: 0x00}, 0x07},
	{"CRC-5/EPC-C1G2", crc.Params{Width: 5, Poly: 0x09, Init: 0x09, RefIn: false, RefOut: false, XOROut: 0x00}, 0x00},
	{"CRC-6/G-704", crc.Params{Width: 6, Poly: 0x03, Init: 0x00, RefIn: true, RefOut: true, XOROut: 0x00}, 0x06},
	{"CRC-7/MMC", crc.Params{Width: 7, Poly: 0x09, Init: 0x00, RefIn: false, RefOut: false, XOROut: 0x00}, 0x75},
	{"CRC-7/ROHC", crc.Params{Width: 7, Poly: 0x4F, Init: 0x7F, RefIn: true, RefOut: true, XOROut: 0x00}, 0x53},

	{"CRC-8/SMBUS", crc.Params{Width: 8, Poly: 0x07, Init: 0x00, RefIn: false, RefOut: false, XOROut: 0x00}, 0xF4},
	{"CRC-8/MAXIM-DOW", crc.Params{Width: 8, Poly: 0x31, Init: 0x00, RefIn: true, RefOut: true, XOROut: 0x00}, 0xA1},
	{"CRC-8/DARC", crc.Params{Width: 8, Poly: 0x39, Init: 0x00, RefIn: true, RefOut: true, XOROut: 0x00}, 0x15},
	{"CRC-8/I-432-1", crc.Params{Width: 8, Poly: 0x07, Init: 0x00, RefIn: false, RefOut: false, XOROut: 0x55}, 0xA1},
	{"CRC-8/CDMA2000", crc.Params{Width: 8, Poly: 0x9B, Init: 0xFF, RefIn: false, RefOut: false, XOROut: 0x00}, 0xDA},
	{"CRC-8/ROHC", crc.Params{Width: 8, Poly: 0x07, Init: 0xFF, RefIn: true, RefOut: true, XOROut: 0x00}, 0xD0},
	{"CRC-8/WCDMA", crc.Params{Width: 8, Poly: 0x9B, Init: 0x00, RefIn: true, RefOut: true, XOROut: 0x00}, 0x25},
	{"CRC-8/BLUETOOTH", crc.Params{Width: 8, Poly: 0xA7, Init: 0x00, RefIn: true, RefOut: true, XOROut: 0x00}, 0x26},
	{"CRC-8/AUTOSAR", crc.Params{Width: 8, Poly: 0x2F, Init: 0xFF, RefIn: false, RefOut: false, XOROut: 0xFF}, 0xDF},

	{"CRC-10/ATM", crc.Params{Width: 10, Poly: 0x233, Init: 0x000, RefIn: false, RefOut: false, XOROut: 0x000}, 0x199},
	{"CRC-11/FLEXRAY", crc.Params{Width: 11, Poly: 0x385, Init: 0x01A, RefIn: false, RefOut: false, XOROut: 0x000}, 0x5A3},
	{"CRC-12/DECT", crc.Params{Width: 12, Poly: 0x80F, Init: 0x000, RefIn: false, RefOut: false, XOROut: 0x000}, 0xF5B},
	{"CRC-12/UMTS", crc.Params{Width: 12, Poly: 0x80F, Init: 0x000, RefIn: false, RefOut: true, XOROut: 0x000}, 0xDAF},
	{"CRC-13/BBC", crc.Params{Width: 13, Poly: 0x1CF5, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0x0000}, 0x04FA},
	{"CRC-14/DARC", crc.Params{Width: 14, Poly: 0x0805, Init: 0x0000, RefIn: true, RefOut: true, XOROut: 0x0000}, 0x082D},
	{"CRC-15/CAN", crc.Params{Width: 15, Poly: 0x4599, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0x0000}, 0x059E},

	{"CRC-16/ARC", crc.Params{Width: 16, Poly: 0x8005, Init: 0x0000, RefIn: true, RefOut: true, XOROut: 0x0000}, 0xBB3D},
	{"CRC-16/IBM-3740", crc.Params{Width: 16, Poly: 0x1021, Init: 0xFFFF, RefIn: false, RefOut: false, XOROut: 0x0000}, 0x29B1},
	{"CRC-16/KERMIT", crc.Params{Width: 16, Poly: 0x1021, Init: 0x0000, RefIn: true, RefOut: true, XOROut: 0x0000}, 0x2189},
	{"CRC-16/XMODEM", crc.Params{Width: 16, Poly: 0x1021, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0x0000}, 0x31C3},
	{"CRC-16/MODBUS", crc.Params{Width: 16, Poly: 0x8005, Init: 0xFFFF, RefIn: true, RefOut: true, XOROut: 0x0000}, 0x4B37},
	{"CRC-16/IBM-SDLC", crc.Params{Width: 16, Poly: 0x1021, Init: 0xFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFF}, 0x906E},
	{"CRC-16/USB", crc.Params{Width: 16, Poly: 0x8005, Init: 0xFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFF}, 0xB4C8},
	{"CRC-16/MAXIM-DOW", crc.Params{Width: 16, Poly: 0x8005, Init: 0x0000, RefIn: true, RefOut: true, XOROut: 0xFFFF}, 0x44C2},
	{"CRC-16/GENIBUS", crc.Params{Width: 16, Poly: 0x1021, Init: 0xFFFF, RefIn: false, RefOut: false, XOROut: 0xFFFF}, 0xD64E},
	{"CRC-16/MCRF4XX", crc.Params{Width: 16, Poly: 0x1021, Init: 0xFFFF, RefIn: true, RefOut: true, XOROut: 0x0000}, 0x6F91},
	{"CRC-16/SPI-FUJITSU", crc.Params{Width: 16, Poly: 0x1021, Init: 0x1D0F, RefIn: false, RefOut: false, XOROut: 0x0000}, 0xE5CC},
	{"CRC-16/DNP", crc.Params{Width: 16, Poly: 0x3D65, Init: 0x0000, RefIn: true, RefOut: true, XOROut: 0xFFFF}, 0xEA82},
	{"CRC-16/EN-13757", crc.Params{Width: 16, Poly: 0x3D65, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0xFFFF}, 0xC2B7},
	{"CRC-16/T10-DIF", crc.Params{Width: 16, Poly: 0x8BB7, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0x0000}, 0xD0DB},
	{"CRC-16/CDMA2000", crc.Params{Width: 16, Poly: 0xC867, Init: 0xFFFF, RefIn: false, RefOut: false, XOROut: 0x0000}, 0x4C06},
	{"CRC-16/DECT-X", crc.Params{Width: 16, Poly: 0x0589, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0x0000}, 0x007F},
	{"CRC-16/DECT-R", crc.Params{Width: 16, Poly: 0x0589, Init: 0x0000, RefIn: false, RefOut: false, XOROut: 0x0001}, 0x007E},

	{"CRC-24/OPENPGP", crc.Params{Width: 24, Poly: 0x864CFB, Init: 0xB704CE, RefIn: false, RefOut: false, XOROut: 0x000000}, 0x21CF02},
	{"CRC-24/BLE", crc.Params{Width: 24, Poly: 0x00065B, Init: 0x555555, RefIn: true, RefOut: true, XOROut: 0x000000}, 0xC25A56},
	{"CRC-31/PHILIPS", crc.Params{Width: 31, Poly: 0x04C11DB7, Init: 0x7FFFFFFF, RefIn: false, RefOut: false, XOROut: 0x7FFFFFFF}, 0x0CE9E46C},

	{"CRC-32/ISO-HDLC", crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}, 0xCBF43926},
	{"CRC-32/ISCSI", crc.Params{Width: 32, Poly: 0x1EDC6F41, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}, 0xE3069283},
	{"CRC-32/BZIP2", crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: false, RefOut: false, XOROut: 0xFFFFFFFF}, 0xFC891918},
	{"CRC-32/MPEG-2", crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: false, RefOut: false, XOROut: 0x00000000}, 0x0376E6E7},
	{"CRC-32/CKSUM", crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0x00000000, RefIn: false, RefOut: false, XOROut: 0xFFFFFFFF}, 0x765E7680},
	{"CRC-32/JAMCRC", crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0x00000000}, 0x340BC6D9},
	{"CRC-32/BASE91-D", crc.Params{Width: 32, Poly: 0xA833982B, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}, 0x87315576},
	{"CRC-32/AIXM", crc.Params{Width: 32, Poly: 0x814141AB, Init: 0x00000000, RefIn: false, RefOut: false, XOROut: 0x00000000}, 0x3010BF7F},
	{"CRC-32/AUTOSAR", crc.Params{Width: 32, Poly: 0xF4ACFB13, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}, 0x1697D06A},
	{"CRC-32/XFER", crc.Params{Width: 32, Poly: 0x000000AF, Init: 0x00000000, RefIn: false, RefOut: false, XOROut: 0x00000000}, 0xBD0BE338},

	{"CRC-40/GSM", crc.Params{Width: 40, Poly: 0x0004820009, Init: 0x0000000000, RefIn: false, RefOut: false, XOROut: 0xFFFFFFFFFF}, 0xD4164FC646},

	{"CRC-64/ECMA-182", crc.Params{Width: 64, Poly: 0x42F0E1EBA9EA3693, Init: 0, RefIn: false, RefOut: false, XOROut: 0}, 0x6C40DF5F0B497347},
	{"CRC-64/XZ", crc.Params{Width: 64, Poly: 0x42F0E1EBA9EA3693, Init: ^uint64(0), RefIn: true, RefOut: true, XOROut: ^uint64(0)}, 0x995DC9BBDF1939FA},
	{"CRC-64/GO-ISO", crc.Params{Width: 64, Poly: 0x000000000000001B, Init: ^uint64(0), RefIn: true, RefOut: true, XOROut: ^uint64(0)}, 0xB90956C775A41001},
}

// Variants returns the full catalog in catalog order.
func Variants() []Variant { return variants }

// ByWidth returns the catalog entries for the given width, in catalog order.
func ByWidth(width uint8) []Variant {
	var out []Variant
	for _, v := range variants {
		if v.Params.Width == width {
			out = append(out, v)
		}
	}
	return out
}

// Find returns the variant with the given name.
func Find(name string) (Variant, bool) {
	for _, v := range variants {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Match returns the catalog name for a parameter set, or "" when the
// parameters match no known variant.
func Match(p crc.Params) string {
	for _, v := range variants {
		if v.Params == p {
			return v.Name
		}
	}
	return ""
}
