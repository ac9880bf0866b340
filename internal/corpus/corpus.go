// Package corpus loads sample corpora from their text representation.
//
// The format is line oriented: each line holds a hex-encoded message and its
// expected checksum, separated by whitespace. Blank lines and lines starting
// with '#' are ignored. A lone '-' denotes the empty message. Checksums may
// carry an optional 0x prefix.
//
//	# message        checksum
//	313233343536373839 CBF43926
//	-                  0xFFFFFFFF
//
// The search engine itself never touches files; this package exists for the
// CLI and examples, which inject the loaded corpus into the engine.
package corpus

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vnykmshr/crcbrute/internal/crc"
	"github.com/vnykmshr/crcbrute/internal/search"
)

// Load reads a corpus from r, validating every checksum against width.
func Load(r io.Reader, width uint8) ([]search.Sample, error) {
	if width < 1 || width > 64 {
		return nil, fmt.Errorf("corpus: width %d out of range [1, 64]", width)
	}
	mask := crc.Mask(width)

	var samples []search.Sample
	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("corpus: line %d: want '<hex-message> <hex-checksum>', got %d fields", lineno, len(fields))
		}

		var data []byte
		if fields[0] != "-" {
			var err error
			data, err = hex.DecodeString(fields[0])
			if err != nil {
				return nil, fmt.Errorf("corpus: line %d: bad message hex: %w", lineno, err)
			}
		}

		expected, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(fields[1]), "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("corpus: line %d: bad checksum: %w", lineno, err)
		}
		if expected&^mask != 0 {
			return nil, fmt.Errorf("corpus: line %d: checksum 0x%x does not fit in %d bits", lineno, expected, width)
		}

		samples = append(samples, search.Sample{Data: data, Expected: expected})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("corpus: read: %w", err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("corpus: no samples")
	}
	return samples, nil
}

// LoadFile reads a corpus from path.
func LoadFile(path string, width uint8) ([]search.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("corpus: open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f, width)
}
