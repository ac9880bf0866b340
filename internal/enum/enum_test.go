package enum

import (
	"testing"

	"github.com/vnykmshr/crcbrute/internal/catalog"
	"github.com/vnykmshr/crcbrute/internal/crc"
)

func TestPartitionDisjointAndCovering(t *testing.T) {
	space := NewSpace(8, Config{})

	for _, workers := range []int{1, 2, 3, 7, 16} {
		parts := space.Partition(workers)
		if len(parts) != workers {
			t.Fatalf("Partition(%d) returned %d ranges", workers, len(parts))
		}

		var covered uint64
		var prev uint64
		for i, r := range parts {
			if r.Start != prev {
				t.Fatalf("workers=%d: range %d starts at %d, want %d", workers, i, r.Start, prev)
			}
			if r.End < r.Start {
				t.Fatalf("workers=%d: range %d is inverted", workers, i)
			}
			covered += r.Len()
			prev = r.End
		}
		if covered != space.Size() {
			t.Errorf("workers=%d: ranges cover %d indexes, want %d", workers, covered, space.Size())
		}
		if prev != space.Size() {
			t.Errorf("workers=%d: last range ends at %d, want %d", workers, prev, space.Size())
		}
	}
}

func TestPartitionMoreWorkersThanCandidates(t *testing.T) {
	space := NewSpace(8, Config{SeedOnly: true})
	parts := space.Partition(int(space.Size()) + 5)

	var covered uint64
	for _, r := range parts {
		covered += r.Len()
	}
	if covered != space.Size() {
		t.Errorf("ranges cover %d indexes, want %d", covered, space.Size())
	}
}

func TestAtDeterministic(t *testing.T) {
	space := NewSpace(16, Config{})
	for _, i := range []uint64{0, 1, 100, space.Size() - 1} {
		if a, b := space.At(i), space.At(i); a != b {
			t.Errorf("At(%d) not deterministic: %s vs %s", i, a, b)
		}
	}
}

func TestSeedPhaseLeadsWithCatalog(t *testing.T) {
	space := NewSpace(32, Config{})
	vars := catalog.ByWidth(32)
	for i, v := range vars {
		if got := space.At(uint64(i)); got != v.Params {
			t.Errorf("At(%d) = %s, want catalog %s", i, got, v.Name)
		}
	}
}

func TestSeedOnlySpace(t *testing.T) {
	space := NewSpace(32, Config{SeedOnly: true})
	if space.Exhaustive() {
		t.Error("seed-only space reported exhaustive")
	}
	if space.Size() == 0 {
		t.Error("seed-only space is empty")
	}
	// Every candidate must be a valid width-32 parameter set.
	for i := uint64(0); i < space.Size(); i++ {
		p := space.At(i)
		if err := p.Validate(); err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if p.Width != 32 {
			t.Fatalf("At(%d) width = %d", i, p.Width)
		}
	}
}

func TestExhaustiveSmallWidth(t *testing.T) {
	space := NewSpace(8, Config{})
	if !space.Exhaustive() {
		t.Fatal("width-8 space not exhaustive under the default budget")
	}

	// The sweep must visit every odd polynomial.
	seen := make(map[uint64]bool)
	for i := uint64(0); i < space.Size(); i++ {
		p := space.At(i)
		if p.Poly&1 == 0 {
			t.Fatalf("At(%d) emitted even poly 0x%x", i, p.Poly)
		}
		seen[p.Poly] = true
	}
	if len(seen) != 128 {
		t.Errorf("sweep visited %d distinct odd polys, want 128", len(seen))
	}
}

func TestSampledLargeWidth(t *testing.T) {
	space := NewSpace(32, Config{Budget: 10000})
	if space.Exhaustive() {
		t.Fatal("width-32 space reported exhaustive under a 10k budget")
	}
	if space.Size() == 0 {
		t.Fatal("sampled space is empty")
	}

	// Sampled candidates are still deterministic and well formed.
	last := space.Size() - 1
	p := space.At(last)
	if err := p.Validate(); err != nil {
		t.Fatalf("At(last): %v", err)
	}
	if p != space.At(last) {
		t.Error("sampled At not deterministic")
	}
}

func TestSpaceContainsKnownVariantEverywhere(t *testing.T) {
	// The width-8 space must contain CRC-8/SMBUS in its seed phase.
	space := NewSpace(8, Config{})
	want := crc.Params{Width: 8, Poly: 0x07}

	found := false
	for i := uint64(0); i < space.Size() && !found; i++ {
		if space.At(i) == want {
			found = true
		}
	}
	if !found {
		t.Error("width-8 space never emits CRC-8/SMBUS parameters")
	}
}
