package search

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/vnykmshr/crcbrute/internal/crc"
)

// smbusCorpus is solved by CRC-8/SMBUS (poly 0x07, everything else zero).
var smbusCorpus = []Sample{
	{Data: []byte("123456789"), Expected: 0xF4},
	{Data: []byte("crcbrute"), Expected: crc.Checksum(crc.Params{Width: 8, Poly: 0x07}, []byte("crcbrute"))},
	{Data: []byte{0x00, 0x01, 0x02}, Expected: crc.Checksum(crc.Params{Width: 8, Poly: 0x07}, []byte{0x00, 0x01, 0x02})},
}

func ieee32Corpus(t *testing.T) []Sample {
	t.Helper()
	p := crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}
	msgs := [][]byte{
		[]byte("123456789"),
		[]byte("a longer sample message"),
		[]byte("third sample to pin the parameters down"),
	}
	corpus := make([]Sample, len(msgs))
	for i, m := range msgs {
		corpus[i] = Sample{Data: m, Expected: crc.Checksum(p, m)}
	}
	return corpus
}

func containsParams(results []Result, want crc.Params) bool {
	for _, r := range results {
		if r.Params == want {
			return true
		}
	}
	return false
}

func TestSearchFindsWidth8Variant(t *testing.T) {
	report, err := Search(context.Background(), 8, smbusCorpus, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := crc.Params{Width: 8, Poly: 0x07}
	if !containsParams(report.Results, want) {
		t.Fatalf("CRC-8/SMBUS not found; %d results", len(report.Results))
	}
	for _, r := range report.Results {
		if r.Params == want && r.Name != "CRC-8/SMBUS" {
			t.Errorf("match named %q, want CRC-8/SMBUS", r.Name)
		}
	}
	if !report.Exhaustive {
		t.Error("width-8 search not exhaustive under the default budget")
	}
	if report.Candidates == 0 {
		t.Error("report counted zero candidates")
	}
}

func TestSearchFindsReflectedWidth32Variant(t *testing.T) {
	opts := &Options{SeedOnly: true}
	report, err := Search(context.Background(), 32, ieee32Corpus(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	want := crc.Params{Width: 32, Poly: 0x04C11DB7, Init: 0xFFFFFFFF, RefIn: true, RefOut: true, XOROut: 0xFFFFFFFF}
	if !containsParams(report.Results, want) {
		t.Fatal("CRC-32/ISO-HDLC not found in seed-only search")
	}
}

func TestSearchNoMatchIsNotAnError(t *testing.T) {
	// A corpus no parameter set can satisfy: identical messages with
	// different checksums.
	corpus := []Sample{
		{Data: []byte("same"), Expected: 0x01},
		{Data: []byte("same"), Expected: 0x02},
	}
	report, err := Search(context.Background(), 8, corpus, &Options{SeedOnly: true, DisablePrune: true})
	if err != nil {
		t.Fatalf("no-match outcome returned error: %v", err)
	}
	if len(report.Results) != 0 {
		t.Fatalf("contradictory corpus produced %d matches", len(report.Results))
	}
}

func TestSearchConfigErrors(t *testing.T) {
	opts := &Options{
		newEvaluator: func() Evaluator { return &countingEvaluator{} },
	}

	if _, err := Search(context.Background(), 0, smbusCorpus, opts); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("width 0: got %v", err)
	}
	if _, err := Search(context.Background(), 65, smbusCorpus, opts); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("width 65: got %v", err)
	}
	if _, err := Search(context.Background(), 8, nil, opts); !errors.Is(err, ErrEmptyCorpus) {
		t.Errorf("empty corpus: got %v", err)
	}
	bad := []Sample{{Data: []byte("x"), Expected: 0x1FF}}
	if _, err := Search(context.Background(), 8, bad, opts); !errors.Is(err, ErrWidthMismatch) {
		t.Errorf("oversized checksum: got %v", err)
	}
}

func TestSearchConfigErrorsSkipEvaluation(t *testing.T) {
	ev := &countingEvaluator{}
	opts := &Options{newEvaluator: func() Evaluator { return ev }}

	if _, err := Search(context.Background(), 0, smbusCorpus, opts); err == nil {
		t.Fatal("expected a config error")
	}
	if ev.calls != 0 {
		t.Errorf("config error still evaluated %d candidates", ev.calls)
	}
}

func sortedResults(results []Result) []Result {
	out := append([]Result(nil), results...)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Params, out[j].Params
		if a.Poly != b.Poly {
			return a.Poly < b.Poly
		}
		if a.Init != b.Init {
			return a.Init < b.Init
		}
		if a.XOROut != b.XOROut {
			return a.XOROut < b.XOROut
		}
		if a.RefIn != b.RefIn {
			return !a.RefIn
		}
		return !a.RefOut && b.RefOut
	})
	return out
}

func TestSearchWorkerCountInvariance(t *testing.T) {
	var baseline []Result
	for _, workers := range []int{1, 2, 5, 16} {
		report, err := Search(context.Background(), 8, smbusCorpus, &Options{Workers: workers})
		if err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		got := sortedResults(report.Results)
		if workers == 1 {
			baseline = got
			continue
		}
		if len(got) != len(baseline) {
			t.Fatalf("workers=%d found %d results, 1 worker found %d", workers, len(got), len(baseline))
		}
		for i := range got {
			if got[i] != baseline[i] {
				t.Errorf("workers=%d: result %d differs: %v vs %v", workers, i, got[i], baseline[i])
			}
		}
	}
}

func TestSearchLeavesOptionsUntouched(t *testing.T) {
	opts := &Options{SeedOnly: true}
	if _, err := Search(context.Background(), 8, smbusCorpus, opts); err != nil {
		t.Fatal(err)
	}
	if opts.Workers != 0 {
		t.Errorf("Workers defaulted into the caller's options: %d", opts.Workers)
	}
	if opts.Logger != nil || opts.Metrics != nil {
		t.Error("Logger/Metrics defaulted into the caller's options")
	}
}

func TestSearchMatchLimit(t *testing.T) {
	report, err := Search(context.Background(), 8, smbusCorpus, &Options{MatchLimit: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("MatchLimit=1 returned %d results", len(report.Results))
	}
}

func TestSearchStreamHandler(t *testing.T) {
	var streamed []Result
	report, err := SearchStream(context.Background(), 8, smbusCorpus, nil, func(r Result) error {
		streamed = append(streamed, r)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(streamed) != len(report.Results) {
		t.Errorf("handler saw %d matches, report holds %d", len(streamed), len(report.Results))
	}
}

func TestSearchStreamHandlerErrorStops(t *testing.T) {
	boom := errors.New("boom")
	report, err := SearchStream(context.Background(), 8, smbusCorpus, nil, func(Result) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want handler error", err)
	}
	if len(report.Results) != 0 {
		t.Errorf("results collected after handler error: %d", len(report.Results))
	}
}

func TestSearchContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := Search(ctx, 16, ieee16Corpus(t), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	if report == nil {
		t.Fatal("cancelled search returned nil report")
	}
}

func ieee16Corpus(t *testing.T) []Sample {
	t.Helper()
	p := crc.Params{Width: 16, Poly: 0x1021}
	// Equal-length messages so the sample-pair prefilter can engage.
	msgs := [][]byte{[]byte("123456789"), []byte("987654321")}
	corpus := make([]Sample, len(msgs))
	for i, m := range msgs {
		corpus[i] = Sample{Data: m, Expected: crc.Checksum(p, m)}
	}
	return corpus
}

func TestSearchPruneAgreesWithNoPrune(t *testing.T) {
	corpus := ieee16Corpus(t)
	pruned, err := Search(context.Background(), 16, corpus, &Options{Workers: 2, SeedOnly: true})
	if err != nil {
		t.Fatal(err)
	}
	plain, err := Search(context.Background(), 16, corpus, &Options{Workers: 2, SeedOnly: true, DisablePrune: true})
	if err != nil {
		t.Fatal(err)
	}

	a, b := sortedResults(pruned.Results), sortedResults(plain.Results)
	if len(a) != len(b) {
		t.Fatalf("prefilter changed the result set: %d vs %d matches", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("result %d differs with prefilter: %v vs %v", i, a[i], b[i])
		}
	}
	if pruned.Pruned == 0 {
		t.Error("prefilter pruned nothing on a prunable corpus")
	}
}

func BenchmarkSearchWidth8(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := Search(context.Background(), 8, smbusCorpus, &Options{Workers: 4}); err != nil {
			b.Fatal(err)
		}
	}
}
