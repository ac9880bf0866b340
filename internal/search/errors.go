package search

import "errors"

// Configuration errors surfaced by Validate before any worker starts.
// A search that completes with zero matches is not an error; it is reported
// through the Report.
var (
	// ErrInvalidWidth indicates a width outside 1..64.
	ErrInvalidWidth = errors.New("crcbrute: width out of range [1, 64]")

	// ErrEmptyCorpus indicates a corpus with no samples.
	ErrEmptyCorpus = errors.New("crcbrute: empty corpus")

	// ErrWidthMismatch indicates a sample whose expected checksum does not
	// fit in the search width.
	ErrWidthMismatch = errors.New("crcbrute: sample checksum exceeds width")
)
