// Command crcbrute recovers CRC algorithm parameters from observed
// checksums, or forges message suffixes for a wanted checksum.
//
// Search mode:
//
//	crcbrute [flags] <width>
//
// The corpus is supplied with -corpus (one '<hex-message> <hex-checksum>'
// pair per line) or -check (a single checksum over the ASCII string
// "123456789"). Matches are printed as they are found; a summary table
// follows.
//
// Forge mode (-forge) takes a fully specified parameter set (-poly, -init,
// -refin, -refout, -xorout), a -prefix and a -target checksum, and prints
// the prefix extended with a suffix whose CRC equals the target.
//
// Exit codes: 0 when at least one match (or a suffix) was found; 1 when the
// search completed with zero matches, which is a valid outcome — the summary
// states whether the space was searched exhaustively; 2 on a configuration
// error such as a bad width or an empty corpus.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vnykmshr/crcbrute/internal/corpus"
	"github.com/vnykmshr/crcbrute/internal/crc"
	"github.com/vnykmshr/crcbrute/internal/forge"
	"github.com/vnykmshr/crcbrute/internal/logging"
	"github.com/vnykmshr/crcbrute/internal/metrics"
	"github.com/vnykmshr/crcbrute/internal/search"
)

const (
	exitMatch    = 0
	exitNoMatch  = 1
	exitBadUsage = 2
)

func main() {
	var (
		corpusPath = flag.String("corpus", "", "path to the corpus file ('<hex-message> <hex-checksum>' per line)")
		checkValue = flag.String("check", "", "single checksum (hex) over the ASCII string \"123456789\"")
		workers    = flag.Int("workers", 0, "parallel workers (0 = number of CPUs)")
		first      = flag.Bool("first", false, "stop after the first match")
		budget     = flag.Uint64("budget", 0, "sweep candidate budget (0 = default)")
		seedOnly   = flag.Bool("seed-only", false, "search only the known-variant seed list")
		noPrune    = flag.Bool("no-prune", false, "disable the sample-pair prefilter")
		timeout    = flag.Duration("timeout", 0, "overall search timeout (0 = none)")
		verbose    = flag.Bool("v", false, "verbose logging")

		doForge     = flag.String("forge", "", "forge mode: message prefix whose CRC should reach -target")
		forgePoly   = flag.String("poly", "", "forge: generator polynomial (hex)")
		forgeInit   = flag.String("init", "0", "forge: initial register value (hex)")
		forgeRefIn  = flag.Bool("refin", false, "forge: reflect input bytes")
		forgeRefOut = flag.Bool("refout", false, "forge: reflect the final register")
		forgeXOR    = flag.String("xorout", "0", "forge: final XOR value (hex)")
		forgeTarget = flag.String("target", "", "forge: wanted checksum (hex)")
		forgeASCII  = flag.Bool("ascii", false, "forge: restrict the suffix to printable ASCII (8 bytes instead of 4)")
	)
	flag.Usage = usage
	flag.Parse()

	log.SetOutput(os.Stderr)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(exitBadUsage)
	}
	width64, err := strconv.ParseUint(flag.Arg(0), 10, 8)
	if err != nil || width64 < 1 || width64 > 64 {
		log.Errorf("width must be an integer in [1, 64], got %q", flag.Arg(0))
		os.Exit(exitBadUsage)
	}
	width := uint8(width64)

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	if *doForge != "" {
		os.Exit(runForge(ctx, width, *doForge, *forgePoly, *forgeInit, *forgeRefIn, *forgeRefOut, *forgeXOR, *forgeTarget, *forgeASCII, *workers))
	}

	samples, err := loadSamples(width, *corpusPath, *checkValue)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(exitBadUsage)
	}

	collector := metrics.NewCollector(fmt.Sprintf("crc%d", width))
	opts := &search.Options{
		Workers:      *workers,
		Budget:       *budget,
		SeedOnly:     *seedOnly,
		DisablePrune: *noPrune,
		Logger:       logging.NewLogrusLogger(log.StandardLogger()),
		Metrics:      collector,
	}
	if !*verbose {
		opts.Logger = logging.NoopLogger{}
	}
	if *first {
		opts.MatchLimit = 1
	}

	report, err := search.SearchStream(ctx, width, samples, opts, func(r search.Result) error {
		name := r.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("match: %-20s %s\n", name, r.Params)
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			// Interrupted; report whatever was found so far.
			log.Warnf("search interrupted: %v", err)
			printSummary(report, collector, *verbose)
			if len(report.Results) == 0 {
				os.Exit(exitNoMatch)
			}
			os.Exit(exitMatch)
		}
		log.Errorf("search failed: %v", err)
		os.Exit(exitBadUsage)
	}

	printSummary(report, collector, *verbose)
	if len(report.Results) == 0 {
		os.Exit(exitNoMatch)
	}
	os.Exit(exitMatch)
}

func usage() {
	fmt.Fprintln(os.Stderr, "crcbrute - recover CRC parameters from observed checksums")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  crcbrute [flags] <width>")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  crcbrute -check f4 8")
	fmt.Fprintln(os.Stderr, "  crcbrute -corpus vectors.txt -first 32")
	fmt.Fprintln(os.Stderr, "  crcbrute -forge 'hello ' -poly 04c11db7 -init ffffffff -refin -refout -xorout ffffffff -target deadbeef 32")
}

func loadSamples(width uint8, corpusPath, checkValue string) ([]search.Sample, error) {
	switch {
	case corpusPath != "" && checkValue != "":
		return nil, fmt.Errorf("-corpus and -check are mutually exclusive")
	case corpusPath != "":
		return corpus.LoadFile(corpusPath, width)
	case checkValue != "":
		expected, err := parseHex(checkValue)
		if err != nil {
			return nil, fmt.Errorf("bad -check value: %w", err)
		}
		return []search.Sample{{Data: []byte("123456789"), Expected: expected}}, nil
	default:
		return nil, fmt.Errorf("one of -corpus or -check is required")
	}
}

func printSummary(report *search.Report, collector *metrics.Collector, verbose bool) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPOLY\tINIT\tREFIN\tREFOUT\tXOROUT")
	for _, r := range report.Results {
		name := r.Name
		if name == "" {
			name = "-"
		}
		digits := (int(r.Params.Width) + 3) / 4
		fmt.Fprintf(w, "%s\t0x%0*x\t0x%0*x\t%t\t%t\t0x%0*x\n",
			name, digits, r.Params.Poly, digits, r.Params.Init,
			r.Params.RefIn, r.Params.RefOut, digits, r.Params.XOROut)
	}
	w.Flush()

	coverage := "sampled"
	if report.Exhaustive {
		coverage = "exhaustive"
	}
	fmt.Printf("\n%d match(es), %d candidate(s) tried (%d pruned), %s search, %s\n",
		len(report.Results), report.Candidates, report.Pruned, coverage, report.Elapsed.Round(time.Millisecond))

	if verbose {
		snap := collector.GetSnapshot()
		log.Debugf("metrics: tried=%d pruned=%d matches=%d", snap.CandidatesTried, snap.CandidatesPruned, snap.MatchesFound)
	}
}

func runForge(ctx context.Context, width uint8, prefix, polyStr, initStr string, refIn, refOut bool,
	xorStr, targetStr string, ascii bool, workers int) int {

	if polyStr == "" || targetStr == "" {
		log.Errorf("forge mode requires -poly and -target")
		return exitBadUsage
	}
	poly, err := parseHex(polyStr)
	if err != nil {
		log.Errorf("bad -poly: %v", err)
		return exitBadUsage
	}
	initVal, err := parseHex(initStr)
	if err != nil {
		log.Errorf("bad -init: %v", err)
		return exitBadUsage
	}
	xorOut, err := parseHex(xorStr)
	if err != nil {
		log.Errorf("bad -xorout: %v", err)
		return exitBadUsage
	}
	target, err := parseHex(targetStr)
	if err != nil {
		log.Errorf("bad -target: %v", err)
		return exitBadUsage
	}

	p := crc.Params{Width: width, Poly: poly, Init: initVal,
		RefIn: refIn, RefOut: refOut, XOROut: xorOut}
	if err := p.Validate(); err != nil {
		log.Errorf("%v", err)
		return exitBadUsage
	}

	opts := &forge.Options{
		Workers: workers,
		Logger:  logging.NewLogrusLogger(log.StandardLogger()),
	}
	forgeFn := forge.Forge
	if ascii {
		forgeFn = forge.ForgeASCII
	}

	suffix, err := forgeFn(ctx, p, []byte(prefix), target, opts)
	if err != nil {
		log.Errorf("forge failed: %v", err)
		return exitNoMatch
	}

	var out strings.Builder
	for _, b := range append([]byte(prefix), suffix...) {
		if b >= ' ' && b <= '~' {
			out.WriteByte(b)
		} else {
			fmt.Fprintf(&out, "\\x%02x", b)
		}
	}
	fmt.Println(out.String())
	return exitMatch
}

func parseHex(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
}
