// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"biorseo/internal/version"
)

// Pseudoknot modes
const (
	PKOff  = "off"
	PKFast = "fast"
	PKSlow = "slow"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	Sequence   string
	MotifFiles []string
	ParamsFile string

	// Model parameters
	Theta       float64
	Pseudoknots string
	Exact       bool

	// Performance
	Threads   int
	TimeLimit time.Duration

	// Output
	Verbose bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: bi-objective RNA secondary structure prediction with motif insertion

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.Sequence, "sequence", "", "RNA sequence over A,C,G,U/T (min length 5) [*]")
	var motifs stringSlice
	fs.Var(&motifs, "motifs", "motif catalog file: CSV, .rin or .desc, optionally gzipped (repeatable)")
	fs.StringVar(&opt.ParamsFile, "params", "", "custom energy parameter stream (default: embedded Serra-Turner 1995)")

	// Model parameters
	fs.Float64Var(&opt.Theta, "theta", 0.001, "base-pair probability cutoff for decision variables [0.001]")
	fs.StringVar(&opt.Pseudoknots, "pseudoknots", PKOff, "pseudoknot mode: off | fast | slow (experimental) [off]")
	fs.BoolVar(&opt.Exact, "exact", false, "use the O(n^4) reference recursion instead of O(n^3) [false]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")
	fs.DurationVar(&opt.TimeLimit, "time-limit", 0, "per-solver-call time budget (0 = none) [0]")

	// Output
	fs.BoolVar(&opt.Verbose, "verbose", false, "trace probabilities, variables and walker progress [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.MotifFiles = motifs

	// Validation
	if opt.Sequence == "" {
		return opt, errors.New("--sequence is required")
	}
	if len(opt.Sequence) < 5 {
		return opt, fmt.Errorf("--sequence must be at least 5 nucleotides, got %d", len(opt.Sequence))
	}
	if opt.Theta < 0 || opt.Theta > 1 {
		return opt, errors.New("--theta must be in [0, 1]")
	}
	switch opt.Pseudoknots {
	case PKOff, PKFast, PKSlow:
	default:
		return opt, fmt.Errorf("invalid --pseudoknots %q", opt.Pseudoknots)
	}
	if opt.Threads < 0 {
		return opt, errors.New("--threads must be ≥ 0")
	}
	if opt.TimeLimit < 0 {
		return opt, errors.New("--time-limit must be ≥ 0")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
