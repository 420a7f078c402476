// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"biorseo/core/energy"
	"biorseo/core/fold"
	"biorseo/core/moip"
	"biorseo/core/motif"
	"biorseo/core/rna"
	"biorseo/core/solver"
	"biorseo/internal/cli"
	"biorseo/internal/diag"
	"biorseo/internal/output"
	"biorseo/internal/version"
)

// Exit codes: 0 ok, 1 no motif sites / walker failure, 2 malformed
// input, 3 output I/O.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("biorseo")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(outw)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}
	if opts.Version {
		_, _ = fmt.Fprintf(outw, "biorseo version %s\n", version.Version)
		return 0
	}

	rep := diag.New(stderr, opts.Verbose)

	// Sequence
	seq, nrep := rna.New("cmdline", opts.Sequence)
	if nrep.ReplacedT {
		rep.Warnf("thymines automatically replaced by uraciles")
	}
	if len(nrep.UnknownChars) > 0 {
		rep.Warnf("unknown chars in input sequence ignored: %q", nrep.UnknownChars)
	}

	// Energy parameters
	var params *energy.Params
	if opts.ParamsFile != "" {
		params, err = energy.Load(opts.ParamsFile)
	} else {
		params, err = energy.Default()
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	// Motif sites: catalog problems surface before any DP work.
	sites, err := collectSites(seq, opts.MotifFiles, rep)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if len(opts.MotifFiles) > 0 && len(sites) == 0 {
		_, _ = fmt.Fprintln(stderr, "error: no motif insertion site survived validation")
		return 1
	}

	// Posterior probabilities
	var pkMode fold.PKMode
	switch opts.Pseudoknots {
	case cli.PKFast:
		pkMode = fold.PKFast
	case cli.PKSlow:
		pkMode = fold.PKSlow
	}
	if pkMode != fold.PKOff {
		rep.Bannerf("pseudoknot support is experimental: results will be wrong")
	}
	engine := fold.New(fold.Config{
		Params:      params,
		Threads:     opts.Threads,
		Pseudoknots: pkMode,
		Exact:       opts.Exact,
		Warn:        func(msg string) { rep.Warnf("%s", msg) },
	})
	rep.Verbosef("computing pairing probabilities...")
	pij, err := engine.BasePairProbabilities(seq)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if opts.Verbose {
		output.WriteProbabilityMatrix(stderr, seq, pij, opts.Theta)
	}

	// Bi-objective program
	model := moip.New(seq, pij, sites, solver.NewGophersat(), moip.Config{
		Theta:     opts.Theta,
		TimeLimit: opts.TimeLimit,
		Verbose:   opts.Verbose,
		Log:       func(msg string) { rep.Verbosef("%s", msg) },
	})
	pareto, err := model.ExtendPareto(ctx)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}
	if err := output.WriteText(outw, pareto); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

// collectSites loads every catalog and turns its motifs into concrete
// candidate sites: CSV motifs already carry target positions, while
// sequence-signature motifs (RIN, DESC) are placed by the locator.
func collectSites(seq *rna.Sequence, files []string, rep *diag.Reporter) ([]motif.Motif, error) {
	var sites []motif.Motif
	for _, path := range files {
		motifs, err := motif.LoadCatalog(path, func(msg string) { rep.Warnf("%s", msg) })
		if err != nil {
			return nil, err
		}
		for i := range motifs {
			m := &motifs[i]
			if needsPlacement(m) {
				placed, err := m.Place(seq.String())
				if err != nil {
					rep.Warnf("%v (motif skipped)", err)
					continue
				}
				if len(placed) == 0 {
					rep.Warnf("motif %s has no insertion site on this sequence", m.Identifier())
					continue
				}
				sites = append(sites, placed...)
				continue
			}
			if fits(m, seq.Len()) {
				sites = append(sites, *m)
			} else {
				rep.Warnf("motif %s lies outside the sequence (skipped)", m.Identifier())
			}
		}
	}
	for i := range sites {
		rep.Verbosef("candidate insertion site: %s", sites[i].PosString())
	}
	return sites, nil
}

// needsPlacement reports whether the motif's positions are catalog-local
// (sequence signatures) rather than target-RNA coordinates.
func needsPlacement(m *motif.Motif) bool {
	if m.Source == motif.Carnaval {
		return true
	}
	for _, c := range m.Components {
		if c.Start < 0 || c.Seq != "" {
			return true
		}
	}
	return false
}

func fits(m *motif.Motif, n int) bool {
	for _, c := range m.Components {
		if c.Start < 0 || c.End >= n {
			return false
		}
	}
	return true
}
