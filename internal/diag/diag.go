// internal/diag/diag.go
// Reporter collects the warning/verbose surface of the pipeline on one
// stderr-like writer. Warnings and the experimental-mode banner get
// terminal emphasis; verbose traces stay plain.
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

type Reporter struct {
	w       io.Writer
	verbose bool
	warn    *color.Color
	banner  *color.Color
}

// New builds a Reporter writing to w.
func New(w io.Writer, verbose bool) *Reporter {
	return &Reporter{
		w:       w,
		verbose: verbose,
		warn:    color.New(color.FgYellow),
		banner:  color.New(color.FgRed, color.Bold),
	}
}

// Warnf reports a recoverable problem (skipped motif, rewritten input).
func (r *Reporter) Warnf(format string, args ...interface{}) {
	_, _ = r.warn.Fprintf(r.w, "warning: "+format+"\n", args...)
}

// Bannerf reports a prominent diagnostic, like the experimental
// pseudoknot notice.
func (r *Reporter) Bannerf(format string, args ...interface{}) {
	_, _ = r.banner.Fprintf(r.w, format+"\n", args...)
}

// Verbosef traces progress when --verbose is set.
func (r *Reporter) Verbosef(format string, args ...interface{}) {
	if r.verbose {
		_, _ = fmt.Fprintf(r.w, format+"\n", args...)
	}
}

// Verbose reports whether tracing is on.
func (r *Reporter) Verbose() bool { return r.verbose }
