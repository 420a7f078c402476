// internal/output/text.go
package output

import (
	"fmt"
	"io"
	"math"

	"biorseo/core/fold"
	"biorseo/core/moip"
	"biorseo/core/rna"

	"github.com/fatih/color"
)

// WriteText prints one Pareto structure per line: dot-bracket, motif
// annotations, obj1, obj2.
func WriteText(w io.Writer, set []moip.Structure) error {
	for i := range set {
		if _, err := fmt.Fprintln(w, set[i].String()); err != nil {
			return err
		}
	}
	return nil
}

// WriteProbabilityMatrix sketches −log10 p(i,j) per cell, one row per
// nucleotide; pairs above theta print green since they become decision
// variables.
func WriteProbabilityMatrix(w io.Writer, seq *rna.Sequence, pij *fold.Matrix, theta float64) {
	green := color.New(color.FgGreen)
	fmt.Fprintf(w, "=== -log10(p(i,j)) for each pair (i,j) of nucleotides: ===\n")
	fmt.Fprintf(w, "\t%s\n", seq.String())
	n := seq.Len()
	for u := 0; u < n; u++ {
		fmt.Fprint(w, "\t")
		for v := 0; v < n; v++ {
			p := pij.Pair(u, v)
			switch {
			case p < 5e-10:
				fmt.Fprint(w, " ")
			case p > theta:
				_, _ = green.Fprintf(w, "%d", int(-math.Log10(p)))
			default:
				fmt.Fprintf(w, "%d", int(-math.Log10(p)))
			}
		}
		fmt.Fprintf(w, "%c\n", seq.String()[u])
	}
	fmt.Fprintln(w, "green basepairs are kept as decision variables.")
}
