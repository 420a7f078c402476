// core/moip/structure.go
package moip

import (
	"fmt"
	"sort"
	"strings"

	"biorseo/core/motif"
	"biorseo/core/rna"
)

// BasePair is one pairing (U < V) of a secondary structure.
type BasePair struct {
	U, V int
}

// Structure is one feasible solution of the bi-objective program: its
// base pairs, the motifs inserted into it, and both objective values.
type Structure struct {
	Seq    *rna.Sequence
	Pairs  []BasePair
	Motifs []motif.Motif
	Obj1   float64 // cumulative motif score
	Obj2   float64 // expected accuracy
}

// sortPairs orders the pair list by left end, then right end.
func (s *Structure) sortPairs() {
	sort.Slice(s.Pairs, func(i, j int) bool {
		if s.Pairs[i].U != s.Pairs[j].U {
			return s.Pairs[i].U < s.Pairs[j].U
		}
		return s.Pairs[i].V < s.Pairs[j].V
	})
}

// DotBracket renders the structure. Nested pairs use parentheses;
// pairs crossing an already-opened parenthesis fall back to square
// brackets, one extra level deep.
func (s *Structure) DotBracket() string {
	n := s.Seq.Len()
	out := make([]byte, n)
	for i := range out {
		out[i] = '.'
	}
	var open [][2]int // pairs rendered with ()
	opens := []byte{'(', '['}
	closes := []byte{')', ']'}
	for _, p := range s.Pairs {
		level := 0
		for _, q := range open {
			if (q[0] < p.U && p.U < q[1] && q[1] < p.V) || (p.U < q[0] && q[0] < p.V && p.V < q[1]) {
				level = 1
				break
			}
		}
		if level == 0 {
			open = append(open, [2]int{p.U, p.V})
		}
		out[p.U] = opens[level]
		out[p.V] = closes[level]
	}
	return string(out)
}

// String is the one-line report form: dot-bracket, motif annotations,
// then both objective values.
func (s *Structure) String() string {
	anns := make([]string, 0, len(s.Motifs))
	for i := range s.Motifs {
		anns = append(anns, s.Motifs[i].PosString())
	}
	ann := "-"
	if len(anns) > 0 {
		ann = strings.Join(anns, " + ")
	}
	return fmt.Sprintf("%s\t%s\t%.2f\t%.4f", s.DotBracket(), ann, s.Obj1, s.Obj2)
}

// dominates reports whether a dominates b: at least as good on both
// objectives, strictly better on one.
func dominates(a, b *Structure) bool {
	if a.Obj1 < b.Obj1 || a.Obj2 < b.Obj2 {
		return false
	}
	return a.Obj1 > b.Obj1 || a.Obj2 > b.Obj2
}
