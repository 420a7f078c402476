// core/fold/loops_test.go
package fold

import (
	"testing"

	"biorseo/core/energy"
	"biorseo/core/rna"
)

func testEnergies(t *testing.T, seq string) energies {
	t.Helper()
	p, err := energy.Default()
	if err != nil {
		t.Fatal(err)
	}
	s, _ := rna.New("t", seq)
	return energies{p: p, s: s}
}

func TestInteriorStack(t *testing.T) {
	// (0,11) over (1,10) is a pure stack.
	en := testEnergies(t, "GCGCAAAAGCGC")
	got := en.interior(0, 1, 10, 11, false)
	want := en.p.Stack37[rna.PairGC][rna.PairCG]
	if got != want {
		t.Errorf("stack ΔG = %v, want %v", got, want)
	}
}

func TestInteriorSingleBulge(t *testing.T) {
	// (0,12) over (2,11): one bulged nucleotide keeps the stack.
	en := testEnergies(t, "GACGCAAAAGCGC")
	got := en.interior(0, 2, 11, 12, false)
	want := en.p.Bulge37[0] +
		en.p.Stack37[en.s.PairType(0, 12)][en.s.PairType(2, 11)] -
		en.p.SaltCorrection
	if got != want {
		t.Errorf("single bulge ΔG = %v, want %v", got, want)
	}
}

func TestAsymmetryIsCapped(t *testing.T) {
	en := testEnergies(t, "GCGCAAAAGCGC")
	if got := en.asymmetry(1, 20); got > en.loop(21)+en.p.MaxAsymmetry {
		t.Errorf("asymmetry %v exceeds cap", got)
	}
}

func TestHairpinTriloopTerminalPenalty(t *testing.T) {
	// A size-3 loop closed by an AU pair takes the terminal penalty.
	en := testEnergies(t, "ACCCCCCAUCCU")
	i, j := 7, 11 // A-U closing the UCC loop
	got := en.hairpin(i, j)
	if got == 0 {
		t.Fatal("expected a nonzero hairpin energy")
	}
	base := en.p.Hairpin37[2] + en.p.ATPenalty +
		en.p.Triloop37[0][3][1][1][3]
	if got != base {
		t.Errorf("triloop ΔG = %v, want %v", got, base)
	}
}
