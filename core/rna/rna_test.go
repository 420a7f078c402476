// core/rna/rna_test.go
package rna

import "testing"

func TestNormalization(t *testing.T) {
	s, rep := New("x", "acgTtUXz")
	if s.String() != "ACGUUUNN" {
		t.Fatalf("normalized = %q", s.String())
	}
	if !rep.ReplacedT {
		t.Error("expected T replacement to be reported")
	}
	if len(rep.UnknownChars) != 2 {
		t.Errorf("unknown chars = %q", rep.UnknownChars)
	}
}

func TestPairTypes(t *testing.T) {
	s, _ := New("x", "AUCGGUN")
	cases := []struct {
		i, j int
		want Pair
	}{
		{0, 1, PairAU},
		{1, 0, PairUA},
		{2, 3, PairCG},
		{3, 2, PairGC},
		{4, 5, PairGU},
		{5, 4, PairUG},
		{0, 0, PairOther},
		{0, 6, PairOther},
	}
	for _, c := range cases {
		if got := s.PairType(c.i, c.j); got != c.want {
			t.Errorf("PairType(%d,%d) = %v, want %v", c.i, c.j, got, c.want)
		}
	}
}

func TestCanPair(t *testing.T) {
	s, _ := New("x", "GAAAACAAAG")
	if s.CanPair(0, 3) {
		t.Error("span < 4 must not pair")
	}
	if !s.CanPair(0, 5) {
		t.Error("G-C at distance 5 should pair")
	}
	if s.CanPair(0, 9) {
		t.Error("G-G must not pair")
	}
	if s.CanPair(5, 0) != s.CanPair(0, 5) {
		t.Error("CanPair must be symmetric in argument order")
	}
}

func TestAllowedSpan(t *testing.T) {
	s, _ := New("x", "GCGCAAAAGCGC") // n = 12
	if !s.AllowedSpan(0, 11) {
		t.Error("(0,11) should be in span")
	}
	if s.AllowedSpan(6, 11) {
		t.Error("u ≥ n−6 should be out of span")
	}
	if s.AllowedSpan(0, 3) {
		t.Error("v < u+4 should be out of span")
	}
}
