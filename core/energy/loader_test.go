// core/energy/loader_test.go
package energy

import (
	"strings"
	"testing"
)

func TestDefaultLoads(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if p.Stack37[1][1] != -3.3 { // CG over CG
		t.Errorf("Stack37[CG][CG] = %v, want -3.3", p.Stack37[1][1])
	}
	if p.Hairpin37[3] != 5.6 { // size-4 hairpin
		t.Errorf("Hairpin37[3] = %v, want 5.6", p.Hairpin37[3])
	}
	if p.A1 != 3.4 || p.A2 != 0.4 || p.A3 != 0.1 {
		t.Errorf("multiloop coefficients = %v %v %v", p.A1, p.A2, p.A3)
	}
	if p.ATPenalty != 0.5 {
		t.Errorf("ATPenalty = %v", p.ATPenalty)
	}
	if p.LoopGreater30 != 1.079 || p.MaxAsymmetry != 3.0 {
		t.Errorf("constants not set: %v %v", p.LoopGreater30, p.MaxAsymmetry)
	}
	if p.MultiloopPenaltyPk != p.A1 {
		t.Error("pk multiloop penalty should mirror a1")
	}
}

func TestDefaultIsShared(t *testing.T) {
	a, _ := Default()
	b, _ := Default()
	if a != b {
		t.Error("Default must decode once and share the table")
	}
}

func TestParseRejectsBadChecksum(t *testing.T) {
	s := string(defaultStream)
	nl := strings.IndexByte(s, '\n')
	corrupted := "# crc32 12345\n" + s[nl+1:]
	if _, err := Parse([]byte(corrupted)); err == nil {
		t.Fatal("expected checksum mismatch error")
	}
}

func TestParseRejectsTruncated(t *testing.T) {
	s := string(defaultStream)
	if _, err := Parse([]byte(s[:len(s)/2])); err == nil {
		t.Fatal("expected error on truncated stream")
	}
}

func TestTetraloopBonusLoaded(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	// GGGGAC carries a -3.0 bonus in the default table.
	g, a, c := 2, 0, 1
	if got := p.Tloop37[g][g][g][g][a][c]; got != -3.0 {
		t.Errorf("Tloop37[GGGGAC] = %v, want -3.0", got)
	}
}
