// core/motif/csv_test.go
package motif

import "testing"

func TestParseJar3dLine(t *testing.T) {
	m, err := ParseCSVLine("IL_85647.1,False,12,3,8,15,20")
	if err != nil {
		t.Fatal(err)
	}
	if m.Source != RNAMotifAtlas || !m.Model || m.Reversed {
		t.Errorf("bad provenance fields: %+v", m)
	}
	if m.Identifier() != "IL_85647.1" {
		t.Errorf("identifier = %q", m.Identifier())
	}
	if m.Score != 12 {
		t.Errorf("score = %v", m.Score)
	}
	if len(m.Components) != 2 {
		t.Fatalf("components = %d", len(m.Components))
	}
	if m.Components[0].Start != 2 || m.Components[0].End != 7 {
		t.Errorf("component 0 = %+v (positions must be 0-based)", m.Components[0])
	}
}

func TestParseJar3dSingleComponent(t *testing.T) {
	m, err := ParseCSVLine("HL_72498.3,True,7,4,11,-")
	if err != nil {
		t.Fatal(err)
	}
	if !m.Reversed || len(m.Components) != 1 {
		t.Fatalf("parsed %+v", m)
	}
}

func TestParseBayesPairingLine(t *testing.T) {
	m, err := ParseCSVLine("rna3dmotif_1FFK.027,9,2,6,14,19")
	if err != nil {
		t.Fatal(err)
	}
	if m.Source != RNA3DMotif || m.Model {
		t.Errorf("bad provenance: %+v", m)
	}
	if m.Identifier() != "rna3dmotif_1FFK.027" {
		t.Errorf("identifier = %q", m.Identifier())
	}
	if len(m.Components) != 2 {
		t.Fatalf("components = %d", len(m.Components))
	}
}

func TestBayesPairingSkipsInvertedIntervals(t *testing.T) {
	// 9,3 is inverted and must be skipped, not fail the line.
	m, err := ParseCSVLine("atlas.1,5,9,3,12,20")
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Components) != 1 || m.Components[0].Start != 11 {
		t.Fatalf("components = %+v", m.Components)
	}
}

func TestCSVRoundTrip(t *testing.T) {
	lines := []string{
		"IL_85647.1,False,12,3,8,15,20",
		"HL_72498.3,True,7,4,11,-",
		"atlas.7,3,1,5,11,16",
		"rna3dmotif_1FFK.027,9,2,6,14,19",
	}
	for _, line := range lines {
		m, err := ParseCSVLine(line)
		if err != nil {
			t.Fatalf("%s: %v", line, err)
		}
		if got := m.CSVLine(); got != line {
			t.Errorf("round trip of %q produced %q", line, got)
		}
	}
}

func TestMotifEquality(t *testing.T) {
	a, _ := ParseCSVLine("atlas.7,3,1,5,11,16")
	b, _ := ParseCSVLine("atlas.7,3,1,5,11,16")
	c, _ := ParseCSVLine("atlas.7,3,1,5,11,17")
	if !a.Equal(b) {
		t.Error("identical lines must parse equal")
	}
	if a.Equal(c) {
		t.Error("different intervals must not be equal")
	}
}
