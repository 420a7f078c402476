// core/motif/rin_test.go
package motif

import (
	"strings"
	"testing"
)

const rinFixture = `header_link
0,9,False;1,8,False;2,7,True;
header_comp
0,2;3;GGC
7,9;3;GCC
`

func TestParseRIN(t *testing.T) {
	m, err := ParseRIN(strings.NewReader(rinFixture), "42", false)
	if err != nil {
		t.Fatal(err)
	}
	if m.Identifier() != "RIN42" {
		t.Errorf("identifier = %q", m.Identifier())
	}
	if len(m.Links) != 3 {
		t.Fatalf("links = %d, want 3", len(m.Links))
	}
	if !m.Links[2].LongRange || m.Links[0].LongRange {
		t.Errorf("long_range flags wrong: %+v", m.Links)
	}
	if len(m.Components) != 2 {
		t.Fatalf("components = %d", len(m.Components))
	}
	if m.Components[0].Seq != "GGC" || m.Components[1].Start != 7 {
		t.Errorf("components = %+v", m.Components)
	}
	if err := m.Validate(); err != nil {
		t.Errorf("fixture motif should validate: %v", err)
	}
}

func TestValidateRejectsShortMotif(t *testing.T) {
	src := `header_link
0,3,False;
header_comp
0,1;2;GU
3,4;2;AC
`
	m, err := ParseRIN(strings.NewReader(src), "1", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err == nil {
		t.Error("motif of total length 4 must be rejected")
	}
}

func TestValidateRejectsNoLinks(t *testing.T) {
	src := `header_link

header_comp
0,5;6;GGCAAC
`
	m, err := ParseRIN(strings.NewReader(src), "2", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err == nil {
		t.Error("motif without base-pair annotations must be rejected")
	}
}

func TestValidateRejectsNonACGU(t *testing.T) {
	src := `header_link
0,5,False;
header_comp
0,5;6;GGXAAC
`
	m, err := ParseRIN(strings.NewReader(src), "3", false)
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Validate(); err == nil {
		t.Error("motif with a non-ACGU signature base must be rejected")
	}
}
