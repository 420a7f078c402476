// core/motif/motif.go
// In-memory representation of structural motifs and their candidate
// insertion sites. Motifs come from three catalog families (Rna3Dmotif
// DESC files, RNA Motif Atlas / BayesPairing CSV lines, Carnaval RIN
// files) and are immutable once parsed.
package motif

import (
	"fmt"
	"strings"
)

// Provenance tags the catalog family a motif came from. The distinction
// only matters at parse time and when formatting identifiers.
type Provenance int

const (
	RNA3DMotif Provenance = iota
	RNAMotifAtlas
	Carnaval
)

// Component is one contiguous segment of a motif: an interval on the
// target RNA (0-based, inclusive) and, for sequence-bearing catalogs, a
// regex fragment for its sequence signature.
type Component struct {
	Start, End int
	Seq        string
}

// K is the component length in nucleotides.
func (c Component) K() int { return c.End - c.Start + 1 }

// Equal reports positional equality.
func (c Component) Equal(o Component) bool { return c.Start == o.Start && c.End == o.End }

// Link is one annotated base-base interaction of a Carnaval motif.
type Link struct {
	A, B      int
	LongRange bool
}

// Motif is one parsed motif, or one concrete candidate insertion site
// once its components carry positions on the target RNA.
type Motif struct {
	AtlasID    string
	PDBID      string
	CarnavalID string

	Score     float64
	scoreText string // original token, kept for lossless serialization

	Reversed   bool
	Model      bool
	fromJar3d  bool
	Source     Provenance
	Components []Component
	Links      []Link
}

// Identifier formats the motif name the way its catalog family does:
// the atlas id, RIN<id> for Carnaval, the PDB id otherwise.
func (m *Motif) Identifier() string {
	switch m.Source {
	case RNAMotifAtlas:
		return m.AtlasID
	case Carnaval:
		return "RIN" + m.CarnavalID
	default:
		return m.PDBID
	}
}

// PosString renders "id ( a-b c-d )" for diagnostics.
func (m *Motif) PosString() string {
	var b strings.Builder
	b.WriteString(m.Identifier())
	b.WriteString(" ( ")
	for _, c := range m.Components {
		fmt.Fprintf(&b, "%d-%d ", c.Start, c.End)
	}
	b.WriteString(")")
	return b.String()
}

// Equal compares identifier, score, orientation and component layout.
func (m *Motif) Equal(o *Motif) bool {
	if m.Identifier() != o.Identifier() || m.Score != o.Score || m.Reversed != o.Reversed {
		return false
	}
	if len(m.Components) != len(o.Components) {
		return false
	}
	for i := range m.Components {
		if !m.Components[i].Equal(o.Components[i]) {
			return false
		}
	}
	return true
}

// withComponents copies m with a concrete component placement.
func (m *Motif) withComponents(comps []Component) Motif {
	out := *m
	out.Components = comps
	return out
}
