// core/rna/rna.go
// Sequence model: normalized nucleotide sequences and pair-type lookup.
// Input is ASCII over {A,C,G,U,T,N} in either case; T is rewritten to U,
// anything else becomes N and never pairs.
package rna

// Base is a nucleotide code. N sorts first so that Base-1 indexes the
// 4-wide parameter tables for A,C,G,U.
type Base uint8

const (
	N Base = iota
	A
	C
	G
	U
)

// Pair is one of the six ordered canonical/wobble pair types, or Other.
type Pair uint8

const (
	PairAU Pair = iota
	PairCG
	PairGC
	PairUA
	PairGU
	PairUG
	PairOther
)

// NumPairs counts the real pair types (Other excluded).
const NumPairs = 6

// pairMap[a][b] gives the pair type of the ordered bases (a, b).
var pairMap = [5][5]Pair{}

func init() {
	for a := 0; a < 5; a++ {
		for b := 0; b < 5; b++ {
			pairMap[a][b] = PairOther
		}
	}
	pairMap[A][U] = PairAU
	pairMap[U][A] = PairUA
	pairMap[C][G] = PairCG
	pairMap[G][C] = PairGC
	pairMap[G][U] = PairGU
	pairMap[U][G] = PairUG
}

// BaseOf maps an input character to its code.
func BaseOf(c byte) Base {
	switch c {
	case 'a', 'A':
		return A
	case 'c', 'C':
		return C
	case 'g', 'G':
		return G
	case 'u', 'U':
		return U
	}
	return N
}

// Sequence is an immutable normalized RNA sequence.
type Sequence struct {
	name  string
	chars string // normalized character form (upper case, T→U, unknown→N)
	bases []Base
}

// NormalizeReport describes what New rewrote while normalizing.
type NormalizeReport struct {
	ReplacedT    bool
	UnknownChars []byte
}

// New builds a Sequence from raw input, rewriting T→U and unknown
// characters to N. The report tells the caller what to warn about.
func New(name, raw string) (*Sequence, NormalizeReport) {
	var rep NormalizeReport
	chars := make([]byte, len(raw))
	bases := make([]Base, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == 'T' || c == 't' {
			c = 'U'
			rep.ReplacedT = true
		}
		b := BaseOf(c)
		if b == N && c != 'N' && c != 'n' {
			rep.UnknownChars = append(rep.UnknownChars, c)
		}
		bases[i] = b
		chars[i] = baseChar[b]
	}
	return &Sequence{name: name, chars: string(chars), bases: bases}, rep
}

var baseChar = [5]byte{'N', 'A', 'C', 'G', 'U'}

func (s *Sequence) Name() string   { return s.name }
func (s *Sequence) Len() int       { return len(s.bases) }
func (s *Sequence) String() string { return s.chars }

// Base returns the code at position i (0-based).
func (s *Sequence) Base(i int) Base { return s.bases[i] }

// PairType returns the pair type of the ordered positions (i, j).
func (s *Sequence) PairType(i, j int) Pair { return pairMap[s.bases[i]][s.bases[j]] }

// WCType assumes position i takes part in a Watson-Crick pair and returns
// the type seen from i.
func (s *Sequence) WCType(i int) Pair {
	switch s.bases[i] {
	case A:
		return PairAU
	case C:
		return PairCG
	case G:
		return PairGC
	case U:
		return PairUA
	}
	return PairOther
}

// CanPair reports whether positions u < v can form a base pair: one of
// the six pair types, with at least three unpaired bases in between.
func (s *Sequence) CanPair(u, v int) bool {
	if u > v {
		u, v = v, u
	}
	if v-u < 4 || v >= len(s.bases) {
		return false
	}
	return pairMap[s.bases[u]][s.bases[v]] != PairOther
}

// AllowedSpan reports whether (u, v) lies in the span the IP builder
// considers: v ≥ u+4, v < n, u < n−6.
func (s *Sequence) AllowedSpan(u, v int) bool {
	if u > v {
		u, v = v, u
	}
	n := len(s.bases)
	return v-u >= 4 && v < n && u < n-6
}
