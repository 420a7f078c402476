// core/fold/loops.go
// Closed-form loop free energies (hairpin, stack, bulge, interior,
// multiloop) for one sequence against one parameter set.
package fold

import (
	"math"

	"biorseo/core/energy"
	"biorseo/core/rna"
)

// energies evaluates loop ΔG terms for a fixed sequence and parameter
// set. All methods are pure; invalid ranges are programmer errors.
type energies struct {
	p *energy.Params
	s *rna.Sequence
}

// terminalPenalty is the AU/UA closing penalty for the pair at (i, j).
func (en energies) terminalPenalty(i, j int) float64 {
	t := en.s.PairType(i, j)
	if t == rna.PairAU || t == rna.PairUA {
		return en.p.ATPenalty
	}
	return 0
}

// loop is the length-dependent interior-loop initiation Gloop(l).
func (en energies) loop(l int) float64 {
	if l <= 30 {
		return en.p.Interior37[l-1]
	}
	return en.p.Interior37[29] + en.p.LoopGreater30*math.Log(float64(l)/30.0)
}

// asymmetry is Gloop(l1+l2) plus the capped Ninio asymmetry cost.
func (en energies) asymmetry(l1, l2 int) float64 {
	d := l1 - l2
	if d < 0 {
		d = -d
	}
	m := l1
	if l2 < m {
		m = l2
	}
	if m > 4 {
		m = 4
	}
	cost := float64(d) * en.p.AsymmetryPenalty[m-1]
	if cost > en.p.MaxAsymmetry {
		cost = en.p.MaxAsymmetry
	}
	return en.loop(l1+l2) + cost
}

// mismatch is the interior closing-mismatch term for pair (i,j) with
// unpaired neighbors (k,l).
func (en energies) mismatch(i, j, k, l int) float64 {
	return en.p.MismatchInterior37[energy.BI(en.s.Base(k))][energy.BI(en.s.Base(l))][en.s.PairType(i, j)]
}

// mismatchNN is the no-neighbor variant used on 1-wide loop sides.
func (en energies) mismatchNN(i, j int) float64 {
	return en.p.MismatchInterior37[0][0][en.s.PairType(i, j)]
}

// hairpin is GHL(i, j): the hairpin loop closed by (i, j).
func (en energies) hairpin(i, j int) float64 {
	size := j - i - 1
	if size < 3 {
		panic("fold: hairpin loop smaller than 3")
	}
	polyC := true
	for k := i + 1; k < j; k++ {
		if en.s.Base(k) != rna.C {
			polyC = false
			break
		}
	}

	var e float64
	if size <= 30 {
		e = en.p.Hairpin37[size-1]
	} else {
		e = en.p.Hairpin37[29] + en.p.LoopGreater30*math.Log(float64(size)/30.0)
	}

	bi := func(k int) int { return energy.BI(en.s.Base(k)) }
	switch {
	case size == 3:
		e += en.terminalPenalty(i, j)
		e += en.p.Triloop37[bi(i)][bi(i+1)][bi(i+2)][bi(j-1)][bi(j)]
		if polyC {
			e += en.p.PolyCPenalty
		}
		if en.s.Base(i+1) == rna.G && en.s.Base(i+2) == rna.G && en.s.Base(j-1) == rna.G {
			e += en.p.HairpinGGG
		}
	case size == 4:
		e += en.p.Tloop37[bi(i)][bi(i+1)][bi(i+2)][bi(j-2)][bi(j-1)][bi(j)]
		e += en.p.MismatchHairpin37[bi(i+1)][bi(j-1)][en.s.PairType(i, j)]
		if polyC {
			e += en.p.PolyCSlope*float64(size) + en.p.PolyCInt
		}
	default:
		e += en.p.MismatchHairpin37[bi(i+1)][bi(j-1)][en.s.PairType(i, j)]
		if polyC {
			e += en.p.PolyCSlope*float64(size) + en.p.PolyCInt
		}
	}
	return e
}

// interior is GIL(i, d, e, j): the two-pair loop closed by (i, j) with
// inner pair (d, e). Covers stacks, bulges and interior loops.
func (en energies) interior(i, d, e, j int, pk bool) float64 {
	l1 := d - i - 1
	l2 := j - e - 1
	size := l1 + l2

	// helix
	if size == 0 {
		g := en.p.Stack37[en.s.PairType(i, j)][en.s.PairType(d, e)]
		if pk {
			g *= en.p.PkStackSpan
		}
		return g
	}

	var g float64
	switch {
	// bulge
	case l1 == 0 || l2 == 0:
		if size <= 30 {
			g += en.p.Bulge37[size-1]
		} else {
			g += en.p.Bulge37[29] + en.p.LoopGreater30*math.Log(float64(size)/30.0)
		}
		if size == 1 { // single bulge keeps the stack
			g += en.p.Stack37[en.s.PairType(i, j)][en.s.PairType(d, e)]
			g -= en.p.SaltCorrection
		} else {
			g += en.terminalPenalty(i, j)
			g += en.terminalPenalty(d, e)
		}

	// interior loop
	default:
		asym := l1 - l2
		if asym < 0 {
			asym = -asym
		}
		switch {
		case asym > 1 || size > 4:
			g += en.asymmetry(l1, l2)
			switch {
			case l1 > 1 && l2 > 1:
				g += en.mismatch(e, d, e+1, d-1)
				g += en.mismatch(i, j, i+1, j-1)
			case l1 == 1 || l2 == 1:
				g += en.mismatchNN(e, d)
				g += en.mismatchNN(i, j)
			default:
				panic("fold: unclassified interior loop")
			}
		case l1 == 1 && l2 == 1:
			g += en.p.Int11_37[en.s.PairType(i, j)][en.s.PairType(d, e)][energy.BI(en.s.Base(i+1))][energy.BI(en.s.Base(j-1))]
		case l1 == 2 && l2 == 2:
			g += en.p.Int22_37[en.s.PairType(i, j)][en.s.PairType(d, e)][energy.BI(en.s.Base(i+1))][energy.BI(en.s.Base(j-1))][energy.BI(en.s.Base(i+2))][energy.BI(en.s.Base(j-2))]
		case l1 == 1 && l2 == 2:
			g += en.p.Int21_37[en.s.PairType(i, j)][energy.BI(en.s.Base(j-2))][energy.BI(en.s.Base(i+1))][en.s.PairType(d, e)][energy.BI(en.s.Base(j-1))]
		case l1 == 2 && l2 == 1:
			g += en.p.Int21_37[en.s.PairType(e, d)][energy.BI(en.s.Base(i+1))][energy.BI(en.s.Base(j-1))][en.s.PairType(j, i)][energy.BI(en.s.Base(i+2))]
		default:
			panic("fold: error in tabulated interior loop")
		}
	}
	if pk {
		g *= en.p.PkInteriorSpan
	}
	return g
}

// multiloop is the linear multiloop model a1 + a2·branches + a3·unpaired.
func (en energies) multiloop(branches, unpaired int) float64 {
	return en.p.A1 + en.p.A2*float64(branches) + en.p.A3*float64(unpaired)
}
