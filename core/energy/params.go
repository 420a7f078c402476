// core/energy/params.go
// Nearest-neighbor free energies for RNA secondary structure
// (Serra & Turner 1995 set). Units: kcal/mol at 37°C.
//
// Tables are indexed by pair type (the six canonical/wobble pairs, in
// rna.Pair order) and by base index (A,C,G,U → 0..3). The set is
// immutable after load; engines hold a *Params and never write it.
package energy

import "biorseo/core/rna"

// Params holds one loaded nearest-neighbor parameter set.
type Params struct {
	Stack37    [6][6]float64
	Hairpin37  [30]float64
	Bulge37    [30]float64
	Interior37 [30]float64

	AsymmetryPenalty [4]float64
	MaxAsymmetry     float64

	MismatchHairpin37  [4][4][6]float64
	MismatchInterior37 [4][4][6]float64

	Dangle5_37 [6][4]float64
	Dangle3_37 [6][4]float64

	// Multiloop linear model: a1 + a2·branches + a3·unpaired.
	A1, A2, A3 float64

	ATPenalty float64

	Int11_37 [6][6][4][4]float64
	Int21_37 [6][4][4][6][4]float64
	Int22_37 [6][6][4][4][4][4]float64

	PolyCPenalty float64
	PolyCSlope   float64
	PolyCInt     float64

	// Pseudoknot penalties (b1, b2, b3, b1m, b1p) and spans.
	PkPenalty          float64
	PkPairedPenalty    float64
	PkUnpairedPenalty  float64
	PkMultiloopPenalty float64
	PkPkPenalty        float64
	PkBandPenalty      float64
	PkStackSpan        float64
	PkInteriorSpan     float64

	MultiloopPenaltyPk         float64
	MultiloopPairedPenaltyPk   float64
	MultiloopUnpairedPenaltyPk float64

	IntermolecularInitiation float64

	Triloop37 [4][4][4][4][4]float64
	Tloop37   [4][4][4][4][4][4]float64

	SaltCorrection float64
	LoopGreater30  float64
	HairpinGGG     float64
}

// BI maps a base code to its 4-wide table index. N falls back to slot 0,
// matching the original table layout where the no-nucleotide mismatch
// entry shares the first row.
func BI(b rna.Base) int {
	if b == rna.N {
		return 0
	}
	return int(b) - 1
}
