// core/fold/posterior.go
package fold

import (
	"math"

	"biorseo/core/rna"
)

// posteriorNoPK runs the outside recursion: a top-down pass from
// (0, n−1) distributing P(0, n−1) = 1 down the same branches the inside
// recursion summed, leaving the pair posterior in Pb. The pass is serial:
// unlike the inside recursion, windows at the same outer length write
// into overlapping shorter-length cells.
func (e *Engine) posteriorNoPK(s *rna.Sequence) *Matrix {
	var q, qb, qm *Matrix
	if e.cfg.Exact {
		q, qb, qm = e.partitionNoPKRef(s)
	} else {
		q, qb, qm = e.partitionNoPKFast(s)
	}

	n := s.Len()
	en := energies{p: e.cfg.Params, s: s}
	a1, a2, a3 := e.cfg.Params.A1, e.cfg.Params.A2, e.cfg.Params.A3

	p := NewMatrix(n)
	pb := NewMatrix(n)
	pm := NewMatrix(n)
	p.Set(0, n-1, 1.0)

	for l := n; l >= 5; l-- {
		for i := 0; i <= n-l; i++ {
			j := i + l - 1

			// P, Pm distribution
			pij := p.At(i, j)
			pmij := pm.At(i, j)
			qmij := qm.At(i, j)
			for d := i; d <= j-4; d++ {
				for ee := d + 4; ee <= j; ee++ {
					if qb.At(d, ee) == 0 {
						continue
					}
					var dP float64
					if d > i {
						dP = pij * q.At(i, d-1) * qb.At(d, ee) / q.At(i, j)
						p.Add(i, d-1, dP)
					} else {
						dP = pij * qb.At(d, ee) / q.At(i, j)
					}
					pb.Add(d, ee, dP)

					if qmij > 0 {
						pb.Add(d, ee, pmij*e.boltz(a2+a3*float64(d-i+j-ee))*qb.At(d, ee)/qmij)
						if d > i {
							dP = pmij * qm.At(i, d-1) * qb.At(d, ee) * e.boltz(a2+a3*float64(j-ee)) / qmij
							pm.Add(i, d-1, dP)
						} else {
							dP = pmij * qb.At(d, ee) * e.boltz(a2+a3*float64(j-ee)) / qmij
						}
						pb.Add(d, ee, dP)
						mustFinite(dP)
					}
				}
			}

			// Pb distribution
			if qb.At(i, j) > 0 {
				pbij := pb.At(i, j)
				for d := i + 1; d <= j-5; d++ {
					for ee := d + 4; ee <= j-1; ee++ {
						if qb.At(d, ee) == 0 {
							continue
						}
						pb.Add(d, ee, pbij*qb.At(d, ee)*e.boltz(en.interior(i, d, ee, j, false))/qb.At(i, j))
						dP := pbij * qm.At(i+1, d-1) * qb.At(d, ee) *
							e.boltz(a1+2*a2+float64(j-ee-1)*a3) / qb.At(i, j)
						pm.Add(i+1, d-1, dP)
						pb.Add(d, ee, dP)
						mustFinite(dP)
					}
				}
			}
		}
	}

	// Clamp float drift into [0, 1].
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := pb.At(i, j)
			mustFinite(v)
			if v < 0 {
				pb.Set(i, j, 0)
			} else if v > 1 {
				pb.Set(i, j, 1)
			}
		}
	}
	return pb
}

// mustFinite asserts a DP invariant: probabilities never overflow or NaN.
func mustFinite(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		panic("fold: non-finite probability mass in posterior recursion")
	}
}
