// core/fold/pf_on4.go
package fold

import "biorseo/core/rna"

// partitionNoPKRef is the O(n⁴) pseudoknot-free recursion computing Q,
// Qb and Qm. The multiloop term is the linear a1 + k·a2 + u·a3 model.
// Qb(i,j) is gated on pairability, so non-pairable cells carry no mass.
func (e *Engine) partitionNoPKRef(s *rna.Sequence) (q, qb, qm *Matrix) {
	n := s.Len()
	en := energies{p: e.cfg.Params, s: s}
	a1, a2, a3 := e.cfg.Params.A1, e.cfg.Params.A2, e.cfg.Params.A3

	q = NewMatrix(n)
	qb = NewMatrix(n)
	qm = NewMatrix(n)

	// l = 2..4: no hairpin fits, only the empty structure.
	for i := 0; i < n-1; i++ {
		q.Set(i, i+1, 1.0)
	}
	for l := 3; l < 5; l++ {
		for i := 0; i <= n-l; i++ {
			q.Set(i, i+l-1, 1.0)
		}
	}

	for l := 5; l <= n; l++ {
		parallelFor(n-l+1, e.cfg.Threads, func(i int) {
			j := i + l - 1

			// Qb recursion
			if s.CanPair(i, j) {
				b := e.boltz(en.hairpin(i, j))
				if l >= 7 { // enough space for a hairpin inside
					for d := i + 1; d <= j-5; d++ {
						for ee := d + 4; ee <= j-1; ee++ {
							if qb.At(d, ee) == 0 {
								continue
							}
							b += qb.At(d, ee) * e.boltz(en.interior(i, d, ee, j, false))
							if d-i >= 2 {
								b += qb.At(d, ee) * qm.At(i+1, d-1) *
									e.boltz(a1+2*a2+float64(j-ee-1)*a3)
							}
						}
					}
				}
				qb.Set(i, j, b)
			}

			// Qm recursion
			for d := i; d <= j-4; d++ {
				for ee := d + 4; ee <= j; ee++ {
					if qb.At(d, ee) == 0 {
						continue
					}
					qm.Add(i, j, qb.At(d, ee)*e.boltz(a2+a3*float64(d-i+j-ee)))
					if d-i > 0 {
						qm.Add(i, j, qb.At(d, ee)*qm.At(i, d-1)*e.boltz(a2+a3*float64(j-ee)))
					}
				}
			}

			// Q recursion
			acc := 1.0 // the empty structure
			for d := i; d <= j-4; d++ {
				for ee := d + 4; ee <= j; ee++ {
					if d-i > 0 {
						acc += q.At(i, d-1) * qb.At(d, ee)
					} else {
						acc += qb.At(d, ee)
					}
				}
			}
			q.Set(i, j, acc)
		})
	}
	return q, qb, qm
}
