// core/fold/pf_on3.go
package fold

import "biorseo/core/rna"

// partitionNoPKFast is the O(n³) pseudoknot-free recursion. Qs and Qms
// collapse the double sums of the reference recursion into linear
// sweeps; the rolling Qx/Qx1/Qx2 slabs amortize generic interior loops
// with both sides ≥ 4 (the fast-GIL trick): a loop recorded at total
// size s ages by one nucleotide per side every two outer lengths,
// re-weighted by B(Gloop(s+2) − Gloop(s)). Small or inextensible loops
// enter Qb directly as special cases. Agrees with the O(n⁴) recursion
// to numeric tolerance.
func (e *Engine) partitionNoPKFast(s *rna.Sequence) (q, qb, qm *Matrix) {
	n := s.Len()
	en := energies{p: e.cfg.Params, s: s}
	a1, a2, a3 := e.cfg.Params.A1, e.cfg.Params.A2, e.cfg.Params.A3

	q = NewMatrix(n)
	qb = NewMatrix(n)
	qm = NewMatrix(n)
	qs := NewMatrix(n)
	qms := NewMatrix(n)
	qx := NewMatrix(n)
	qx1 := NewMatrix(n)
	qx2 := NewMatrix(n)

	for i := 0; i < n-1; i++ {
		q.Set(i, i+1, 1.0)
	}
	for l := 3; l < 5; l++ {
		for i := 0; i <= n-l; i++ {
			q.Set(i, i+l-1, 1.0)
		}
	}

	for l := 5; l <= n; l++ {
		qx, qx1, qx2 = qx1, qx2, qx
		for i := range qx2.v {
			qx2.v[i] = 0
		}
		parallelFor(n-l+1, e.cfg.Threads, func(i int) {
			j := i + l - 1

			// Qx definition: seed the slab with the loops whose shorter
			// side just reached 4 (everything smaller stays a special
			// case below).
			if l >= 15 {
				d := i + 5 // L1 = 4, L2 ≥ 4
				L1 := d - i - 1
				for ee := d + 4; ee <= j-5; ee++ {
					L2 := j - ee - 1
					if qb.At(d, ee) != 0 {
						qx.Add(i, L1+L2, qb.At(d, ee)*e.boltz(en.asymmetry(L1, L2)+en.mismatch(ee, d, ee+1, d-1)))
					}
				}
				ee := j - 5 // L2 = 4, L1 ≥ 5
				L2 := j - ee - 1
				for d := i + 6; d <= ee-4; d++ {
					L1 := d - i - 1
					if qb.At(d, ee) != 0 {
						qx.Add(i, L1+L2, qb.At(d, ee)*e.boltz(en.asymmetry(L1, L2)+en.mismatch(ee, d, ee+1, d-1)))
					}
				}
				if i > 0 { // age the slab for the outer length two steps ahead
					for sz := 8; sz <= l-7; sz++ {
						qx2.Set(i-1, sz+2, qx.At(i, sz)*e.boltz(en.loop(sz+2)-en.loop(sz)))
					}
				}
			}

			// Qb recursion
			if s.CanPair(i, j) {
				b := e.boltz(en.hairpin(i, j))
				for sz := 8; sz <= l-7; sz++ { // convert Qx (both sides ≥ 4)
					b += qx.At(i, sz) * e.boltz(en.mismatch(i, j, i+1, j-1))
				}
				// small inextensible interior loops
				for d := i + 1; d <= i+4; d++ {
					lo := d + 4
					if j-4 > lo {
						lo = j - 4
					}
					for ee := lo; ee <= j-1; ee++ {
						if qb.At(d, ee) != 0 {
							b += qb.At(d, ee) * e.boltz(en.interior(i, d, ee, j, false))
						}
					}
				}
				// bulges and asymmetric loops with L1 ≤ 3, L2 ≥ 4
				for d := i + 1; d <= i+4; d++ {
					for ee := d + 4; ee <= j-5; ee++ {
						if qb.At(d, ee) != 0 {
							b += qb.At(d, ee) * e.boltz(en.interior(i, d, ee, j, false))
						}
					}
				}
				// bulges and asymmetric loops with L2 ≤ 3, L1 ≥ 4
				for ee := j - 4; ee <= j-1; ee++ {
					for d := i + 5; d <= ee-4; d++ {
						if qb.At(d, ee) != 0 {
							b += qb.At(d, ee) * e.boltz(en.interior(i, d, ee, j, false))
						}
					}
				}
				// multiloop
				for d := i + 6; d <= j-5; d++ {
					b += qm.At(i+1, d-1) * qms.At(d, j-1) * e.boltz(a1+a2)
				}
				qb.Set(i, j, b)
			}

			// Qs: all pairs starting at i
			for d := i + 4; d <= j; d++ {
				qs.Add(i, j, qb.At(i, d))
			}
			// Qms: same, inside a multiloop
			for d := i + 4; d <= j; d++ {
				qms.Add(i, j, qb.At(i, d)*e.boltz(a2+a3*float64(j-d)))
			}

			// Qm recursion
			for d := i; d <= j-4; d++ {
				if qms.At(d, j) == 0 {
					continue
				}
				qm.Add(i, j, qms.At(d, j)*e.boltz(a3*float64(d-i)))
				if d-i > 0 {
					qm.Add(i, j, qms.At(d, j)*qm.At(i, d-1))
				}
			}

			// Q recursion
			acc := 1.0
			for d := i; d <= j-4; d++ {
				if d-i > 0 {
					acc += q.At(i, d-1) * qs.At(d, j)
				} else {
					acc += qs.At(d, j)
				}
			}
			q.Set(i, j, acc)
		})
	}
	return q, qb, qm
}
