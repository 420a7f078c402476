// core/fold/pk.go
// Pseudoknot-enabled recursions (Dirks & Pierce 2003). Both modes are
// experimental: the gap-tensor recursions are unfinished upstream and
// the back-recursion is a stub, so results are known to be wrong. They
// stay selectable for study, behind a conspicuous diagnostic.
package fold

import (
	"fmt"

	"biorseo/core/rna"
	"github.com/pbnjay/memory"
)

// pkTables is the full set of pseudoknot partition functions.
type pkTables struct {
	q, qb, qm, qp, qz        *Matrix
	qg, qgl, qgr, qgls, qgrs *Tensor4
}

// posteriorPK computes the pseudoknot partition functions and returns
// the posterior stub (the zero matrix): the outside pass for the gapped
// ensembles is not implemented.
func (e *Engine) posteriorPK(s *rna.Sequence) (*Matrix, error) {
	if e.cfg.Pseudoknots == PKFast {
		e.warnf("/!\\ you are using the fast O(n^5) computation of the partition function, which is an unfinished method. Your results will be wrong !! /!\\")
	} else {
		e.warnf("/!\\ you are using the slow O(n^8) computation of the partition function, which is an unfinished method. Your results will be wrong !! /!\\")
	}
	if _, err := e.partitionPK(s); err != nil {
		return nil, err
	}
	e.warnf("pseudoknot posterior is a stub: emitting the zero probability matrix")
	return NewMatrix(s.Len()), nil
}

// partitionPK runs the shared pseudoknot recursion over Q, Qb, Qm, Qp,
// Qz and the gap tensors Qg, Qgl, Qgr, Qgls, Qgrs. The two CLI modes
// share this transcription; the reference never finished the fast-GIL
// slabs for the gapped case, so no Qx tensors are carried.
func (e *Engine) partitionPK(s *rna.Sequence) (*pkTables, error) {
	n := s.Len()

	// Five n⁴ tensors of float64: refuse what cannot fit in RAM.
	need := uint64(5) * uint64(n) * uint64(n) * uint64(n) * uint64(n) * 8
	if total := memory.TotalMemory(); total > 0 && need > total {
		return nil, fmt.Errorf("fold: pseudoknot tensors need %d bytes for n=%d, more than the %d bytes of physical memory", need, n, total)
	} else if total > 0 && need > total/2 {
		e.warnf("pseudoknot tensors will use %d MiB of the %d MiB physical memory", need>>20, total>>20)
	}

	en := energies{p: e.cfg.Params, s: s}
	p := e.cfg.Params
	a1, a2, a3 := p.A1, p.A2, p.A3
	b1 := p.PkPenalty
	b1m := p.PkMultiloopPenalty
	b1p := p.PkPkPenalty
	b2 := p.PkPairedPenalty
	b3 := p.PkUnpairedPenalty

	t := &pkTables{
		q: NewMatrix(n), qb: NewMatrix(n), qm: NewMatrix(n), qp: NewMatrix(n), qz: NewMatrix(n),
		qg: NewTensor4(n), qgl: NewTensor4(n), qgr: NewTensor4(n), qgls: NewTensor4(n), qgrs: NewTensor4(n),
	}
	for i := 1; i < n; i++ {
		t.q.Set(i, i-1, 1.0)
		t.qz.Set(i, i-1, 1.0)
	}

	// span reproduces the reference pairability window: distance ≥ 4 and
	// in range, with no pair-type check (the type check is wc).
	span := func(u, v int) bool {
		a, b := u, v
		if b < a {
			a, b = b, a
		}
		return b-a >= 4 && a < n-4 && b < n
	}
	wc := func(u, v int) bool { return s.PairType(u, v) != rna.PairOther }
	// left reads m(i, d−1), where d == i means the empty prefix.
	left := func(m *Matrix, i, d int) float64 {
		if d == i {
			if i == 0 {
				return 1.0
			}
			return m.At(i, i-1)
		}
		return m.At(i, d-1)
	}

	for l := 1; l <= n; l++ {
		parallelFor(n-l+1, e.cfg.Threads, func(i int) {
			j := i + l - 1

			// Qb and the interior-loop seed of Qg
			if span(i, j) && wc(i, j) {
				b := e.boltz(en.hairpin(i, j))
				for d := i + 1; d <= j-5; d++ {
					for ee := d + 4; ee <= j-1; ee++ {
						if !span(d, ee) || !wc(d, ee) {
							continue
						}
						b += e.boltz(en.interior(i, d, ee, j, true)) * t.qb.At(d, ee)
						if d >= i+6 && wc(d, ee) && wc(i, j) {
							b += t.qm.At(i+1, d-1) * t.qb.At(d, ee) * e.boltz(a1+2*a2+float64(j-ee-1)*a3)
						}
					}
				}
				if wc(i, j) {
					for d := i + 1; d <= j-9; d++ { // rightmost pseudoknot fills [d, e]
						for ee := d + 8; ee <= j-1; ee++ {
							grec := a1 + b1m + 3*a2 + float64(j-ee-1)*a3
							b += e.boltz(grec+a3*float64(d-i-1)) * t.qp.At(d, ee)
							b += t.qm.At(i+1, d-1) * t.qp.At(d, ee) * e.boltz(grec)
						}
					}
				}
				t.qb.Set(i, j, b)

				t.qg.Set(i, i, j, j, 1.0)
				for d := i + 1; d <= j-5; d++ {
					for ee := d + 4; ee <= j-1; ee++ {
						if span(d, ee) && wc(d, ee) {
							t.qg.Add(i, d, ee, j, e.boltz(en.interior(i, d, ee, j, true)))
						}
					}
				}
			}

			// Qg multiloop and interior-extension closures
			if span(i, j) && wc(i, j) {
				for d := i + 6; d <= j-5; d++ { // multiloop left
					for ee := d + 4; ee <= j-1; ee++ {
						if span(d, ee) && wc(d, ee) {
							t.qg.Add(i, d, ee, j, t.qm.At(i+1, d-1)*e.boltz(a1+2*a2+float64(j-ee-1)*a3))
						}
					}
				}
				for d := i + 1; d <= j-10; d++ { // multiloop right
					for ee := d + 4; ee <= j-6; ee++ {
						if span(d, ee) && wc(d, ee) {
							t.qg.Add(i, d, ee, j, e.boltz(a1+2*a2+float64(d-i-1)*a3)*t.qm.At(ee+1, j-1))
						}
					}
				}
				for d := i + 6; d <= j-10; d++ { // multiloop both sides
					for ee := d + 4; ee <= j-6; ee++ {
						if span(d, ee) && wc(d, ee) {
							t.qg.Add(i, d, ee, j, t.qm.At(i+1, d-1)*e.boltz(a1+2*a2)*t.qm.At(ee+1, j-1))
						}
					}
				}
				for d := i + 7; d <= j-6; d++ { // interior extension + multiloop left
					for ee := d + 4; ee <= j-2; ee++ {
						if span(d, ee) {
							for f := ee + 1; f <= j-1; f++ {
								t.qg.Add(i, d, ee, j, t.qgls.At(i+1, d, ee, f)*e.boltz(a1+a2+float64(j-f-1)*a3))
							}
						}
					}
				}
				for d := i + 2; d <= j-11; d++ { // interior extension + multiloop right
					for ee := d + 4; ee <= j-7; ee++ {
						if span(d, ee) {
							for c := i + 1; c <= d-1; c++ {
								t.qg.Add(i, d, ee, j, e.boltz(a1+a2+float64(c-i-1)*a3)*t.qgrs.At(c, d, ee, j-1))
							}
						}
					}
				}
				for d := i + 7; d <= j-11; d++ { // both sides
					for ee := d + 4; ee <= j-7; ee++ {
						if span(d, ee) {
							for c := i + 6; c <= d-1; c++ {
								t.qg.Add(i, d, ee, j, t.qm.At(i+1, c-1)*t.qgrs.At(c, d, ee, j-1)*e.boltz(a1+a2))
							}
						}
					}
				}
			}

			// Qgls, Qgrs
			for c := i + 5; c <= j-6; c++ {
				if span(c, j) && wc(c, j) {
					for d := c + 1; d <= j-5; d++ {
						for ee := d + 4; ee <= j-1; ee++ {
							if span(d, ee) {
								t.qgls.Add(i, d, ee, j, e.boltz(a2)*t.qm.At(i, c-1)*t.qg.At(c, d, ee, j))
							}
						}
					}
				}
			}
			for d := i + 1; d <= j-10; d++ {
				for ee := d + 4; ee <= j-6; ee++ {
					if span(d, ee) {
						for f := ee + 1; f <= j-5; f++ {
							if span(i, f) && wc(i, f) {
								t.qgrs.Add(i, d, ee, j, t.qg.At(i, d, ee, f)*t.qm.At(f+1, j)*e.boltz(a2))
							}
						}
					}
				}
			}

			// Qgl, Qgr
			for d := i + 1; d <= j-5; d++ {
				for f := d + 4; f <= j-1; f++ {
					if span(d, f) && wc(d, f) {
						for ee := d; ee <= f-3; ee++ {
							t.qgl.Add(i, ee, f, j, t.qg.At(i, d, f, j)*t.qz.At(d+1, ee)*e.boltz(b2))
						}
					}
				}
			}
			for d := i + 1; d <= j-4; d++ {
				for ee := d + 3; ee <= j-1; ee++ {
					for f := ee; f <= j-1; f++ {
						t.qgr.Add(i, d, ee, j, t.qgl.At(i, d, f, j)*t.qz.At(ee, f-1))
					}
				}
			}

			// Qp: two gapped hemispheres sharing crossing helices
			for d := i + 2; d <= j-4; d++ {
				lo := d + 2
				if i+5 > lo {
					lo = i + 5
				}
				for ee := lo; ee <= j-3; ee++ {
					for f := ee + 1; f <= j-2; f++ {
						t.qp.Add(i, j, t.qgl.At(i, d-1, ee, f)*t.qgr.At(d, ee-1, f+1, j))
					}
				}
			}

			// Q, Qm, Qz
			t.q.Set(i, j, 1.0)
			inner := i != 0 && j != n-1
			if inner {
				t.qz.Set(i, j, e.boltz(b3*float64(j-i+1)))
			}
			for d := i; d <= j-4; d++ {
				for ee := d + 4; ee <= j; ee++ {
					if !span(d, ee) || !wc(d, ee) {
						continue
					}
					t.q.Add(i, j, left(t.q, i, d)*t.qb.At(d, ee))
					if inner {
						t.qm.Add(i, j, e.boltz(a2+float64(d-i+j-ee)*a3)*t.qb.At(d, ee))
						if d >= i+5 {
							t.qm.Add(i, j, t.qm.At(i, d-1)*t.qb.At(d, ee)*e.boltz(a2+float64(j-ee)*a3))
						}
						t.qz.Add(i, j, left(t.qz, i, d)*t.qb.At(d, ee)*e.boltz(b2+float64(j-ee)*b3))
					}
				}
			}
			for d := i; d <= j-8; d++ { // rightmost pseudoknot fills (d, e)
				for ee := d + 8; ee <= j; ee++ {
					t.q.Add(i, j, left(t.q, i, d)*t.qp.At(d, ee)*e.boltz(b1))
					if inner {
						t.qm.Add(i, j, e.boltz(b1m+2*a2+float64(d-i+j-ee)*a3)*t.qp.At(d, ee))
						if d >= i+5 {
							t.qm.Add(i, j, t.qm.At(i, d-1)*t.qp.At(d, ee)*e.boltz(b1m+2*a2+float64(j-ee)*a3))
						}
						t.qz.Add(i, j, left(t.qz, i, d)*t.qp.At(d, ee)*e.boltz(b1p+2*b2+float64(j-ee)*b3))
					}
				}
			}
		})
	}
	return t, nil
}
