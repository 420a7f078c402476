// core/moip/moip.go
// The bi-objective 0/1 program: y(u,v) decision variables for the
// probable base pairs, C(x,i) for candidate motif component insertions,
// the K1–K6 constraint system, and ε-constraint solving against the
// solver oracle.
package moip

import (
	"context"
	"errors"
	"fmt"
	"math"

	"time"

	"biorseo/core/fold"
	"biorseo/core/motif"
	"biorseo/core/rna"
	"biorseo/core/solver"
)

// Config tunes the model build.
type Config struct {
	Theta     float64 // base-pair probability cutoff
	TimeLimit time.Duration // per-solver-call budget; 0 = none
	Verbose   bool
	Log       func(string) // verbose sink; may be nil
}

// MOIP owns the IP model for one sequence. It is single-threaded; the
// only mutation after build is the forbid clause appended per solve.
type MOIP struct {
	seq   *rna.Sequence
	pij   *fold.Matrix
	sites []motif.Motif
	cfg   Config
	sol   solver.Interface

	yIndex    map[int]solver.Var // (u·n + v) → variable, u < v
	yPairs    [][2]int           // iteration order of y variables
	cVars     [][]solver.Var     // per site, per component
	obj1      []solver.Term
	obj2      []solver.Term
	exhausted bool
}

// New builds the model: variables, the K1–K6 constraints, and both
// objectives. The solver carries the state afterwards.
func New(seq *rna.Sequence, pij *fold.Matrix, sites []motif.Motif, sol solver.Interface, cfg Config) *MOIP {
	m := &MOIP{
		seq: seq, pij: pij, sites: sites, cfg: cfg, sol: sol,
		yIndex: make(map[int]solver.Var),
	}
	n := seq.Len()

	// y(u,v) for the probable pairs
	for u := 0; u < n-6; u++ {
		for v := u + 4; v < n; v++ {
			if pij.Pair(u, v) > cfg.Theta {
				m.yIndex[u*n+v] = sol.AddVar(fmt.Sprintf("y%d,%d", u, v))
				m.yPairs = append(m.yPairs, [2]int{u, v})
			}
		}
	}

	// C(x,i) per candidate site component
	for i := range sites {
		vars := make([]solver.Var, len(sites[i].Components))
		for j, c := range sites[i].Components {
			vars[j] = sol.AddVar(fmt.Sprintf("C%d,%d-%d", i, j, c.Start))
		}
		m.cVars = append(m.cVars, vars)
	}
	m.logf("%d + %d (yuv + Cxi) decision variables are used", len(m.yPairs), m.countC())

	m.defineConstraints()

	// obj1: motif scores on the first component of every site
	for i := range sites {
		m.obj1 = append(m.obj1, solver.Term{Var: m.cVars[i][0], Coef: sites[i].Score})
	}
	// obj2: expected accuracy over the allowed pairs
	for _, uv := range m.yPairs {
		m.obj2 = append(m.obj2, solver.Term{Var: m.yIndex[uv[0]*n+uv[1]], Coef: pij.Pair(uv[0], uv[1])})
	}
	return m
}

func (m *MOIP) countC() int {
	c := 0
	for _, vs := range m.cVars {
		c += len(vs)
	}
	return c
}

func (m *MOIP) logf(format string, args ...interface{}) {
	if m.cfg.Verbose && m.cfg.Log != nil {
		m.cfg.Log(fmt.Sprintf(format, args...))
	}
}

// allowed reports whether (u,v) is an IP decision pair: inside the
// allowed span and above the probability cutoff.
func (m *MOIP) allowed(u, v int) bool {
	if u > v {
		u, v = v, u
	}
	if !m.seq.AllowedSpan(u, v) {
		return false
	}
	_, ok := m.yIndex[u*m.seq.Len()+v]
	return ok
}

// y returns the variable of the (unordered) pair.
func (m *MOIP) y(u, v int) solver.Var {
	if u > v {
		u, v = v, u
	}
	return m.yIndex[u*m.seq.Len()+v]
}

func (m *MOIP) defineConstraints() {
	n := m.seq.Len()

	// K1: at most one pairing per nucleotide.
	for u := 0; u < n; u++ {
		var terms []solver.Term
		for v := 0; v < u; v++ {
			if m.allowed(v, u) {
				terms = append(terms, solver.Term{Var: m.y(v, u), Coef: 1})
			}
		}
		for v := u + 4; v < n; v++ {
			if m.allowed(u, v) {
				terms = append(terms, solver.Term{Var: m.y(u, v), Coef: 1})
			}
		}
		if len(terms) > 1 {
			m.sol.AddConstraint(terms, solver.LE, 1)
		}
	}

	// K2: no lone base pairs, left-end form.
	for u := 0; u < n; u++ {
		var terms []solver.Term
		count := 0
		if u > 0 {
			for v := u; v < n; v++ {
				if m.allowed(u-1, v) {
					terms = append(terms, solver.Term{Var: m.y(u-1, v), Coef: 1})
				}
			}
		}
		for v := u + 1; v < n; v++ {
			if m.allowed(u, v) {
				terms = append(terms, solver.Term{Var: m.y(u, v), Coef: -1})
				count++
			}
		}
		for v := u + 2; v < n; v++ {
			if m.allowed(u+1, v) {
				terms = append(terms, solver.Term{Var: m.y(u+1, v), Coef: 1})
			}
		}
		if count > 0 {
			m.sol.AddConstraint(terms, solver.GE, 0)
		}
	}
	// K2: right-end form.
	for v := 2; v < n; v++ {
		var terms []solver.Term
		count := 0
		for u := 0; u <= v-2; u++ {
			if m.allowed(u, v-1) {
				terms = append(terms, solver.Term{Var: m.y(u, v-1), Coef: 1})
			}
		}
		for u := 0; u <= v-1; u++ {
			if m.allowed(u, v) {
				terms = append(terms, solver.Term{Var: m.y(u, v), Coef: -1})
				count++
			}
		}
		if v+1 < n {
			for u := 0; u <= v; u++ {
				if m.allowed(u, v+1) {
					terms = append(terms, solver.Term{Var: m.y(u, v+1), Coef: 1})
				}
			}
		}
		if count > 0 {
			m.sol.AddConstraint(terms, solver.GE, 0)
		}
	}

	// K3: no base pair strictly inside an inserted component.
	for i := range m.sites {
		for j, c := range m.sites[i].Components {
			k := float64(c.K())
			terms := []solver.Term{{Var: m.cVars[i][j], Coef: k - 2}}
			count := 0
			for u := c.Start + 1; u < c.End-1; u++ {
				for v := 0; v < n; v++ {
					if m.allowed(u, v) {
						terms = append(terms, solver.Term{Var: m.y(u, v), Coef: 1})
						count++
					}
				}
			}
			if count > 0 {
				m.sol.AddConstraint(terms, solver.LE, k-2)
			}
		}
	}

	// K4: no two inserted components may cover the same nucleotide.
	for u := 0; u < n; u++ {
		var terms []solver.Term
		for i := range m.sites {
			for j, c := range m.sites[i].Components {
				if u >= c.Start && u <= c.End {
					terms = append(terms, solver.Term{Var: m.cVars[i][j], Coef: 1})
				}
			}
		}
		if len(terms) > 1 {
			m.sol.AddConstraint(terms, solver.LE, 1)
		}
	}

	// K5: all-or-nothing motif insertion.
	for i := range m.sites {
		nc := len(m.sites[i].Components)
		if nc == 1 {
			continue
		}
		terms := make([]solver.Term, 0, nc)
		for j := 1; j < nc; j++ {
			terms = append(terms, solver.Term{Var: m.cVars[i][j], Coef: 1})
		}
		terms = append(terms, solver.Term{Var: m.cVars[i][0], Coef: -float64(nc - 1)})
		m.sol.AddConstraint(terms, solver.EQ, 0)
	}

	// K6: closing base pairs exist for every inserted motif.
	for i := range m.sites {
		comps := m.sites[i].Components
		first := comps[0].Start
		last := comps[len(comps)-1].End
		terms := []solver.Term{{Var: m.cVars[i][0], Coef: 1}}
		if m.allowed(first, last) {
			terms = append(terms, solver.Term{Var: m.y(first, last), Coef: -1})
		}
		m.sol.AddConstraint(terms, solver.LE, 0)
		for j := 0; j+1 < len(comps); j++ {
			terms := []solver.Term{{Var: m.cVars[i][j], Coef: 1}}
			if m.allowed(comps[j].End, comps[j+1].Start) {
				terms = append(terms, solver.Term{Var: m.y(comps[j].End, comps[j+1].Start), Coef: -1})
			}
			m.sol.AddConstraint(terms, solver.LE, 0)
		}
	}
}

// SolveObjective maximizes objective o (1 or 2) subject to the other
// staying within [min, max], materializes the optimal structure, and
// forbids it from reappearing. A nil structure without error means the
// feasible set is exhausted.
func (m *MOIP) SolveObjective(ctx context.Context, o int, min, max float64) (*Structure, error) {
	if m.exhausted {
		return nil, nil
	}
	m.logf("solving objective function %d, %g <= obj%d <= %g", o, min, 3-o, max)

	var objective, bounded []solver.Term
	if o == 1 {
		objective, bounded = m.obj1, m.obj2
	} else {
		objective, bounded = m.obj2, m.obj1
	}
	m.sol.SetObjective(objective, true)
	var bounds []solver.Constraint
	if !math.IsInf(min, -1) {
		bounds = append(bounds, m.sol.AddConstraint(bounded, solver.GE, min))
	}
	if !math.IsInf(max, +1) {
		bounds = append(bounds, m.sol.AddConstraint(bounded, solver.LE, max))
	}
	cleanup := func() {
		for _, b := range bounds {
			m.sol.RemoveConstraint(b)
		}
		m.sol.ClearObjective()
	}

	if m.cfg.TimeLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.cfg.TimeLimit)
		defer cancel()
	}
	sol, err := m.sol.Solve(ctx)
	if err != nil {
		cleanup()
		if errors.Is(err, solver.ErrInfeasible) {
			m.logf("failed to optimize: no more solutions to find")
			return nil, nil
		}
		return nil, err
	}

	s := m.materialize(sol)
	m.forbid(sol)
	cleanup()
	return s, nil
}

// materialize reads the assignment back into a Structure.
func (m *MOIP) materialize(sol *solver.Solution) *Structure {
	n := m.seq.Len()
	s := &Structure{Seq: m.seq}
	for i := range m.sites {
		// All-or-nothing insertion (K5): the first component decides.
		if sol.Value(m.cVars[i][0]) {
			s.Motifs = append(s.Motifs, m.sites[i])
			s.Obj1 += m.sites[i].Score
		}
	}
	for _, uv := range m.yPairs {
		if sol.Value(m.yIndex[uv[0]*n+uv[1]]) {
			s.Pairs = append(s.Pairs, BasePair{U: uv[0], V: uv[1]})
			s.Obj2 += m.pij.Pair(uv[0], uv[1])
		}
	}
	s.sortPairs()
	return s
}

// forbid appends the clause excluding exactly this assignment:
// Σ_{x̂=1} (1−x) + Σ_{x̂=0} x ≥ 1 over every decision variable.
func (m *MOIP) forbid(sol *solver.Solution) {
	var terms []solver.Term
	rhs := 1.0
	add := func(v solver.Var) {
		if sol.Value(v) {
			terms = append(terms, solver.Term{Var: v, Coef: -1})
			rhs -= 1
		} else {
			terms = append(terms, solver.Term{Var: v, Coef: 1})
		}
	}
	for _, vs := range m.cVars {
		for _, v := range vs {
			add(v)
		}
	}
	n := m.seq.Len()
	for _, uv := range m.yPairs {
		add(m.yIndex[uv[0]*n+uv[1]])
	}
	if len(terms) == 0 {
		// No decision variables at all: the empty model has exactly one
		// solution, so the walk is over.
		m.exhausted = true
		return
	}
	m.sol.AddConstraint(terms, solver.GE, rhs)
}
