// core/moip/solver_fake_test.go
package moip

import (
	"context"
	"testing"

	"biorseo/core/solver"
)

// Compile-time check: the production backend satisfies the oracle
// contract the tests exercise through the fake.
var _ solver.Interface = (*solver.Gophersat)(nil)
var _ solver.Interface = (*bruteSolver)(nil)

// bruteSolver is an exact reference oracle for small models: it
// enumerates every assignment and keeps the best feasible one.
// Assignments are visited in mask order, so ties resolve towards
// all-false deterministically.
type bruteSolver struct {
	nvars   int
	constrs []bruteConstr
	obj     []solver.Term
	objMax  bool
	hasObj  bool
	nextID  solver.Constraint
}

type bruteConstr struct {
	id      solver.Constraint
	terms   []solver.Term
	sense   solver.Sense
	rhs     float64
	removed bool
}

func (b *bruteSolver) AddVar(string) solver.Var {
	b.nvars++
	return solver.Var(b.nvars - 1)
}

func (b *bruteSolver) AddConstraint(terms []solver.Term, sense solver.Sense, rhs float64) solver.Constraint {
	id := b.nextID
	b.nextID++
	cp := make([]solver.Term, len(terms))
	copy(cp, terms)
	b.constrs = append(b.constrs, bruteConstr{id: id, terms: cp, sense: sense, rhs: rhs})
	return id
}

func (b *bruteSolver) RemoveConstraint(c solver.Constraint) {
	for i := range b.constrs {
		if b.constrs[i].id == c {
			b.constrs[i].removed = true
		}
	}
}

func (b *bruteSolver) SetObjective(terms []solver.Term, max bool) {
	cp := make([]solver.Term, len(terms))
	copy(cp, terms)
	b.obj, b.objMax, b.hasObj = cp, max, true
}

func (b *bruteSolver) ClearObjective() { b.obj, b.hasObj = nil, false }

func (b *bruteSolver) Solve(ctx context.Context) (*solver.Solution, error) {
	if b.nvars > 24 {
		panic("bruteSolver: model too large to enumerate")
	}
	best := -1
	bestObj := 0.0
	for mask := 0; mask < 1<<uint(b.nvars); mask++ {
		if !b.feasible(mask) {
			continue
		}
		obj := 0.0
		for _, t := range b.obj {
			if mask&(1<<uint(int(t.Var))) != 0 {
				obj += t.Coef
			}
		}
		if !b.objMax {
			obj = -obj
		}
		if best < 0 || obj > bestObj {
			best, bestObj = mask, obj
		}
	}
	if best < 0 {
		return nil, solver.ErrInfeasible
	}
	return newSolution(best, b.nvars, b.obj), nil
}

func (b *bruteSolver) feasible(mask int) bool {
	for i := range b.constrs {
		c := &b.constrs[i]
		if c.removed {
			continue
		}
		sum := 0.0
		for _, t := range c.terms {
			if mask&(1<<uint(int(t.Var))) != 0 {
				sum += t.Coef
			}
		}
		switch c.sense {
		case solver.LE:
			if sum > c.rhs+1e-9 {
				return false
			}
		case solver.GE:
			if sum < c.rhs-1e-9 {
				return false
			}
		case solver.EQ:
			if sum > c.rhs+1e-9 || sum < c.rhs-1e-9 {
				return false
			}
		}
	}
	return true
}

// newSolution builds a solver.Solution through its package constructor
// surface: values are private, so the fake goes through NewSolution.
func newSolution(mask, nvars int, obj []solver.Term) *solver.Solution {
	values := make([]bool, nvars)
	for i := 0; i < nvars; i++ {
		values[i] = mask&(1<<uint(i)) != 0
	}
	objv := 0.0
	for _, t := range obj {
		if values[int(t.Var)] {
			objv += t.Coef
		}
	}
	return solver.NewSolution(values, objv)
}

func solveOnce(t *testing.T, m *MOIP) *Structure {
	t.Helper()
	s, err := m.SolveObjective(context.Background(), 2, negInf, posInf)
	if err != nil {
		t.Fatal(err)
	}
	return s
}
