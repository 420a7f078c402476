// core/solver/gophersat.go
package solver

import (
	"context"
	"fmt"
	"math"

	"github.com/crillab/gophersat/maxsat"
)

// scale converts fractional coefficients (posterior probabilities,
// catalog scores) to the integers pseudo-Boolean constraints need.
const scale = 10000

// Gophersat solves the 0/1 program as weighted partial MaxSAT: hard
// pseudo-Boolean constraints carry the model, soft unit clauses carry
// the objective. The model is re-encoded on every Solve call, which the
// single-threaded walker amortizes trivially.
type Gophersat struct {
	names   []string
	constrs []pbConstr
	nextC   Constraint
	obj     []Term
	objMax  bool
	hasObj  bool
}

type pbConstr struct {
	id      Constraint
	terms   []Term
	sense   Sense
	rhs     float64
	removed bool
}

// NewGophersat returns an empty model.
func NewGophersat() *Gophersat { return &Gophersat{} }

func (g *Gophersat) AddVar(name string) Var {
	if name == "" {
		name = fmt.Sprintf("x%d", len(g.names))
	}
	g.names = append(g.names, name)
	return Var(len(g.names) - 1)
}

func (g *Gophersat) AddConstraint(terms []Term, sense Sense, rhs float64) Constraint {
	id := g.nextC
	g.nextC++
	cp := make([]Term, len(terms))
	copy(cp, terms)
	g.constrs = append(g.constrs, pbConstr{id: id, terms: cp, sense: sense, rhs: rhs})
	return id
}

func (g *Gophersat) RemoveConstraint(c Constraint) {
	for i := range g.constrs {
		if g.constrs[i].id == c {
			g.constrs[i].removed = true
			return
		}
	}
}

func (g *Gophersat) SetObjective(terms []Term, max bool) {
	cp := make([]Term, len(terms))
	copy(cp, terms)
	g.obj, g.objMax, g.hasObj = cp, max, true
}

func (g *Gophersat) ClearObjective() { g.obj, g.hasObj = nil, false }

func (g *Gophersat) Solve(ctx context.Context) (*Solution, error) {
	problem := g.encode()

	type outcome struct {
		model map[string]bool
	}
	done := make(chan outcome, 1)
	go func() {
		model, _ := maxsat.New(problem...).Solve()
		done <- outcome{model: model}
	}()

	var model map[string]bool
	select {
	case <-ctx.Done():
		// The walker reads a timeout as "no more solutions".
		return nil, ErrInfeasible
	case out := <-done:
		model = out.model
	}
	if model == nil {
		return nil, ErrInfeasible
	}

	sol := &Solution{values: make([]bool, len(g.names))}
	for i, name := range g.names {
		sol.values[i] = model[name]
	}
	if g.hasObj {
		for _, t := range g.obj {
			if sol.values[int(t.Var)] {
				sol.Objective += t.Coef
			}
		}
	}
	return sol, nil
}

// encode lowers the model to gophersat constraints: every hard
// constraint is normalized to one or two at-least pseudo-Boolean forms
// with positive coefficients over possibly negated literals; the
// objective becomes weighted soft unit clauses.
func (g *Gophersat) encode() []maxsat.Constr {
	var out []maxsat.Constr
	for i := range g.constrs {
		c := &g.constrs[i]
		if c.removed {
			continue
		}
		switch c.sense {
		case GE:
			if pb, ok := g.atLeast(c.terms, c.rhs, +1); ok {
				out = append(out, pb)
			}
		case LE:
			if pb, ok := g.atLeast(c.terms, c.rhs, -1); ok {
				out = append(out, pb)
			}
		case EQ:
			if pb, ok := g.atLeast(c.terms, c.rhs, +1); ok {
				out = append(out, pb)
			}
			if pb, ok := g.atLeast(c.terms, c.rhs, -1); ok {
				out = append(out, pb)
			}
		}
	}
	if g.hasObj {
		for _, t := range g.obj {
			w := int(math.Round(math.Abs(t.Coef) * scale))
			if w == 0 {
				continue
			}
			lit := maxsat.Var(g.names[int(t.Var)])
			// Maximizing a positive coefficient rewards the variable
			// being true; a negative one rewards it being false. For a
			// minimized objective the polarities flip.
			wantTrue := (t.Coef > 0) == g.objMax
			if !wantTrue {
				lit = lit.Negation()
			}
			out = append(out, maxsat.WeightedClause([]maxsat.Lit{lit}, w))
		}
	}
	return out
}

// atLeast builds sign·Σ terms ≥ sign·rhs as a pseudo-Boolean constraint
// with positive integer coefficients. Negative coefficients flip their
// literal: c·x ≡ c − c·(¬x). Trivially satisfied constraints report
// ok = false and are dropped.
func (g *Gophersat) atLeast(terms []Term, rhs float64, sign int) (maxsat.Constr, bool) {
	lits := make([]maxsat.Lit, 0, len(terms))
	coeffs := make([]int, 0, len(terms))
	bound := int(math.Ceil(float64(sign)*rhs*scale - 1e-6))
	for _, t := range terms {
		c := sign * int(math.Round(t.Coef*scale))
		if c == 0 {
			continue
		}
		lit := maxsat.Var(g.names[int(t.Var)])
		if c < 0 {
			// c·x = c + |c|·(¬x); move the constant to the bound.
			lit = lit.Negation()
			bound -= c
			c = -c
		}
		lits = append(lits, lit)
		coeffs = append(coeffs, c)
	}
	if bound <= 0 {
		return maxsat.Constr{}, false
	}
	return maxsat.HardPBConstr(lits, coeffs, bound), true
}
