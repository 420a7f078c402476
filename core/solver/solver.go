// core/solver/solver.go
// The MILP solver is treated as an oracle behind this interface: Boolean
// variables, linear constraints, one linear objective, solve, read back.
// The gophersat backend is the default; anything implementing Interface
// can replace it.
package solver

import (
	"context"
	"errors"
)

// ErrInfeasible is returned by Solve when no assignment satisfies the
// current constraint set. Pareto walking treats it as a normal
// termination signal, not a failure.
var ErrInfeasible = errors.New("solver: problem is infeasible")

// Var identifies a Boolean decision variable.
type Var int

// Sense is the comparison of a linear constraint.
type Sense int

const (
	LE Sense = iota
	EQ
	GE
)

// Term is one coefficient·variable product of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// Constraint identifies an added constraint so it can be removed.
type Constraint int

// Solution is one satisfying assignment with its objective value.
type Solution struct {
	values    []bool
	Objective float64
}

// Value reads the assignment of v.
func (s *Solution) Value(v Var) bool { return s.values[int(v)] }

// NewSolution wraps a raw assignment; oracle implementations outside
// this package use it to report results.
func NewSolution(values []bool, objective float64) *Solution {
	return &Solution{values: values, Objective: objective}
}

// Interface is the solver oracle.
type Interface interface {
	// AddVar declares a fresh Boolean variable. The name is for
	// diagnostics only.
	AddVar(name string) Var
	// AddConstraint appends Σ terms (sense) rhs and returns its handle.
	AddConstraint(terms []Term, sense Sense, rhs float64) Constraint
	// RemoveConstraint deletes a constraint by handle.
	RemoveConstraint(c Constraint)
	// SetObjective installs a linear objective, maximized when max.
	SetObjective(terms []Term, max bool)
	// ClearObjective removes the objective.
	ClearObjective()
	// Solve optimizes the current model. It returns ErrInfeasible when
	// the feasible set is empty; a context timeout reads the same way.
	Solve(ctx context.Context) (*Solution, error)
}
