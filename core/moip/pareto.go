// core/moip/pareto.go
package moip

import (
	"context"
	"math"
)

// ExtendPareto walks the Pareto frontier by ε-constraint scalarization:
// repeatedly maximize obj2 with obj1 bounded below by the last accepted
// solution's obj1, until the solver reports infeasible or a dominated
// solution. Discovery order is non-decreasing in obj1; the returned set
// holds no dominated element.
func (m *MOIP) ExtendPareto(ctx context.Context) ([]Structure, error) {
	return m.extend(ctx, math.Inf(-1), math.Inf(+1), nil)
}

func (m *MOIP) extend(ctx context.Context, lambdaMin, lambdaMax float64, pareto []Structure) ([]Structure, error) {
	for {
		s, err := m.SolveObjective(ctx, 2, lambdaMin, lambdaMax)
		if err != nil {
			return pareto, err
		}
		if s == nil { // no more solutions in the band
			return pareto, nil
		}
		if !undominated(s, pareto) {
			m.logf("solution %s is dominated", s.DotBracket())
			return pareto, nil
		}
		pareto = m.addSolution(pareto, s)
		lambdaMin = s.Obj1
	}
}

// undominated reports whether no member of the set dominates s.
func undominated(s *Structure, set []Structure) bool {
	for i := range set {
		if dominates(&set[i], s) {
			return false
		}
	}
	return true
}

// addSolution inserts s, dropping every member it strictly dominates.
// That only happens when s ties an earlier member on obj2 with a higher
// obj1.
func (m *MOIP) addSolution(set []Structure, s *Structure) []Structure {
	out := set[:0]
	for i := range set {
		if dominates(s, &set[i]) {
			m.logf("removing dominated structure from Pareto set: %s", set[i].DotBracket())
			continue
		}
		out = append(out, set[i])
	}
	m.logf("adding structure to Pareto set: %s", s.String())
	return append(out, *s)
}
