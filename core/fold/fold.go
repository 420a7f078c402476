// core/fold/fold.go
// Partition-function and posterior engines over the Boltzmann ensemble
// of secondary structures (Dirks & Pierce 2003 recursions).
package fold

import (
	"fmt"
	"math"

	"biorseo/core/energy"
	"biorseo/core/rna"
)

// PKMode selects the pseudoknot handling of the engine.
type PKMode int

const (
	PKOff  PKMode = iota // pseudoknot-free recursions (default)
	PKFast               // experimental O(n⁵) pseudoknot recursions
	PKSlow               // experimental O(n⁸) reference recursions
)

func (m PKMode) String() string {
	switch m {
	case PKFast:
		return "fast"
	case PKSlow:
		return "slow"
	}
	return "off"
}

const (
	kB         = 3.2998e-27 // kcal/K
	avogadro   = 6.02214076e23
	zeroCelsius = 273.15
)

// Config holds folding parameters.
type Config struct {
	Params      *energy.Params
	Threads     int     // worker goroutines for the per-length loop (0 = all CPUs)
	Temperature float64 // °C; 0 means 37
	Pseudoknots PKMode
	Exact       bool         // use the O(n⁴) reference recursion instead of O(n³)
	Warn        func(string) // diagnostics sink; may be nil
}

// Engine computes base-pair posterior probabilities.
type Engine struct {
	cfg Config
	rt  float64
}

// New creates an Engine. Config.Params must be non-nil.
func New(c Config) *Engine {
	if c.Params == nil {
		panic("fold: nil parameter set")
	}
	t := c.Temperature
	if t == 0 {
		t = 37
	}
	return &Engine{cfg: c, rt: kB * avogadro * (zeroCelsius + t)}
}

func (e *Engine) warnf(format string, args ...interface{}) {
	if e.cfg.Warn != nil {
		e.cfg.Warn(fmt.Sprintf(format, args...))
	}
}

// boltz is the Boltzmann factor exp(−ΔG/RT).
func (e *Engine) boltz(dg float64) float64 { return math.Exp(-dg / e.rt) }

// BasePairProbabilities computes the posterior matrix p(i, j): the
// probability that positions i and j are paired in the ensemble. The
// result is stored upper-triangular; P.At(i,j) with i < j.
func (e *Engine) BasePairProbabilities(s *rna.Sequence) (*Matrix, error) {
	if s.Len() < 5 {
		return nil, fmt.Errorf("fold: sequence of length %d is below the minimum of 5", s.Len())
	}
	switch e.cfg.Pseudoknots {
	case PKOff:
		return e.posteriorNoPK(s), nil
	default:
		return e.posteriorPK(s)
	}
}

// Partition returns the total partition function Q(0, n−1).
func (e *Engine) Partition(s *rna.Sequence) (float64, error) {
	if s.Len() < 5 {
		return 0, fmt.Errorf("fold: sequence of length %d is below the minimum of 5", s.Len())
	}
	var q *Matrix
	if e.cfg.Exact {
		q, _, _ = e.partitionNoPKRef(s)
	} else {
		q, _, _ = e.partitionNoPKFast(s)
	}
	return q.At(0, s.Len()-1), nil
}
