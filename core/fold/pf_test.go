// core/fold/pf_test.go
package fold

import (
	"math"
	"testing"

	"biorseo/core/energy"
	"biorseo/core/rna"
)

func defaultEngine(t *testing.T, c Config) *Engine {
	t.Helper()
	p, err := energy.Default()
	if err != nil {
		t.Fatalf("default params: %v", err)
	}
	c.Params = p
	if c.Threads == 0 {
		c.Threads = 2
	}
	return New(c)
}

func TestPartitionAllA(t *testing.T) {
	// No base pair is possible: the ensemble holds only the empty
	// structure and Q(0, n−1) = 1.
	s, _ := rna.New("e2", "AAAAA")
	for _, exact := range []bool{false, true} {
		e := defaultEngine(t, Config{Exact: exact})
		q, err := e.Partition(s)
		if err != nil {
			t.Fatal(err)
		}
		if q != 1.0 {
			t.Errorf("exact=%v: Q(0,4) = %v, want 1", exact, q)
		}
	}
}

func TestPartitionRejectsShortSequence(t *testing.T) {
	s, _ := rna.New("short", "GCGC")
	e := defaultEngine(t, Config{})
	if _, err := e.Partition(s); err == nil {
		t.Fatal("expected error for length < 5")
	}
}

var paritySeqs = []string{
	"GCGCAAAAGCGC",
	"GGGAAAUCCC",
	"ACGUACGUACGUACGUACGUACGU",
	"GGCGCAAAAGCGCCAUAUAUGCGCAAAAGCGCAUAU",
	"AUGCNUAGCGAUCGAUGCAUGCAUGGCCAUAU",
	"GGGGGAAAACCCCCAAAGGGGGAAAACCCCCAAAGGGAAACCC",
}

func TestAlgorithmParity(t *testing.T) {
	// The O(n⁴) and O(n³) recursions agree on the partition function.
	for _, seq := range paritySeqs {
		s, _ := rna.New("p", seq)
		qRef, err := defaultEngine(t, Config{Exact: true}).Partition(s)
		if err != nil {
			t.Fatal(err)
		}
		qFast, err := defaultEngine(t, Config{}).Partition(s)
		if err != nil {
			t.Fatal(err)
		}
		rel := math.Abs(qRef-qFast) / qRef
		if rel > 1e-4 {
			t.Errorf("%s: Q ref %v vs fast %v (rel err %g)", seq, qRef, qFast, rel)
		}
	}
}

func TestPosteriorProperties(t *testing.T) {
	for _, seq := range paritySeqs {
		s, _ := rna.New("p", seq)
		e := defaultEngine(t, Config{})
		p, err := e.BasePairProbabilities(s)
		if err != nil {
			t.Fatal(err)
		}
		n := s.Len()
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				v := p.Pair(i, j)
				if v < 0 || v > 1 {
					t.Fatalf("%s: p(%d,%d) = %v out of [0,1]", seq, i, j, v)
				}
				if v != p.Pair(j, i) {
					t.Fatalf("%s: p not symmetric at (%d,%d)", seq, i, j)
				}
				d := j - i
				if d < 0 {
					d = -d
				}
				if (d < 4 || !s.CanPair(i, j)) && v != 0 {
					t.Errorf("%s: p(%d,%d) = %v for a non-pairable pair", seq, i, j, v)
				}
				if i != j {
					sum += v
				}
			}
			if sum > 1+1e-5 {
				t.Errorf("%s: Σ_j p(%d,j) = %v exceeds 1", seq, i, sum)
			}
		}
	}
}

func TestPosteriorParity(t *testing.T) {
	s, _ := rna.New("p", "GGCGCAAAAGCGCCAUAUAUGCGCAAAAGCGCAUAU")
	pRef, err := defaultEngine(t, Config{Exact: true}).BasePairProbabilities(s)
	if err != nil {
		t.Fatal(err)
	}
	pFast, err := defaultEngine(t, Config{}).BasePairProbabilities(s)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < s.Len(); i++ {
		for j := i + 1; j < s.Len(); j++ {
			if math.Abs(pRef.At(i, j)-pFast.At(i, j)) > 1e-4 {
				t.Fatalf("posterior differs at (%d,%d): %v vs %v", i, j, pRef.At(i, j), pFast.At(i, j))
			}
		}
	}
}

func TestHairpinPosterior(t *testing.T) {
	// GCGCAAAAGCGC folds into the ((((....)))) stem-loop; the four stem
	// pairs carry almost all the pairing mass.
	s, _ := rna.New("e1", "GCGCAAAAGCGC")
	e := defaultEngine(t, Config{})
	p, err := e.BasePairProbabilities(s)
	if err != nil {
		t.Fatal(err)
	}
	stem := [][2]int{{0, 11}, {1, 10}, {2, 9}, {3, 8}}
	sum := 0.0
	for _, uv := range stem {
		v := p.At(uv[0], uv[1])
		if v < 0.5 {
			t.Errorf("p(%d,%d) = %v, want > 0.5", uv[0], uv[1], v)
		}
		sum += v
	}
	if sum < 3.5 {
		t.Errorf("stem mass = %v, want ≥ 3.5", sum)
	}
}

func TestTemperatureSharpening(t *testing.T) {
	// Cooling concentrates the ensemble on the minimum-free-energy
	// structure, so stem-pair posteriors grow monotonically.
	s, _ := rna.New("sharp", "GCGCAAAAGCGC")
	var prev float64
	for k, temp := range []float64{57, 37, 17} {
		e := defaultEngine(t, Config{Temperature: temp})
		p, err := e.BasePairProbabilities(s)
		if err != nil {
			t.Fatal(err)
		}
		v := p.At(0, 11)
		if k > 0 && v+1e-9 < prev {
			t.Errorf("p(0,11) at %v°C = %v, below warmer value %v", temp, v, prev)
		}
		prev = v
	}
}

func TestPKPosteriorIsStub(t *testing.T) {
	s, _ := rna.New("pk", "GCGCAAAAGCGC")
	var warned bool
	e := defaultEngine(t, Config{Pseudoknots: PKFast, Warn: func(string) { warned = true }})
	p, err := e.BasePairProbabilities(s)
	if err != nil {
		t.Fatal(err)
	}
	if !warned {
		t.Error("pseudoknot mode must emit its experimental diagnostic")
	}
	for i := 0; i < s.Len(); i++ {
		for j := 0; j < s.Len(); j++ {
			if p.At(i, j) != 0 {
				t.Fatalf("pk posterior stub must be the zero matrix, got p(%d,%d)=%v", i, j, p.At(i, j))
			}
		}
	}
}

func TestPKPartitionRuns(t *testing.T) {
	s, _ := rna.New("pk", "GGGAAAUCCC")
	e := defaultEngine(t, Config{Pseudoknots: PKSlow})
	tbl, err := e.partitionPK(s)
	if err != nil {
		t.Fatal(err)
	}
	q := tbl.q.At(0, s.Len()-1)
	if !(q >= 1) || math.IsNaN(q) || math.IsInf(q, 0) {
		t.Errorf("pk Q(0,n-1) = %v, want a finite value ≥ 1", q)
	}
}
