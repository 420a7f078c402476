// core/fold/matrix.go
package fold

// Matrix is a dense n×n table of nonnegative partition-function terms or
// probabilities. The subdiagonal (i, i−1) is addressable so the
// pseudoknot recursions can seed their empty-segment cells.
type Matrix struct {
	n int
	v []float64
}

// NewMatrix returns a zeroed n×n matrix.
func NewMatrix(n int) *Matrix { return &Matrix{n: n, v: make([]float64, n*n)} }

func (m *Matrix) N() int                  { return m.n }
func (m *Matrix) At(i, j int) float64     { return m.v[i*m.n+j] }
func (m *Matrix) Set(i, j int, x float64) { m.v[i*m.n+j] = x }
func (m *Matrix) Add(i, j int, x float64) { m.v[i*m.n+j] += x }

// Tensor4 is a 4-index table stored as one flat contiguous array with
// idx(i,j,k,l) = ((i·n + j)·n + k)·n + l.
type Tensor4 struct {
	n int
	v []float64
}

// NewTensor4 returns a zeroed n⁴ tensor.
func NewTensor4(n int) *Tensor4 { return &Tensor4{n: n, v: make([]float64, n*n*n*n)} }

func (t *Tensor4) idx(i, j, k, l int) int { return ((i*t.n+j)*t.n+k)*t.n + l }

func (t *Tensor4) At(i, j, k, l int) float64     { return t.v[t.idx(i, j, k, l)] }
func (t *Tensor4) Set(i, j, k, l int, x float64) { t.v[t.idx(i, j, k, l)] = x }
func (t *Tensor4) Add(i, j, k, l int, x float64) { t.v[t.idx(i, j, k, l)] += x }

// Pair reads an upper-triangular posterior matrix symmetrically:
// Pair(i, j) = Pair(j, i).
func (m *Matrix) Pair(i, j int) float64 {
	if j < i {
		i, j = j, i
	}
	return m.At(i, j)
}

// Zero resets the tensor in place so length-slab buffers can rotate.
func (t *Tensor4) Zero() {
	for i := range t.v {
		t.v[i] = 0
	}
}
