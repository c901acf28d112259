package matmul

import (
	"errors"
	"math/rand/v2"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by matrix constructors and kernels.
var (
	ErrInvalidSize    = errors.New("matmul: matrix size must be positive")
	ErrInvalidBlock   = errors.New("matmul: block size must be positive and no larger than the matrix size")
	ErrBlockDivide    = errors.New("matmul: matrix size must be divisible by block size for the blocked method")
	ErrSizeMismatch   = errors.New("matmul: matrices must share the same size")
	ErrInvalidThreads = errors.New("matmul: thread count must be at least 1")
	ErrUnknownMethod  = errors.New("matmul: unknown method")
)

// Matrix is a square matrix stored row-major in one contiguous slice.
type Matrix struct {
	n    int
	data []float64
}

// New returns a zero-initialized n×n matrix.
func New(n int) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrInvalidSize
	}

	return &Matrix{n: n, data: make([]float64, n*n)}, nil
}

// NewRandom returns an n×n matrix with entries drawn uniformly from [0, 10).
func NewRandom(n int) (*Matrix, error) {
	m, err := New(n)
	if err != nil {
		return nil, err
	}

	for i := range m.data {
		m.data[i] = 10 * rand.Float64()
	}

	return m, nil
}

// NewPattern returns an n×n matrix with entry (i, j) set to i+j+1.
// The pattern gives small integer-valued products that can be checked by
// hand, which random inputs cannot.
func NewPattern(n int) (*Matrix, error) {
	m, err := New(n)
	if err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.data[i*n+j] = float64(i + j + 1)
		}
	}

	return m, nil
}

// N returns the matrix dimension.
func (m *Matrix) N() int {
	return m.n
}

// At returns the element at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) {
	m.data[i*m.n+j] = v
}

// Row returns the backing slice for row i. Writes through the slice modify
// the matrix.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}

// Data returns the row-major backing slice.
func (m *Matrix) Data() []float64 {
	return m.data
}

// Reset zeroes every element. The multiplication kernels accumulate into
// their output, so a reused output matrix must be reset between runs.
func (m *Matrix) Reset() {
	clear(m.data)
}

// MaxAbsDiff returns the largest absolute element-wise difference between
// a and b.
func MaxAbsDiff(a, b *Matrix) (float64, error) {
	if a.n != b.n {
		return 0, ErrSizeMismatch
	}

	diff := make([]float64, a.n)

	maxDiff := 0.0
	for i := 0; i < a.n; i++ {
		vecmath.ScaleBlock(diff, b.Row(i), -1)
		vecmath.AddBlockInPlace(diff, a.Row(i))

		if d := vecmath.MaxAbs(diff); d > maxDiff {
			maxDiff = d
		}
	}

	return maxDiff, nil
}
