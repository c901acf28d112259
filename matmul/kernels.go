// Package matmul provides dense square-matrix multiplication kernels with
// interchangeable scheduling strategies: single-threaded, row-parallel, and
// cache-blocked with parallel block columns.
//
// Every kernel computes C += A×B and returns the wall-clock time of its
// loop nest, so the variants can be benchmarked against each other on the
// same operands.
package matmul

import (
	"time"

	"github.com/cwbudde/algo-parbench/internal/parallel"
)

// Method selects a multiplication kernel. The numeric values are the
// method codes accepted on the command line.
type Method int

const (
	Blocked    Method = iota + 1 // cache-blocked, parallel block columns
	Standard                     // triple loop, parallel rows
	Sequential                   // triple loop, single thread
)

// Valid reports whether m is a known method code.
func (m Method) Valid() bool {
	return m >= Blocked && m <= Sequential
}

// Parallel reports whether m distributes work across workers.
func (m Method) Parallel() bool {
	return m == Blocked || m == Standard
}

// String returns a human-readable method name.
func (m Method) String() string {
	switch m {
	case Blocked:
		return "blocked"
	case Standard:
		return "standard"
	case Sequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// Result holds one kernel run: the wall-clock time of the multiplication
// loops and the worker count used, echoed back for reporting.
type Result struct {
	Elapsed time.Duration
	Threads int
}

// Run dispatches to the kernel selected by m. blockSize is used only by
// the blocked method and threads only by the parallel methods.
func Run(m Method, a, b, c *Matrix, blockSize, threads int) (Result, error) {
	switch m {
	case Blocked:
		return MulBlocked(a, b, c, blockSize, threads)
	case Standard:
		return MulStandard(a, b, c, threads)
	case Sequential:
		return MulSequential(a, b, c)
	default:
		return Result{}, ErrUnknownMethod
	}
}

// checkOperands verifies that a, b, and c share one dimension.
func checkOperands(a, b, c *Matrix) error {
	if a.n != b.n || a.n != c.n {
		return ErrSizeMismatch
	}

	return nil
}

// MulSequential computes c += a×b with the plain i→j→k triple loop on a
// single thread. It is the timing baseline for the parallel kernels.
func MulSequential(a, b, c *Matrix) (Result, error) {
	if err := checkOperands(a, b, c); err != nil {
		return Result{}, err
	}

	n := a.n

	start := time.Now()

	for i := 0; i < n; i++ {
		ar := a.Row(i)
		cr := c.Row(i)

		for j := 0; j < n; j++ {
			s := cr[j]
			for k := 0; k < n; k++ {
				s += ar[k] * b.data[k*n+j]
			}

			cr[j] = s
		}
	}

	return Result{Elapsed: time.Since(start), Threads: 1}, nil
}

// MulStandard computes c += a×b with the same triple loop as
// MulSequential, distributing the outer row index across threads workers.
// Workers write disjoint rows of c, so no synchronization is needed beyond
// the final join.
func MulStandard(a, b, c *Matrix, threads int) (Result, error) {
	if err := checkOperands(a, b, c); err != nil {
		return Result{}, err
	}

	if threads < 1 {
		return Result{}, ErrInvalidThreads
	}

	n := a.n

	start := time.Now()

	parallel.ForEach(threads, 0, n, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			ar := a.Row(i)
			cr := c.Row(i)

			for j := 0; j < n; j++ {
				s := cr[j]
				for k := 0; k < n; k++ {
					s += ar[k] * b.data[k*n+j]
				}

				cr[j] = s
			}
		}
	})

	return Result{Elapsed: time.Since(start), Threads: threads}, nil
}

// MulBlocked computes c += a×b in blockSize×blockSize tiles. The matrix is
// divided into NB = n/blockSize blocks per dimension; block-row p runs
// sequentially, and for each p the block columns q are distributed across
// threads workers. The block depth r stays inside the worker, so every
// write for a given (p, q) lands in the (p, q) sub-block of c owned by one
// worker. Keeping the working set within a block window improves cache
// reuse over the standard kernel for large n.
//
// n must be divisible by blockSize; violations are rejected before any
// work starts, never truncated.
func MulBlocked(a, b, c *Matrix, blockSize, threads int) (Result, error) {
	if err := checkOperands(a, b, c); err != nil {
		return Result{}, err
	}

	if threads < 1 {
		return Result{}, ErrInvalidThreads
	}

	n := a.n
	if blockSize < 1 || blockSize > n {
		return Result{}, ErrInvalidBlock
	}

	if n%blockSize != 0 {
		return Result{}, ErrBlockDivide
	}

	nb := n / blockSize

	start := time.Now()

	for p := 0; p < nb; p++ {
		parallel.ForEach(threads, 0, nb, func(qlo, qhi int) {
			for q := qlo; q < qhi; q++ {
				for r := 0; r < nb; r++ {
					multiplyBlock(a, b, c, p, q, r, blockSize)
				}
			}
		})
	}

	return Result{Elapsed: time.Since(start), Threads: threads}, nil
}

// multiplyBlock accumulates the product of a's (p, r) block and b's (r, q)
// block into c's (p, q) block.
func multiplyBlock(a, b, c *Matrix, p, q, r, blockSize int) {
	n := a.n
	i0 := p * blockSize
	j0 := q * blockSize
	k0 := r * blockSize

	for i := i0; i < i0+blockSize; i++ {
		ar := a.Row(i)
		cr := c.Row(i)

		for j := j0; j < j0+blockSize; j++ {
			s := cr[j]
			for k := k0; k < k0+blockSize; k++ {
				s += ar[k] * b.data[k*n+j]
			}

			cr[j] = s
		}
	}
}
