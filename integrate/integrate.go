// Package integrate approximates the definite integral of sin over a fixed
// step grid, either sequentially or split across a caller-chosen number of
// worker goroutines.
//
// The kernels exist to be timed against each other, so each returns the
// wall-clock time of its summation loop alongside the computed area.
package integrate

import (
	"errors"
	"math"
	"time"

	"github.com/cwbudde/algo-parbench/internal/parallel"
)

// Errors returned by integration functions.
var (
	ErrInvalidStep    = errors.New("integrate: step size must be positive")
	ErrInvalidThreads = errors.New("integrate: thread count must be at least 1")
	ErrUnknownMethod  = errors.New("integrate: unknown method")
)

// Method selects an integration kernel. The numeric values are the method
// codes accepted on the command line.
type Method int

const (
	Rectangle           Method = iota + 1 // rectangle rule, parallel
	Trapezoid                             // trapezoidal rule, parallel
	RectangleSequential                   // rectangle rule, single thread
	TrapezoidSequential                   // trapezoidal rule, single thread
)

// Valid reports whether m is a known method code.
func (m Method) Valid() bool {
	return m >= Rectangle && m <= TrapezoidSequential
}

// Parallel reports whether m distributes its summation loop across workers.
func (m Method) Parallel() bool {
	return m == Rectangle || m == Trapezoid
}

// String returns a human-readable method name.
func (m Method) String() string {
	switch m {
	case Rectangle:
		return "rectangle"
	case Trapezoid:
		return "trapezoidal"
	case RectangleSequential:
		return "sequential rectangle"
	case TrapezoidSequential:
		return "sequential trapezoidal"
	default:
		return "unknown"
	}
}

// Problem describes one integration task: approximate the integral of sin
// from X1 to X2 on a grid with step DX.
//
// X1 > X2 is not rejected; it yields an empty grid and a zero area.
type Problem struct {
	X1 float64 // lower bound
	X2 float64 // upper bound
	DX float64 // step size
}

// Validate checks that the Problem parameters are usable. The negated
// comparison also rejects NaN steps.
func (p Problem) Validate() error {
	if !(p.DX > 0) {
		return ErrInvalidStep
	}

	return nil
}

// samples returns the number of grid steps, floor((X2-X1)/DX).
func (p Problem) samples() int {
	return int((p.X2 - p.X1) / p.DX)
}

// sample evaluates the integrand at the i-th grid point.
func (p Problem) sample(i int) float64 {
	return math.Sin(p.X1 + float64(i)*p.DX)
}

// Result holds one kernel run: the wall-clock time of the summation loop
// and the approximated area.
type Result struct {
	Elapsed time.Duration
	Area    float64
}

// Run dispatches to the kernel selected by m. The sequential methods
// ignore threads.
func (p Problem) Run(m Method, threads int) (Result, error) {
	switch m {
	case Rectangle:
		return p.Rectangle(threads)
	case Trapezoid:
		return p.Trapezoid(threads)
	case RectangleSequential:
		return p.RectangleSequential()
	case TrapezoidSequential:
		return p.TrapezoidSequential()
	default:
		return Result{}, ErrUnknownMethod
	}
}

// Rectangle approximates the integral with the rectangle rule, splitting
// the sample indices [1, N] across threads workers. The partial sums are
// combined with an associative reduction, so the result may differ from
// the sequential sum in its low-order bits.
func (p Problem) Rectangle(threads int) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	if threads < 1 {
		return Result{}, ErrInvalidThreads
	}

	n := p.samples()

	start := time.Now()
	s := parallel.Sum(threads, 1, n+1, p.sample)
	area := s * p.DX

	return Result{Elapsed: time.Since(start), Area: area}, nil
}

// Trapezoid approximates the integral with the trapezoidal rule: the
// interior samples [1, N) are summed across threads workers, then the
// half-weighted endpoints are added.
func (p Problem) Trapezoid(threads int) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	if threads < 1 {
		return Result{}, ErrInvalidThreads
	}

	n := p.samples()

	start := time.Now()
	s := parallel.Sum(threads, 1, n, p.sample)
	area := (s + (math.Sin(p.X1)+math.Sin(p.X2))/2) * p.DX

	return Result{Elapsed: time.Since(start), Area: area}, nil
}

// RectangleSequential is the single-threaded rectangle rule. It is the
// timing baseline for the parallel variants.
func (p Problem) RectangleSequential() (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	n := p.samples()

	start := time.Now()

	s := 0.0
	for i := 1; i <= n; i++ {
		s += math.Sin(p.X1 + float64(i)*p.DX)
	}

	area := s * p.DX

	return Result{Elapsed: time.Since(start), Area: area}, nil
}

// TrapezoidSequential is the single-threaded trapezoidal rule.
func (p Problem) TrapezoidSequential() (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	n := p.samples()

	start := time.Now()

	s := 0.0
	for i := 1; i < n; i++ {
		s += math.Sin(p.X1 + float64(i)*p.DX)
	}

	area := (s + (math.Sin(p.X1)+math.Sin(p.X2))/2) * p.DX

	return Result{Elapsed: time.Since(start), Area: area}, nil
}
