// Package parallel provides fork-join helpers for splitting an index range
// across a caller-chosen number of workers.
//
// The worker count is a per-call parameter. Workers are plain goroutines
// spawned for the duration of one call and joined before it returns, so
// successive calls may use different counts and no idle workers outlive a
// call. Counts above the host's core count are permitted; the scheduler
// multiplexes them.
package parallel

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ForEach splits [lo, hi) into at most workers contiguous chunks and runs
// fn on each chunk concurrently, returning once every chunk has completed.
//
// Worker counts below 1 are treated as 1; counts above hi-lo are capped so
// no worker receives an empty chunk. fn must be safe to call concurrently
// for disjoint ranges.
func ForEach(workers, lo, hi int, fn func(start, end int)) {
	n := hi - lo
	if n <= 0 {
		return
	}

	if workers < 1 {
		workers = 1
	}

	if workers > n {
		workers = n
	}

	if workers == 1 {
		fn(lo, hi)
		return
	}

	chunk := n / workers
	rem := n % workers

	var wg sync.WaitGroup
	wg.Add(workers)

	start := lo
	for w := 0; w < workers; w++ {
		end := start + chunk
		if w < rem {
			end++
		}

		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)

		start = end
	}

	wg.Wait()
}

// Sum evaluates f for every index in [lo, hi), splitting the range across
// workers, and returns the total. Each worker accumulates a private partial
// sum; the partials are combined with vecmath.Sum after the join.
//
// The combine order differs from a left-to-right sequential sum, so the
// low-order bits of the result may differ between worker counts. Floating
// point addition is associative only up to rounding.
func Sum(workers, lo, hi int, f func(i int) float64) float64 {
	n := hi - lo
	if n <= 0 {
		return 0
	}

	if workers < 1 {
		workers = 1
	}

	if workers > n {
		workers = n
	}

	if workers == 1 {
		s := 0.0
		for i := lo; i < hi; i++ {
			s += f(i)
		}

		return s
	}

	chunk := n / workers
	rem := n % workers
	partials := make([]float64, workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	start := lo
	for w := 0; w < workers; w++ {
		end := start + chunk
		if w < rem {
			end++
		}

		go func(w, s, e int) {
			defer wg.Done()

			sum := 0.0
			for i := s; i < e; i++ {
				sum += f(i)
			}

			partials[w] = sum
		}(w, start, end)

		start = end
	}

	wg.Wait()

	return vecmath.Sum(partials)
}
