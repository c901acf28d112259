package parallel

import (
	"math"
	"sync"
	"testing"
)

func TestForEachCoversRangeOnce(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 5, 16, 64} {
		for _, n := range []int{1, 2, 7, 100} {
			visits := make([]int, n)

			var mu sync.Mutex

			ForEach(workers, 0, n, func(start, end int) {
				mu.Lock()
				defer mu.Unlock()

				for i := start; i < end; i++ {
					visits[i]++
				}
			})

			for i, v := range visits {
				if v != 1 {
					t.Fatalf("workers=%d n=%d: index %d visited %d times", workers, n, i, v)
				}
			}
		}
	}
}

func TestForEachOffsetRange(t *testing.T) {
	var mu sync.Mutex

	sum := 0

	ForEach(3, 10, 20, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()

		for i := start; i < end; i++ {
			sum += i
		}
	})

	if want := 145; sum != want {
		t.Fatalf("sum over [10,20) = %d, want %d", sum, want)
	}
}

func TestForEachEmptyRange(t *testing.T) {
	called := false

	ForEach(4, 3, 3, func(start, end int) { called = true })
	ForEach(4, 5, 2, func(start, end int) { called = true })

	if called {
		t.Fatal("fn called for empty range")
	}
}

func TestForEachZeroWorkers(t *testing.T) {
	var mu sync.Mutex

	count := 0

	ForEach(0, 0, 10, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()

		count += end - start
	})

	if count != 10 {
		t.Fatalf("covered %d indices, want 10", count)
	}
}

func TestSumMatchesSequential(t *testing.T) {
	f := func(i int) float64 { return math.Sin(float64(i) * 0.01) }

	want := 0.0
	for i := 1; i < 1001; i++ {
		want += f(i)
	}

	for _, workers := range []int{1, 2, 3, 7, 16} {
		got := Sum(workers, 1, 1001, f)
		if math.Abs(got-want) > 1e-9*math.Abs(want) {
			t.Errorf("workers=%d: Sum = %.15f, want %.15f", workers, got, want)
		}
	}
}

func TestSumExactForDyadicValues(t *testing.T) {
	// Halves are exact in binary, so any summation order gives the same
	// result.
	f := func(i int) float64 { return float64(i) * 0.5 }

	got := Sum(8, 0, 101, f)
	if want := 2525.0; got != want {
		t.Fatalf("Sum = %v, want %v", got, want)
	}
}

func TestSumEmptyRange(t *testing.T) {
	got := Sum(4, 5, 5, func(i int) float64 { return 1 })
	if got != 0 {
		t.Fatalf("Sum over empty range = %v, want 0", got)
	}
}

func TestSumZeroWorkers(t *testing.T) {
	got := Sum(0, 0, 10, func(i int) float64 { return float64(i) })
	if want := 45.0; got != want {
		t.Fatalf("Sum = %v, want %v", got, want)
	}
}
