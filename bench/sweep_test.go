package bench

import (
	"errors"
	"math"
	"testing"
	"time"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSweepComputesSpeedupAndEfficiency(t *testing.T) {
	c := Config{MaxThreads: 4, Repeats: 1}

	// Ideal scaling: time halves when the worker count doubles.
	rows, err := c.Sweep(func(threads int) (time.Duration, error) {
		return 120 * time.Millisecond / time.Duration(threads), nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 4 {
		t.Fatalf("got %d rows, want 4", len(rows))
	}

	if rows[0].Speedup != 1 || rows[0].Efficiency != 1 {
		t.Fatalf("baseline row: speedup %v, efficiency %v, want 1 and 1",
			rows[0].Speedup, rows[0].Efficiency)
	}

	for i, r := range rows {
		wantThreads := i + 1
		if r.Threads != wantThreads {
			t.Errorf("row %d: threads = %d, want %d", i, r.Threads, wantThreads)
		}

		if !almostEqual(r.Speedup, float64(wantThreads), 1e-9) {
			t.Errorf("row %d: speedup = %v, want %d", i, r.Speedup, wantThreads)
		}

		if !almostEqual(r.Efficiency, 1, 1e-9) {
			t.Errorf("row %d: efficiency = %v, want 1", i, r.Efficiency)
		}
	}
}

func TestSweepRepeatsAndRecordsMean(t *testing.T) {
	c := Config{MaxThreads: 2, Repeats: 3}

	calls := map[int]int{}

	rows, err := c.Sweep(func(threads int) (time.Duration, error) {
		calls[threads]++
		// Successive runs report 10, 20, 30 ms; the mean is 20 ms.
		return time.Duration(calls[threads]) * 10 * time.Millisecond, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for threads := 1; threads <= 2; threads++ {
		if calls[threads] != 3 {
			t.Errorf("threads=%d measured %d times, want 3", threads, calls[threads])
		}
	}

	for i, r := range rows {
		if diff := (r.Time - 20*time.Millisecond).Abs(); diff > time.Microsecond {
			t.Errorf("row %d: mean time = %v, want 20ms", i, r.Time)
		}
	}
}

func TestSingle(t *testing.T) {
	c := Config{MaxThreads: 16, Repeats: 1}

	rows, err := c.Single(func(threads int) (time.Duration, error) {
		if threads != 1 {
			t.Fatalf("Single ran with %d threads", threads)
		}

		return 50 * time.Millisecond, nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	r := rows[0]
	if r.Threads != 1 || r.Speedup != 1 || r.Efficiency != 1 {
		t.Fatalf("row = %+v, want threads 1, speedup 1, efficiency 1", r)
	}
}

func TestSweepPropagatesError(t *testing.T) {
	errBoom := errors.New("boom")

	c := Config{MaxThreads: 4, Repeats: 1}

	_, err := c.Sweep(func(threads int) (time.Duration, error) {
		if threads == 3 {
			return 0, errBoom
		}

		return time.Millisecond, nil
	})

	if !errors.Is(err, errBoom) {
		t.Fatalf("error = %v, want errBoom", err)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{MaxThreads: 0, Repeats: 1}).Validate(); !errors.Is(err, ErrInvalidMaxThreads) {
		t.Errorf("error = %v, want ErrInvalidMaxThreads", err)
	}

	if err := (Config{MaxThreads: 1, Repeats: 0}).Validate(); !errors.Is(err, ErrInvalidRepeats) {
		t.Errorf("error = %v, want ErrInvalidRepeats", err)
	}

	if _, err := (Config{}).Sweep(nil); err == nil {
		t.Error("Sweep with zero Config succeeded, want error")
	}

	if _, err := (Config{}).Single(nil); err == nil {
		t.Error("Single with zero Config succeeded, want error")
	}
}
