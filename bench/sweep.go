// Package bench turns repeated kernel runs into speedup and efficiency
// reports.
//
// A sweep measures one kernel at every worker count from 1 to a maximum
// and relates each row to the 1-worker baseline: speedup is baseline time
// over row time, efficiency is speedup over worker count. Sequential
// kernels produce a single baseline row instead.
package bench

import (
	"errors"
	"time"
)

// Errors returned by sweep configuration.
var (
	ErrInvalidMaxThreads = errors.New("bench: max threads must be at least 1")
	ErrInvalidRepeats    = errors.New("bench: repeats must be at least 1")
)

// RunFunc measures one kernel execution with the given worker count and
// returns its wall-clock time. The callback owns any per-run state reset,
// such as zeroing an output matrix that kernels accumulate into.
type RunFunc func(threads int) (time.Duration, error)

// Config controls a thread-count sweep.
type Config struct {
	MaxThreads int // highest worker count measured; rows cover 1..MaxThreads
	Repeats    int // measurements per worker count; the mean is recorded
}

// Validate checks that the Config parameters are usable.
func (c Config) Validate() error {
	if c.MaxThreads < 1 {
		return ErrInvalidMaxThreads
	}

	if c.Repeats < 1 {
		return ErrInvalidRepeats
	}

	return nil
}

// Row is one sweep line.
type Row struct {
	Threads    int
	Time       time.Duration
	Speedup    float64 // baseline time / Time
	Efficiency float64 // Speedup / Threads
}

// Sweep measures run for every worker count from 1 to MaxThreads and
// derives speedup and efficiency against the 1-worker row.
func (c Config) Sweep(run RunFunc) ([]Row, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, c.MaxThreads)

	for t := 1; t <= c.MaxThreads; t++ {
		mean, err := c.measure(t, run)
		if err != nil {
			return nil, err
		}

		rows = append(rows, Row{Threads: t, Time: mean})
	}

	relate(rows)

	return rows, nil
}

// Single measures run once at one worker and returns a single baseline
// row. Use it for kernels with no parallel variant; its speedup and
// efficiency are 1 by construction.
func (c Config) Single(run RunFunc) ([]Row, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	mean, err := c.measure(1, run)
	if err != nil {
		return nil, err
	}

	rows := []Row{{Threads: 1, Time: mean}}
	relate(rows)

	return rows, nil
}

// measure runs the callback Repeats times at the given worker count and
// returns the mean duration.
func (c Config) measure(threads int, run RunFunc) (time.Duration, error) {
	samples := make([]time.Duration, 0, c.Repeats)

	for r := 0; r < c.Repeats; r++ {
		d, err := run(threads)
		if err != nil {
			return 0, err
		}

		samples = append(samples, d)
	}

	return Summarize(samples).Mean, nil
}

// relate fills Speedup and Efficiency against the first row's time.
func relate(rows []Row) {
	base := rows[0].Time.Seconds()
	for i := range rows {
		sp := base / rows[i].Time.Seconds()
		rows[i].Speedup = sp
		rows[i].Efficiency = sp / float64(rows[i].Threads)
	}
}
