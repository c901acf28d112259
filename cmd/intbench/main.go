// Command intbench benchmarks numerical integration of sin over [X1, X2].
//
// Usage:
//
//	intbench X1 X2 DX METHOD THREADS
//
// With the five positional arguments it runs the selected kernel once and
// prints one machine-readable line:
//
//	METHOD,THREADS,TIME,AREA
//
// with the time in seconds and eight decimal places. Without arguments it
// prompts for the same parameters on standard input and prints a speedup
// table for thread counts 1..16 (a single row for the sequential methods).
//
// Methods: 1 rectangle (parallel), 2 trapezoidal (parallel), 3 rectangle
// (sequential), 4 trapezoidal (sequential).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-parbench/bench"
	"github.com/cwbudde/algo-parbench/integrate"
)

const (
	maxThreads         = 16
	interactiveRepeats = 3 // runs per configuration; the mean is reported
)

type config struct {
	problem integrate.Problem
	method  integrate.Method
	threads int
}

func main() {
	switch len(os.Args) {
	case 1:
		if err := interactive(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case 6:
		cfg, err := parseArgs(os.Args[1:])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}

		if err := batch(os.Stdout, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: intbench [X1 X2 DX METHOD THREADS]\n\n")
	fmt.Fprintf(os.Stderr, "Benchmarks numerical integration of sin over [X1, X2] with step DX.\n")
	fmt.Fprintf(os.Stderr, "With all five arguments it runs once and prints METHOD,THREADS,TIME,AREA.\n")
	fmt.Fprintf(os.Stderr, "Without arguments it prompts for parameters and prints a speedup table.\n\n")
	fmt.Fprintf(os.Stderr, "Methods:\n")
	fmt.Fprintf(os.Stderr, "  1  rectangle (parallel)\n")
	fmt.Fprintf(os.Stderr, "  2  trapezoidal (parallel)\n")
	fmt.Fprintf(os.Stderr, "  3  rectangle (sequential)\n")
	fmt.Fprintf(os.Stderr, "  4  trapezoidal (sequential)\n")
}

func parseArgs(args []string) (config, error) {
	var cfg config

	x1, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid X1 %q: %w", args[0], err)
	}

	x2, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid X2 %q: %w", args[1], err)
	}

	dx, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return cfg, fmt.Errorf("invalid DX %q: %w", args[2], err)
	}

	method, err := strconv.Atoi(args[3])
	if err != nil {
		return cfg, fmt.Errorf("invalid METHOD %q: %w", args[3], err)
	}

	threads, err := strconv.Atoi(args[4])
	if err != nil {
		return cfg, fmt.Errorf("invalid THREADS %q: %w", args[4], err)
	}

	cfg = config{
		problem: integrate.Problem{X1: x1, X2: x2, DX: dx},
		method:  integrate.Method(method),
		threads: threads,
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c config) validate() error {
	if !c.method.Valid() {
		return fmt.Errorf("method must be 1-4, got %d", int(c.method))
	}

	if c.threads < 1 {
		return fmt.Errorf("threads must be at least 1, got %d", c.threads)
	}

	return c.problem.Validate()
}

// batch runs the configured kernel once and prints the CSV result line.
func batch(w io.Writer, cfg config) error {
	res, err := cfg.problem.Run(cfg.method, cfg.threads)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%d,%d,%.8f,%.8f\n",
		int(cfg.method), cfg.threads, res.Elapsed.Seconds(), res.Area)

	return err
}

// interactive prompts for parameters, runs a sweep, and starts over until
// standard input is exhausted.
func interactive(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	for {
		cfg, ok := promptConfig(sc, out)
		if !ok {
			return sc.Err()
		}

		rows, area, err := sweep(cfg)
		if err != nil {
			fmt.Fprintf(out, "   Error: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "\n   Results (%s):\n", cfg.method)
		printTable(out, rows)
		fmt.Fprintf(out, "   Area: %.8f\n\n", area)
	}
}

func promptConfig(sc *bufio.Scanner, out io.Writer) (config, bool) {
	for {
		x1, ok := promptFloat(sc, out, "   X1: ")
		if !ok {
			return config{}, false
		}

		x2, ok := promptFloat(sc, out, "   X2: ")
		if !ok {
			return config{}, false
		}

		dx, ok := promptFloat(sc, out, "   dx: ")
		if !ok {
			return config{}, false
		}

		method, ok := promptInt(sc, out, "   Method (1 - rectangle, 2 - trapezoidal, 3 - sequential rectangle, 4 - sequential trapezoidal): ")
		if !ok {
			return config{}, false
		}

		cfg := config{
			problem: integrate.Problem{X1: x1, X2: x2, DX: dx},
			method:  integrate.Method(method),
			threads: maxThreads,
		}

		if err := cfg.validate(); err != nil {
			fmt.Fprintf(out, "   Error: %v\n", err)
			continue
		}

		return cfg, true
	}
}

func promptFloat(sc *bufio.Scanner, out io.Writer, label string) (float64, bool) {
	for {
		fmt.Fprint(out, label)

		if !sc.Scan() {
			return 0, false
		}

		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			fmt.Fprintf(out, "   Invalid number %q, try again.\n", sc.Text())
			continue
		}

		return v, true
	}
}

func promptInt(sc *bufio.Scanner, out io.Writer, label string) (int, bool) {
	for {
		fmt.Fprint(out, label)

		if !sc.Scan() {
			return 0, false
		}

		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			fmt.Fprintf(out, "   Invalid number %q, try again.\n", sc.Text())
			continue
		}

		return v, true
	}
}

// sweep measures the configured kernel across thread counts. The returned
// area comes from the final run; all runs compute the same value up to
// reduction ordering.
func sweep(cfg config) ([]bench.Row, float64, error) {
	bc := bench.Config{MaxThreads: maxThreads, Repeats: interactiveRepeats}

	var area float64

	run := func(threads int) (time.Duration, error) {
		res, err := cfg.problem.Run(cfg.method, threads)
		if err != nil {
			return 0, err
		}

		area = res.Area

		return res.Elapsed, nil
	}

	var (
		rows []bench.Row
		err  error
	)

	if cfg.method.Parallel() {
		rows, err = bc.Sweep(run)
	} else {
		rows, err = bc.Single(run)
	}

	if err != nil {
		return nil, 0, err
	}

	return rows, area, nil
}

func printTable(w io.Writer, rows []bench.Row) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "   Threads\tTime (s)\tSpeedup\tEfficiency\n")
	fmt.Fprintf(tw, "   -------\t--------\t-------\t----------\n")

	for _, r := range rows {
		fmt.Fprintf(tw, "   %d\t%.6f\t%.2f\t%.2f\n",
			r.Threads, r.Time.Seconds(), r.Speedup, r.Efficiency)
	}

	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}
