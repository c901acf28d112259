// Command matbench benchmarks dense square matrix multiplication.
//
// Usage:
//
//	matbench N NEIB METHOD THREADS
//
// With the four positional arguments it multiplies two random N×N matrices
// once with the selected kernel and prints one machine-readable line:
//
//	METHOD,THREADS,TIME
//
// with the time in seconds and eight decimal places. N must be divisible
// by the block size NEIB when the blocked method is selected; violations
// exit nonzero. Without arguments it prompts for the same parameters on
// standard input, shows a top-left preview of the operands, and prints a
// speedup table for thread counts 1..16 (a single row for the sequential
// method) followed by a preview of the result.
//
// Methods: 1 blocked, 2 standard, 3 sequential.
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
	"github.com/cwbudde/algo-parbench/matmul"
)

const (
	maxThreads         = 16
	interactiveRepeats = 3 // runs per configuration; the mean is reported
	previewSize        = 5
)

type config struct {
	n         int
	blockSize int
	method    matmul.Method
	threads   int
}

func main() {
	switch len(os.Args) {
	case 1:
		if err := interactive(os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	case 5:
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
	fmt.Fprintf(os.Stderr, "Usage: matbench [N NEIB METHOD THREADS]\n\n")
	fmt.Fprintf(os.Stderr, "Benchmarks N×N matrix multiplication with block size NEIB.\n")
	fmt.Fprintf(os.Stderr, "With all four arguments it runs once and prints METHOD,THREADS,TIME.\n")
	fmt.Fprintf(os.Stderr, "Without arguments it prompts for parameters and prints a speedup table.\n\n")
	fmt.Fprintf(os.Stderr, "Methods:\n")
	fmt.Fprintf(os.Stderr, "  1  blocked\n")
	fmt.Fprintf(os.Stderr, "  2  standard\n")
	fmt.Fprintf(os.Stderr, "  3  sequential\n")
}

func parseArgs(args []string) (config, error) {
	var cfg config

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return cfg, fmt.Errorf("invalid N %q: %w", args[0], err)
	}

	blockSize, err := strconv.Atoi(args[1])
	if err != nil {
		return cfg, fmt.Errorf("invalid NEIB %q: %w", args[1], err)
	}

	method, err := strconv.Atoi(args[2])
	if err != nil {
		return cfg, fmt.Errorf("invalid METHOD %q: %w", args[2], err)
	}

	threads, err := strconv.Atoi(args[3])
	if err != nil {
		return cfg, fmt.Errorf("invalid THREADS %q: %w", args[3], err)
	}

	cfg = config{n: n, blockSize: blockSize, method: matmul.Method(method), threads: threads}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c config) validate() error {
	if c.n < 1 {
		return matmul.ErrInvalidSize
	}

	if !c.method.Valid() {
		return fmt.Errorf("method must be 1-3, got %d", int(c.method))
	}

	if c.threads < 1 {
		return matmul.ErrInvalidThreads
	}

	if c.method == matmul.Blocked {
		if c.blockSize < 1 || c.blockSize > c.n {
			return matmul.ErrInvalidBlock
		}

		if c.n%c.blockSize != 0 {
			return matmul.ErrBlockDivide
		}
	}

	return nil
}

// batch multiplies two random matrices once and prints the CSV result line.
func batch(w io.Writer, cfg config) error {
	a, b, c, err := newOperands(cfg.n)
	if err != nil {
		return err
	}

	res, err := matmul.Run(cfg.method, a, b, c, cfg.blockSize, cfg.threads)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%d,%d,%.8f\n",
		int(cfg.method), cfg.threads, res.Elapsed.Seconds())

	return err
}

func newOperands(n int) (a, b, c *matmul.Matrix, err error) {
	a, err = matmul.NewRandom(n)
	if err != nil {
		return nil, nil, nil, err
	}

	b, err = matmul.NewRandom(n)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err = matmul.New(n)
	if err != nil {
		return nil, nil, nil, err
	}

	return a, b, c, nil
}

// interactive prompts for parameters, runs a sweep on fresh random
// operands, and starts over until standard input is exhausted.
func interactive(in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)

	for {
		cfg, ok := promptConfig(sc, out)
		if !ok {
			return sc.Err()
		}

		a, b, c, err := newOperands(cfg.n)
		if err != nil {
			fmt.Fprintf(out, "   Error: %v\n", err)
			continue
		}

		fmt.Fprintln(out, "\n   Sample of matrix A (top-left corner):")
		printMatrix(out, a)
		fmt.Fprintln(out, "   Sample of matrix B (top-left corner):")
		printMatrix(out, b)

		rows, err := sweep(cfg, a, b, c)
		if err != nil {
			fmt.Fprintf(out, "   Error: %v\n", err)
			continue
		}

		fmt.Fprintf(out, "\n   Results (%s):\n", cfg.method)
		printTable(out, rows)
		fmt.Fprintln(out, "   Sample of result matrix C (top-left corner):")
		printMatrix(out, c)
	}
}

func promptConfig(sc *bufio.Scanner, out io.Writer) (config, bool) {
	for {
		n, ok := promptInt(sc, out, "   Matrix size (N): ")
		if !ok {
			return config{}, false
		}

		blockSize, ok := promptInt(sc, out, "   Block size (NEIB): ")
		if !ok {
			return config{}, false
		}

		method, ok := promptInt(sc, out, "   Method (1 - blocked, 2 - standard, 3 - sequential): ")
		if !ok {
			return config{}, false
		}

		cfg := config{n: n, blockSize: blockSize, method: matmul.Method(method), threads: maxThreads}

		if err := cfg.validate(); err != nil {
			fmt.Fprintf(out, "   Error: %v\n", err)
			continue
		}

		return cfg, true
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

// sweep measures the configured kernel across thread counts, zeroing the
// accumulating output matrix before every run.
func sweep(cfg config, a, b, c *matmul.Matrix) ([]bench.Row, error) {
	bc := bench.Config{MaxThreads: maxThreads, Repeats: interactiveRepeats}

	run := func(threads int) (time.Duration, error) {
		c.Reset()

		res, err := matmul.Run(cfg.method, a, b, c, cfg.blockSize, threads)
		if err != nil {
			return 0, err
		}

		return res.Elapsed, nil
	}

	if cfg.method.Parallel() {
		return bc.Sweep(run)
	}

	return bc.Single(run)
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

// printMatrix writes the top-left corner of m, at most previewSize rows
// and columns, marking truncation with ellipses.
func printMatrix(w io.Writer, m *matmul.Matrix) {
	n := m.N()

	d := n
	if d > previewSize {
		d = previewSize
	}

	for i := 0; i < d; i++ {
		fmt.Fprint(w, "   ")

		for j := 0; j < d; j++ {
			fmt.Fprintf(w, "%8.4f ", m.At(i, j))
		}

		if n > previewSize {
			fmt.Fprint(w, "...")
		}

		fmt.Fprintln(w)
	}

	if n > previewSize {
		fmt.Fprintln(w, "   ...")
	}

	fmt.Fprintln(w)
}
