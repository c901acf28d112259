package integrate

import (
	"math"
	"testing"
)

func BenchmarkRectangleSequential(b *testing.B) {
	p := Problem{X1: 0, X2: math.Pi, DX: 1e-6}

	b.ResetTimer()

	for b.Loop() {
		if _, err := p.RectangleSequential(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRectangleParallel(b *testing.B) {
	p := Problem{X1: 0, X2: math.Pi, DX: 1e-6}

	b.ResetTimer()

	for b.Loop() {
		if _, err := p.Rectangle(8); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTrapezoidParallel(b *testing.B) {
	p := Problem{X1: 0, X2: math.Pi, DX: 1e-6}

	b.ResetTimer()

	for b.Loop() {
		if _, err := p.Trapezoid(8); err != nil {
			b.Fatal(err)
		}
	}
}
