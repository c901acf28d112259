package bench

import (
	"math"
	"time"
)

// Summary holds aggregate statistics over repeated run times.
type Summary struct {
	Count  int
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration // sample standard deviation; zero for fewer than two samples
}

// Summarize computes min, max, mean, and standard deviation over samples
// in a single pass, using Welford's online update for the variance term so
// the second moment stays numerically stable.
func Summarize(samples []time.Duration) Summary {
	if len(samples) == 0 {
		return Summary{}
	}

	s := Summary{Count: len(samples), Min: samples[0], Max: samples[0]}

	var mean, m2 float64

	for i, d := range samples {
		if d < s.Min {
			s.Min = d
		}

		if d > s.Max {
			s.Max = d
		}

		x := d.Seconds()
		delta := x - mean
		mean += delta / float64(i+1)
		m2 += delta * (x - mean)
	}

	s.Mean = time.Duration(mean * float64(time.Second))

	if s.Count > 1 {
		s.StdDev = time.Duration(math.Sqrt(m2/float64(s.Count-1)) * float64(time.Second))
	}

	return s
}
