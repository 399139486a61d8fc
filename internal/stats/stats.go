// Package stats computes the descriptive statistics shown next to every
// preview and execute: min, max, mean and sample standard deviation per
// column, before and after the modification.
package stats

import "math"

// Summary holds descriptive statistics of one numeric series. Count is the
// number of valid samples; with zero valid samples the four statistics are
// zero and meaningless.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	Std   float64
}

// Summarize computes min/max/mean/std over the valid samples of a series,
// ignoring missing cells. Std is the sample standard deviation (N-1), zero
// when fewer than two valid samples exist. The mean uses a single-pass
// Welford update so long series stay numerically stable.
func Summarize(values []float64, valid []bool) Summary {
	s := Summary{Min: math.Inf(1), Max: math.Inf(-1)}
	var mean, m2 float64
	for i, v := range values {
		if valid != nil && !valid[i] {
			continue
		}
		s.Count++
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
		delta := v - mean
		mean += delta / float64(s.Count)
		m2 += delta * (v - mean)
	}
	if s.Count == 0 {
		return Summary{}
	}
	s.Mean = mean
	if s.Count > 1 {
		s.Std = math.Sqrt(m2 / float64(s.Count-1))
	}
	return s
}
