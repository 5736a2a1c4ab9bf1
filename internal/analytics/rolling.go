// Package analytics derives the dashboard statistics from a conversation
// export. Every function here is a pure transformation over in-memory
// values: no I/O, no shared state, empty input yields empty well-shaped
// output.
package analytics

import "math"

// RollingAverage computes a trailing inclusive mean with window size w.
// The output has the same length as values; at the start of the series the
// window covers however many points exist so far, so there is no padding
// and RollingAverage(v, 1) equals v.
func RollingAverage(values []float64, w int) []float64 {
	if w < 1 {
		w = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= w {
			sum -= values[i-w]
		}
		n := i + 1
		if n > w {
			n = w
		}
		out[i] = sum / float64(n)
	}
	return out
}

// ExpandingAverage computes the lifetime running mean: element i is the
// mean of values[0..i].
func ExpandingAverage(values []float64) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		out[i] = sum / float64(i+1)
	}
	return out
}

func rolledRounded(values []float64, w int) []float64 {
	out := RollingAverage(values, w)
	for i := range out {
		out[i] = round2(out[i])
	}
	return out
}

func expandingRounded(values []float64) []float64 {
	out := ExpandingAverage(values)
	for i := range out {
		out[i] = round2(out[i])
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// safeDiv divides and rounds to two decimals, returning 0 when the
// denominator is 0. Never NaN, never Inf.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return round2(num / den)
}
