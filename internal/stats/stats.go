// Package stats provides the intensity reductions the enhancement stages
// are built from: histograms, cumulative distribution functions, and
// min/max/mean over float64 sample planes.
package stats

import (
	"fmt"
	"math"
)

// DegenerateRangeError reports a reduction over an empty or single-valued
// sample set where a non-degenerate range is required.
type DegenerateRangeError struct {
	Reason string
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("degenerate intensity range: %s", e.Reason)
}

// Quantize maps a sample in [lo, hi] to a bin index in [0, levels-1].
// Out-of-range samples clamp to the first or last bin.
func Quantize(v float64, levels int, lo, hi float64) int {
	if hi <= lo {
		return 0
	}
	bin := int(math.Round((v - lo) / (hi - lo) * float64(levels-1)))
	if bin < 0 {
		return 0
	}
	if bin >= levels {
		return levels - 1
	}
	return bin
}

// Histogram counts samples into levels bins spanning [lo, hi].
// The sum of the counts always equals len(samples).
func Histogram(samples []float64, levels int, lo, hi float64) []int {
	hist := make([]int, levels)
	for _, v := range samples {
		hist[Quantize(v, levels, lo, hi)]++
	}
	return hist
}

// CDF returns the running sum of hist normalized to [0, outputMax].
// The last element equals outputMax whenever the histogram is non-empty.
func CDF(hist []int, outputMax float64) ([]float64, error) {
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 {
		return nil, &DegenerateRangeError{Reason: "histogram has zero total count"}
	}

	cdf := make([]float64, len(hist))
	running := 0
	for i, c := range hist {
		running += c
		cdf[i] = float64(running) / float64(total) * outputMax
	}
	return cdf, nil
}

// Occupied returns the number of non-zero histogram bins.
func Occupied(hist []int) int {
	n := 0
	for _, c := range hist {
		if c > 0 {
			n++
		}
	}
	return n
}

// MinMax returns the smallest and largest sample. Empty input yields (0, 0).
func MinMax(samples []float64) (float64, float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	lo, hi := samples[0], samples[0]
	for _, v := range samples[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Mean returns the arithmetic mean. Empty input yields 0.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}
