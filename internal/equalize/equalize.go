// Package equalize turns intensity histograms into CDF-based remapping
// curves, with the clip-and-redistribute policy CLAHE layers on top.
package equalize

import (
	"math"

	"contrast-conjurer/internal/stats"
)

// IdentityMapping returns the curve that maps every quantized level back
// to its own intensity, spanning [0, outputMax].
func IdentityMapping(levels int, outputMax float64) []float64 {
	mapping := make([]float64, levels)
	for i := range mapping {
		mapping[i] = float64(i) / float64(levels-1) * outputMax
	}
	return mapping
}

// BuildMapping converts a histogram into a monotone remapping curve over
// [0, outputMax].
//
// clipLimit is expressed as a multiple of the mean bin count; bins above
// the limit are clipped and the excess is spread uniformly across all
// bins before the CDF is taken. clipLimit 0 disables clipping, which
// yields standard global histogram equalization.
//
// Histograms with at most one occupied bin are degenerate (a flat tile or
// image); they yield the identity mapping so flat regions pass through
// unchanged instead of failing.
func BuildMapping(hist []int, clipLimit, outputMax float64) []float64 {
	levels := len(hist)
	total := 0
	for _, c := range hist {
		total += c
	}
	if total == 0 || stats.Occupied(hist) <= 1 {
		return IdentityMapping(levels, outputMax)
	}

	counts := make([]float64, levels)
	for i, c := range hist {
		counts[i] = float64(c)
	}

	if clipLimit > 0 {
		threshold := clipLimit * float64(total) / float64(levels)
		excess := 0.0
		for i, c := range counts {
			if c > threshold {
				excess += c - threshold
				counts[i] = threshold
			}
		}
		share := excess / float64(levels)
		for i := range counts {
			counts[i] += share
		}
	}

	// CDF with cdf-min normalization: the first occupied level maps to 0
	// and the last to outputMax, so equalized output spans the full range.
	cdf := make([]float64, levels)
	running := 0.0
	for i, c := range counts {
		running += c
		cdf[i] = running
	}
	cdfMin := math.Inf(1)
	for _, v := range cdf {
		if v > 0 && v < cdfMin {
			cdfMin = v
		}
	}
	cdfMax := cdf[levels-1]
	if !(cdfMax > cdfMin) {
		return IdentityMapping(levels, outputMax)
	}

	mapping := make([]float64, levels)
	for i, v := range cdf {
		m := (v - cdfMin) / (cdfMax - cdfMin) * outputMax
		if m < 0 {
			m = 0
		}
		mapping[i] = m
	}
	return mapping
}

// Apply remaps every sample through the curve: each sample is quantized
// against [lo, hi] and replaced by mapping[bin]. Pure function; the input
// slice is not modified.
func Apply(samples, mapping []float64, lo, hi float64) []float64 {
	levels := len(mapping)
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = mapping[stats.Quantize(v, levels, lo, hi)]
	}
	return out
}
