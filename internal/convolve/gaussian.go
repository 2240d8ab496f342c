// Package convolve implements the separable Gaussian low-pass filter used
// by unsharp masking.
package convolve

import (
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Kernel returns a normalized 1D Gaussian kernel of radius ceil(3*sigma),
// length 2*radius+1. Sigma must be positive; callers validate.
func Kernel(sigma float64) []float64 {
	radius := int(math.Ceil(3 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		x := float64(i - radius)
		kernel[i] = math.Exp(-x * x / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// Gaussian blurs a row-major w x h plane with a separable Gaussian of the
// given sigma. Sampling outside the plane replicates the nearest edge
// pixel, so the output has the same shape as the input. Rows and columns
// are independent, so each pass fans out across CPUs and joins before the
// next pass reads its output.
func Gaussian(plane []float64, w, h int, sigma float64) []float64 {
	kernel := Kernel(sigma)
	radius := len(kernel) / 2

	tmp := make([]float64, len(plane))
	out := make([]float64, len(plane))

	var horiz errgroup.Group
	horiz.SetLimit(runtime.GOMAXPROCS(0))
	for y := 0; y < h; y++ {
		row := plane[y*w : (y+1)*w]
		dst := tmp[y*w : (y+1)*w]
		horiz.Go(func() error {
			for x := 0; x < w; x++ {
				acc := 0.0
				for k, weight := range kernel {
					sx := clampIndex(x+k-radius, w)
					acc += weight * row[sx]
				}
				dst[x] = acc
			}
			return nil
		})
	}
	_ = horiz.Wait()

	var vert errgroup.Group
	vert.SetLimit(runtime.GOMAXPROCS(0))
	for x := 0; x < w; x++ {
		x := x
		vert.Go(func() error {
			for y := 0; y < h; y++ {
				acc := 0.0
				for k, weight := range kernel {
					sy := clampIndex(y+k-radius, h)
					acc += weight * tmp[sy*w+x]
				}
				out[y*w+x] = acc
			}
			return nil
		})
	}
	_ = vert.Wait()

	return out
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
