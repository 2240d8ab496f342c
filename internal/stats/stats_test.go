package stats

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHistogramCountsEverySample(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64(rng.Intn(256))
	}

	hist := Histogram(samples, 256, 0, 255)
	total := 0
	for _, c := range hist {
		total += c
	}
	require.Equal(t, len(samples), total)
}

func TestHistogramQuantizesDeclaredRange(t *testing.T) {
	hist := Histogram([]float64{0, 127, 255}, 256, 0, 255)
	require.Equal(t, 1, hist[0])
	require.Equal(t, 1, hist[127])
	require.Equal(t, 1, hist[255])
}

func TestQuantizeClampsOutOfRange(t *testing.T) {
	require.Equal(t, 0, Quantize(-10, 256, 0, 255))
	require.Equal(t, 255, Quantize(300, 256, 0, 255))
	require.Equal(t, 0, Quantize(5, 256, 10, 10))
}

func TestCDFMonotoneAndNormalized(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	hist := make([]int, 256)
	for i := range hist {
		hist[i] = rng.Intn(50)
	}
	hist[3]++ // guarantee a non-zero total

	cdf, err := CDF(hist, 255)
	require.NoError(t, err)
	require.Len(t, cdf, 256)
	for i := 1; i < len(cdf); i++ {
		require.GreaterOrEqual(t, cdf[i], cdf[i-1])
	}
	require.InDelta(t, 255.0, cdf[255], 1e-9)
}

func TestCDFEmptyHistogram(t *testing.T) {
	_, err := CDF(make([]int, 256), 255)
	require.Error(t, err)

	var degenerate *DegenerateRangeError
	require.True(t, errors.As(err, &degenerate))
}

func TestOccupied(t *testing.T) {
	hist := make([]int, 8)
	require.Equal(t, 0, Occupied(hist))
	hist[2] = 5
	require.Equal(t, 1, Occupied(hist))
	hist[7] = 1
	require.Equal(t, 2, Occupied(hist))
}

func TestMinMaxAndMean(t *testing.T) {
	lo, hi := MinMax([]float64{4, -2, 9, 9, 0})
	require.Equal(t, -2.0, lo)
	require.Equal(t, 9.0, hi)

	require.Equal(t, 4.0, Mean([]float64{2, 4, 6}))

	lo, hi = MinMax(nil)
	require.Equal(t, 0.0, lo)
	require.Equal(t, 0.0, hi)
	require.Equal(t, 0.0, Mean(nil))
}
