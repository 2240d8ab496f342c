package clahe

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"contrast-conjurer/internal/equalize"
	"contrast-conjurer/internal/stats"
)

func opts8bit(rows, cols int, clip float64) Options {
	return Options{
		TileRows:  rows,
		TileCols:  cols,
		ClipLimit: clip,
		Levels:    256,
		Lo:        0,
		Hi:        255,
		OutputMax: 255,
	}
}

func TestEnhanceValidatesOptions(t *testing.T) {
	plane := make([]float64, 16)

	_, err := Enhance(context.Background(), plane, 4, 4, opts8bit(0, 4, 0))
	require.Error(t, err)
	_, err = Enhance(context.Background(), plane, 4, 4, opts8bit(4, 0, 0))
	require.Error(t, err)
	_, err = Enhance(context.Background(), plane, 4, 4, opts8bit(4, 4, -1))
	require.Error(t, err)

	bad := opts8bit(4, 4, 0)
	bad.Levels = 1
	_, err = Enhance(context.Background(), plane, 4, 4, bad)
	require.Error(t, err)

	_, err = Enhance(context.Background(), plane, 5, 4, opts8bit(4, 4, 0))
	require.Error(t, err, "plane length mismatch")
}

func TestEnhanceFlatPlaneIsIdentity(t *testing.T) {
	plane := make([]float64, 16)
	for i := range plane {
		plane[i] = 100
	}

	for _, tiles := range [][2]int{{1, 1}, {2, 2}, {8, 8}} {
		for _, clip := range []float64{0, 2, 4} {
			out, err := Enhance(context.Background(), plane, 4, 4, opts8bit(tiles[0], tiles[1], clip))
			require.NoError(t, err)
			for i, v := range out {
				require.InDelta(t, 100.0, v, 1e-9, "tiles %v clip %g index %d", tiles, clip, i)
			}
		}
	}
}

func TestSingleTileMatchesGlobalEqualization(t *testing.T) {
	w, h := 16, 16
	rng := rand.New(rand.NewSource(4))
	plane := make([]float64, w*h)
	for i := range plane {
		plane[i] = float64(50 + rng.Intn(150))
	}

	out, err := Enhance(context.Background(), plane, w, h, opts8bit(1, 1, 0))
	require.NoError(t, err)

	hist := stats.Histogram(plane, 256, 0, 255)
	mapping := equalize.BuildMapping(hist, 0, 255)
	want := equalize.Apply(plane, mapping, 0, 255)

	require.Equal(t, want, out)
}

func TestEnhanceOutputWithinRange(t *testing.T) {
	w, h := 32, 24
	rng := rand.New(rand.NewSource(5))
	plane := make([]float64, w*h)
	for i := range plane {
		plane[i] = float64(rng.Intn(256))
	}

	out, err := Enhance(context.Background(), plane, w, h, opts8bit(4, 4, 2.5))
	require.NoError(t, err)
	for i, v := range out {
		require.GreaterOrEqual(t, v, 0.0, "index %d", i)
		require.LessOrEqual(t, v, 255.0, "index %d", i)
	}
}

func TestEnhanceRaisesLocalContrast(t *testing.T) {
	// Left half dark with small variation, right half bright with small
	// variation. Local equalization should spread each half's narrow
	// range far wider than it started.
	w, h := 32, 16
	plane := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			base := 40.0
			if x >= w/2 {
				base = 200.0
			}
			plane[y*w+x] = base + float64((x+y)%8)
		}
	}

	out, err := Enhance(context.Background(), plane, w, h, opts8bit(2, 2, 0))
	require.NoError(t, err)

	leftLo, leftHi := stats.MinMax(out[:w/2])
	require.Greater(t, leftHi-leftLo, 30.0, "local range should widen")
}

func TestInterpolationSmoothsTileSeams(t *testing.T) {
	// A horizontal gradient processed with a tile grid: neighboring
	// output pixels across tile boundaries should not jump wildly.
	w, h := 64, 64
	plane := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = float64(x) * 255 / float64(w-1)
		}
	}

	out, err := Enhance(context.Background(), plane, w, h, opts8bit(4, 4, 0))
	require.NoError(t, err)

	maxStep := 0.0
	for y := 0; y < h; y++ {
		for x := 1; x < w; x++ {
			step := out[y*w+x] - out[y*w+x-1]
			if step < 0 {
				step = -step
			}
			if step > maxStep {
				maxStep = step
			}
		}
	}
	// Nearest-tile remapping (no interpolation) jumps by ~250 levels at
	// the seams; interpolated output stays near the local mapping slope.
	require.Less(t, maxStep, 40.0)
}

func TestEnhanceHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plane := make([]float64, 64)
	_, err := Enhance(ctx, plane, 8, 8, opts8bit(2, 2, 0))
	require.Error(t, err)
}
