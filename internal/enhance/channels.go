package enhance

import (
	"context"

	"contrast-conjurer/internal/raster"
)

// luminanceKey is the optional bag entry selecting luminance-preserving
// application. The default is independent per-channel processing.
const luminanceKey = "luminance"

// Rec.709 luma weights, matching the grayscale conversion the original
// imagery was prepared with.
const (
	lumaR = 0.2125
	lumaG = 0.7154
	lumaB = 0.0721
)

// planeFunc transforms a single row-major intensity plane.
type planeFunc func(plane []float64, w, h int) ([]float64, error)

// applyPlanes runs fn over the buffer according to the channel policy:
// each channel independently by default, or once over the luminance plane
// with per-pixel chroma-preserving rescale when the luminance flag is set
// on a buffer with at least three channels.
func applyPlanes(ctx context.Context, op string, input *raster.Buffer, params map[string]interface{}, fn planeFunc) (*raster.Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	useLuminance, err := boolParam(op, params, luminanceKey, false)
	if err != nil {
		return nil, err
	}

	w, h := input.Width(), input.Height()
	if useLuminance && input.Channels() >= 3 {
		return applyLuminance(input, w, h, fn)
	}

	planes := make([][]float64, input.Channels())
	for ch := 0; ch < input.Channels(); ch++ {
		out, err := fn(input.Plane(ch), w, h)
		if err != nil {
			return nil, err
		}
		planes[ch] = out
	}
	return input.WithPlanes(planes)
}

func applyLuminance(input *raster.Buffer, w, h int, fn planeFunc) (*raster.Buffer, error) {
	r := input.Plane(0)
	g := input.Plane(1)
	b := input.Plane(2)

	lum := make([]float64, w*h)
	for i := range lum {
		lum[i] = lumaR*r[i] + lumaG*g[i] + lumaB*b[i]
	}

	mapped, err := fn(lum, w, h)
	if err != nil {
		return nil, err
	}

	planes := make([][]float64, input.Channels())
	for ch := 0; ch < input.Channels(); ch++ {
		planes[ch] = input.Plane(ch)
	}
	for i := range lum {
		if lum[i] > 0 {
			scale := mapped[i] / lum[i]
			planes[0][i] = r[i] * scale
			planes[1][i] = g[i] * scale
			planes[2][i] = b[i] * scale
		} else {
			// Pure black has no chroma to preserve; lift it to gray.
			planes[0][i] = mapped[i]
			planes[1][i] = mapped[i]
			planes[2][i] = mapped[i]
		}
	}
	return input.WithPlanes(planes)
}
