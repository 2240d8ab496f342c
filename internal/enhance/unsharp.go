package enhance

import (
	"context"

	"contrast-conjurer/internal/convolve"
	"contrast-conjurer/internal/raster"
)

// UnsharpMask sharpens by adding back a scaled high-frequency residual:
// output = src + alpha * (src - gaussianBlur(src, sigma)).
type UnsharpMask struct{}

func NewUnsharpMask() *UnsharpMask {
	return &UnsharpMask{}
}

func (s *UnsharpMask) Name() string { return "unsharp_mask" }

func (s *UnsharpMask) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"sigma": 1.0,
		"alpha": 2.0,
	}
}

func (s *UnsharpMask) ValidateParameters(params map[string]interface{}) error {
	if _, err := boolParam(s.Name(), params, luminanceKey, false); err != nil {
		return err
	}
	sigma, err := floatParam(s.Name(), params, "sigma")
	if err != nil {
		return err
	}
	if sigma <= 0 {
		return &InvalidParameterError{Op: s.Name(), Param: "sigma", Reason: "must be positive"}
	}
	// alpha is unconstrained: negative values soften instead of sharpen.
	_, err = floatParam(s.Name(), params, "alpha")
	return err
}

func (s *UnsharpMask) Apply(ctx context.Context, input *raster.Buffer, params map[string]interface{}) (*raster.Buffer, error) {
	if err := s.ValidateParameters(params); err != nil {
		return nil, err
	}
	sigma, _ := floatParam(s.Name(), params, "sigma")
	alpha, _ := floatParam(s.Name(), params, "alpha")

	return applyPlanes(ctx, s.Name(), input, params, func(plane []float64, w, h int) ([]float64, error) {
		blurred := convolve.Gaussian(plane, w, h, sigma)
		out := make([]float64, len(plane))
		for i, v := range plane {
			out[i] = v + alpha*(v-blurred[i])
		}
		return out, nil
	})
}
