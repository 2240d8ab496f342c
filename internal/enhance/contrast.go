package enhance

import (
	"context"

	"contrast-conjurer/internal/raster"
	"contrast-conjurer/internal/stats"
)

// ContrastBoost applies an affine rescale around the plane mean:
// output = mean + beta * (src - mean). Beta 1 is the identity; beta
// below 1 reduces contrast.
type ContrastBoost struct{}

func NewContrastBoost() *ContrastBoost {
	return &ContrastBoost{}
}

func (s *ContrastBoost) Name() string { return "contrast_boost" }

func (s *ContrastBoost) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"beta": 1.5,
	}
}

func (s *ContrastBoost) ValidateParameters(params map[string]interface{}) error {
	if _, err := boolParam(s.Name(), params, luminanceKey, false); err != nil {
		return err
	}
	_, err := floatParam(s.Name(), params, "beta")
	return err
}

func (s *ContrastBoost) Apply(ctx context.Context, input *raster.Buffer, params map[string]interface{}) (*raster.Buffer, error) {
	if err := s.ValidateParameters(params); err != nil {
		return nil, err
	}
	beta, _ := floatParam(s.Name(), params, "beta")

	return applyPlanes(ctx, s.Name(), input, params, func(plane []float64, w, h int) ([]float64, error) {
		mean := stats.Mean(plane)
		out := make([]float64, len(plane))
		for i, v := range plane {
			out[i] = mean + beta*(v-mean)
		}
		return out, nil
	})
}

// ContrastStretch linearly remaps the observed intensity range onto
// [newMin, newMax]. A flat plane has no range to stretch and passes
// through unchanged.
type ContrastStretch struct{}

func NewContrastStretch() *ContrastStretch {
	return &ContrastStretch{}
}

func (s *ContrastStretch) Name() string { return "contrast_stretch" }

func (s *ContrastStretch) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"newMin": 0.0,
		"newMax": 255.0,
	}
}

func (s *ContrastStretch) ValidateParameters(params map[string]interface{}) error {
	if _, err := boolParam(s.Name(), params, luminanceKey, false); err != nil {
		return err
	}
	newMin, err := floatParam(s.Name(), params, "newMin")
	if err != nil {
		return err
	}
	newMax, err := floatParam(s.Name(), params, "newMax")
	if err != nil {
		return err
	}
	if newMax < newMin {
		return &InvalidParameterError{Op: s.Name(), Param: "newMax", Reason: "must not be below newMin"}
	}
	return nil
}

func (s *ContrastStretch) Apply(ctx context.Context, input *raster.Buffer, params map[string]interface{}) (*raster.Buffer, error) {
	if err := s.ValidateParameters(params); err != nil {
		return nil, err
	}
	newMin, _ := floatParam(s.Name(), params, "newMin")
	newMax, _ := floatParam(s.Name(), params, "newMax")

	return applyPlanes(ctx, s.Name(), input, params, func(plane []float64, w, h int) ([]float64, error) {
		lo, hi := stats.MinMax(plane)
		if hi <= lo {
			// Degenerate range: identity rather than failure.
			return append([]float64(nil), plane...), nil
		}
		scale := (newMax - newMin) / (hi - lo)
		out := make([]float64, len(plane))
		for i, v := range plane {
			out[i] = (v-lo)*scale + newMin
		}
		return out, nil
	})
}
