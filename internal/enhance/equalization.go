package enhance

import (
	"context"

	"contrast-conjurer/internal/equalize"
	"contrast-conjurer/internal/raster"
	"contrast-conjurer/internal/stats"
)

// HistogramEqualization remaps intensities through the global CDF so the
// output spans the full dynamic range. The classic low-contrast fix.
type HistogramEqualization struct{}

func NewHistogramEqualization() *HistogramEqualization {
	return &HistogramEqualization{}
}

func (s *HistogramEqualization) Name() string { return "histogram_equalization" }

func (s *HistogramEqualization) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{}
}

func (s *HistogramEqualization) ValidateParameters(params map[string]interface{}) error {
	_, err := boolParam(s.Name(), params, luminanceKey, false)
	return err
}

func (s *HistogramEqualization) Apply(ctx context.Context, input *raster.Buffer, params map[string]interface{}) (*raster.Buffer, error) {
	if err := s.ValidateParameters(params); err != nil {
		return nil, err
	}

	kind := input.Kind()
	levels := kind.Levels()
	hi := kind.Max()

	return applyPlanes(ctx, s.Name(), input, params, func(plane []float64, w, h int) ([]float64, error) {
		hist := stats.Histogram(plane, levels, 0, hi)
		mapping := equalize.BuildMapping(hist, 0, hi)
		return equalize.Apply(plane, mapping, 0, hi), nil
	})
}
