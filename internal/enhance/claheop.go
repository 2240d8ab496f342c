package enhance

import (
	"context"

	"contrast-conjurer/internal/clahe"
	"contrast-conjurer/internal/raster"
)

// CLAHE applies tile-based, contrast-limited adaptive histogram
// equalization with inter-tile interpolation.
type CLAHE struct{}

func NewCLAHE() *CLAHE {
	return &CLAHE{}
}

func (s *CLAHE) Name() string { return "clahe" }

func (s *CLAHE) DefaultParameters() map[string]interface{} {
	return map[string]interface{}{
		"tileRows":  8,
		"tileCols":  8,
		"clipLimit": 2.0,
	}
}

func (s *CLAHE) ValidateParameters(params map[string]interface{}) error {
	if _, err := boolParam(s.Name(), params, luminanceKey, false); err != nil {
		return err
	}
	rows, err := intParam(s.Name(), params, "tileRows")
	if err != nil {
		return err
	}
	if rows < 1 {
		return &InvalidParameterError{Op: s.Name(), Param: "tileRows", Reason: "must be at least 1"}
	}
	cols, err := intParam(s.Name(), params, "tileCols")
	if err != nil {
		return err
	}
	if cols < 1 {
		return &InvalidParameterError{Op: s.Name(), Param: "tileCols", Reason: "must be at least 1"}
	}
	clip, err := floatParam(s.Name(), params, "clipLimit")
	if err != nil {
		return err
	}
	if clip < 0 {
		return &InvalidParameterError{Op: s.Name(), Param: "clipLimit", Reason: "must be non-negative (0 disables clipping)"}
	}
	return nil
}

func (s *CLAHE) Apply(ctx context.Context, input *raster.Buffer, params map[string]interface{}) (*raster.Buffer, error) {
	if err := s.ValidateParameters(params); err != nil {
		return nil, err
	}
	rows, _ := intParam(s.Name(), params, "tileRows")
	cols, _ := intParam(s.Name(), params, "tileCols")
	clip, _ := floatParam(s.Name(), params, "clipLimit")

	kind := input.Kind()
	opts := clahe.Options{
		TileRows:  rows,
		TileCols:  cols,
		ClipLimit: clip,
		Levels:    kind.Levels(),
		Lo:        0,
		Hi:        kind.Max(),
		OutputMax: kind.Max(),
	}

	return applyPlanes(ctx, s.Name(), input, params, func(plane []float64, w, h int) ([]float64, error) {
		return clahe.Enhance(ctx, plane, w, h, opts)
	})
}
