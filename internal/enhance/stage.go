// Package enhance implements the enhancement operations the pipeline
// dispatches on: global histogram equalization, CLAHE, unsharp masking,
// mean-centered contrast boosting, and linear contrast stretching.
//
// Every stage is a pure function of its input buffer and parameter bag:
// it never mutates the input and always returns a new buffer of the same
// shape and element kind, or a typed error.
package enhance

import (
	"context"
	"fmt"

	"contrast-conjurer/internal/raster"
)

// Stage is the contract every enhancement operation satisfies.
type Stage interface {
	Name() string
	Apply(ctx context.Context, input *raster.Buffer, params map[string]interface{}) (*raster.Buffer, error)
	ValidateParameters(params map[string]interface{}) error
	DefaultParameters() map[string]interface{}
}

// Stages returns one instance of every operation, for registry wiring.
func Stages() []Stage {
	return []Stage{
		NewHistogramEqualization(),
		NewCLAHE(),
		NewUnsharpMask(),
		NewContrastBoost(),
		NewContrastStretch(),
	}
}

// InvalidParameterError reports a missing or out-of-range parameter.
// Parameters are validated eagerly: a missing required key is an error,
// never a silent default.
type InvalidParameterError struct {
	Op     string
	Param  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("operation %s: parameter %q %s", e.Op, e.Param, e.Reason)
}
