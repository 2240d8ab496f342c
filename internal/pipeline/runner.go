// Package pipeline sequences enhancement stages over one image buffer.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"time"

	"contrast-conjurer/internal/enhance"
	"contrast-conjurer/internal/logger"
	"contrast-conjurer/internal/raster"
)

// StageSpec names one operation and its parameter bag.
type StageSpec struct {
	Op     string                 `yaml:"op"`
	Params map[string]interface{} `yaml:"params"`
}

// UnknownOperationError reports a stage spec naming no registered
// operation. The runner raises it before touching the input buffer.
type UnknownOperationError struct {
	Op string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Op)
}

// Runner dispatches stage specs against the closed set of registered
// operations. Runners are stateless between Run calls and safe for
// concurrent use on independent buffers.
type Runner struct {
	stages map[string]enhance.Stage
	log    logger.Logger
}

// NewRunner registers every built-in operation. A nil log discards
// pipeline reporting.
func NewRunner(log logger.Logger) *Runner {
	if log == nil {
		log = logger.Nop{}
	}
	r := &Runner{
		stages: make(map[string]enhance.Stage),
		log:    log,
	}
	for _, stage := range enhance.Stages() {
		r.stages[stage.Name()] = stage
	}
	return r
}

// Operations returns the registered operation names, sorted.
func (r *Runner) Operations() []string {
	names := make([]string, 0, len(r.stages))
	for name := range r.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Defaults returns a copy of the named operation's default parameter bag.
func (r *Runner) Defaults(op string) (map[string]interface{}, error) {
	stage, ok := r.stages[op]
	if !ok {
		return nil, &UnknownOperationError{Op: op}
	}
	defaults := stage.DefaultParameters()
	out := make(map[string]interface{}, len(defaults))
	for k, v := range defaults {
		out[k] = v
	}
	return out, nil
}

// Run applies the specs in order, starting from input, and returns the
// final buffer. The input buffer is never mutated; the result always has
// the input's shape and element kind.
//
// Every spec is resolved and validated before any stage executes, so an
// unknown operation or bad parameter bag fails the whole run with no
// partial application.
func (r *Runner) Run(ctx context.Context, input *raster.Buffer, specs []StageSpec) (*raster.Buffer, error) {
	if input == nil {
		return nil, fmt.Errorf("nil input buffer")
	}

	resolved := make([]enhance.Stage, len(specs))
	for i, spec := range specs {
		stage, ok := r.stages[spec.Op]
		if !ok {
			return nil, &UnknownOperationError{Op: spec.Op}
		}
		if err := stage.ValidateParameters(spec.Params); err != nil {
			return nil, err
		}
		resolved[i] = stage
	}

	current := input
	for i, stage := range resolved {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		next, err := stage.Apply(ctx, current, specs[i].Params)
		if err != nil {
			return nil, fmt.Errorf("stage %s failed: %w", stage.Name(), err)
		}
		if !input.SameShape(next) {
			return nil, fmt.Errorf("stage %s broke the shape contract: %dx%dx%d %v -> %dx%dx%d %v",
				stage.Name(),
				input.Width(), input.Height(), input.Channels(), input.Kind(),
				next.Width(), next.Height(), next.Channels(), next.Kind())
		}

		r.log.Debug("Runner", "stage applied", map[string]interface{}{
			"op":          stage.Name(),
			"stage_index": i,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		current = next
	}

	if current == input {
		// Empty pipeline: still hand back an independent buffer.
		return input.Clone(), nil
	}
	return current, nil
}
