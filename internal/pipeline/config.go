package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk pipeline description:
//
//	stages:
//	  - op: clahe
//	    params:
//	      tileRows: 8
//	      tileCols: 8
//	      clipLimit: 2.0
//	  - op: unsharp_mask
//	    params: {sigma: 1.0, alpha: 2.0}
type File struct {
	Stages []StageSpec `yaml:"stages"`
}

// LoadFile reads a YAML pipeline description. Parameter values arrive as
// the int/float64/bool types yaml produces; stages coerce them.
func LoadFile(path string) ([]StageSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}

	var file File
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse pipeline file %q: %w", path, err)
	}
	if len(file.Stages) == 0 {
		return nil, fmt.Errorf("pipeline file %q defines no stages", path)
	}
	for i, spec := range file.Stages {
		if spec.Op == "" {
			return nil, fmt.Errorf("pipeline file %q: stage %d has no op", path, i)
		}
	}
	return file.Stages, nil
}
