// Package problem loads floor-plan problem files.
//
// A problem file is TOML:
//
//	[problem]
//	boxes = 2
//	padding = 0.5
//	timeout = "30s"
//
//	[[constraint]]
//	kind = "width"
//	text = "box 0 has width of 2"
//
//	[[constraint]]
//	kind = "position"
//	text = "box 0 is to the left of box 1"
//
// Loading validates shape only (counts, padding, kinds being non-empty);
// constraint texts are parsed by the solver so that load and solve report
// errors the same way.
package problem

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/planrect/planrect/pkg/errors"
	"github.com/planrect/planrect/pkg/floorplan"
)

type problemFile struct {
	Problem struct {
		Boxes   int     `toml:"boxes"`
		Padding float64 `toml:"padding"`
		Timeout string  `toml:"timeout"`
	} `toml:"problem"`
	Constraints []floorplan.Constraint `toml:"constraint"`
}

// Load reads and validates a TOML problem file.
func Load(path string) (*floorplan.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "problem file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "reading %s", path)
	}
	return Parse(data)
}

// Parse decodes and validates TOML problem data.
func Parse(data []byte) (*floorplan.Problem, error) {
	var pf problemFile
	if err := toml.Unmarshal(data, &pf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decoding problem")
	}

	p := &floorplan.Problem{
		Boxes:       pf.Problem.Boxes,
		Padding:     pf.Problem.Padding,
		Constraints: pf.Constraints,
	}
	if pf.Problem.Timeout != "" {
		d, err := time.ParseDuration(pf.Problem.Timeout)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidProblem, err, "timeout %q", pf.Problem.Timeout)
		}
		if d <= 0 {
			return nil, errors.New(errors.ErrCodeInvalidProblem, "timeout %q is not positive", pf.Problem.Timeout)
		}
		p.TimeLimit = d
	}

	if err := validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

func validate(p *floorplan.Problem) error {
	if p.Boxes < 0 {
		return errors.New(errors.ErrCodeInvalidProblem, "box count %d is negative", p.Boxes)
	}
	if p.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidProblem, "padding %g is negative", p.Padding)
	}
	for i, c := range p.Constraints {
		if c.Kind == "" {
			return errors.New(errors.ErrCodeInvalidProblem, "constraint %d has no kind", i)
		}
		if c.Text == "" {
			return errors.New(errors.ErrCodeInvalidProblem, "constraint %d has no text", i)
		}
	}
	return nil
}
