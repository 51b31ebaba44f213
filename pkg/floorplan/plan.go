// Package floorplan computes non-overlapping rectangular layouts from
// declarative constraints.
//
// A [Problem] names a number of boxes, a minimum clearance (padding), and an
// ordered list of textual constraints in the language of
// [github.com/planrect/planrect/pkg/constraint]. [Solve] compiles the
// constraints into a mixed-integer model - continuous geometry variables,
// four direction binaries per box pair, indicator separations, and one
// product row per area constraint - and minimizes the perimeter of the
// enclosing bounding rectangle.
//
// Every pair of boxes is forced apart along at least one axis by the
// disjunctive encoding
//
//	l ⟹ xᵢ+wᵢ+p <= xⱼ    r ⟹ xⱼ+wⱼ+p <= xᵢ
//	b ⟹ yᵢ+hᵢ+p <= yⱼ    t ⟹ yⱼ+hⱼ+p <= yᵢ
//	l+r <= 1, b+t <= 1, l+r+b+t >= 1
//
// which is necessary and sufficient for the box interiors to be disjoint.
// No big-M constant is involved; the indicators are enforced natively by
// the branch-and-bound backend.
//
// One solve call builds a private model, solves it, and discards it; no
// state persists between calls, so concurrent solves are independent.
package floorplan

import (
	"fmt"
	"time"
)

// Constraint is one (kind, text) input pair, not yet decoded.
type Constraint struct {
	Kind string `json:"kind" toml:"kind"`
	Text string `json:"text" toml:"text"`
}

// Problem is the full input of one solve call. The constraint list is
// treated as immutable for the duration of the call.
type Problem struct {
	// Boxes is the number of boxes N; box indices run 0..N-1.
	Boxes int `json:"boxes"`

	// Padding is the minimum clearance p >= 0 enforced between any two
	// boxes along their separating axis.
	Padding float64 `json:"padding"`

	// Constraints are applied in order. Order does not change the model,
	// only which constraint is reported first on failure.
	Constraints []Constraint `json:"constraints"`

	// TimeLimit bounds the solve. Zero means DefaultTimeLimit.
	TimeLimit time.Duration `json:"-"`
}

// DefaultTimeLimit applies when Problem.TimeLimit is zero.
const DefaultTimeLimit = 60 * time.Second

// Status distinguishes proven-optimal results from time-limited incumbents.
type Status string

const (
	// StatusOptimal marks a layout proven optimal.
	StatusOptimal Status = "optimal"

	// StatusFeasible marks the best layout found before the time limit
	// expired; it satisfies every constraint but may not be optimal.
	StatusFeasible Status = "feasible"
)

// Result is the immutable output bundle of one solve call.
type Result struct {
	Perimeter float64   `json:"perimeter"`
	W         float64   `json:"w"`
	H         float64   `json:"h"`
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Width     []float64 `json:"width"`
	Height    []float64 `json:"height"`
	Status    Status    `json:"status"`
}

// Boxes returns the number of boxes in the result.
func (r *Result) Boxes() int { return len(r.X) }

// Overlapping returns every pair of boxes whose interiors intersect by
// more than eps in both axes. A correct solve returns none; the check is
// used by tests and as a belt-and-braces warning in the CLI.
func (r *Result) Overlapping(eps float64) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(r.X); i++ {
		for j := i + 1; j < len(r.X); j++ {
			dx := min(r.X[i]+r.Width[i], r.X[j]+r.Width[j]) - max(r.X[i], r.X[j])
			dy := min(r.Y[i]+r.Height[i], r.Y[j]+r.Height[j]) - max(r.Y[i], r.Y[j])
			if dx > eps && dy > eps {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

func (r *Result) String() string {
	return fmt.Sprintf("%s layout: %d boxes, W=%.3f H=%.3f perimeter=%.3f",
		r.Status, r.Boxes(), r.W, r.H, r.Perimeter)
}
