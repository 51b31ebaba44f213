package floorplan

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/planrect/planrect/pkg/constraint"
	"github.com/planrect/planrect/pkg/errors"
	"github.com/planrect/planrect/pkg/mip"
)

// Solver solves floor-plan problems. The zero value is ready to use and
// logs through log.Default.
type Solver struct {
	// Logger receives solve-time diagnostics. Nil means log.Default().
	Logger *log.Logger

	// Progress, when set, is forwarded to the backend and called with the
	// explored and pruned node counts and the best perimeter so far.
	Progress func(explored, pruned int, best float64)
}

// Solve is shorthand for a zero-value Solver solve.
func Solve(ctx context.Context, p Problem) (*Result, error) {
	return (&Solver{}).Solve(ctx, p)
}

// Solve parses and compiles the problem's constraints, minimizes the
// bounding perimeter, and extracts the layout.
//
// Constraint failures are reported for the first offending constraint, by
// position in the list. An expired time limit returns the best layout
// found so far with StatusFeasible, or a NO_SOLUTION error if none was
// found. Provably contradictory constraints return an INFEASIBLE error.
func (s *Solver) Solve(ctx context.Context, p Problem) (*Result, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	if p.Boxes < 0 {
		return nil, errors.New(errors.ErrCodeInvalidProblem, "box count %d is negative", p.Boxes)
	}
	if p.Padding < 0 {
		return nil, errors.New(errors.ErrCodeInvalidProblem, "padding %g is negative", p.Padding)
	}

	facts := make([]constraint.Fact, len(p.Constraints))
	for i, c := range p.Constraints {
		f, err := constraint.Parse(constraint.Kind(c.Kind), c.Text)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "constraint %d", i)
		}
		if err := checkIndices(i, f, p.Boxes); err != nil {
			return nil, err
		}
		facts[i] = f
	}

	m, g := buildModel(p.Boxes, p.Padding)
	for _, f := range facts {
		if err := compile(m, g, f, p.Padding); err != nil {
			return nil, err
		}
	}

	limit := p.TimeLimit
	if limit <= 0 {
		limit = DefaultTimeLimit
	}

	logger.Debug("solving floor plan",
		"boxes", p.Boxes,
		"constraints", len(facts),
		"padding", p.Padding,
		"timeLimit", limit)

	start := time.Now()
	sol := mip.Solver{TimeLimit: limit, Progress: s.Progress}.Solve(ctx, m)
	elapsed := time.Since(start)

	switch sol.Status {
	case mip.StatusOptimal:
		logger.Debug("solve finished", "status", sol.Status, "perimeter", sol.Objective, "elapsed", elapsed)
		return extract(&sol, g, StatusOptimal), nil
	case mip.StatusFeasible:
		logger.Warn("time limit reached; returning best layout found",
			"perimeter", sol.Objective, "elapsed", elapsed)
		return extract(&sol, g, StatusFeasible), nil
	case mip.StatusInfeasible:
		return nil, errors.New(errors.ErrCodeInfeasible, "constraints admit no layout")
	case mip.StatusUnbounded:
		return nil, errors.New(errors.ErrCodeUnbounded, "perimeter is unbounded below")
	case mip.StatusNoSolution:
		return nil, errors.New(errors.ErrCodeNoSolution,
			"time limit of %s reached before any layout was found", limit)
	default:
		return nil, errors.New(errors.ErrCodeInternal, "backend failed after %s", elapsed)
	}
}

// extract copies the solution values into a Result, one entry per box.
func extract(sol *mip.Solution, g *geometry, st Status) *Result {
	n := len(g.w)
	r := &Result{
		Perimeter: sol.Objective,
		W:         sol.Values[g.W],
		H:         sol.Values[g.H],
		X:         make([]float64, n),
		Y:         make([]float64, n),
		Width:     make([]float64, n),
		Height:    make([]float64, n),
		Status:    st,
	}
	for i := 0; i < n; i++ {
		r.X[i] = sol.Values[g.x[i]]
		r.Y[i] = sol.Values[g.y[i]]
		r.Width[i] = sol.Values[g.w[i]]
		r.Height[i] = sol.Values[g.h[i]]
	}
	return r
}
