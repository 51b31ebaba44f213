package floorplan

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/planrect/planrect/pkg/errors"
)

func approx(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestSolveEmptyProblem(t *testing.T) {
	res, err := Solve(context.Background(), Problem{})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != StatusOptimal {
		t.Errorf("status = %v, want optimal", res.Status)
	}
	if res.Perimeter != 0 || res.W != 0 || res.H != 0 {
		t.Errorf("empty problem: perimeter=%v W=%v H=%v, want all zero", res.Perimeter, res.W, res.H)
	}
	if res.Boxes() != 0 {
		t.Errorf("boxes = %d, want 0", res.Boxes())
	}
}

func TestSolveSideBySide(t *testing.T) {
	// A 2x3 box to the left of a 4x3 box packs into a 6x3 bounding
	// rectangle with perimeter 18 and a unique layout.
	p := Problem{
		Boxes: 2,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 2"},
			{Kind: "height", Text: "box 0 has height of 3"},
			{Kind: "width", Text: "box 1 has width of 4"},
			{Kind: "height", Text: "box 1 has height of 3"},
			{Kind: "position", Text: "box 0 is to the left of box 1"},
		},
	}
	res, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %v, want optimal", res.Status)
	}
	if !approx(res.Perimeter, 18, 1e-4) {
		t.Errorf("perimeter = %v, want 18", res.Perimeter)
	}
	if !approx(res.W, 6, 1e-4) || !approx(res.H, 3, 1e-4) {
		t.Errorf("bounding = %vx%v, want 6x3", res.W, res.H)
	}
	if !approx(res.X[0], 0, 1e-4) || !approx(res.X[1], 2, 1e-4) {
		t.Errorf("x = %v, want [0 2]", res.X)
	}
	if got := res.Overlapping(1e-6); len(got) != 0 {
		t.Errorf("overlapping pairs = %v, want none", got)
	}
}

func TestSolveInfeasible(t *testing.T) {
	// Two 10x10 boxes cannot both cover the same point without
	// overlapping.
	p := Problem{
		Boxes: 2,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 10"},
			{Kind: "height", Text: "box 0 has height of 10"},
			{Kind: "width", Text: "box 1 has width of 10"},
			{Kind: "height", Text: "box 1 has height of 10"},
			{Kind: "containment", Text: "box 0 contains a point (5,5)"},
			{Kind: "containment", Text: "box 1 contains a point (5,5)"},
		},
	}
	res, err := Solve(context.Background(), p)
	if err == nil {
		t.Fatalf("Solve() = %v, want infeasible error", res)
	}
	if !errors.Is(err, errors.ErrCodeInfeasible) {
		t.Errorf("error = %v, want code INFEASIBLE", err)
	}
}

func TestSolveContainment(t *testing.T) {
	// Covering (3,2) forces the bounding rectangle out to at least
	// (3,2), and nothing else does, so the optimum is exactly that.
	p := Problem{
		Boxes: 1,
		Constraints: []Constraint{
			{Kind: "containment", Text: "box 0 contains a point (3, 2)"},
		},
	}
	res, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !approx(res.Perimeter, 10, 1e-4) {
		t.Errorf("perimeter = %v, want 10", res.Perimeter)
	}
	if res.X[0] > 3+1e-6 || res.X[0]+res.Width[0] < 3-1e-6 {
		t.Errorf("box x-range [%v, %v] misses 3", res.X[0], res.X[0]+res.Width[0])
	}
	if res.Y[0] > 2+1e-6 || res.Y[0]+res.Height[0] < 2-1e-6 {
		t.Errorf("box y-range [%v, %v] misses 2", res.Y[0], res.Y[0]+res.Height[0])
	}
}

func TestSolveWidthRoundTrip(t *testing.T) {
	p := Problem{
		Boxes: 1,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 5"},
		},
	}
	res, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !approx(res.Width[0], 5, 1e-6) {
		t.Errorf("width = %v, want 5", res.Width[0])
	}
}

func TestSolveAreasWithPadding(t *testing.T) {
	// Three boxes with minimum areas and a clearance must end up
	// pairwise separated by at least the padding along some axis.
	const pad = 0.1
	p := Problem{
		Boxes:     3,
		Padding:   pad,
		TimeLimit: 30 * time.Second,
		Constraints: []Constraint{
			{Kind: "area", Text: "box 0 has area of at least 4"},
			{Kind: "area", Text: "box 1 has area of at least 6"},
			{Kind: "area", Text: "box 2 has area of at least 8"},
			{Kind: "ratio", Text: "box 0 has aspect ratio of at least 1"},
			{Kind: "ratio", Text: "box 0 has aspect ratio of at most 1"},
		},
	}
	res, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("status = %v, want optimal", res.Status)
	}
	for i, want := range []float64{4, 6, 8} {
		if got := res.Width[i] * res.Height[i]; got < want-1e-3 {
			t.Errorf("area(box %d) = %v, want >= %v", i, got, want)
		}
	}
	// Aspect exactly 1 makes box 0 square.
	if !approx(res.Width[0], res.Height[0], 1e-4) {
		t.Errorf("box 0 = %vx%v, want square", res.Width[0], res.Height[0])
	}
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			dx := min(res.X[i]+res.Width[i], res.X[j]+res.Width[j]) - max(res.X[i], res.X[j])
			dy := min(res.Y[i]+res.Height[i], res.Y[j]+res.Height[j]) - max(res.Y[i], res.Y[j])
			if dx > -pad+1e-6 && dy > -pad+1e-6 {
				t.Errorf("boxes %d and %d not separated by %v: dx=%v dy=%v", i, j, pad, dx, dy)
			}
		}
	}
}

func TestSolveSymmetrySimilarityAlign(t *testing.T) {
	p := Problem{
		Boxes: 2,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 1"},
			{Kind: "height", Text: "box 0 has height of 1"},
			{Kind: "similarity", Text: "box 1 is 2-scaled translate of box 0"},
			{Kind: "symmetry", Text: "box 0 and box 1 are symmetric through axis x=3"},
			{Kind: "horizontal_align", Text: "bottom of box 0 aligns horizontally with bottom of box 1"},
		},
	}
	res, err := Solve(context.Background(), p)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !approx(res.Width[1], 2*res.Width[0], 1e-4) || !approx(res.Height[1], 2*res.Height[0], 1e-4) {
		t.Errorf("box 1 = %vx%v, want double of box 0 (%vx%v)",
			res.Width[1], res.Height[1], res.Width[0], res.Height[0])
	}
	if !approx(res.Y[0], res.Y[1], 1e-4) {
		t.Errorf("bottoms y = %v vs %v, want aligned", res.Y[0], res.Y[1])
	}
	c0 := res.X[0] + res.Width[0]/2
	c1 := res.X[1] + res.Width[1]/2
	if !approx(c0+c1, 6, 1e-4) {
		t.Errorf("center sum = %v, want 6 (mirror through x=3)", c0+c1)
	}
	if got := res.Overlapping(1e-6); len(got) != 0 {
		t.Errorf("overlapping pairs = %v, want none", got)
	}
}

func TestSolveIndexOutOfRange(t *testing.T) {
	p := Problem{
		Boxes: 2,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 2"},
			{Kind: "width", Text: "box 5 has width of 2"},
		},
	}
	_, err := Solve(context.Background(), p)
	if !errors.Is(err, errors.ErrCodeIndexOutOfRange) {
		t.Errorf("error = %v, want code INDEX_OUT_OF_RANGE", err)
	}
}

func TestSolveBadConstraintText(t *testing.T) {
	p := Problem{
		Boxes: 1,
		Constraints: []Constraint{
			{Kind: "width", Text: "box zero has width of 2"},
		},
	}
	_, err := Solve(context.Background(), p)
	if !errors.Is(err, errors.ErrCodeInvalidConstraint) {
		t.Errorf("error = %v, want code INVALID_CONSTRAINT", err)
	}
}

func TestSolveUnknownKind(t *testing.T) {
	p := Problem{
		Boxes: 1,
		Constraints: []Constraint{
			{Kind: "adjacency", Text: "box 0 has width of 2"},
		},
	}
	_, err := Solve(context.Background(), p)
	if !errors.Is(err, errors.ErrCodeUnknownKind) {
		t.Errorf("error = %v, want code UNKNOWN_KIND", err)
	}
}

func TestSolveInvalidProblem(t *testing.T) {
	if _, err := Solve(context.Background(), Problem{Boxes: -1}); !errors.Is(err, errors.ErrCodeInvalidProblem) {
		t.Errorf("negative boxes: error = %v, want code INVALID_PROBLEM", err)
	}
	if _, err := Solve(context.Background(), Problem{Boxes: 1, Padding: -0.5}); !errors.Is(err, errors.ErrCodeInvalidProblem) {
		t.Errorf("negative padding: error = %v, want code INVALID_PROBLEM", err)
	}
}

func TestSolveTimeLimit(t *testing.T) {
	p := Problem{
		Boxes:     2,
		TimeLimit: time.Nanosecond,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 2"},
			{Kind: "width", Text: "box 1 has width of 2"},
		},
	}
	_, err := Solve(context.Background(), p)
	if !errors.Is(err, errors.ErrCodeNoSolution) {
		t.Errorf("error = %v, want code NO_SOLUTION", err)
	}
}

func TestSolveCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Solve(ctx, Problem{Boxes: 1})
	if !errors.Is(err, errors.ErrCodeNoSolution) {
		t.Errorf("error = %v, want code NO_SOLUTION", err)
	}
}

func TestSolveProgress(t *testing.T) {
	calls := 0
	s := Solver{Progress: func(explored, pruned int, best float64) { calls++ }}
	_, err := s.Solve(context.Background(), Problem{
		Boxes: 2,
		Constraints: []Constraint{
			{Kind: "width", Text: "box 0 has width of 1"},
			{Kind: "width", Text: "box 1 has width of 1"},
		},
	})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if calls == 0 {
		t.Error("progress callback never invoked")
	}
}

func TestOverlapping(t *testing.T) {
	r := &Result{
		X: []float64{0, 1, 5}, Y: []float64{0, 1, 5},
		Width:  []float64{2, 2, 1},
		Height: []float64{2, 2, 1},
	}
	got := r.Overlapping(1e-9)
	if len(got) != 1 || got[0] != [2]int{0, 1} {
		t.Errorf("Overlapping() = %v, want [[0 1]]", got)
	}
}
