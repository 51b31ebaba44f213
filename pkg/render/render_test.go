package render

import (
	"strings"
	"testing"

	"github.com/planrect/planrect/pkg/floorplan"
)

func sampleResult() *floorplan.Result {
	return &floorplan.Result{
		Perimeter: 18,
		W:         6, H: 3,
		X:      []float64{0, 2},
		Y:      []float64{0, 0},
		Width:  []float64{2, 4},
		Height: []float64{3, 3},
		Status: floorplan.StatusOptimal,
	}
}

func TestPlanSVG(t *testing.T) {
	out := string(PlanSVG(sampleResult(), SVGOptions{}))
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatalf("output is not an SVG document:\n%s", out)
	}
	// Bounding outline plus one rect per box.
	if got := strings.Count(out, "<rect"); got != 3 {
		t.Errorf("rect count = %d, want 3", got)
	}
	if !strings.Contains(out, ">1</text>") {
		t.Error("missing box index label")
	}
}

func TestPlanSVGNoLabels(t *testing.T) {
	out := string(PlanSVG(sampleResult(), SVGOptions{NoLabels: true}))
	if strings.Contains(out, "<text") {
		t.Error("labels present despite NoLabels")
	}
}

func TestPlanSVGEmpty(t *testing.T) {
	out := string(PlanSVG(&floorplan.Result{Status: floorplan.StatusOptimal}, SVGOptions{Width: 100}))
	if !strings.Contains(out, "<svg") {
		t.Error("empty plan should still produce an SVG document")
	}
}

func TestConstraintDOT(t *testing.T) {
	p := floorplan.Problem{
		Boxes: 2,
		Constraints: []floorplan.Constraint{
			{Kind: "width", Text: "box 0 has width of 2"},
			{Kind: "position", Text: "box 0 is to the left of box 1"},
		},
	}
	dot, err := ConstraintDOT(p)
	if err != nil {
		t.Fatalf("ConstraintDOT() error = %v", err)
	}
	if !strings.Contains(dot, "graph constraints {") {
		t.Error("missing graph header")
	}
	if !strings.Contains(dot, `0 -- 1 [label="position"`) {
		t.Errorf("missing position edge:\n%s", dot)
	}
	if !strings.Contains(dot, "box 0\\nwidth") {
		t.Errorf("missing width annotation on box 0:\n%s", dot)
	}
}

func TestConstraintDOTBadConstraint(t *testing.T) {
	p := floorplan.Problem{
		Boxes: 1,
		Constraints: []floorplan.Constraint{
			{Kind: "width", Text: "nope"},
		},
	}
	if _, err := ConstraintDOT(p); err == nil {
		t.Error("expected parse error")
	}
}

func TestRenderSVG(t *testing.T) {
	dot, err := ConstraintDOT(floorplan.Problem{
		Boxes: 2,
		Constraints: []floorplan.Constraint{
			{Kind: "position", Text: "box 0 is to the left of box 1"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	out, err := RenderSVG(dot)
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(out), "<svg") {
		t.Error("output is not SVG")
	}
}
