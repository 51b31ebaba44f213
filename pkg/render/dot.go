package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/planrect/planrect/pkg/constraint"
	"github.com/planrect/planrect/pkg/floorplan"
)

// ConstraintDOT renders the constraint structure of a problem as Graphviz
// DOT: one node per box, one labeled edge per constraint relating two
// boxes, and single-box constraints folded into the node labels.
func ConstraintDOT(p floorplan.Problem) (string, error) {
	labels := make([][]string, p.Boxes)
	type edge struct {
		from, to int
		label    string
	}
	var edges []edge

	for i, c := range p.Constraints {
		f, err := constraint.Parse(constraint.Kind(c.Kind), c.Text)
		if err != nil {
			return "", err
		}
		boxes := f.Boxes()
		for _, b := range boxes {
			if b < 0 || b >= p.Boxes {
				return "", fmt.Errorf("constraint %d references box %d outside 0..%d", i, b, p.Boxes-1)
			}
		}
		switch len(boxes) {
		case 1:
			labels[boxes[0]] = append(labels[boxes[0]], string(f.Kind()))
		case 2:
			edges = append(edges, edge{from: boxes[0], to: boxes[1], label: string(f.Kind())})
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph constraints {\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i := 0; i < p.Boxes; i++ {
		label := fmt.Sprintf("box %d", i)
		if len(labels[i]) > 0 {
			label += "\n" + strings.Join(labels[i], "\n")
		}
		fmt.Fprintf(&buf, "  %d [label=%q];\n", i, label)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %d -- %d [label=%q, fontsize=10];\n", e.from, e.to, e.label)
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
