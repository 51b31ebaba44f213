// Package render turns solved floor plans into images: a direct SVG
// drawing of the layout, and a Graphviz view of the constraint structure.
package render

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/planrect/planrect/pkg/floorplan"
)

// SVGOptions configures plan drawing.
type SVGOptions struct {
	// Width is the target image width in pixels. Zero means 800.
	Width int

	// NoLabels omits the box index labels.
	NoLabels bool
}

const svgMargin = 20

// Box fills cycle through this palette by index.
var palette = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3",
	"#a6d854", "#ffd92f", "#e5c494", "#b3b3b3",
}

// PlanSVG draws the layout as an SVG image. Plan coordinates grow upward,
// so the drawing flips the y axis. An empty plan yields a small blank
// image rather than an error.
func PlanSVG(res *floorplan.Result, opts SVGOptions) []byte {
	width := opts.Width
	if width <= 0 {
		width = 800
	}

	scale := 1.0
	if res.W > 0 {
		scale = float64(width-2*svgMargin) / res.W
	}
	height := int(res.H*scale) + 2*svgMargin

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(width, height)

	// Bounding rectangle outline.
	canvas.Rect(svgMargin, svgMargin, int(res.W*scale), int(res.H*scale),
		"fill:none;stroke:#333;stroke-width:2;stroke-dasharray:6,4")

	for i := 0; i < res.Boxes(); i++ {
		x := svgMargin + int(res.X[i]*scale)
		y := svgMargin + int((res.H-res.Y[i]-res.Height[i])*scale)
		w := int(res.Width[i] * scale)
		h := int(res.Height[i] * scale)
		fill := palette[i%len(palette)]
		canvas.Rect(x, y, w, h,
			fmt.Sprintf("fill:%s;fill-opacity:0.8;stroke:#333;stroke-width:1", fill))
		if !opts.NoLabels && w > 0 && h > 0 {
			canvas.Text(x+w/2, y+h/2, fmt.Sprintf("%d", i),
				"font-family:sans-serif;font-size:14px;text-anchor:middle;dominant-baseline:middle;fill:#111")
		}
	}

	canvas.End()
	return buf.Bytes()
}
