// Package constraint implements the textual constraint language of planrect.
//
// A constraint is a (kind, text) pair. Each of the ten kinds accepts exactly
// one English sentence pattern, matched case-insensitively:
//
//	width:            box [int] has width of [float]
//	height:           box [int] has height of [float]
//	position:         box [int] is to the [left|bottom] of box [int]
//	area:             box [int] has area of at least [float]
//	ratio:            box [int] has aspect ratio of [at least|at most] [float]
//	horizontal_align: [top|center|bottom] of box [int] aligns horizontally with [top|center|bottom] of box [int]
//	vertical_align:   [left|center|right] of box [int] aligns vertically with [left|center|right] of box [int]
//	symmetry:         box [int] and box [int] are symmetric through axis [x|y]=[float]
//	similarity:       box [int] is [float]-scaled translate of box [int]
//	containment:      box [int] contains a point ([float],[float])
//
// [Parse] decodes a pair into a typed [Fact], one variant per kind. Parsing
// is pure and stateless; the parsers are built once at package load.
package constraint

import "fmt"

// Kind identifies one of the ten constraint sentence patterns.
type Kind string

// The ten recognized constraint kinds.
const (
	KindWidth           Kind = "width"
	KindHeight          Kind = "height"
	KindPosition        Kind = "position"
	KindArea            Kind = "area"
	KindRatio           Kind = "ratio"
	KindHorizontalAlign Kind = "horizontal_align"
	KindVerticalAlign   Kind = "vertical_align"
	KindSymmetry        Kind = "symmetry"
	KindSimilarity      Kind = "similarity"
	KindContainment     Kind = "containment"
)

// Kinds returns all recognized kinds in stable display order.
func Kinds() []Kind {
	return []Kind{
		KindWidth, KindHeight, KindPosition, KindArea, KindRatio,
		KindHorizontalAlign, KindVerticalAlign, KindSymmetry,
		KindSimilarity, KindContainment,
	}
}

// forms holds the human-readable pattern for each kind, shown by help
// output and the grammar command.
var forms = map[Kind]string{
	KindWidth:           "box [int] has width of [float]",
	KindHeight:          "box [int] has height of [float]",
	KindPosition:        "box [int] is to the [left|bottom] of box [int]",
	KindArea:            "box [int] has area of at least [float]",
	KindRatio:           "box [int] has aspect ratio of [at least|at most] [float]",
	KindHorizontalAlign: "[top|center|bottom] of box [int] aligns horizontally with [top|center|bottom] of box [int]",
	KindVerticalAlign:   "[left|center|right] of box [int] aligns vertically with [left|center|right] of box [int]",
	KindSymmetry:        "box [int] and box [int] are symmetric through axis [x|y]=[float]",
	KindSimilarity:      "box [int] is [float]-scaled translate of box [int]",
	KindContainment:     "box [int] contains a point ([float],[float])",
}

// Form returns the human-readable pattern for a kind.
func Form(k Kind) (string, bool) {
	f, ok := forms[k]
	return f, ok
}

// Side is the relative direction of a position constraint.
type Side string

const (
	SideLeft   Side = "left"
	SideBottom Side = "bottom"
)

// Comparator distinguishes the two aspect-ratio constraint directions.
type Comparator string

const (
	AtLeast Comparator = "at least"
	AtMost  Comparator = "at most"
)

// HEdge is a horizontal alignment edge of a box.
type HEdge string

const (
	EdgeTop     HEdge = "top"
	EdgeHCenter HEdge = "center"
	EdgeBottom  HEdge = "bottom"
)

// VEdge is a vertical alignment edge of a box.
type VEdge string

const (
	EdgeLeft    VEdge = "left"
	EdgeVCenter VEdge = "center"
	EdgeRight   VEdge = "right"
)

// Axis names the mirror axis of a symmetry constraint.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Fact is a decoded constraint. Exactly one concrete type exists per kind.
type Fact interface {
	// Kind returns the constraint kind this fact was decoded from.
	Kind() Kind
	// Boxes returns every box index the fact references, in sentence order.
	Boxes() []int
}

// Width fixes the width of a box.
type Width struct {
	Box   int
	Value float64
}

func (Width) Kind() Kind      { return KindWidth }
func (f Width) Boxes() []int  { return []int{f.Box} }
func (f Width) String() string { return fmt.Sprintf("width(box %d) = %g", f.Box, f.Value) }

// Height fixes the height of a box.
type Height struct {
	Box   int
	Value float64
}

func (Height) Kind() Kind      { return KindHeight }
func (f Height) Boxes() []int  { return []int{f.Box} }
func (f Height) String() string { return fmt.Sprintf("height(box %d) = %g", f.Box, f.Value) }

// Position places one box strictly to the left of, or below, another.
type Position struct {
	Box1 int
	Side Side
	Box2 int
}

func (Position) Kind() Kind     { return KindPosition }
func (f Position) Boxes() []int { return []int{f.Box1, f.Box2} }
func (f Position) String() string {
	return fmt.Sprintf("box %d %s-of box %d", f.Box1, f.Side, f.Box2)
}

// Area requires a minimum area for a box.
type Area struct {
	Box   int
	Value float64
}

func (Area) Kind() Kind      { return KindArea }
func (f Area) Boxes() []int  { return []int{f.Box} }
func (f Area) String() string { return fmt.Sprintf("area(box %d) >= %g", f.Box, f.Value) }

// Ratio bounds the aspect ratio (width / height) of a box.
type Ratio struct {
	Box   int
	Cmp   Comparator
	Value float64
}

func (Ratio) Kind() Kind     { return KindRatio }
func (f Ratio) Boxes() []int { return []int{f.Box} }
func (f Ratio) String() string {
	return fmt.Sprintf("aspect(box %d) %s %g", f.Box, f.Cmp, f.Value)
}

// HorizontalAlign equates a horizontal edge of one box with one of another.
type HorizontalAlign struct {
	Edge1 HEdge
	Box1  int
	Edge2 HEdge
	Box2  int
}

func (HorizontalAlign) Kind() Kind     { return KindHorizontalAlign }
func (f HorizontalAlign) Boxes() []int { return []int{f.Box1, f.Box2} }
func (f HorizontalAlign) String() string {
	return fmt.Sprintf("%s(box %d) = %s(box %d)", f.Edge1, f.Box1, f.Edge2, f.Box2)
}

// VerticalAlign equates a vertical edge of one box with one of another.
type VerticalAlign struct {
	Edge1 VEdge
	Box1  int
	Edge2 VEdge
	Box2  int
}

func (VerticalAlign) Kind() Kind     { return KindVerticalAlign }
func (f VerticalAlign) Boxes() []int { return []int{f.Box1, f.Box2} }
func (f VerticalAlign) String() string {
	return fmt.Sprintf("%s(box %d) = %s(box %d)", f.Edge1, f.Box1, f.Edge2, f.Box2)
}

// Symmetry mirrors two boxes through an axis-parallel line.
type Symmetry struct {
	Box1  int
	Box2  int
	Axis  Axis
	Value float64
}

func (Symmetry) Kind() Kind     { return KindSymmetry }
func (f Symmetry) Boxes() []int { return []int{f.Box1, f.Box2} }
func (f Symmetry) String() string {
	return fmt.Sprintf("box %d | box %d symmetric through %s=%g", f.Box1, f.Box2, f.Axis, f.Value)
}

// Similarity makes one box a scaled copy of another.
type Similarity struct {
	Box1  int
	Scale float64
	Box2  int
}

func (Similarity) Kind() Kind     { return KindSimilarity }
func (f Similarity) Boxes() []int { return []int{f.Box1, f.Box2} }
func (f Similarity) String() string {
	return fmt.Sprintf("box %d = %g × box %d", f.Box1, f.Scale, f.Box2)
}

// Containment requires a box to cover a fixed point.
type Containment struct {
	Box int
	X   float64
	Y   float64
}

func (Containment) Kind() Kind     { return KindContainment }
func (f Containment) Boxes() []int { return []int{f.Box} }
func (f Containment) String() string {
	return fmt.Sprintf("box %d contains (%g,%g)", f.Box, f.X, f.Y)
}
