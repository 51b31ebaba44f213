package floorplan

import (
	"github.com/planrect/planrect/pkg/constraint"
	"github.com/planrect/planrect/pkg/errors"
	"github.com/planrect/planrect/pkg/mip"
)

// Alignment edges map to affine expressions over (position, size): the
// coordinate plus a fixed fraction of the extent.
var (
	hEdgeFactor = map[constraint.HEdge]float64{
		constraint.EdgeBottom:  0,
		constraint.EdgeHCenter: 0.5,
		constraint.EdgeTop:     1,
	}
	vEdgeFactor = map[constraint.VEdge]float64{
		constraint.EdgeLeft:    0,
		constraint.EdgeVCenter: 0.5,
		constraint.EdgeRight:   1,
	}
)

// compile adds the rows of one decoded fact to the model. Box indices have
// already been range-checked.
func compile(m *mip.Model, g *geometry, f constraint.Fact, p float64) error {
	switch f := f.(type) {
	case constraint.Width:
		m.AddLinear([]mip.Term{{Var: g.w[f.Box], Coef: 1}}, mip.EQ, f.Value)

	case constraint.Height:
		m.AddLinear([]mip.Term{{Var: g.h[f.Box], Coef: 1}}, mip.EQ, f.Value)

	case constraint.Position:
		// Positions are unconditional separations and carry the same
		// clearance as the non-overlap disjunction.
		switch f.Side {
		case constraint.SideLeft:
			m.AddLinear([]mip.Term{
				{Var: g.x[f.Box1], Coef: 1}, {Var: g.w[f.Box1], Coef: 1}, {Var: g.x[f.Box2], Coef: -1},
			}, mip.LE, -p)
		case constraint.SideBottom:
			m.AddLinear([]mip.Term{
				{Var: g.y[f.Box1], Coef: 1}, {Var: g.h[f.Box1], Coef: 1}, {Var: g.y[f.Box2], Coef: -1},
			}, mip.LE, -p)
		default:
			return errors.New(errors.ErrCodeInternal, "unknown position side %q", f.Side)
		}

	case constraint.Area:
		m.AddProductAtLeast(g.w[f.Box], g.h[f.Box], f.Value)

	case constraint.Ratio:
		// w/h >= v is w - v*h >= 0 for h > 0; at most flips the relation.
		op := mip.GE
		if f.Cmp == constraint.AtMost {
			op = mip.LE
		}
		m.AddLinear([]mip.Term{
			{Var: g.w[f.Box], Coef: 1}, {Var: g.h[f.Box], Coef: -f.Value},
		}, op, 0)

	case constraint.HorizontalAlign:
		c1, c2 := hEdgeFactor[f.Edge1], hEdgeFactor[f.Edge2]
		m.AddLinear([]mip.Term{
			{Var: g.y[f.Box1], Coef: 1}, {Var: g.h[f.Box1], Coef: c1},
			{Var: g.y[f.Box2], Coef: -1}, {Var: g.h[f.Box2], Coef: -c2},
		}, mip.EQ, 0)

	case constraint.VerticalAlign:
		c1, c2 := vEdgeFactor[f.Edge1], vEdgeFactor[f.Edge2]
		m.AddLinear([]mip.Term{
			{Var: g.x[f.Box1], Coef: 1}, {Var: g.w[f.Box1], Coef: c1},
			{Var: g.x[f.Box2], Coef: -1}, {Var: g.w[f.Box2], Coef: -c2},
		}, mip.EQ, 0)

	case constraint.Symmetry:
		// The two centers mirror through the line: center1 + center2 = 2v.
		pos, ext := g.x, g.w
		if f.Axis == constraint.AxisY {
			pos, ext = g.y, g.h
		}
		m.AddLinear([]mip.Term{
			{Var: pos[f.Box1], Coef: 1}, {Var: ext[f.Box1], Coef: 0.5},
			{Var: pos[f.Box2], Coef: 1}, {Var: ext[f.Box2], Coef: 0.5},
		}, mip.EQ, 2*f.Value)

	case constraint.Similarity:
		m.AddLinear([]mip.Term{
			{Var: g.w[f.Box1], Coef: 1}, {Var: g.w[f.Box2], Coef: -f.Scale},
		}, mip.EQ, 0)
		m.AddLinear([]mip.Term{
			{Var: g.h[f.Box1], Coef: 1}, {Var: g.h[f.Box2], Coef: -f.Scale},
		}, mip.EQ, 0)

	case constraint.Containment:
		m.AddLinear([]mip.Term{{Var: g.x[f.Box], Coef: 1}}, mip.LE, f.X)
		m.AddLinear([]mip.Term{{Var: g.y[f.Box], Coef: 1}}, mip.LE, f.Y)
		m.AddLinear([]mip.Term{
			{Var: g.x[f.Box], Coef: 1}, {Var: g.w[f.Box], Coef: 1},
		}, mip.GE, f.X)
		m.AddLinear([]mip.Term{
			{Var: g.y[f.Box], Coef: 1}, {Var: g.h[f.Box], Coef: 1},
		}, mip.GE, f.Y)

	default:
		return errors.New(errors.ErrCodeInternal, "no encoding for constraint kind %q", f.Kind())
	}
	return nil
}

// checkIndices rejects any referenced box index outside [0, n).
func checkIndices(i int, f constraint.Fact, n int) error {
	for _, b := range f.Boxes() {
		if b < 0 || b >= n {
			return errors.New(errors.ErrCodeIndexOutOfRange,
				"constraint %d references box %d; problem has %d boxes", i, b, n)
		}
	}
	return nil
}
