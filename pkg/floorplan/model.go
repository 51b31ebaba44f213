package floorplan

import "github.com/planrect/planrect/pkg/mip"

// geometry holds the model variables of one solve: the bounding rectangle,
// per-box size and position, and the direction binaries of each box pair.
type geometry struct {
	W, H mip.Var
	w    []mip.Var
	h    []mip.Var
	x    []mip.Var
	y    []mip.Var
}

// pair carries the four direction binaries of one unordered box pair. At a
// solution exactly the separations whose binaries are 1 hold; the
// cardinality rows guarantee at least one does.
type pair struct {
	i, j       int
	l, r, b, t mip.BinVar
}

// buildModel creates the base model for n boxes with clearance p: geometry
// variables, containment of every box in the bounding rectangle, the
// pairwise non-overlap disjunction, and the perimeter objective.
func buildModel(n int, p float64) (*mip.Model, *geometry) {
	m := mip.New()
	g := &geometry{
		W: m.Continuous(),
		H: m.Continuous(),
		w: make([]mip.Var, n),
		h: make([]mip.Var, n),
		x: make([]mip.Var, n),
		y: make([]mip.Var, n),
	}
	for i := 0; i < n; i++ {
		g.w[i] = m.Continuous()
		g.h[i] = m.Continuous()
		g.x[i] = m.Continuous()
		g.y[i] = m.Continuous()
	}

	for i := 0; i < n; i++ {
		// x_i + w_i <= W and y_i + h_i <= H keep every box inside the
		// bounding rectangle; the lower-left corner is implied by x,y >= 0.
		m.AddLinear([]mip.Term{
			{Var: g.x[i], Coef: 1}, {Var: g.w[i], Coef: 1}, {Var: g.W, Coef: -1},
		}, mip.LE, 0)
		m.AddLinear([]mip.Term{
			{Var: g.y[i], Coef: 1}, {Var: g.h[i], Coef: 1}, {Var: g.H, Coef: -1},
		}, mip.LE, 0)
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pr := pair{
				i: i, j: j,
				l: m.Binary(), r: m.Binary(),
				b: m.Binary(), t: m.Binary(),
			}
			// l: i entirely left of j, with clearance p. The other three
			// are the mirrored and rotated variants.
			m.AddIndicator(pr.l, []mip.Term{
				{Var: g.x[i], Coef: 1}, {Var: g.w[i], Coef: 1}, {Var: g.x[j], Coef: -1},
			}, mip.LE, -p)
			m.AddIndicator(pr.r, []mip.Term{
				{Var: g.x[j], Coef: 1}, {Var: g.w[j], Coef: 1}, {Var: g.x[i], Coef: -1},
			}, mip.LE, -p)
			m.AddIndicator(pr.b, []mip.Term{
				{Var: g.y[i], Coef: 1}, {Var: g.h[i], Coef: 1}, {Var: g.y[j], Coef: -1},
			}, mip.LE, -p)
			m.AddIndicator(pr.t, []mip.Term{
				{Var: g.y[j], Coef: 1}, {Var: g.h[j], Coef: 1}, {Var: g.y[i], Coef: -1},
			}, mip.LE, -p)

			m.AddBinaryRow([]mip.BinVar{pr.l, pr.r}, mip.LE, 1)
			m.AddBinaryRow([]mip.BinVar{pr.b, pr.t}, mip.LE, 1)
			m.AddBinaryRow([]mip.BinVar{pr.l, pr.r, pr.b, pr.t}, mip.GE, 1)
		}
	}

	m.Minimize([]mip.Term{{Var: g.W, Coef: 2}, {Var: g.H, Coef: 2}})
	return m, g
}
