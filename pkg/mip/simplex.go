package mip

import (
	"errors"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// lpStatus is the outcome of one relaxation solve.
type lpStatus int

const (
	lpOptimal lpStatus = iota
	lpInfeasible
	lpUnbounded
	lpError
)

const lpTol = 1e-10

// solveLP minimizes obj over the given rows with every variable restricted
// to [0, ub[i]]. Rows are converted to standard form (Ax = b, x >= 0) by
// introducing one slack per inequality; finite upper bounds become extra
// rows. Returns the optimal objective and a value per variable.
func solveLP(n int, obj []Term, ub []float64, rows []LinRow) (float64, []float64, lpStatus) {
	all := make([]LinRow, 0, len(rows)+n)
	all = append(all, rows...)
	for i := 0; i < n; i++ {
		if !isInf(ub[i]) {
			all = append(all, LinRow{Terms: []Term{{Var: Var(i), Coef: 1}}, Op: LE, RHS: ub[i]})
		}
	}

	if len(all) == 0 {
		return solveUnconstrained(n, obj, ub)
	}

	nSlack := 0
	for _, r := range all {
		if r.Op != EQ {
			nSlack++
		}
	}
	m := len(all)
	nTot := n + nSlack

	data := make([]float64, m*nTot)
	b := make([]float64, m)
	slack := n
	for i, r := range all {
		row := data[i*nTot : (i+1)*nTot]
		for _, t := range r.Terms {
			row[t.Var] += t.Coef
		}
		switch r.Op {
		case LE:
			row[slack] = 1
			slack++
		case GE:
			row[slack] = -1
			slack++
		}
		b[i] = r.RHS
		// Simplex wants b >= 0; negating a row preserves the equality.
		if b[i] < 0 {
			for j := range row {
				row[j] = -row[j]
			}
			b[i] = -b[i]
		}
	}

	c := make([]float64, nTot)
	for _, t := range obj {
		c[t.Var] += t.Coef
	}

	opt, xs, err := lp.Simplex(c, mat.NewDense(m, nTot, data), b, lpTol, nil)
	switch {
	case err == nil:
	case errors.Is(err, lp.ErrInfeasible):
		return 0, nil, lpInfeasible
	case errors.Is(err, lp.ErrUnbounded):
		return 0, nil, lpUnbounded
	default:
		return 0, nil, lpError
	}

	x := make([]float64, n)
	copy(x, xs[:n])
	return opt, x, lpOptimal
}

// solveUnconstrained handles the degenerate rowless model: every variable
// sits at a bound chosen by its objective coefficient.
func solveUnconstrained(n int, obj []Term, ub []float64) (float64, []float64, lpStatus) {
	c := make([]float64, n)
	for _, t := range obj {
		c[t.Var] += t.Coef
	}
	x := make([]float64, n)
	val := 0.0
	for i := 0; i < n; i++ {
		if c[i] < 0 {
			if isInf(ub[i]) {
				return 0, nil, lpUnbounded
			}
			x[i] = ub[i]
			val += c[i] * ub[i]
		}
	}
	return val, x, lpOptimal
}

func isInf(v float64) bool {
	return v > 1e300
}
