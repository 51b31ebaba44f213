package mip

import (
	"context"
	"math"
	"time"
)

// Status reports the outcome of a solve.
type Status int

const (
	// StatusOptimal means the search completed and the returned solution
	// is optimal for the model.
	StatusOptimal Status = iota
	// StatusFeasible means the time limit expired; the returned solution
	// is the best incumbent found but not proven optimal.
	StatusFeasible
	// StatusInfeasible means the search completed without finding any
	// feasible assignment.
	StatusInfeasible
	// StatusUnbounded means the relaxation is unbounded below.
	StatusUnbounded
	// StatusNoSolution means the time limit expired before any feasible
	// assignment was found.
	StatusNoSolution
	// StatusError means a relaxation solve failed numerically.
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusFeasible:
		return "feasible"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusNoSolution:
		return "no solution"
	default:
		return "error"
	}
}

// Solution is the result of one solve. Values and Binaries are populated
// only for StatusOptimal and StatusFeasible.
type Solution struct {
	Status    Status
	Objective float64
	Values    []float64
	Binaries  []int8
}

// Solver runs branch-and-bound over a Model. The zero value solves with
// no time limit and default tolerances.
type Solver struct {
	// TimeLimit bounds the wall-clock search time. Zero means unlimited.
	TimeLimit time.Duration

	// Tol is the feasibility tolerance for product rows. Defaults to 1e-6.
	Tol float64

	// MaxCutRounds caps the supporting-hyperplane refinement per node.
	// Defaults to 80.
	MaxCutRounds int

	// Progress, when set, is called periodically and on every incumbent
	// improvement with the explored and pruned node counts and the best
	// objective so far (+Inf before the first incumbent).
	Progress func(explored, pruned int, best float64)
}

const (
	unassigned int8 = -1
	boundSlack      = 1e-9
)

// Solve searches the model for a minimum-objective assignment. The context
// cancels the search the same way the time limit does: the best incumbent
// so far is returned.
func (s Solver) Solve(ctx context.Context, m *Model) Solution {
	tol := s.Tol
	if tol <= 0 {
		tol = 1e-6
	}
	rounds := s.MaxCutRounds
	if rounds <= 0 {
		rounds = 80
	}

	sr := &search{
		m:        m,
		ctx:      ctx,
		tol:      tol,
		rounds:   rounds,
		progress: s.Progress,
		best:     math.Inf(1),
		tangents: make([][]float64, len(m.products)),
	}
	if s.TimeLimit > 0 {
		sr.deadline = time.Now().Add(s.TimeLimit)
		sr.hasDeadline = true
	}

	assign := make([]int8, m.numBin)
	for i := range assign {
		assign[i] = unassigned
	}
	sr.node(assign)
	sr.report()

	switch {
	case sr.failed:
		return Solution{Status: StatusError}
	case sr.unbounded:
		return Solution{Status: StatusUnbounded}
	case sr.timedOut && sr.incumbent != nil:
		return Solution{Status: StatusFeasible, Objective: sr.best, Values: sr.incumbent, Binaries: sr.incBins}
	case sr.timedOut:
		return Solution{Status: StatusNoSolution}
	case sr.incumbent != nil:
		return Solution{Status: StatusOptimal, Objective: sr.best, Values: sr.incumbent, Binaries: sr.incBins}
	default:
		return Solution{Status: StatusInfeasible}
	}
}

type search struct {
	m           *Model
	ctx         context.Context
	tol         float64
	rounds      int
	progress    func(int, int, float64)
	deadline    time.Time
	hasDeadline bool

	cuts     []LinRow    // product cuts, valid for the whole tree
	tangents [][]float64 // tangent points already cut, per product

	best      float64
	incumbent []float64
	incBins   []int8

	explored, pruned int
	timedOut         bool
	unbounded        bool
	failed           bool
}

func (s *search) done() bool {
	return s.timedOut || s.unbounded || s.failed
}

func (s *search) stop() bool {
	if s.ctx != nil && s.ctx.Err() != nil {
		s.timedOut = true
	}
	if s.hasDeadline && time.Now().After(s.deadline) {
		s.timedOut = true
	}
	return s.done()
}

func (s *search) report() {
	if s.progress != nil {
		s.progress(s.explored, s.pruned, s.best)
	}
}

// node explores one branch-and-bound node. assign is owned by the callee
// and may be mutated freely.
func (s *search) node(assign []int8) {
	if s.stop() {
		return
	}
	s.explored++
	if s.explored%256 == 0 {
		s.report()
	}

	if !s.propagate(assign) {
		s.pruned++
		return
	}

	obj, x, ok := s.relax(assign)
	if !ok || s.done() {
		return
	}
	if obj >= s.best-boundSlack {
		s.pruned++
		return
	}

	bin := s.pickBranch(assign)
	if bin < 0 {
		s.leaf(assign, obj, x)
		return
	}

	// Separating first keeps the search moving toward feasible layouts.
	left := make([]int8, len(assign))
	copy(left, assign)
	left[bin] = 1
	s.node(left)
	if s.done() {
		return
	}
	assign[bin] = 0
	s.node(assign)
}

// propagate applies bounds reasoning to the cardinality rows until a fixed
// point. Returns false on conflict.
func (s *search) propagate(assign []int8) bool {
	for changed := true; changed; {
		changed = false
		for _, row := range s.m.binRows {
			ones, unknown := 0, 0
			for _, b := range row.Bins {
				switch assign[b] {
				case 1:
					ones++
				case unassigned:
					unknown++
				}
			}
			needMore := row.Op != LE && ones < row.RHS
			capped := row.Op != GE

			if capped && ones > row.RHS {
				return false
			}
			if needMore && ones+unknown < row.RHS {
				return false
			}
			if unknown == 0 {
				continue
			}
			if capped && ones == row.RHS {
				for _, b := range row.Bins {
					if assign[b] == unassigned {
						assign[b] = 0
						changed = true
					}
				}
			}
			if needMore && ones+unknown == row.RHS {
				for _, b := range row.Bins {
					if assign[b] == unassigned {
						assign[b] = 1
						changed = true
					}
				}
			}
		}
	}
	return true
}

// pickBranch returns an undecided binary from a cardinality row that still
// needs a 1, or -1 when every such row is satisfied.
func (s *search) pickBranch(assign []int8) BinVar {
	for _, row := range s.m.binRows {
		if row.Op == LE {
			continue
		}
		ones := 0
		for _, b := range row.Bins {
			if assign[b] == 1 {
				ones++
			}
		}
		if ones >= row.RHS {
			continue
		}
		for _, b := range row.Bins {
			if assign[b] == unassigned {
				return b
			}
		}
	}
	return -1
}

// relax solves the node LP, refining product rows with cuts. The bound is
// valid whether or not the product rows converged; convergence matters
// only at leaves, where leaf re-checks. The wall clock is checked before
// every LP, so a node never overruns the deadline by more than one solve.
func (s *search) relax(assign []int8) (float64, []float64, bool) {
	rows := s.nodeRows(assign)
	for round := 0; ; round++ {
		if s.stop() {
			return 0, nil, false
		}
		r, ok := s.solveNode(rows)
		if !ok {
			return 0, nil, false
		}
		switch r.st {
		case lpInfeasible:
			s.pruned++
			return 0, nil, false
		case lpUnbounded:
			s.unbounded = true
			return 0, nil, false
		case lpError:
			s.failed = true
			return 0, nil, false
		}
		if round >= s.rounds {
			return r.obj, r.x, true
		}
		added := false
		for pi, p := range s.m.products {
			if p.C <= 0 {
				continue
			}
			if r.x[p.X]*r.x[p.Y] >= p.C-s.tol*math.Max(1, p.C) {
				continue
			}
			a := tangentPoint(p, r.x)
			if !s.recordTangent(pi, a) {
				continue
			}
			cut := productCut(p, a)
			s.cuts = append(s.cuts, cut)
			rows = append(rows, cut)
			added = true
		}
		if !added {
			return r.obj, r.x, true
		}
	}
}

type lpResult struct {
	obj float64
	x   []float64
	st  lpStatus
}

// solveNode runs the node LP under the search deadline. A solve that
// outlives the deadline or the context is abandoned: it finishes on its
// own goroutine and the result is discarded.
func (s *search) solveNode(rows []LinRow) (lpResult, bool) {
	if !s.hasDeadline && (s.ctx == nil || s.ctx.Done() == nil) {
		obj, x, st := solveLP(s.m.numCont, s.m.objective, s.m.ub, rows)
		return lpResult{obj: obj, x: x, st: st}, true
	}

	ch := make(chan lpResult, 1)
	go func() {
		obj, x, st := solveLP(s.m.numCont, s.m.objective, s.m.ub, rows)
		ch <- lpResult{obj: obj, x: x, st: st}
	}()

	var expired <-chan time.Time
	if s.hasDeadline {
		t := time.NewTimer(time.Until(s.deadline))
		defer t.Stop()
		expired = t.C
	}
	var cancelled <-chan struct{}
	if s.ctx != nil {
		cancelled = s.ctx.Done()
	}
	select {
	case r := <-ch:
		return r, true
	case <-expired:
		s.timedOut = true
	case <-cancelled:
		s.timedOut = true
	}
	return lpResult{}, false
}

// recordTangent registers a tangent point for product pi, rejecting points
// within 0.1% of one already cut. Near-duplicate cuts only make the LP
// basis degenerate; the spacing still closes the product gap well inside
// the default tolerance.
func (s *search) recordTangent(pi int, a float64) bool {
	for _, prev := range s.tangents[pi] {
		if math.Abs(a-prev) <= 1e-3*prev {
			return false
		}
	}
	s.tangents[pi] = append(s.tangents[pi], a)
	return true
}

// nodeRows assembles the LP rows for a node: model rows, accumulated cuts,
// and the indicator rows of binaries fixed to 1.
func (s *search) nodeRows(assign []int8) []LinRow {
	rows := make([]LinRow, 0, len(s.m.rows)+len(s.cuts)+len(s.m.indicators))
	rows = append(rows, s.m.rows...)
	rows = append(rows, s.cuts...)
	for _, ind := range s.m.indicators {
		if assign[ind.Bin] == 1 {
			rows = append(rows, ind.Row)
		}
	}
	return rows
}

// leaf records an incumbent once every undecided binary can be fixed to 0.
// Deactivating an indicator never cuts off a solution, so this is safe.
func (s *search) leaf(assign []int8, obj float64, x []float64) {
	for _, p := range s.m.products {
		if p.C > 0 && x[p.X]*x[p.Y] < p.C-s.tol*math.Max(1, p.C) {
			// Cut refinement ran out of rounds before closing the gap;
			// discard the leaf rather than accept an infeasible layout.
			s.pruned++
			return
		}
	}
	if obj >= s.best-boundSlack {
		s.pruned++
		return
	}
	s.best = obj
	s.incumbent = x
	bins := make([]int8, len(assign))
	for i, v := range assign {
		if v == 1 {
			bins[i] = 1
		}
	}
	s.incBins = bins
	s.report()
}

// tangentPoint picks where to support the hyperbola x*y = c. The point is
// floored at a fixed fraction of sqrt(c): cut coefficients grow as c/a²,
// and rows with near-singular coefficients stall the simplex.
func tangentPoint(p Product, x []float64) float64 {
	a := x[p.X]
	if a <= 0 {
		if y := x[p.Y]; y > 0 {
			a = p.C / y
		}
	}
	if floor := 0.05 * math.Sqrt(p.C); a < floor {
		a = floor
	}
	return a
}

// productCut builds the supporting-hyperplane cut for x*y >= c, tangent to
// y = c/x at x = a.
func productCut(p Product, a float64) LinRow {
	return LinRow{
		Terms: []Term{{Var: p.X, Coef: p.C / (a * a)}, {Var: p.Y, Coef: 1}},
		Op:    GE,
		RHS:   2 * p.C / a,
	}
}
