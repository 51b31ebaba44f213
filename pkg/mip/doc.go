// Package mip builds and solves the mixed-integer models planrect needs.
//
// # The Model Class
//
// A [Model] holds nonnegative continuous variables, binary variables, and
// four row families:
//
//   - Linear rows over continuous variables (<=, =, >=)
//   - Cardinality rows over binary variables (e.g. l+r <= 1)
//   - Indicator rows: binary = 1 implies a linear row holds
//   - Product rows: x*y >= c for nonnegative x, y
//
// The objective is a linear expression over continuous variables, always
// minimized. This is not a general MILP surface: binaries appear only in
// cardinality and indicator rows, which is exactly the disjunctive shape
// the floor-plan encoding produces.
//
// # The Search
//
// [Solver] runs depth-first branch-and-bound on the binaries. At each node
// the indicator rows of binaries fixed to 1 are enforced and an LP
// relaxation is solved for a lower bound; bounds-based propagation over the
// cardinality rows fires forced assignments and detects conflicts early.
// Once every >= cardinality row is satisfied by some fixed binary, the
// remaining binaries are fixed to 0: turning an indicator off never shrinks
// the feasible region, so this loses no optimal solution.
//
// Product rows never involve binaries. For x, y >= 0 the set x*y >= c is
// convex (the epigraph of c/x), so each violated product row is refined
// with supporting-hyperplane cuts
//
//	(c/a²)·x + y >= 2c/a
//
// tangent to the hyperbola at x = a. The cuts are valid globally and are
// shared across the whole tree.
//
// A wall-clock time limit bounds the search; on expiry the best incumbent
// is returned with [StatusFeasible]. Progress callbacks report explored and
// pruned node counts and the incumbent objective, mirroring how long
// searches surface liveness elsewhere in the tool.
package mip
