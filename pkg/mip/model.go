package mip

import "math"

// Var identifies a continuous variable in a Model.
type Var int

// BinVar identifies a binary variable in a Model.
type BinVar int

// Op is a linear row relation.
type Op int

const (
	LE Op = iota // <=
	EQ           // ==
	GE           // >=
)

func (o Op) String() string {
	switch o {
	case LE:
		return "<="
	case EQ:
		return "=="
	default:
		return ">="
	}
}

// Term is one coefficient*variable summand of a linear expression.
type Term struct {
	Var  Var
	Coef float64
}

// LinRow is a linear constraint over continuous variables.
type LinRow struct {
	Terms []Term
	Op    Op
	RHS   float64
}

// BinRow is a cardinality constraint over binary variables: the sum of the
// listed binaries relates to RHS.
type BinRow struct {
	Bins []BinVar
	Op   Op
	RHS  int
}

// Indicator enforces Row whenever Bin is 1. When Bin is 0 or undecided the
// row is inactive.
type Indicator struct {
	Bin BinVar
	Row LinRow
}

// Product is the constraint X*Y >= C for nonnegative X, Y.
type Product struct {
	X, Y Var
	C    float64
}

// Model is a mixed-integer optimization model. The zero value is not
// usable; create models with New. A Model is not safe for concurrent
// mutation; solving does not mutate it, so distinct solves of the same
// model from separate goroutines are fine.
type Model struct {
	numCont    int
	ub         []float64
	objective  []Term
	rows       []LinRow
	binRows    []BinRow
	numBin     int
	indicators []Indicator
	products   []Product
}

// New creates an empty model.
func New() *Model {
	return &Model{}
}

// Continuous adds a continuous variable with domain [0, +inf).
func (m *Model) Continuous() Var {
	m.numCont++
	m.ub = append(m.ub, math.Inf(1))
	return Var(m.numCont - 1)
}

// BoundedContinuous adds a continuous variable with domain [0, ub].
func (m *Model) BoundedContinuous(ub float64) Var {
	v := m.Continuous()
	m.ub[v] = ub
	return v
}

// Binary adds a binary variable.
func (m *Model) Binary() BinVar {
	m.numBin++
	return BinVar(m.numBin - 1)
}

// AddLinear adds a linear row over continuous variables.
func (m *Model) AddLinear(terms []Term, op Op, rhs float64) {
	m.rows = append(m.rows, LinRow{Terms: terms, Op: op, RHS: rhs})
}

// AddBinaryRow adds a cardinality row over binary variables.
func (m *Model) AddBinaryRow(bins []BinVar, op Op, rhs int) {
	m.binRows = append(m.binRows, BinRow{Bins: bins, Op: op, RHS: rhs})
}

// AddIndicator adds a row enforced only while bin is 1.
func (m *Model) AddIndicator(bin BinVar, terms []Term, op Op, rhs float64) {
	m.indicators = append(m.indicators, Indicator{
		Bin: bin,
		Row: LinRow{Terms: terms, Op: op, RHS: rhs},
	})
}

// AddProductAtLeast adds the constraint x*y >= c.
func (m *Model) AddProductAtLeast(x, y Var, c float64) {
	m.products = append(m.products, Product{X: x, Y: y, C: c})
}

// Minimize sets the objective to the given linear expression.
func (m *Model) Minimize(terms []Term) {
	m.objective = terms
}

// NumContinuous returns the number of continuous variables.
func (m *Model) NumContinuous() int { return m.numCont }

// NumBinary returns the number of binary variables.
func (m *Model) NumBinary() int { return m.numBin }
