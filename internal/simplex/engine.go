// Package simplex implements the revised-simplex primal/dual engine: it
// maintains standard-form LP state (A, b, c, basis, reduced costs) against a
// maintained LU factorization of the basis and drives primal and dual pivots
// to optimality, per spec.md 4.4.
package simplex

import (
	"math"

	"github.com/ajasmin/microlp/internal/lu"
	"github.com/ajasmin/microlp/internal/sparse"
)

// Status is the position of a non-basic variable relative to its bounds.
// Basic variables carry no meaningful status (their value is read from xB).
type Status int

const (
	AtLower Status = iota
	AtUpper
	Free
	Basic
)

// Logger receives informational events: one per refactorization and per
// unusual event (stall, infeasibility, singular basis recovered), per
// spec.md 6. A nil Logger is treated as a no-op sink.
type Logger interface {
	Infof(format string, args ...interface{})
}

// Row pairs a sparse tableau row with a value. Nothing in this package
// builds one: TableauRow (gomory.go) returns the row as a dense []float64.
type Row struct {
	Coeffs sparse.Vector
	Value  float64
}

// Engine holds the complete state of one standard-form LP instance: the
// constraint data (A, b, c), bounds, the current basic/non-basic partition,
// and the maintained LU factorization of the basis submatrix. It is the
// state jjhbw-GoMILP's subProblem held densely and rebuilt from scratch each
// time; here it is mutated in place by the primal and dual pivot steps
// (primalStep, dualStep) and cloned
// wholesale by Clone for independent perturbation exploration.
type Engine struct {
	A *sparse.Matrix
	B []float64 // rhs, length m
	C []float64 // objective, length n

	Lower []float64 // length n, per-column lower bound
	Upper []float64 // length n, per-column upper bound (may be +Inf)

	m, n int

	basis    []int    // basis[slot] = column index occupying that basis slot
	inBasis  []int    // inBasis[col] = slot, or -1 if non-basic
	status   []Status // meaningful only for non-basic columns

	// excluded marks a column dropped from further pricing consideration
	// (phase-1 artificials once phase 1 completes, per spec.md 4.4's "drop
	// artificials that left the basis"); pricing, the dual ratio test, and
	// Gomory cut construction all skip an excluded column as if it did not
	// exist, regardless of its current status.
	excluded []bool

	xB []float64 // primal values of basic columns, length m
	Y  []float64 // dual values, length m
	D  []float64 // reduced costs, length n

	lu *lu.Factorization

	pivotCount      int
	degenerateCount int

	cfg Config
	Log Logger
}

// BlandThreshold is the default number of consecutive degenerate pivots
// (zero step length) after which pricing switches from Dantzig's rule to
// Bland's rule to guarantee termination, per spec.md 4.4.
const BlandThreshold = 10

// maxPivotFactor is the default bound on total pivot iterations, 50*(m+n),
// per spec.md 4.4.
const maxPivotFactor = 50

// Config groups the engine's tunable numerical thresholds: the LU
// factorization's own thresholds (spec.md 4.3) plus the simplex-level
// Bland's-rule fallback and pivot-count bound (spec.md 4.4), so the root
// package's Tolerances configuration surface can override the spec's
// documented defaults in one place.
type Config struct {
	LU             lu.Thresholds
	BlandThreshold int
	PivotFactor    int
}

// DefaultConfig returns the spec.md 4.3/4.4 documented default values.
func DefaultConfig() Config {
	return Config{
		LU:             lu.DefaultThresholds(),
		BlandThreshold: BlandThreshold,
		PivotFactor:    maxPivotFactor,
	}
}

// tolerance for declaring a reduced cost, primal value, or ratio-test
// denominator to be zero.
const eps = 1e-9

// infinity is the sentinel used for an unbounded-above column, per spec.md
// 3's implicit [0, +Inf) variable bound.
var infinity = math.Inf(1)

func (e *Engine) logf(format string, args ...interface{}) {
	if e.Log != nil {
		e.Log.Infof(format, args...)
	}
}

// New builds an Engine from standard-form data together with an initial
// basis (one column per row, expected to be the identity columns
// contributed by slacks/artificials at problem construction, per spec.md
// 3's "no crash basis" design) and the status of every non-basic column.
// It factors the initial basis and computes xB, Y, D from scratch.
func New(a *sparse.Matrix, b, c, lower, upper []float64, basis []int, status []Status, log Logger, cfg Config) (*Engine, error) {
	m, n := a.Rows, a.Cols
	e := &Engine{
		A: a, B: b, C: c,
		Lower: lower, Upper: upper,
		m: m, n: n,
		basis:  append([]int(nil), basis...),
		status: append([]Status(nil), status...),
		xB:       make([]float64, m),
		Y:        make([]float64, m),
		D:        make([]float64, n),
		excluded: make([]bool, n),
		cfg:      cfg,
		Log:      log,
	}
	e.inBasis = make([]int, n)
	for j := range e.inBasis {
		e.inBasis[j] = -1
	}
	for slot, col := range e.basis {
		e.inBasis[col] = slot
		e.status[col] = Basic
	}

	if err := e.refactor(); err != nil {
		return nil, err
	}
	e.computeXB()
	e.computeDuals()
	e.computeReducedCosts()
	return e, nil
}

// basisMatrix materializes the current basis columns into a fresh square
// sparse.Matrix, the input lu.Factor expects.
func (e *Engine) basisMatrix() *sparse.Matrix {
	bld := sparse.NewBuilder(e.m, e.m)
	for _, col := range e.basis {
		v := e.A.Column(col)
		bld.AddColumn(v.Indices, v.Values)
	}
	return bld.Build()
}

// refactor recomputes the LU factorization of the current basis from
// scratch, clearing the eta list, per spec.md 4.3.
func (e *Engine) refactor() error {
	f, err := lu.Factor(e.basisMatrix(), e.cfg.LU)
	if err != nil {
		return err
	}
	e.lu = f
	e.logf("simplex: refactorized basis (m=%d)", e.m)
	return nil
}

// computeXB sets xB = B^-1 (b - N xN), where xN is read off each non-basic
// column's status (AtLower -> Lower[j], AtUpper -> Upper[j], Free -> 0).
func (e *Engine) computeXB() {
	rhs := make([]float64, e.m)
	copy(rhs, e.B)
	for j := 0; j < e.n; j++ {
		if e.inBasis[j] != -1 {
			continue
		}
		xj := e.nonbasicValue(j)
		if xj == 0 {
			continue
		}
		col := e.A.Column(j)
		for k, row := range col.Indices {
			rhs[row] -= col.Values[k] * xj
		}
	}
	x := e.lu.Solve(sparse.NewVector(e.m, denseIndices(rhs), denseValues(rhs)))
	for i := 0; i < e.m; i++ {
		e.xB[i] = x.At(i)
	}
}

func (e *Engine) nonbasicValue(j int) float64 {
	switch e.status[j] {
	case AtLower:
		return e.Lower[j]
	case AtUpper:
		return e.Upper[j]
	default: // Free
		return 0
	}
}

// computeDuals sets Y = B^-T c_B.
func (e *Engine) computeDuals() {
	cB := make([]float64, e.m)
	for slot, col := range e.basis {
		cB[slot] = e.C[col]
	}
	y := e.lu.SolveTranspose(sparse.NewVector(e.m, denseIndices(cB), denseValues(cB)))
	for i := 0; i < e.m; i++ {
		e.Y[i] = y.At(i)
	}
}

// computeReducedCosts sets D[j] = c[j] - a_j . Y for every non-basic j;
// basic columns carry a nominal zero.
func (e *Engine) computeReducedCosts() {
	for j := 0; j < e.n; j++ {
		if e.inBasis[j] != -1 {
			e.D[j] = 0
			continue
		}
		col := e.A.Column(j)
		e.D[j] = e.C[j] - col.Dot(e.Y)
	}
}

// Objective returns c^T x for the current basic/non-basic assignment.
func (e *Engine) Objective() float64 {
	total := 0.0
	for slot, col := range e.basis {
		total += e.C[col] * e.xB[slot]
	}
	for j := 0; j < e.n; j++ {
		if e.inBasis[j] == -1 {
			total += e.C[j] * e.nonbasicValue(j)
		}
	}
	return total
}

// Value returns the current value of column j, whether basic or non-basic.
func (e *Engine) Value(j int) float64 {
	if slot := e.inBasis[j]; slot != -1 {
		return e.xB[slot]
	}
	return e.nonbasicValue(j)
}

// Basis exposes a defensive copy of the current basic column set, ordered
// by basis slot.
func (e *Engine) Basis() []int {
	return append([]int(nil), e.basis...)
}

func (e *Engine) InBasis(j int) bool { return e.inBasis[j] != -1 }

func (e *Engine) Status(j int) Status { return e.status[j] }

// Clone produces an independent copy of e suitable for an incremental
// perturbation: everything mutated by a pivot (basis bookkeeping, xB, Y, D,
// and the LU factorization's eta list) is deep-copied; the immutable
// problem data (A, C) is shared by reference, matching spec.md 9's
// guidance on value-semantics snapshots.
func (e *Engine) Clone() *Engine {
	c := &Engine{
		A: e.A, B: append([]float64(nil), e.B...), C: e.C,
		Lower: e.Lower, Upper: e.Upper,
		m: e.m, n: e.n,
		basis:    append([]int(nil), e.basis...),
		inBasis:  append([]int(nil), e.inBasis...),
		status:   append([]Status(nil), e.status...),
		excluded: append([]bool(nil), e.excluded...),
		xB:       append([]float64(nil), e.xB...),
		Y:        append([]float64(nil), e.Y...),
		D:        append([]float64(nil), e.D...),
		lu:       e.lu.Clone(),
		cfg:      e.cfg,
		Log:      e.Log,
	}
	return c
}

func denseIndices(v []float64) []int {
	idx := make([]int, 0, len(v))
	for i, x := range v {
		if x != 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

func denseValues(v []float64) []float64 {
	vals := make([]float64, 0, len(v))
	for _, x := range v {
		if x != 0 {
			vals = append(vals, x)
		}
	}
	return vals
}

func abs(x float64) float64 { return math.Abs(x) }
