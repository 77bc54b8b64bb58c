// Package microlp is a revised-simplex linear-programming solver over
// sparse matrices, extended with the post-solve operations a branch-and-cut
// integer-programming search needs on top of an already-solved relaxation:
// pinning and unpinning a variable, incrementally adding a constraint row,
// and deriving a Gomory fractional cut from the current optimal basis.
//
// The problem-construction surface (this file), the public Solution type
// (solution.go), and logging (logging.go) are thin collaborators; the hard
// engineering lives in internal/lu's maintained LU factorization and
// internal/simplex's primal/dual pivoting, both driven from build.go and
// incremental.go.
package microlp

import (
	"fmt"
	"math"

	"github.com/ajasmin/microlp/internal/lu"
	"github.com/ajasmin/microlp/internal/simplex"
)

// Variable identifies a declared variable by its dense, zero-based
// declaration order, matching the original Rust crate's Variable(usize)
// newtype (see DESIGN.md). Every variable has an implicit lower bound of 0
// and upper bound of +Inf; anything tighter is modeled as an explicit row.
type Variable int

// RelOp is the relational operator of a constraint row.
type RelOp int

const (
	LE RelOp = iota
	GE
	EQ
)

func (op RelOp) String() string {
	switch op {
	case LE:
		return "<="
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "?"
	}
}

// Term is one (variable, coefficient) pair of a linear expression. A row is
// any slice of Terms; duplicate variables within one row are summed and a
// zero coefficient is silently dropped, per spec.md 6.
type Term struct {
	Var  Variable
	Coef float64
}

// posInf is the implicit upper bound of every variable (spec.md 3); a
// variable tighter than that is modeled as an explicit row, never as a
// per-column bound.
var posInf = math.Inf(1)

// CoefficientHorizon is the magnitude above which a row coefficient or
// right-hand side is rejected with ErrUnsupported rather than admitted into
// the pivot arithmetic, per DESIGN.md's resolution of spec.md 9's extreme-
// magnitude-bounds open question.
const CoefficientHorizon = 1e15

// Tolerances groups the numerical thresholds named throughout spec.md 4:
// the LU threshold-partial-pivoting constant and refactor triggers, the
// simplex engine's Bland's-rule fallback and pivot-count bound, and the
// coefficient-magnitude horizon above which a constraint is rejected. This
// is a configuration *surface*, not a config *system* -- there is no file
// format or environment variable behind it, per spec.md 6's Non-goals.
type Tolerances struct {
	PivotTolerance     float64
	MaxEtaUpdates      int
	MaxGrowthRatio     float64
	BlandThreshold     int
	PivotFactor        int
	CoefficientHorizon float64
}

// DefaultTolerances returns the spec.md-documented default values.
func DefaultTolerances() Tolerances {
	cfg := simplex.DefaultConfig()
	return Tolerances{
		PivotTolerance:     cfg.LU.PivotTolerance,
		MaxEtaUpdates:      cfg.LU.MaxEtaUpdates,
		MaxGrowthRatio:     cfg.LU.MaxGrowthRatio,
		BlandThreshold:     cfg.BlandThreshold,
		PivotFactor:        cfg.PivotFactor,
		CoefficientHorizon: CoefficientHorizon,
	}
}

func (t Tolerances) engineConfig() simplex.Config {
	return simplex.Config{
		LU: lu.Thresholds{
			PivotTolerance: t.PivotTolerance,
			MaxEtaUpdates:  t.MaxEtaUpdates,
			MaxGrowthRatio: t.MaxGrowthRatio,
		},
		BlandThreshold: t.BlandThreshold,
		PivotFactor:    t.PivotFactor,
	}
}

// Option configures a Problem's Tolerances or Logger at construction time,
// in the functional-option style of itohio-EasyRobot/x/options (see
// DESIGN.md).
type Option func(*Problem)

// WithTolerances overrides the default numerical thresholds.
func WithTolerances(t Tolerances) Option {
	return func(p *Problem) { p.tol = t }
}

// WithLogger installs a host-provided sink for the informational events
// spec.md 6 describes (one per refactorization, one per unusual event).
// The default is a no-op sink.
func WithLogger(log Logger) Option {
	return func(p *Problem) { p.log = log }
}

// Problem is the abstract, append-only problem representation: variables
// then constraint rows, built up by AddVariable/AddConstraint before the
// first call to Solve. Its zero value is not usable; construct with
// NewProblem.
type Problem struct {
	maximize bool

	objective []float64 // objective[v] = objective coefficient of variable v
	rows      []problemRow

	tol Tolerances
	log Logger
}

type problemRow struct {
	terms map[Variable]float64
	op    RelOp
	rhs   float64
}

// NewProblem creates an empty problem, ready to accept AddVariable and
// AddConstraint calls.
func NewProblem(opts ...Option) *Problem {
	p := &Problem{
		tol: DefaultTolerances(),
		log: noopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Maximize sets the problem to maximize its objective; the default is
// minimize. The engine always solves a minimization internally (spec.md 3);
// a maximization request negates c on the way in and the reported
// objective on the way out.
func (p *Problem) Maximize() { p.maximize = true }

// Minimize restores the (default) minimization sense.
func (p *Problem) Minimize() { p.maximize = false }

// AddVariable declares a new variable with the given objective coefficient
// and returns its handle. Declaration order is the variable's dense index.
func (p *Problem) AddVariable(objectiveCoefficient float64) Variable {
	p.objective = append(p.objective, objectiveCoefficient)
	return Variable(len(p.objective) - 1)
}

// NumVariables reports how many variables have been declared so far.
func (p *Problem) NumVariables() int { return len(p.objective) }

func (p *Problem) checkVariable(v Variable) {
	if int(v) < 0 || int(v) >= len(p.objective) {
		panic(fmt.Sprintf("microlp: variable %d not declared in this problem", v))
	}
}

// sumTerms collapses duplicate variables (summing coefficients) and drops
// zero coefficients, per spec.md 6: "Coefficient of zero is allowed and
// dropped. Duplicate variables in one row sum."
func (p *Problem) sumTerms(terms []Term) map[Variable]float64 {
	out := make(map[Variable]float64, len(terms))
	for _, t := range terms {
		p.checkVariable(t.Var)
		out[t.Var] += t.Coef
	}
	for v, c := range out {
		if c == 0 {
			delete(out, v)
		}
	}
	return out
}

// AddConstraint adds a row Sum(terms) op rhs to the problem. Every relation
// in RelOp is accepted at construction time (spec.md 9 confirms equality
// rows are fully supported here; only the incremental façade's
// AddConstraint rejects them). Returns ErrUnsupported if any coefficient or
// the right-hand side exceeds CoefficientHorizon in magnitude.
func (p *Problem) AddConstraint(terms []Term, op RelOp, rhs float64) error {
	summed := p.sumTerms(terms)
	if math.Abs(rhs) > p.tol.CoefficientHorizon {
		return fmt.Errorf("microlp: constraint rhs %g exceeds coefficient horizon: %w", rhs, ErrUnsupported)
	}
	for v, c := range summed {
		if math.Abs(c) > p.tol.CoefficientHorizon {
			return fmt.Errorf("microlp: coefficient %g for variable %d exceeds coefficient horizon: %w", c, v, ErrUnsupported)
		}
	}
	p.rows = append(p.rows, problemRow{terms: summed, op: op, rhs: rhs})
	return nil
}
