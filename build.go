package microlp

import (
	"errors"
	"fmt"

	"github.com/ajasmin/microlp/internal/simplex"
	"github.com/ajasmin/microlp/internal/sparse"
)

// standardRow is a row after GE has been negated to LE; EQ rows carry no
// slack at all.
type standardRow struct {
	terms map[Variable]float64
	rhs   float64
	isEq  bool
}

func toStandardRow(r problemRow) standardRow {
	switch r.op {
	case GE:
		neg := make(map[Variable]float64, len(r.terms))
		for v, c := range r.terms {
			neg[v] = -c
		}
		return standardRow{terms: neg, rhs: -r.rhs}
	case EQ:
		return standardRow{terms: r.terms, rhs: r.rhs, isEq: true}
	default: // LE
		return standardRow{terms: r.terms, rhs: r.rhs}
	}
}

// build converts p into standard form: slack columns for <= rows, artificial
// columns wherever a row has no nonnegative slack-only completion (every =
// row, and any <= row whose right-hand side is negative once GE rows have
// been negated), per spec.md 3's "no crash basis" design generalized to
// cover the negative-right-hand-side case spec.md itself leaves implicit
// (see DESIGN.md). Grounded on jjhbw-GoMILP/subproblem.go's
// convertToEqualities, which appends exactly one slack per inequality row;
// here a second, artificial column is appended only where the slack alone
// would not be a feasible initial basic variable.
func (p *Problem) build() (a *sparse.Matrix, b, c, lower, upper []float64, basis []int, status []simplex.Status, artificials []int, nOrig int) {
	nOrig = len(p.objective)
	rows := make([]standardRow, len(p.rows))
	for i, r := range p.rows {
		rows[i] = toStandardRow(r)
	}
	m := len(rows)

	slackCol := make([]int, m)
	artCol := make([]int, m)
	artSign := make([]float64, m)
	next := nOrig
	for i, r := range rows {
		if r.isEq {
			slackCol[i] = -1
		} else {
			slackCol[i] = next
			next++
		}
	}
	for i, r := range rows {
		needsArtificial := r.isEq || r.rhs < 0
		if !needsArtificial {
			artCol[i] = -1
			continue
		}
		artCol[i] = next
		next++
		if r.rhs < 0 {
			artSign[i] = -1
		} else {
			artSign[i] = 1
		}
	}
	n := next

	colRows := make([][]int, n)
	colVals := make([][]float64, n)
	for i, r := range rows {
		for v, coef := range r.terms {
			colRows[v] = append(colRows[v], i)
			colVals[v] = append(colVals[v], coef)
		}
		if slackCol[i] != -1 {
			colRows[slackCol[i]] = append(colRows[slackCol[i]], i)
			colVals[slackCol[i]] = append(colVals[slackCol[i]], 1)
		}
		if artCol[i] != -1 {
			colRows[artCol[i]] = append(colRows[artCol[i]], i)
			colVals[artCol[i]] = append(colVals[artCol[i]], artSign[i])
		}
	}

	bld := sparse.NewBuilder(m, n)
	for col := 0; col < n; col++ {
		bld.AddColumn(colRows[col], colVals[col])
	}
	a = bld.Build()

	b = make([]float64, m)
	for i, r := range rows {
		b[i] = r.rhs
	}

	c = make([]float64, n)
	for v := 0; v < nOrig; v++ {
		coef := p.objective[v]
		if p.maximize {
			coef = -coef
		}
		c[v] = coef
	}

	lower = make([]float64, n)
	upper = make([]float64, n)
	for j := range upper {
		upper[j] = posInf
	}

	status = make([]simplex.Status, n) // zero value AtLower, value 0
	basis = make([]int, m)
	for i := range rows {
		if artCol[i] != -1 {
			basis[i] = artCol[i]
		} else {
			basis[i] = slackCol[i]
		}
		if artCol[i] != -1 {
			artificials = append(artificials, artCol[i])
		}
	}

	return a, b, c, lower, upper, basis, status, artificials, nOrig
}

// Solve builds the standard-form engine from the declared variables and
// constraints, runs phase 1 (if any artificial columns were needed) followed
// by phase 2, and returns the resulting Solution.
func (p *Problem) Solve() (*Solution, error) {
	a, b, c, lower, upper, basis, status, artificials, nOrig := p.build()

	cfg := p.tol.engineConfig()
	engine, err := simplex.New(a, b, c, lower, upper, basis, status, p.log, cfg)
	if err != nil {
		return nil, translateErr(err, p.log)
	}

	if len(artificials) > 0 {
		if err := engine.RunPhase1(artificials); err != nil {
			return nil, translateErr(err, p.log)
		}
	}
	if err := engine.Optimize(); err != nil {
		return nil, translateErr(err, p.log)
	}

	return &Solution{
		nOrig:    nOrig,
		maximize: p.maximize,
		tol:      p.tol,
		log:      p.log,
		engine:   engine,
		pins:     make(map[Variable]pinRecord),
	}, nil
}

// translateErr maps the internal engine's error taxonomy onto the public
// sentinels, per spec.md 7: NumericalFailure folds into Infeasible (the
// caller can still recover the underlying cause via errors.Is), logged as an
// unusual event.
func translateErr(err error, log Logger) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, simplex.ErrUnbounded):
		return ErrUnbounded
	case errors.Is(err, simplex.ErrInfeasible):
		return ErrInfeasible
	case errors.Is(err, simplex.ErrNotFractional):
		return ErrNotFractional
	default:
		log.Infof("microlp: numerical failure surfaced as infeasible: %v", err)
		return fmt.Errorf("%w: %w", ErrInfeasible, ErrNumericalFailure)
	}
}
