package simplex

// GrowByRow appends one new constraint row (given as coefficients over
// existing columns) and a fresh slack column to the engine's standard
// form, per spec.md 4.5's add_row/pin/add_gomory_cut operations, each of
// which appends a new <= row with a fresh slack of coefficient +1. The new
// slack enters the basis directly (the new row is, by construction, an
// identity column extending the basis), and the engine is fully
// refactorized since the basis dimension itself changed. The slack's own
// value may come out primal-infeasible if the new row is violated by the
// current assignment; the caller is responsible for invoking DualOptimize
// in that case.
//
// Grounded on jjhbw-GoMILP/subproblem.go's convertToEqualities, which
// appends one slack column per inequality row at construction time; here
// the same append happens after the engine already has a solved basis.
func (e *Engine) GrowByRow(rowTerms map[int]float64, rhs float64) (row, slackCol int, err error) {
	newRow := e.m
	e.A = e.A.AppendRowAndColumn(rowTerms, []int{newRow}, []float64{1})
	e.m++
	e.n++
	slackCol = e.n - 1

	e.B = append(e.B, rhs)
	e.C = append(e.C, 0)
	e.Lower = append(e.Lower, 0)
	e.Upper = append(e.Upper, infinity)

	e.inBasis = append(e.inBasis, newRow)
	e.basis = append(e.basis, slackCol)
	e.status = append(e.status, Basic)
	e.excluded = append(e.excluded, false)
	e.xB = append(e.xB, 0)
	e.Y = append(e.Y, 0)
	e.D = append(e.D, 0)

	if err := e.refactor(); err != nil {
		return 0, 0, err
	}
	e.computeXB()
	e.computeDuals()
	e.computeReducedCosts()
	return newRow, slackCol, nil
}
