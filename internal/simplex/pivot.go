package simplex

import (
	"math"

	"github.com/ajasmin/microlp/internal/lu"
	"github.com/ajasmin/microlp/internal/sparse"
)

// solveColumn returns B^-1 A_{.,j} as a dense length-m vector.
func (e *Engine) solveColumn(j int) []float64 {
	x := e.lu.Solve(e.A.Column(j))
	dense := make([]float64, e.m)
	for i := 0; i < e.m; i++ {
		dense[i] = x.At(i)
	}
	return dense
}

// pivotResidual reports the relative residual of a computed pivot direction
// delta against B*delta =? A_{.,col}, the third refactor trigger in spec.md
// 4.3 ("a computed pivot's relative residual exceeds 1e-8 after a probe
// solve"): the other two triggers (eta count, growth factor) are properties
// of the factorization alone and are checked via lu.NeedsRefactor, but this
// one is a property of a specific solve and so is probed by the caller.
func (e *Engine) pivotResidual(col int, delta []float64) float64 {
	target := e.A.Column(col)
	recon := make([]float64, e.m)
	for slot, basisCol := range e.basis {
		x := delta[slot]
		if x == 0 {
			continue
		}
		c := e.A.Column(basisCol)
		for k, row := range c.Indices {
			recon[row] += c.Values[k] * x
		}
	}
	var num, den float64
	for i := 0; i < e.m; i++ {
		t := target.At(i)
		d := recon[i] - t
		num += d * d
		den += t * t
	}
	if den < 1e-30 {
		den = 1
	}
	return math.Sqrt(num / den)
}

// solveColumnChecked is solveColumn plus the residual probe: on an excessive
// residual it forces one refactor and re-solves, the same refactor-and-retry
// discipline spec.md 7 describes for LU failures in general.
func (e *Engine) solveColumnChecked(col int) []float64 {
	delta := e.solveColumn(col)
	if e.pivotResidual(col, delta) > lu.MaxResidual {
		e.logf("simplex: pivot residual probe exceeded threshold, forcing refactor")
		if err := e.refactor(); err == nil {
			delta = e.solveColumn(col)
		}
	}
	return delta
}

// primalStep performs one primal simplex pivot, per spec.md 4.4's four
// numbered steps. Returns done=true when no entering variable improves the
// objective (optimal), and an error of ErrUnbounded if an improving
// direction has no limiting ratio.
func (e *Engine) primalStep() (done bool, err error) {
	ent, ok := e.priceEntering()
	if !ok {
		return true, nil
	}

	delta := e.solveColumnChecked(ent.col)

	lv, ok := e.ratioTest(ent, delta)
	if !ok {
		return false, ErrUnbounded
	}

	e.applyPrimalPivot(ent, delta, lv)
	return false, nil
}

// applyPrimalPivot commits a priced-and-ratio-tested primal pivot to
// engine state: either a bound flip (the entering variable's own opposite
// bound binds before any basic variable does) or a full basis exchange
// followed by an LU eta update and a fresh dual/reduced-cost recompute.
func (e *Engine) applyPrimalPivot(ent entering, delta []float64, lv leaving) {
	e.pivotCount++
	if lv.step < eps {
		e.degenerateCount++
	} else {
		e.degenerateCount = 0
	}

	if lv.selfBound {
		for i := 0; i < e.m; i++ {
			e.xB[i] -= delta[i] * ent.direction * lv.step
		}
		if ent.direction > 0 {
			e.status[ent.col] = AtUpper
		} else {
			e.status[ent.col] = AtLower
		}
		return
	}

	leavingCol := e.basis[lv.slot]
	newEnteringValue := e.Value(ent.col) + ent.direction*lv.step

	for i := 0; i < e.m; i++ {
		if i == lv.slot {
			continue
		}
		e.xB[i] -= delta[i] * ent.direction * lv.step
	}
	e.xB[lv.slot] = newEnteringValue

	if lv.toUpper {
		e.status[leavingCol] = AtUpper
	} else {
		e.status[leavingCol] = AtLower
	}
	e.inBasis[leavingCol] = -1
	e.basis[lv.slot] = ent.col
	e.inBasis[ent.col] = lv.slot
	e.status[ent.col] = Basic

	a := sparse.NewVector(e.m, denseIndices(delta), denseValues(delta))
	if err := e.lu.Update(lv.slot, a); err != nil {
		e.logf("simplex: eta update failed (%v), forcing refactor", err)
		_ = e.refactor()
	} else if e.lu.NeedsRefactor() {
		_ = e.refactor()
	}

	e.computeDuals()
	e.computeReducedCosts()
}

// Optimize drives primal pivots to optimality or to Unbounded, bounded by
// 50*(m+n) iterations per spec.md 4.4's termination rule. On exceeding that
// bound it forces one refactor-and-retry before reporting
// ErrNumericalFailure.
func (e *Engine) Optimize() error {
	limit := e.cfg.PivotFactor * (e.m + e.n)
	retried := false
	count := 0
	for {
		done, err := e.primalStep()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		count++
		if count > limit {
			if retried {
				e.logf("simplex: numerical stall persists after refactor+retry")
				return ErrNumericalFailure
			}
			retried = true
			count = 0
			e.logf("simplex: pivot limit exceeded, forcing refactor and retrying")
			if err := e.refactor(); err != nil {
				return ErrNumericalFailure
			}
			e.computeXB()
			e.computeDuals()
			e.computeReducedCosts()
		}
	}
}
