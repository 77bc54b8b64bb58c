package simplex

import (
	"math"

	"github.com/ajasmin/microlp/internal/sparse"
)

// dualInfeasibility reports the most primal-infeasible basic row (largest
// bound violation), used after a perturbation (pin, add_row, a Gomory cut)
// leaves the basis dual-feasible but primal-infeasible, per spec.md 4.4's
// dual pivot step.
func (e *Engine) dualInfeasibility() (slot int, below bool, found bool) {
	worst := feasTolerance
	slot = -1
	for i := 0; i < e.m; i++ {
		col := e.basis[i]
		if v := e.Lower[col] - e.xB[i]; v > worst {
			worst = v
			slot = i
			below = true
		}
		if v := e.xB[i] - e.Upper[col]; v > worst {
			worst = v
			slot = i
			below = false
		}
	}
	return slot, below, slot != -1
}

// dualStep performs one dual simplex pivot: pricing selects the most
// primal-infeasible basic row, and the ratio test selects, among non-basic
// columns that keep the basis dual-feasible, the one minimizing
// |d_j/alpha_j|, per spec.md 4.4's symmetric description of the dual
// pivot. Returns done=true when no basic row is infeasible.
func (e *Engine) dualStep() (done bool, err error) {
	slot, below, found := e.dualInfeasibility()
	if !found {
		return true, nil
	}

	row := e.lu.SolveTranspose(sparse.NewVector(e.m, []int{slot}, []float64{1}))
	rowDense := make([]float64, e.m)
	for i := 0; i < e.m; i++ {
		rowDense[i] = row.At(i)
	}

	type candidate struct {
		col       int
		alpha     float64
		direction float64
		ratio     float64
	}
	var best *candidate

	for j := 0; j < e.n; j++ {
		if e.inBasis[j] != -1 || e.excluded[j] {
			continue
		}
		alpha := e.A.Column(j).Dot(rowDense)
		if math.Abs(alpha) < eps {
			continue
		}

		var direction float64
		switch e.status[j] {
		case AtLower:
			direction = 1
		case AtUpper:
			direction = -1
		default: // Free: dual pivot never needs to keep it at a bound
			if alpha > 0 {
				direction = -1
			} else {
				direction = 1
			}
		}

		var eligible bool
		if below {
			eligible = alpha*direction < -eps
		} else {
			eligible = alpha*direction > eps
		}
		if !eligible {
			continue
		}

		ratio := math.Abs(e.D[j] / alpha)
		if best == nil || ratio < best.ratio || (ratio == best.ratio && j < best.col) {
			best = &candidate{col: j, alpha: alpha, direction: direction, ratio: ratio}
		}
	}

	if best == nil {
		e.logf("simplex: dual pivot found no entering column, infeasible")
		return false, ErrInfeasible
	}

	delta := e.solveColumnChecked(best.col)
	targetBound := e.Upper[e.basis[slot]]
	if below {
		targetBound = e.Lower[e.basis[slot]]
	}
	step := (e.xB[slot] - targetBound) / (delta[slot] * best.direction)
	if step < 0 {
		step = 0
	}

	lv := leaving{slot: slot, toUpper: !below, step: step}
	e.applyPrimalPivot(entering{col: best.col, direction: best.direction}, delta, lv)
	return false, nil
}

// DualOptimize drives dual pivots until the basis is primal-feasible
// (optimal) or ErrInfeasible, bounded by the same 50*(m+n) iteration limit
// as Optimize.
func (e *Engine) DualOptimize() error {
	limit := e.cfg.PivotFactor * (e.m + e.n)
	for count := 0; ; count++ {
		if count > limit {
			e.logf("simplex: dual pivot limit exceeded")
			return ErrNumericalFailure
		}
		done, err := e.dualStep()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
