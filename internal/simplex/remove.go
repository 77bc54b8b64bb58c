package simplex

import (
	"math"

	"github.com/ajasmin/microlp/internal/lu"
	"github.com/ajasmin/microlp/internal/sparse"
)

// pivotInto forces column j to become basic at slot target via a basis
// exchange that ignores the ratio test: the displaced variable's new
// non-basic status is simply whichever of its own bounds its current value
// sits closer to, and the resulting state may be primal-infeasible. It
// exists only to prepare for RemoveRow below; the caller is expected to
// restore feasibility afterward with DualOptimize. Returns false if column
// j's tableau entry at slot target is (numerically) zero, meaning no such
// exchange exists.
func (e *Engine) pivotInto(j, target int) bool {
	if e.inBasis[j] == target {
		return true
	}

	delta := e.solveColumn(j)
	if math.Abs(delta[target]) < eps {
		return false
	}

	leavingCol := e.basis[target]
	if !math.IsInf(e.Upper[leavingCol], 1) &&
		math.Abs(e.xB[target]-e.Upper[leavingCol]) < math.Abs(e.xB[target]-e.Lower[leavingCol]) {
		e.status[leavingCol] = AtUpper
	} else {
		e.status[leavingCol] = AtLower
	}
	e.inBasis[leavingCol] = -1
	e.basis[target] = j
	e.inBasis[j] = target
	e.status[j] = Basic

	a := sparse.NewVector(e.m, denseIndices(delta), denseValues(delta))
	if err := e.lu.Update(target, a); err != nil {
		e.logf("simplex: eta update failed during pivotInto (%v), forcing refactor", err)
		_ = e.refactor()
	} else if e.lu.NeedsRefactor() {
		_ = e.refactor()
	}

	e.computeXB()
	e.computeDuals()
	e.computeReducedCosts()
	return true
}

// RemoveRow removes row `row` from standard form together with column
// ownerCol, the column created alongside it (typically by GrowByRow),
// reversing one side of a pin per spec.md 4.5's unpin. It first calls
// pivotInto to force ownerCol into slot row, so the row/column pair can be
// dropped together without disturbing any other basic variable's row
// assignment; the resulting (m-1)x(n-1) system may be primal-infeasible,
// which the caller restores with DualOptimize.
//
// Returns lu.ErrSingular if ownerCol cannot be pivoted into slot row
// (degenerate: its current tableau entry there is zero). Row/column indices
// at or above the removed ones shift down by one; callers tracking other
// row/column indices of their own (e.g. other pins) must adjust them.
func (e *Engine) RemoveRow(row, ownerCol int) error {
	if !e.pivotInto(ownerCol, row) {
		return lu.ErrSingular
	}

	newM, newN := e.m-1, e.n-1

	rowMap := make([]int, e.m)
	idx := 0
	for i := 0; i < e.m; i++ {
		if i == row {
			rowMap[i] = -1
			continue
		}
		rowMap[i] = idx
		idx++
	}

	colMap := make([]int, e.n)
	idx = 0
	for j := 0; j < e.n; j++ {
		if j == ownerCol {
			colMap[j] = -1
			continue
		}
		colMap[j] = idx
		idx++
	}

	bld := sparse.NewBuilder(newM, newN)
	for j := 0; j < e.n; j++ {
		if j == ownerCol {
			continue
		}
		col := e.A.Column(j)
		var idxs []int
		var vals []float64
		for k, r := range col.Indices {
			if r == row {
				continue
			}
			idxs = append(idxs, rowMap[r])
			vals = append(vals, col.Values[k])
		}
		bld.AddColumn(idxs, vals)
	}
	newA := bld.Build()

	newB := make([]float64, newM)
	for i := 0; i < e.m; i++ {
		if i == row {
			continue
		}
		newB[rowMap[i]] = e.B[i]
	}

	newC := make([]float64, newN)
	newLower := make([]float64, newN)
	newUpper := make([]float64, newN)
	newStatus := make([]Status, newN)
	newInBasis := make([]int, newN)
	newExcluded := make([]bool, newN)
	for j := 0; j < e.n; j++ {
		if j == ownerCol {
			continue
		}
		nc := colMap[j]
		newC[nc] = e.C[j]
		newLower[nc] = e.Lower[j]
		newUpper[nc] = e.Upper[j]
		newStatus[nc] = e.status[j]
		newExcluded[nc] = e.excluded[j]
		if e.inBasis[j] == -1 {
			newInBasis[nc] = -1
		}
	}

	newBasis := make([]int, newM)
	for i := 0; i < e.m; i++ {
		if i == row {
			continue
		}
		nc := colMap[e.basis[i]]
		newBasis[rowMap[i]] = nc
		newInBasis[nc] = rowMap[i]
	}

	e.A = newA
	e.B = newB
	e.C = newC
	e.Lower = newLower
	e.Upper = newUpper
	e.status = newStatus
	e.excluded = newExcluded
	e.inBasis = newInBasis
	e.basis = newBasis
	e.m = newM
	e.n = newN
	e.xB = make([]float64, newM)
	e.Y = make([]float64, newM)
	e.D = make([]float64, newN)

	if err := e.refactor(); err != nil {
		return err
	}
	e.computeXB()
	e.computeDuals()
	e.computeReducedCosts()
	return nil
}
