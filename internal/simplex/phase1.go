package simplex

import "github.com/ajasmin/microlp/internal/sparse"

// RunPhase1 drives the engine to a basic feasible solution by minimizing
// the sum of the given artificial columns (each already basic, forming the
// identity initial basis the façade's standard-form construction
// guarantees, per spec.md 3's "no crash basis" design), then restores the
// true objective. Grounded on jjhbw-GoMILP/subproblem.go's
// convertToEqualities slack-injection shape, extended here to the
// artificial-variable case spec.md 4.4 names.
//
// If the phase-1 optimum is strictly positive, the problem is infeasible.
// Otherwise any artificial left basic at (numerically) zero is pivoted out
// in favor of a structural or slack column wherever the tableau row has a
// nonzero entry to pivot on; a row where no such column exists is
// redundant and the artificial is simply left in the basis at value zero,
// since it carries zero cost in phase 2 and the primal/dual pivots that
// follow never need to increase it.
func (e *Engine) RunPhase1(artificialCols []int) error {
	if len(artificialCols) == 0 {
		return nil
	}

	trueC := e.C
	phase1C := make([]float64, e.n)
	isArtificial := make(map[int]bool, len(artificialCols))
	for _, col := range artificialCols {
		phase1C[col] = 1
		isArtificial[col] = true
	}
	e.C = phase1C
	e.computeDuals()
	e.computeReducedCosts()

	if err := e.Optimize(); err != nil {
		e.C = trueC
		return err
	}

	phase1Obj := e.Objective()
	if phase1Obj > 1e-7 {
		e.C = trueC
		e.logf("simplex: phase 1 optimum %.3g > 0, infeasible", phase1Obj)
		return ErrInfeasible
	}

	for _, col := range artificialCols {
		slot := e.inBasis[col]
		if slot == -1 {
			continue
		}
		e.pivotArtificialOut(slot, isArtificial)
	}

	// Drop every artificial from further consideration, per spec.md 4.4's
	// "drop artificials that left the basis": one that pivotArtificialOut
	// could not evict (a redundant row) stays basic at zero and is harmless
	// there, but nothing may ever price it back in as an entering column
	// under the true objective -- a negative phase-2 reduced cost on a
	// dropped artificial is not a real improving direction, since the
	// column only exists to seed phase 1's initial basis.
	for _, col := range artificialCols {
		e.excluded[col] = true
	}

	e.C = trueC
	e.computeDuals()
	e.computeReducedCosts()
	return nil
}

// pivotArtificialOut attempts to replace the artificial occupying basis
// slot with any non-artificial non-basic column whose transformed column
// has a nonzero entry at that slot.
func (e *Engine) pivotArtificialOut(slot int, isArtificial map[int]bool) {
	for j := 0; j < e.n; j++ {
		if e.inBasis[j] != -1 || isArtificial[j] {
			continue
		}
		delta := e.solveColumn(j)
		if abs(delta[slot]) < eps {
			continue
		}
		leavingCol := e.basis[slot]
		e.status[leavingCol] = AtLower
		e.inBasis[leavingCol] = -1
		e.basis[slot] = j
		e.inBasis[j] = slot
		e.status[j] = Basic

		a := sparse.NewVector(e.m, denseIndices(delta), denseValues(delta))
		if err := e.lu.Update(slot, a); err != nil {
			e.logf("simplex: eta update failed pivoting out artificial (%v), forcing refactor", err)
			_ = e.refactor()
		}
		return
	}
	e.logf("simplex: row at basis slot %d is redundant, leaving artificial at zero", slot)
}
