package lu

import "github.com/ajasmin/microlp/internal/sparse"

// Update performs a Bartels-Golub eta update for replacing the basic column
// occupying basis slot basisSlot (the basis's original column index, i.e.
// the position of the leaving variable in the basis list) with the new
// column a, per spec.md 4.3: compute atilde = U^-1 * L^-1 * P * a, spike
// column basisSlot of U with atilde, and record the resulting elementary
// eta matrix. Returns ErrSingular if atilde's entry at that slot is
// (numerically) zero, meaning the replacement would make the basis
// singular.
func (f *Factorization) Update(basisSlot int, a sparse.Vector) error {
	slot := f.colStep[basisSlot]
	atilde := f.ftran(a)

	pivot := atilde.At(slot)
	if pivot == 0 || (pivot < 1e-13 && pivot > -1e-13) {
		return ErrSingular
	}

	f.etas = append(f.etas, etaUpdate{slot: slot, col: atilde})
	return nil
}

// ftran computes U^-1 * L^-1 * P * a restricted to the "step space" used by
// the eta list: forward substitution against L then against the eta chain
// already on file (so successive updates compose correctly), without the
// final U back-substitution -- the spike itself becomes the next U column
// via the eta list, per the Forrest-Tomlin-style update spec.md 4.3
// describes.
func (f *Factorization) ftran(a sparse.Vector) sparse.Vector {
	n := f.n
	dense := make([]float64, n)
	for k, i := range a.Indices {
		dense[i] = a.Values[k]
	}

	stepRHS := make([]float64, n)
	for k := 0; k < n; k++ {
		stepRHS[k] = dense[f.pivotRow[k]]
		if stepRHS[k] != 0 {
			for row, mult := range f.lCols[k] {
				dense[row] -= mult * stepRHS[k]
			}
		}
	}

	applyEtasForward(f.etas, stepRHS)

	return denseToSparse(stepRHS)
}

// applyEtasForward applies the recorded eta updates, in the order they were
// appended, to a dense vector indexed by elimination step.
func applyEtasForward(etas []etaUpdate, y []float64) {
	for _, eta := range etas {
		pivot := eta.col.At(eta.slot)
		if pivot == 0 {
			continue
		}
		yk := y[eta.slot] / pivot
		for k, row := range eta.col.Indices {
			if row == eta.slot {
				continue
			}
			y[row] -= eta.col.Values[k] * yk
		}
		y[eta.slot] = yk
	}
}

// applyEtasBackward applies the recorded eta updates in reverse, the
// transposed counterpart used by SolveTranspose.
func applyEtasBackward(etas []etaUpdate, y []float64) {
	for i := len(etas) - 1; i >= 0; i-- {
		eta := etas[i]
		pivot := eta.col.At(eta.slot)
		if pivot == 0 {
			continue
		}
		sum := y[eta.slot]
		for k, row := range eta.col.Indices {
			if row == eta.slot {
				continue
			}
			sum -= eta.col.Values[k] * y[row]
		}
		y[eta.slot] = sum / pivot
	}
}
