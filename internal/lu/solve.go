package lu

import "github.com/ajasmin/microlp/internal/sparse"

// Solve returns B^-1 * rhs, applying forward substitution against L, the
// eta list (if any updates have been applied since Factor), then backward
// substitution against U, per spec.md 4.3.
func (f *Factorization) Solve(rhs sparse.Vector) sparse.Vector {
	n := f.n
	dense := make([]float64, n)
	for k, i := range rhs.Indices {
		dense[i] = rhs.Values[k]
	}

	// Forward substitution: Ly = Pb, in elimination-step order.
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

	// Back substitution: Uz = y, in reverse elimination-step order.
	z := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		z[k] = stepRHS[k] / f.diag[k]
		for pr, coeff := range f.uCols[k] {
			j := f.rowStep[pr]
			stepRHS[j] -= coeff * z[k]
		}
	}

	out := make([]float64, n)
	for k := 0; k < n; k++ {
		out[f.colOrder[k]] = z[k]
	}
	return denseToSparse(out)
}

// SolveTranspose returns B^-T * rhs. Since P*B*Q = L*U implies
// B^T = Q*U^T*L^T*P, this solves U^T*w = Q^T*rhs (forward, U^T lower
// triangular) then L^T*v = w (backward, L^T unit upper triangular), and
// returns x with x[pivotRow[k]] = v[k].
func (f *Factorization) SolveTranspose(rhs sparse.Vector) sparse.Vector {
	n := f.n
	dense := make([]float64, n)
	for k, i := range rhs.Indices {
		dense[i] = rhs.Values[k]
	}

	// b' = Q^T * rhs : b'[k] = rhs[colOrder[k]].
	bPrime := make([]float64, n)
	for k := 0; k < n; k++ {
		bPrime[k] = dense[f.colOrder[k]]
	}

	// Forward substitution against U^T (lower triangular in step order):
	// w[k] = (b'[k] - sum_{j<k} U[j,k]*w[j]) / diag[k].
	w := make([]float64, n)
	for k := 0; k < n; k++ {
		sum := bPrime[k]
		for pr, coeff := range f.uCols[k] {
			j := f.rowStep[pr]
			sum -= coeff * w[j]
		}
		w[k] = sum / f.diag[k]
	}

	applyEtasBackward(f.etas, w)

	// Back substitution against L^T (unit upper triangular in step order,
	// reverse direction): v[k] = w[k] - sum_{j>k} L[j,k]*v[j]. lCols[k]
	// holds exactly the entries L[j,k] (j = rowStep[row] > k), and every
	// such v[j] is already final when step k is reached.
	v := make([]float64, n)
	for k := n - 1; k >= 0; k-- {
		sum := w[k]
		for row, mult := range f.lCols[k] {
			sum -= mult * v[f.rowStep[row]]
		}
		v[k] = sum
	}

	out := make([]float64, n)
	for k := 0; k < n; k++ {
		out[f.pivotRow[k]] = v[k]
	}
	return denseToSparse(out)
}

func denseToSparse(dense []float64) sparse.Vector {
	var idx []int
	var vals []float64
	for i, v := range dense {
		if v > sparse.DropTolerance || v < -sparse.DropTolerance {
			idx = append(idx, i)
			vals = append(vals, v)
		}
	}
	return sparse.NewVector(len(dense), idx, vals)
}
