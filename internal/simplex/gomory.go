package simplex

import (
	"errors"
	"math"

	"github.com/ajasmin/microlp/internal/sparse"
)

// ErrNotFractional is returned by GomoryCut when the target variable is
// non-basic, or basic but integral within 1e-9, per spec.md 7.
var ErrNotFractional = errors.New("simplex: variable is not fractional")

// fractionalTolerance is the distance from 0 or 1 within which a value is
// treated as integral, per spec.md 7's NotFractional taxonomy entry.
const fractionalTolerance = 1e-9

// TableauRow returns row i of B^-1 A (the full tableau row for basic slot
// i), used both by GomoryCut and exposed for diagnostics.
func (e *Engine) TableauRow(slot int) []float64 {
	row := e.lu.SolveTranspose(sparse.NewVector(e.m, []int{slot}, []float64{1}))
	rowDense := make([]float64, e.m)
	for i := 0; i < e.m; i++ {
		rowDense[i] = row.At(i)
	}
	gamma := make([]float64, e.n)
	for j := 0; j < e.n; j++ {
		gamma[j] = e.A.Column(j).Dot(rowDense)
	}
	return gamma
}

func frac(x float64) float64 {
	f := x - math.Floor(x)
	return f
}

// GomoryCut derives a fractional cut from the basic row holding column
// varCol, per spec.md 4.5's add_gomory_cut: retrieves the tableau row
// gamma = B^-1 A_{i,.}, and builds Sum_j (f_j/f) x_j >= 1 over non-basic j,
// with f_j = frac(gamma_j) for j AtLower and the symmetric f_j =
// frac(-gamma_j) (mirrored sign) for j AtUpper. Returns the cut as a term
// map plus the fixed right-hand side 1, in "Sum terms[j] x_j >= rhs" form;
// the caller is responsible for negating into a <= row with a fresh slack
// before appending it to A.
func (e *Engine) GomoryCut(varCol int) (terms map[int]float64, rhs float64, err error) {
	if e.inBasis[varCol] == -1 {
		return nil, 0, ErrNotFractional
	}
	v := e.xB[e.inBasis[varCol]]
	f := frac(v)
	if f < fractionalTolerance || f > 1-fractionalTolerance {
		return nil, 0, ErrNotFractional
	}

	gamma := e.TableauRow(e.inBasis[varCol])
	terms = make(map[int]float64)
	for j := 0; j < e.n; j++ {
		if e.inBasis[j] != -1 || e.excluded[j] {
			continue
		}
		switch e.status[j] {
		case AtLower:
			fj := frac(gamma[j])
			if fj > 1e-12 {
				terms[j] = fj / f
			}
		case AtUpper:
			fj := frac(-gamma[j])
			if fj > 1e-12 {
				terms[j] = -(fj / f)
			}
		}
	}
	return terms, 1, nil
}
