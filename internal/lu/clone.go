package lu

import "github.com/ajasmin/microlp/internal/sparse"

// Clone returns a copy of f that can accumulate further eta updates
// independently of f, per spec.md 5's "the LU eta list ... must be copied
// or lazily cloned on first write" requirement. The elimination structure
// (colOrder, pivotRow, rowStep, lCols, uCols) never changes between full
// refactorizations and is shared by reference; only the eta list (which
// Update appends to) and the diagonal are copied.
func (f *Factorization) Clone() *Factorization {
	diag := make([]float64, len(f.diag))
	copy(diag, f.diag)

	etas := make([]etaUpdate, len(f.etas))
	copy(etas, f.etas)

	return &Factorization{
		n:        f.n,
		colOrder: f.colOrder,
		colStep:  f.colStep,
		pivotRow: f.pivotRow,
		rowStep:  f.rowStep,
		lCols:    f.lCols,
		uCols:    f.uCols,
		diag:     diag,
		etas:     etas,
		th:       f.th,
		ws:       sparse.NewWorkspace(f.n),
	}
}
