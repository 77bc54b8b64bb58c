package sparse

// Matrix is a column-compressed (CSC) sparse matrix: column j's entries live
// at ColPtr[j]..ColPtr[j+1] in RowIdx/Values, with RowIdx strictly increasing
// within each column.
type Matrix struct {
	Rows, Cols int
	ColPtr     []int
	RowIdx     []int
	Values     []float64
}

// NewMatrix builds an empty Rows x Cols matrix with no stored entries.
func NewMatrix(rows, cols int) *Matrix {
	return &Matrix{
		Rows:   rows,
		Cols:   cols,
		ColPtr: make([]int, cols+1),
	}
}

// Builder accumulates columns of a CSC matrix one at a time, in increasing
// row order within each column, mirroring how the teacher's standard-form
// setup builds A column-by-column from variable declarations.
type Builder struct {
	rows, cols int
	colPtr     []int
	rowIdx     []int
	values     []float64
	curCol     int
}

// NewBuilder starts a Builder for a rows x cols matrix.
func NewBuilder(rows, cols int) *Builder {
	return &Builder{
		rows:   rows,
		cols:   cols,
		colPtr: make([]int, 1, cols+1),
	}
}

// AddColumn appends a sparse column. rowIdx must be ascending and in range.
// Columns must be added in index order 0..cols-1.
func (b *Builder) AddColumn(rowIdx []int, values []float64) {
	if len(b.colPtr)-1 != b.curCol || b.curCol >= b.cols {
		panic("sparse: Builder.AddColumn called out of order")
	}
	b.rowIdx = append(b.rowIdx, rowIdx...)
	b.values = append(b.values, values...)
	b.colPtr = append(b.colPtr, len(b.rowIdx))
	b.curCol++
}

// Build finalizes the matrix. Any remaining unfilled columns are empty.
func (b *Builder) Build() *Matrix {
	for b.curCol < b.cols {
		b.colPtr = append(b.colPtr, len(b.rowIdx))
		b.curCol++
	}
	return &Matrix{
		Rows:   b.rows,
		Cols:   b.cols,
		ColPtr: b.colPtr,
		RowIdx: b.rowIdx,
		Values: b.values,
	}
}

// Column returns column j as a Vector view. The returned slices alias the
// matrix's backing arrays and must not be mutated.
func (m *Matrix) Column(j int) Vector {
	lo, hi := m.ColPtr[j], m.ColPtr[j+1]
	return Vector{Indices: m.RowIdx[lo:hi], Values: m.Values[lo:hi], Len: m.Rows}
}

// ColNNZ returns the number of stored entries in column j.
func (m *Matrix) ColNNZ(j int) int {
	return m.ColPtr[j+1] - m.ColPtr[j]
}

// AppendRowAndColumn returns a new matrix with one additional row and one
// additional column appended, used when the incremental façade adds a
// constraint row with a fresh slack column (spec.md 4.5). rowTerms gives
// the new row's coefficients over existing columns (by column index);
// newColRows/newColValues give the new column's entries, including any
// entry in the new row itself (typically just the slack's own +1). The
// original matrix is left untouched; CSC column-by-column construction
// makes an in-place row insertion impractical, so the whole matrix is
// rebuilt once per appended row.
func (m *Matrix) AppendRowAndColumn(rowTerms map[int]float64, newColRows []int, newColValues []float64) *Matrix {
	b := NewBuilder(m.Rows+1, m.Cols+1)
	for j := 0; j < m.Cols; j++ {
		col := m.Column(j)
		idx := append([]int(nil), col.Indices...)
		vals := append([]float64(nil), col.Values...)
		if v, ok := rowTerms[j]; ok && v != 0 {
			idx = append(idx, m.Rows)
			vals = append(vals, v)
		}
		b.AddColumn(idx, vals)
	}
	b.AddColumn(newColRows, newColValues)
	return b.Build()
}

// SymbolicPattern is the symmetric nonzero pattern of a square matrix,
// represented as an adjacency list per row/column, used as input to
// internal/ordering.
type SymbolicPattern struct {
	N   int
	Adj [][]int
}

// PatternOfSymmetrized builds the symmetric nonzero pattern of B, i.e. the
// pattern of B + B^T: row i and row j are adjacent iff B[i][j] or B[j][i] is
// structurally nonzero. Per spec.md 4.2, this (the basis matrix's own
// symmetrized pattern) is what is actually ordered in practice, since B is
// already square and refactorization is triggered specifically to re-order
// against the current basis plus expected updates.
func PatternOfSymmetrized(b *Matrix) SymbolicPattern {
	if b.Rows != b.Cols {
		panic("sparse: PatternOfSymmetrized requires a square matrix")
	}
	n := b.Rows
	adjSet := make([]map[int]bool, n)
	for i := range adjSet {
		adjSet[i] = make(map[int]bool)
	}
	for j := 0; j < n; j++ {
		col := b.Column(j)
		for _, i := range col.Indices {
			if i == j {
				continue
			}
			adjSet[i][j] = true
			adjSet[j][i] = true
		}
	}

	adj := make([][]int, n)
	for i, set := range adjSet {
		for j := range set {
			adj[i] = append(adj[i], j)
		}
	}
	return SymbolicPattern{N: n, Adj: adj}
}
