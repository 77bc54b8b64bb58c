package sparse

// Workspace is the dense scatter/gather scratch buffer shared by LU and
// simplex pivoting: a dense accumulator plus a stack of touched indices, so
// a sparse->dense->sparse round trip runs in time proportional to nonzeros
// touched rather than the dense dimension n. Capacity grows monotonically
// and is never shrunk, per spec.md 5's scratch-buffer reuse contract.
type Workspace struct {
	dense   []float64
	marked  []bool
	touched []int
}

// NewWorkspace allocates a workspace sized for vectors of length n.
func NewWorkspace(n int) *Workspace {
	return &Workspace{
		dense:  make([]float64, n),
		marked: make([]bool, n),
	}
}

// Grow ensures the workspace can address indices up to n-1, extending
// (never shrinking) the backing buffers.
func (w *Workspace) Grow(n int) {
	if n <= len(w.dense) {
		return
	}
	dense := make([]float64, n)
	copy(dense, w.dense)
	w.dense = dense

	marked := make([]bool, n)
	copy(marked, w.marked)
	w.marked = marked
}

// Reset clears every touched entry back to zero/unmarked and empties the
// touched stack, in O(touched) time.
func (w *Workspace) Reset() {
	for _, i := range w.touched {
		w.dense[i] = 0
		w.marked[i] = false
	}
	w.touched = w.touched[:0]
}

// Scatter writes a sparse vector's entries into the dense buffer, recording
// newly-touched indices. The workspace must have been Reset (or fresh)
// beforehand for the result to reflect exactly v.
func (w *Workspace) Scatter(v Vector) {
	for k, i := range v.Indices {
		if !w.marked[i] {
			w.marked[i] = true
			w.touched = append(w.touched, i)
		}
		w.dense[i] += v.Values[k]
	}
}

// Touch marks index i as touched (present in the eventual gathered result)
// without adding to its value, used when a pivot step introduces a
// structural nonzero whose value happens to be exactly zero transiently.
func (w *Workspace) Touch(i int) {
	if !w.marked[i] {
		w.marked[i] = true
		w.touched = append(w.touched, i)
	}
}

// Set overwrites the dense value at i and marks it touched.
func (w *Workspace) Set(i int, value float64) {
	w.Touch(i)
	w.dense[i] = value
}

// At returns the current dense value at i (0 if untouched).
func (w *Workspace) At(i int) float64 {
	return w.dense[i]
}

// Touched returns the (unordered) slice of indices touched since the last
// Reset. The returned slice aliases workspace-owned memory and is only
// valid until the next Reset.
func (w *Workspace) Touched() []int {
	return w.touched
}

// Gather converts the dense buffer back to a canonical sparse Vector of
// logical length n, dropping entries below DropTolerance, and resets the
// workspace for reuse.
func (w *Workspace) Gather(n int) Vector {
	idx := make([]int, 0, len(w.touched))
	for _, i := range w.touched {
		idx = append(idx, i)
	}
	sortInts(idx)

	values := make([]float64, 0, len(idx))
	outIdx := idx[:0]
	for _, i := range idx {
		val := w.dense[i]
		if abs(val) > DropTolerance {
			outIdx = append(outIdx, i)
			values = append(values, val)
		}
	}
	w.Reset()
	return Vector{Indices: outIdx, Values: values, Len: n}
}

func sortInts(s []int) {
	// Small insertion sort: touched sets are bounded by nnz per column,
	// typically a handful of entries for the sparse problems this engine
	// targets, where an insertion sort beats the constant overhead of
	// sort.Ints.
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
