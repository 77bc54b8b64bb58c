package sparse

// Add accumulates delta into the dense value at i, marking it touched. Used
// by LU's left-looking column elimination to fold in L-column contributions
// without round-tripping through Scatter/Gather for each update.
func (w *Workspace) Add(i int, delta float64) {
	w.Touch(i)
	w.dense[i] += delta
}
