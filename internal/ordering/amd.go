// Package ordering provides the approximate-minimum-degree symbolic
// ordering used to pick a fill-reducing column permutation before LU
// refactorization, per spec.md 4.2. It never fails: a degenerate or already
// diagonal pattern simply yields the identity permutation.
package ordering

import (
	"container/heap"

	"github.com/ajasmin/microlp/internal/sparse"
)

// ApproximateMinimumDegree computes a symmetric permutation p (and its
// inverse) over the n nodes of pattern, chosen by repeatedly eliminating the
// minimum-degree node of the elimination graph and adding fill edges among
// its remaining neighbors, the classical AMD heuristic. Recomputed only at a
// full refactorization per spec.md 4.2 -- never incrementally during eta
// updates.
func ApproximateMinimumDegree(pattern sparse.SymbolicPattern) (perm, invPerm []int) {
	n := pattern.N
	perm = make([]int, n)
	invPerm = make([]int, n)
	if n == 0 {
		return perm, invPerm
	}

	// A pattern with no off-diagonal entries has nothing to order: it gets
	// the identity permutation.
	diagonal := true
	for _, neighbors := range pattern.Adj {
		if len(neighbors) > 0 {
			diagonal = false
			break
		}
	}
	if diagonal {
		for i := 0; i < n; i++ {
			perm[i], invPerm[i] = i, i
		}
		return perm, invPerm
	}

	// Working adjacency as a set per node; eliminated nodes are removed from
	// their neighbors' sets as they are chosen.
	adj := make([]map[int]bool, n)
	for i, neighbors := range pattern.Adj {
		adj[i] = make(map[int]bool, len(neighbors))
		for _, j := range neighbors {
			adj[i][j] = true
		}
	}

	eliminated := make([]bool, n)
	pq := make(degreeHeap, 0, n)
	heap.Init(&pq)
	for i := 0; i < n; i++ {
		heap.Push(&pq, degreeItem{node: i, degree: len(adj[i])})
	}

	order := make([]int, 0, n)
	for len(order) < n {
		item := heap.Pop(&pq).(degreeItem)
		if eliminated[item.node] {
			continue
		}
		// The degree recorded in the heap may be stale (neighbors may have
		// been eliminated since it was pushed); verify before accepting.
		if item.degree != len(adj[item.node]) {
			heap.Push(&pq, degreeItem{node: item.node, degree: len(adj[item.node])})
			continue
		}

		node := item.node
		eliminated[node] = true
		order = append(order, node)

		// Fill-in: the remaining neighbors of node become pairwise adjacent
		// (they are now connected through the eliminated node's row/column).
		neighbors := make([]int, 0, len(adj[node]))
		for nb := range adj[node] {
			if !eliminated[nb] {
				neighbors = append(neighbors, nb)
			}
		}
		for _, a := range neighbors {
			delete(adj[a], node)
			for _, b := range neighbors {
				if a != b && !adj[a][b] {
					adj[a][b] = true
				}
			}
			heap.Push(&pq, degreeItem{node: a, degree: len(adj[a])})
		}
	}

	for i, node := range order {
		perm[i] = node
		invPerm[node] = i
	}
	return perm, invPerm
}

type degreeItem struct {
	node   int
	degree int
}

type degreeHeap []degreeItem

func (h degreeHeap) Len() int            { return len(h) }
func (h degreeHeap) Less(i, j int) bool  { return h[i].degree < h[j].degree }
func (h degreeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *degreeHeap) Push(x interface{}) { *h = append(*h, x.(degreeItem)) }
func (h *degreeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
