package ordering

import (
	"testing"

	"github.com/ajasmin/microlp/internal/sparse"
	"github.com/stretchr/testify/assert"
)

func isPermutation(t *testing.T, perm, invPerm []int, n int) {
	t.Helper()
	assert.Len(t, perm, n)
	assert.Len(t, invPerm, n)
	seen := make([]bool, n)
	for _, p := range perm {
		assert.GreaterOrEqual(t, p, 0)
		assert.Less(t, p, n)
		assert.False(t, seen[p], "duplicate in permutation")
		seen[p] = true
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, i, perm[invPerm[i]])
	}
}

func TestAMDEmptyPattern(t *testing.T) {
	perm, invPerm := ApproximateMinimumDegree(sparse.SymbolicPattern{N: 0})
	assert.Empty(t, perm)
	assert.Empty(t, invPerm)
}

func TestAMDDiagonalPatternIsIdentityShaped(t *testing.T) {
	// No off-diagonal fill: every node has degree 0, so there is nothing to
	// order and the result is the identity permutation.
	pattern := sparse.SymbolicPattern{N: 4, Adj: make([][]int, 4)}
	perm, invPerm := ApproximateMinimumDegree(pattern)
	isPermutation(t, perm, invPerm, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, perm)
}

func TestAMDStarGraphEliminatesLeavesFirst(t *testing.T) {
	// Node 0 is connected to every other node (a star); minimum-degree
	// elimination should pick the degree-1 leaves before the hub.
	n := 5
	adj := make([][]int, n)
	for i := 1; i < n; i++ {
		adj[0] = append(adj[0], i)
		adj[i] = append(adj[i], 0)
	}
	perm, invPerm := ApproximateMinimumDegree(sparse.SymbolicPattern{N: n, Adj: adj})
	isPermutation(t, perm, invPerm, n)

	// The hub (node 0) should be eliminated last: its inverse-permutation
	// position (elimination order index) is n-1.
	assert.Equal(t, n-1, invPerm[0])
}

func TestAMDDenseClusterIsAValidPermutation(t *testing.T) {
	n := 6
	adj := make([][]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				adj[i] = append(adj[i], j)
			}
		}
	}
	perm, invPerm := ApproximateMinimumDegree(sparse.SymbolicPattern{N: n, Adj: adj})
	isPermutation(t, perm, invPerm, n)
}
