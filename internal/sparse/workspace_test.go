package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkspaceScatterGather(t *testing.T) {
	ws := NewWorkspace(5)
	v := NewVector(5, []int{1, 3}, []float64{2.0, 4.0})
	ws.Scatter(v)

	assert.Equal(t, 2.0, ws.At(1))
	assert.Equal(t, 4.0, ws.At(3))
	assert.ElementsMatch(t, []int{1, 3}, ws.Touched())

	result := ws.Gather(5)
	assert.Equal(t, []int{1, 3}, result.Indices)
	assert.InDeltaSlice(t, []float64{2.0, 4.0}, result.Values, 1e-12)

	// Gather resets the workspace.
	assert.Empty(t, ws.Touched())
	assert.Equal(t, 0.0, ws.At(1))
}

func TestWorkspaceGatherDropsNearZero(t *testing.T) {
	ws := NewWorkspace(3)
	ws.Set(0, 1e-20)
	ws.Set(1, 5.0)
	result := ws.Gather(3)
	assert.Equal(t, []int{1}, result.Indices)
}

func TestWorkspaceGrowPreservesContent(t *testing.T) {
	ws := NewWorkspace(2)
	ws.Set(0, 7.0)
	ws.Grow(5)
	assert.Equal(t, 7.0, ws.At(0))
	ws.Set(4, 9.0)
	assert.Equal(t, 9.0, ws.At(4))
}

func TestWorkspaceReusedAcrossPivots(t *testing.T) {
	ws := NewWorkspace(4)
	for i := 0; i < 3; i++ {
		ws.Scatter(NewVector(4, []int{0, i % 4}, []float64{1.0, 2.0}))
		_ = ws.Gather(4)
	}
	assert.Empty(t, ws.Touched())
}
