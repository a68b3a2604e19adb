package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTriangle(t *testing.T) *Graph {
	t.Helper()
	b := NewBuilder(3)
	require.NoError(t, b.AddEdge(0, 1))
	require.NoError(t, b.AddEdge(1, 2))
	require.NoError(t, b.AddEdge(0, 2))
	return b.Build()
}

func TestBuild_NeighborsAreSortedAndDeduped(t *testing.T) {
	g := buildTriangle(t)

	assert.Equal(t, []int32{1, 2}, g.Neighbors(0))
	assert.Equal(t, []int32{0, 2}, g.Neighbors(1))
	assert.Equal(t, []int32{0, 1}, g.Neighbors(2))
	assert.Equal(t, 3, g.NumEdges())
}

func TestBuild_DuplicateEdgesDeduplicated(t *testing.T) {
	b := NewBuilder(2)
	require.NoError(t, b.AddEdge(0, 1))
	require.NoError(t, b.AddEdge(0, 1))
	require.NoError(t, b.AddEdge(1, 0))
	g := b.Build()

	assert.Equal(t, []int32{1}, g.Neighbors(0))
	assert.Equal(t, 1, g.NumEdges())
}

func TestAddEdge_SelfLoopRejected(t *testing.T) {
	b := NewBuilder(1)
	err := b.AddEdge(0, 0)
	require.Error(t, err)
}

func TestAreConnected(t *testing.T) {
	g := buildTriangle(t)

	assert.True(t, g.AreConnected(0, 1))
	assert.True(t, g.AreConnected(1, 0))
	assert.False(t, g.AreConnected(0, 0))
}

func TestDegreeAndNumVertices(t *testing.T) {
	g := buildTriangle(t)

	assert.Equal(t, 3, g.NumVertices())
	assert.Equal(t, 2, g.Degree(0))
}

func TestAreConnected_NonNeighborReturnsFalse(t *testing.T) {
	b := NewBuilder(4)
	require.NoError(t, b.AddEdge(0, 1))
	require.NoError(t, b.AddEdge(2, 3))
	g := b.Build()

	assert.False(t, g.AreConnected(0, 2))
	assert.False(t, g.AreConnected(0, 3))
}
