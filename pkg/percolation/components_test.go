package percolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponents_MoveNodeUpdatesMembershipAndOldList(t *testing.T) {
	c := NewComponents(3)
	a := c.TopEmptyComponent()
	b := c.TopEmptyComponent()

	c.MoveNode(0, a)
	c.MoveNode(1, a)
	c.MoveNode(2, a)
	assert.Equal(t, 3, c.GetMembers(a).Len())

	c.MoveNode(1, b)
	assert.Equal(t, 2, c.GetMembers(a).Len())
	assert.Equal(t, 1, c.GetMembers(b).Len())
	assert.Equal(t, b, c.MyComponentID(1))
}

func TestComponents_FrontAndEachPreserveInsertionOrder(t *testing.T) {
	c := NewComponents(4)
	a := c.TopEmptyComponent()
	c.MoveNode(2, a)
	c.MoveNode(0, a)
	c.MoveNode(3, a)

	require.False(t, c.GetMembers(a).Empty())
	assert.Equal(t, int32(2), c.GetMembers(a).Front())

	var order []int32
	c.GetMembers(a).Each(func(clique int32) { order = append(order, clique) })
	assert.Equal(t, []int32{2, 0, 3}, order)
}

func TestComponents_TopEmptyComponentAllocatesFreshIDs(t *testing.T) {
	c := NewComponents(2)
	a := c.TopEmptyComponent()
	b := c.TopEmptyComponent()
	assert.NotEqual(t, a, b)
	assert.True(t, c.GetMembers(a).Empty())
	assert.True(t, c.GetMembers(b).Empty())
}

func TestComponents_UnassignedCliqueHasNoComponent(t *testing.T) {
	c := NewComponents(1)
	assert.Equal(t, int32(-1), c.MyComponentID(0))
}
