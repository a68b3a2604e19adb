package percolation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignedBranches_PremarksPaddingLeaves(t *testing.T) {
	// powerUp=4, only 3 real cliques: leaf index 3 (branch 7) is padding
	// and should already be done.
	a := NewAssignedBranches(4, 3)
	assert.True(t, a.IsDone(7))
	assert.False(t, a.IsDone(4))
	assert.False(t, a.IsDone(5))
	assert.False(t, a.IsDone(6))
}

func TestAssignedBranches_MarkingBothSiblingsPropagatesUp(t *testing.T) {
	a := NewAssignedBranches(4, 4)
	assert.False(t, a.IsDone(1))

	a.MarkAsDone(4)
	a.MarkAsDone(5)
	assert.True(t, a.IsDone(2)) // both children of 2 done

	a.MarkAsDone(6)
	a.MarkAsDone(7)
	assert.True(t, a.IsDone(3))
	assert.True(t, a.IsDone(1)) // root done once both subtrees are done
}

func TestAssignedBranches_MarkAsDoneIsIdempotent(t *testing.T) {
	a := NewAssignedBranches(4, 4)
	marked := a.MarkAsDone(4)
	assert.Equal(t, 1, marked)
	marked = a.MarkAsDone(4)
	assert.Equal(t, 0, marked)
}
