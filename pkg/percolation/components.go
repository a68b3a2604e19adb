// Package percolation implements k-clique percolation community
// detection over a set of maximal cliques: two cliques of size >= k
// are adjacent at percolation level k if they share at least k-1
// vertices, and a community is a connected component of that
// adjacency relation.
package percolation

// Components tracks, for one percolation level, which component each
// clique currently belongs to, and lets callers move a clique between
// components in O(1). The engine builds a fresh one for each k value
// in [minK, maxK].
type Components struct {
	componentOf []int32
	nodeOf      []*memberNode
	members     []*memberList
}

type memberNode struct {
	clique     int32
	prev, next *memberNode
	list       *memberList
}

// memberList is the set of clique IDs currently in one component, kept
// as a doubly linked list so MoveNode is O(1).
type memberList struct {
	head, tail *memberNode
	size       int
}

func (m *memberList) Empty() bool { return m.size == 0 }
func (m *memberList) Len() int    { return m.size }

// Front returns the first clique ID in the component. Callers must
// check Empty first.
func (m *memberList) Front() int32 { return m.head.clique }

// Each calls fn for every clique currently in the component, in
// insertion order.
func (m *memberList) Each(fn func(clique int32)) {
	for n := m.head; n != nil; n = n.next {
		fn(n.clique)
	}
}

func (m *memberList) pushBack(n *memberNode) {
	n.list = m
	n.prev, n.next = m.tail, nil
	if m.tail != nil {
		m.tail.next = n
	} else {
		m.head = n
	}
	m.tail = n
	m.size++
}

func (m *memberList) remove(n *memberNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		m.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		m.tail = n.prev
	}
	n.prev, n.next, n.list = nil, nil, nil
	m.size--
}

// NewComponents allocates a Components structure over n cliques, all
// initially belonging to no component.
func NewComponents(n int) *Components {
	c := &Components{
		componentOf: make([]int32, n),
		nodeOf:      make([]*memberNode, n),
	}
	for i := range c.componentOf {
		c.componentOf[i] = -1
		c.nodeOf[i] = &memberNode{clique: int32(i)}
	}
	return c
}

// TopEmptyComponent allocates and returns a fresh, empty component ID.
func (c *Components) TopEmptyComponent() int32 {
	id := int32(len(c.members))
	c.members = append(c.members, &memberList{})
	return id
}

// MoveNode moves clique into component, removing it from whatever
// component (if any) it previously belonged to.
func (c *Components) MoveNode(clique, component int32) {
	n := c.nodeOf[clique]
	if n.list != nil {
		n.list.remove(n)
	}
	c.members[component].pushBack(n)
	c.componentOf[clique] = component
}

// MyComponentID returns the component clique currently belongs to, or
// -1 if it has not been assigned to any component yet.
func (c *Components) MyComponentID(clique int32) int32 {
	return c.componentOf[clique]
}

// GetMembers returns the member list of component.
func (c *Components) GetMembers(component int32) *memberList {
	return c.members[component]
}
