package cliques

// orderedList is an ascending sequence of distinct vertex IDs backed by
// a doubly linked list, giving O(1) removal at a cursor and O(n)
// order-preserving insertion. Not and Candidates are both orderedLists;
// set-intersection against a sorted neighbor slice produces a fresh one.
type orderedList struct {
	head, tail *listNode
	size       int
}

type listNode struct {
	val        int32
	prev, next *listNode
}

// newOrderedListFromSorted builds an orderedList from an already-sorted
// slice, such as the low or high half of a vertex's neighbor list.
func newOrderedListFromSorted(vals []int32) *orderedList {
	l := &orderedList{}
	for _, v := range vals {
		l.pushBack(v)
	}
	return l
}

func (l *orderedList) pushBack(v int32) {
	n := &listNode{val: v}
	if l.tail == nil {
		l.head, l.tail = n, n
	} else {
		n.prev = l.tail
		l.tail.next = n
		l.tail = n
	}
	l.size++
}

func (l *orderedList) Len() int {
	return l.size
}

func (l *orderedList) Empty() bool {
	return l.size == 0
}

// Front returns the first element. Callers must check Empty first.
func (l *orderedList) Front() int32 {
	return l.head.val
}

// cursor walks the list front to back, supporting O(1) removal.
type cursor struct {
	l    *orderedList
	node *listNode
}

func (l *orderedList) Cursor() *cursor {
	return &cursor{l: l, node: l.head}
}

func (c *cursor) Done() bool {
	return c.node == nil
}

func (c *cursor) Value() int32 {
	return c.node.val
}

// Remove deletes the current node and advances the cursor to the next one.
func (c *cursor) Remove() {
	n := c.node
	next := n.next
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.l.tail = n.prev
	}
	c.l.size--
	c.node = next
}

// Advance moves the cursor to the next node without removing the current one.
func (c *cursor) Advance() {
	c.node = c.node.next
}

// InsertSorted inserts v keeping the list in ascending order. The list
// must not already contain v.
func (l *orderedList) InsertSorted(v int32) {
	n := &listNode{val: v}
	cur := l.head
	for cur != nil && cur.val < v {
		cur = cur.next
	}
	if cur == nil {
		// append at tail
		if l.tail == nil {
			l.head, l.tail = n, n
		} else {
			n.prev = l.tail
			l.tail.next = n
			l.tail = n
		}
	} else {
		n.next = cur
		n.prev = cur.prev
		if cur.prev != nil {
			cur.prev.next = n
		} else {
			l.head = n
		}
		cur.prev = n
	}
	l.size++
}

// IntersectSorted returns a new orderedList containing the elements
// common to l and the ascending, duplicate-free slice sorted, preserving
// ascending order. This is the merge-style intersection the design
// requires for Not ∩ N(v) and Candidates ∩ N(v).
func (l *orderedList) IntersectSorted(sorted []int32) *orderedList {
	out := &orderedList{}
	n := l.head
	i := 0
	for n != nil && i < len(sorted) {
		switch {
		case n.val == sorted[i]:
			out.pushBack(n.val)
			n = n.next
			i++
		case n.val < sorted[i]:
			n = n.next
		default:
			i++
		}
	}
	return out
}

// ToSlice materializes the list as a slice, in ascending order.
func (l *orderedList) ToSlice() []int32 {
	out := make([]int32, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.val)
	}
	return out
}
