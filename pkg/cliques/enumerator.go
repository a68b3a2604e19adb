// Package cliques enumerates maximal cliques of a graph.Graph using a
// Bron-Kerbosch variant with a "fewest disconnections" pivot, seeded at
// each vertex in ascending order so every maximal clique is produced
// exactly once, at its minimum-numbered vertex.
package cliques

import (
	"math"

	"github.com/dd0wney/percolate/pkg/errs"
	"github.com/dd0wney/percolate/pkg/graph"
	"github.com/dd0wney/percolate/pkg/logging"
)

// Sink receives maximal cliques as they are discovered. Clique is
// sorted ascending and is a freshly allocated slice on every call, so
// the sink may keep it.
type Sink interface {
	EmitClique(clique []int32)
}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(clique []int32)

func (f SinkFunc) EmitClique(clique []int32) { f(clique) }

// VertexObserver is notified once per seed vertex as Enumerate's outer
// loop reaches it, for metrics/progress reporting.
type VertexObserver interface {
	ObserveVertex(v int32)
}

// VertexObserverFunc adapts a plain function to the VertexObserver interface.
type VertexObserverFunc func(v int32)

func (f VertexObserverFunc) ObserveVertex(v int32) { f(v) }

// Enumerate produces every maximal clique of g with size >= minSize,
// handing each to sink exactly once. minSize must be >= 3. observer
// may be nil; when set, it is notified once per seed vertex.
func Enumerate(g *graph.Graph, minSize int, sink Sink, logger logging.Logger, observer VertexObserver) error {
	if minSize < 3 {
		return errs.InvalidArgument("cliques.Enumerate", "minimum size must be >= 3")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	n := int32(g.NumVertices())
	for v := int32(0); v < n; v++ {
		if observer != nil {
			observer.ObserveVertex(v)
		}
		if v != 0 && v%100 == 0 {
			logger.Info("enumeration progress", logging.Vertex(v), logging.Int64("total_vertices", int64(n)))
		}
		if g.Degree(v)+1 < minSize {
			continue
		}
		cliquesForOneVertex(g, minSize, v, sink)
	}
	return nil
}

// cliquesForOneVertex seeds the recursion for the one vertex v,
// splitting its neighbors into Not (below v) and Candidates (above v).
func cliquesForOneVertex(g *graph.Graph, minSize int, v int32, sink Sink) {
	neighbors := g.Neighbors(v)
	splitAt := 0
	for splitAt < len(neighbors) && neighbors[splitAt] < v {
		splitAt++
	}
	not := newOrderedListFromSorted(neighbors[:splitAt])
	candidates := newOrderedListFromSorted(neighbors[splitAt:])

	compsub := make([]int32, 0, minSize+4)
	compsub = append(compsub, v)

	grow(g, minSize, compsub, not, candidates, sink)
}

// grow is the recursive Bron-Kerbosch step over (Compsub, Not, Candidates).
func grow(g *graph.Graph, minSize int, compsub []int32, not, candidates *orderedList, sink Sink) {
	if candidates.Len()+len(compsub) < minSize {
		return
	}

	if candidates.Empty() {
		if not.Empty() && len(compsub) >= minSize {
			emit(compsub, sink)
		}
		return
	}

	fewestDisc, pivot, pivotInCandidates := findFewestDisconnections(not, candidates, g)
	if !pivotInCandidates && fewestDisc == 0 {
		// Something in Not is connected to every candidate; nothing
		// extending Compsub can be maximal without including it, and
		// it is already excluded, so no maximal clique remains here.
		return
	}

	cur := candidates.Cursor()
	for !cur.Done() {
		if candidates.Len()+len(compsub) < minSize {
			return
		}
		v := cur.Value()
		if v == pivot || g.AreConnected(v, pivot) {
			cur.Advance()
			continue
		}
		cur.Remove()
		if candidates.Len()+len(compsub) < minSize {
			return
		}

		neigh := g.Neighbors(v)
		newCompsub := append(compsub, v)
		grow(g, minSize, newCompsub, not.IntersectSorted(neigh), candidates.IntersectSorted(neigh), sink)

		not.InsertSorted(v)
	}

	if pivotInCandidates {
		if candidates.Len()+len(compsub) < minSize {
			return
		}
		neigh := g.Neighbors(pivot)
		newCompsub := append(compsub, pivot)
		grow(g, minSize, newCompsub, not.IntersectSorted(neigh), candidates.IntersectSorted(neigh), sink)
	}
}

// findFewestDisconnections scans Not then Candidates for the vertex
// with the fewest disconnections to Candidates (|Candidates| minus the
// overlap with its neighborhood), returning whether the winner came
// from Candidates.
func findFewestDisconnections(not, candidates *orderedList, g *graph.Graph) (fewestDisc int, fewestVertex int32, fewestIsInCandidates bool) {
	fewestDisc = math.MaxInt32
	candSize := candidates.Len()

	for cur := not.Cursor(); !cur.Done(); cur.Advance() {
		v := cur.Value()
		disc := candSize - countIntersection(candidates, g.Neighbors(v))
		if disc < fewestDisc {
			fewestDisc, fewestVertex, fewestIsInCandidates = disc, v, false
			if fewestDisc == 0 {
				return
			}
		}
	}
	for cur := candidates.Cursor(); !cur.Done(); cur.Advance() {
		v := cur.Value()
		disc := candSize - countIntersection(candidates, g.Neighbors(v))
		if disc < fewestDisc {
			fewestDisc, fewestVertex, fewestIsInCandidates = disc, v, true
			if fewestDisc == 0 {
				return
			}
		}
	}
	return
}

// countIntersection counts how many elements of sorted also appear in l,
// without allocating a new list.
func countIntersection(l *orderedList, sorted []int32) int {
	count := 0
	n := l.head
	i := 0
	for n != nil && i < len(sorted) {
		switch {
		case n.val == sorted[i]:
			count++
			n = n.next
			i++
		case n.val < sorted[i]:
			n = n.next
		default:
			i++
		}
	}
	return count
}

func emit(compsub []int32, sink Sink) {
	clique := make([]int32, len(compsub))
	copy(clique, compsub)
	insertionSortAscending(clique)
	sink.EmitClique(clique)
}

// insertionSortAscending sorts small slices (clique sizes are typically
// tens of vertices, not thousands) without pulling in sort.Slice's
// interface overhead on the hot emission path.
func insertionSortAscending(s []int32) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
