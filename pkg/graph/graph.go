// Package graph provides the immutable adjacency structure the rest of
// the percolation pipeline is built on: dense integer vertex IDs,
// sorted neighbor lists, and an O(log deg) adjacency test.
package graph

import (
	"fmt"
	"slices"

	"github.com/dd0wney/percolate/pkg/errs"
)

// Graph is an undirected simple graph over vertices 0..N-1. Neighbor
// lists are sorted ascending and built once at construction; the graph
// is read-only thereafter.
type Graph struct {
	neighbors [][]int32
	numEdges  int
}

// Builder accumulates edges before Build freezes them into a Graph.
// Keeping construction separate from the read path lets the loader
// (pkg/ingest) add edges incrementally without re-sorting on every call.
type Builder struct {
	n     int
	edges map[int32]map[int32]struct{}
}

// NewBuilder creates a Builder for a graph with n known vertices.
// Vertices observed via AddEdge beyond n are accommodated automatically.
func NewBuilder(n int) *Builder {
	b := &Builder{edges: make(map[int32]map[int32]struct{}, n)}
	b.ensure(n - 1)
	return b
}

func (b *Builder) ensure(maxID int) {
	if maxID < b.n-1 {
		return
	}
	b.n = maxID + 1
}

// AddEdge records an undirected edge {u,v}. Self-loops return
// errs.ErrMalformedInput, matching the "reject self-loops at load time"
// invariant. Duplicate edges are tolerated and deduplicated.
func (b *Builder) AddEdge(u, v int32) error {
	if u == v {
		return errs.MalformedInput("graph.AddEdge", fmt.Sprintf("self-loop at vertex %d", u), nil)
	}
	b.ensure(int(max32(u, v)))

	if b.edges[u] == nil {
		b.edges[u] = make(map[int32]struct{})
	}
	if b.edges[v] == nil {
		b.edges[v] = make(map[int32]struct{})
	}
	b.edges[u][v] = struct{}{}
	b.edges[v][u] = struct{}{}
	return nil
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// Build freezes the accumulated edges into an immutable Graph. Neighbor
// lists are sorted ascending with no duplicates and no self-references,
// per the invariants in the design.
func (b *Builder) Build() *Graph {
	g := &Graph{neighbors: make([][]int32, b.n)}
	for v := 0; v < b.n; v++ {
		neighSet := b.edges[int32(v)]
		ns := make([]int32, 0, len(neighSet))
		for u := range neighSet {
			ns = append(ns, u)
		}
		slices.Sort(ns)
		g.neighbors[v] = ns
		g.numEdges += len(ns)
	}
	g.numEdges /= 2
	return g
}

// NumVertices returns N, the number of vertices in [0, N).
func (g *Graph) NumVertices() int {
	return len(g.neighbors)
}

// NumEdges returns the number of undirected edges.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// Degree returns the degree of vertex v.
func (g *Graph) Degree(v int32) int {
	return len(g.neighbors[v])
}

// Neighbors returns the sorted ascending neighbor list of v. The
// returned slice must not be mutated by callers.
func (g *Graph) Neighbors(v int32) []int32 {
	return g.neighbors[v]
}

// AreConnected reports whether u and v are adjacent, via binary search
// over u's neighbor list.
func (g *Graph) AreConnected(u, v int32) bool {
	ns := g.neighbors[u]
	_, found := slices.BinarySearch(ns, v)
	return found
}

// MaxDegree returns the largest degree in the graph, or 0 if N == 0.
func (g *Graph) MaxDegree() int {
	max := 0
	for v := range g.neighbors {
		if d := len(g.neighbors[v]); d > max {
			max = d
		}
	}
	return max
}
