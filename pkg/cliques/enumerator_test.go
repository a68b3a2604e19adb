package cliques

import (
	"sort"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/percolate/pkg/graph"
)

type collectingSink struct {
	cliques [][]int32
}

func (s *collectingSink) EmitClique(c []int32) {
	cp := make([]int32, len(c))
	copy(cp, c)
	s.cliques = append(s.cliques, cp)
}

func buildGraph(t *testing.T, n int, edges [][2]int32) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(n)
	for _, e := range edges {
		require.NoError(t, b.AddEdge(e[0], e[1]))
	}
	return b.Build()
}

func TestEnumerate_RejectsSmallMinSize(t *testing.T) {
	g := buildGraph(t, 3, [][2]int32{{0, 1}, {1, 2}, {0, 2}})
	var sink collectingSink
	err := Enumerate(g, 2, &sink, nil, nil)
	require.Error(t, err)
}

func TestEnumerate_SingleTriangleIsOneClique(t *testing.T) {
	g := buildGraph(t, 3, [][2]int32{{0, 1}, {1, 2}, {0, 2}})
	var sink collectingSink
	require.NoError(t, Enumerate(g, 3, &sink, nil, nil))

	require.Len(t, sink.cliques, 1)
	assert.Equal(t, []int32{0, 1, 2}, sink.cliques[0])
}

func TestEnumerate_TwoTrianglesSharingAnEdge(t *testing.T) {
	// 0-1-2 and 1-2-3 triangles, sharing edge {1,2}. Neither triangle is
	// a subset of a larger clique, so both should be reported maximal.
	g := buildGraph(t, 4, [][2]int32{
		{0, 1}, {0, 2}, {1, 2},
		{1, 3}, {2, 3},
	})
	var sink collectingSink
	require.NoError(t, Enumerate(g, 3, &sink, nil, nil))

	assert.ElementsMatch(t, [][]int32{{0, 1, 2}, {1, 2, 3}}, sink.cliques)
}

func TestEnumerate_NoCliquesBelowMinSize(t *testing.T) {
	g := buildGraph(t, 4, [][2]int32{{0, 1}, {1, 2}, {2, 3}})
	var sink collectingSink
	require.NoError(t, Enumerate(g, 3, &sink, nil, nil))
	assert.Empty(t, sink.cliques)
}

func TestEnumerate_EmittedCliquesAreSortedAscending(t *testing.T) {
	g := buildGraph(t, 5, [][2]int32{
		{0, 1}, {0, 2}, {0, 3}, {0, 4},
		{1, 2}, {1, 3}, {1, 4},
		{2, 3}, {2, 4},
		{3, 4},
	})
	var sink collectingSink
	require.NoError(t, Enumerate(g, 3, &sink, nil, nil))

	for _, c := range sink.cliques {
		assert.True(t, sort.SliceIsSorted(c, func(i, j int) bool { return c[i] < c[j] }))
	}
}

// bruteForceMaximalCliques finds every maximal clique of size >= minSize
// by exhaustively checking all vertex subsets, as an independent oracle
// for the recursive algorithm under test.
func bruteForceMaximalCliques(g *graph.Graph, minSize int) [][]int32 {
	n := g.NumVertices()
	var all [][]int32

	isClique := func(verts []int32) bool {
		for i := range verts {
			for j := i + 1; j < len(verts); j++ {
				if !g.AreConnected(verts[i], verts[j]) {
					return false
				}
			}
		}
		return true
	}

	isMaximal := func(verts []int32) bool {
		in := make(map[int32]bool, len(verts))
		for _, v := range verts {
			in[v] = true
		}
		for v := int32(0); v < int32(n); v++ {
			if in[v] {
				continue
			}
			extends := true
			for _, u := range verts {
				if !g.AreConnected(u, v) {
					extends = false
					break
				}
			}
			if extends {
				return false
			}
		}
		return true
	}

	var combo []int32
	var rec func(start int)
	rec = func(start int) {
		if len(combo) >= minSize && isClique(combo) && isMaximal(combo) {
			cp := make([]int32, len(combo))
			copy(cp, combo)
			sort.Slice(cp, func(i, j int) bool { return cp[i] < cp[j] })
			all = append(all, cp)
		}
		for v := start; v < n; v++ {
			combo = append(combo, int32(v))
			if isClique(combo) {
				rec(v + 1)
			}
			combo = combo[:len(combo)-1]
		}
	}
	rec(0)
	return all
}

func cliqueSetKey(c []int32) string {
	s := make([]int32, len(c))
	copy(s, c)
	sort.Slice(s, func(i, j int) bool { return s[i] < s[j] })
	key := ""
	for _, v := range s {
		key += string(rune(v)) + ","
	}
	return key
}

func TestEnumerate_MatchesBruteForceOnRandomGraphs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 60
	properties := gopter.NewProperties(parameters)

	properties.Property("enumeration matches a brute-force oracle", prop.ForAll(
		func(n int, edgeBits []bool) bool {
			if n < 2 {
				return true
			}
			b := graph.NewBuilder(n)
			idx := 0
			for u := 0; u < n; u++ {
				for v := u + 1; v < n; v++ {
					if idx < len(edgeBits) && edgeBits[idx] {
						_ = b.AddEdge(int32(u), int32(v))
					}
					idx++
				}
			}
			g := b.Build()

			var sink collectingSink
			if err := Enumerate(g, 3, &sink, nil, nil); err != nil {
				return false
			}
			expected := bruteForceMaximalCliques(g, 3)

			if len(expected) != len(sink.cliques) {
				return false
			}
			seen := make(map[string]bool, len(sink.cliques))
			for _, c := range sink.cliques {
				seen[cliqueSetKey(c)] = true
			}
			for _, c := range expected {
				if !seen[cliqueSetKey(c)] {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 9),
		gen.SliceOf(gen.Bool()),
	))

	properties.TestingRun(t)
}
