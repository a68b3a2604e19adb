// Package ingest loads a plain whitespace-separated edge list into a
// graph.Graph, mapping external node identifiers (integers or
// arbitrary strings) onto the dense vertex IDs the rest of the
// pipeline works with.
package ingest

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dd0wney/percolate/pkg/errs"
	"github.com/dd0wney/percolate/pkg/graph"
	"github.com/dd0wney/percolate/pkg/logging"
)

// NodeNameIndex maps external node identifiers (as they appear in the
// edge-list file) to dense int32 vertex IDs, and back again for output.
type NodeNameIndex struct {
	idOf   map[string]int32
	nameOf []string
}

func newNodeNameIndex() *NodeNameIndex {
	return &NodeNameIndex{idOf: make(map[string]int32)}
}

// IDFor returns the dense vertex ID for name, assigning a fresh one if
// name hasn't been seen before.
func (idx *NodeNameIndex) IDFor(name string) int32 {
	if id, ok := idx.idOf[name]; ok {
		return id
	}
	id := int32(len(idx.nameOf))
	idx.idOf[name] = id
	idx.nameOf = append(idx.nameOf, name)
	return id
}

// NameOf returns the external identifier originally mapped to id.
func (idx *NodeNameIndex) NameOf(id int32) string {
	return idx.nameOf[id]
}

// Len returns the number of distinct nodes seen.
func (idx *NodeNameIndex) Len() int {
	return len(idx.nameOf)
}

// LoadResult bundles the built graph with the index needed to recover
// external node names for output.
type LoadResult struct {
	Graph *graph.Graph
	Index *NodeNameIndex
}

// LoadEdgeList reads whitespace-separated "u v" pairs from r, one edge
// per line, building a graph.Graph over dense vertex IDs. Every token
// is assigned an ID in first-seen order via a NodeNameIndex. When
// stringIDs is false, a token that does not parse as an integer fails
// with errs.ErrMalformedInput; when true, tokens are treated as opaque
// strings. Duplicate
// edges are tolerated; self-loops fail with errs.ErrMalformedInput.
func LoadEdgeList(r io.Reader, stringIDs bool, logger logging.Logger) (*LoadResult, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	// Internal vertex IDs are always dense, first-seen-order IDs from the
	// index; --stringIDs only controls whether a token is required to
	// parse as an integer before being accepted.
	index := newNodeNameIndex()
	resolve := func(token string) (int32, error) {
		if !stringIDs {
			if _, err := strconv.ParseInt(token, 10, 64); err != nil {
				return 0, errs.MalformedInput("ingest.LoadEdgeList", fmt.Sprintf("non-integer node id %q (pass --stringIDs to accept arbitrary names)", token), err)
			}
		}
		return index.IDFor(token), nil
	}

	builder := graph.NewBuilder(0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	edgeCount := 0
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, errs.MalformedInput("ingest.LoadEdgeList", fmt.Sprintf("line %d: expected exactly two tokens, got %d", lineNum, len(fields)), nil)
		}

		u, err := resolve(fields[0])
		if err != nil {
			return nil, err
		}
		v, err := resolve(fields[1])
		if err != nil {
			return nil, err
		}

		if err := builder.AddEdge(u, v); err != nil {
			return nil, errs.MalformedInput("ingest.LoadEdgeList", fmt.Sprintf("line %d", lineNum), err)
		}
		edgeCount++

		if edgeCount%1_000_000 == 0 {
			logger.Info("edge list loading progress", logging.Int64("edges_read", int64(edgeCount)))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errs.IoError("ingest.LoadEdgeList", "reading edge list", err)
	}

	g := builder.Build()
	logger.Info("edge list loaded",
		logging.Int64("vertices", int64(g.NumVertices())),
		logging.Int64("edges", int64(g.NumEdges())),
	)
	return &LoadResult{Graph: g, Index: index}, nil
}
