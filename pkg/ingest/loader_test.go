package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEdgeList_IntegerIDs(t *testing.T) {
	r := strings.NewReader("0 1\n1 2\n0 2\n")
	res, err := LoadEdgeList(r, false, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Graph.NumVertices())
	assert.Equal(t, 3, res.Graph.NumEdges())
	assert.Equal(t, "0", res.Index.NameOf(0))
}

func TestLoadEdgeList_StringIDsAssignedInFirstSeenOrder(t *testing.T) {
	r := strings.NewReader("alice bob\nbob carol\n")
	res, err := LoadEdgeList(r, true, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(0), res.Index.IDFor("alice"))
	assert.Equal(t, int32(1), res.Index.IDFor("bob"))
	assert.Equal(t, int32(2), res.Index.IDFor("carol"))
	assert.Equal(t, "bob", res.Index.NameOf(1))
}

func TestLoadEdgeList_RejectsSelfLoop(t *testing.T) {
	r := strings.NewReader("0 0\n")
	_, err := LoadEdgeList(r, false, nil)
	require.Error(t, err)
}

func TestLoadEdgeList_RejectsNonIntegerTokenWithoutStringIDs(t *testing.T) {
	r := strings.NewReader("alice bob\n")
	_, err := LoadEdgeList(r, false, nil)
	require.Error(t, err)
}

func TestLoadEdgeList_RejectsBlankLine(t *testing.T) {
	r := strings.NewReader("0 1\n\n1 2\n")
	_, err := LoadEdgeList(r, false, nil)
	require.Error(t, err)
}

func TestLoadEdgeList_RejectsCommentLine(t *testing.T) {
	r := strings.NewReader("# not part of the format\n0 1\n")
	_, err := LoadEdgeList(r, false, nil)
	require.Error(t, err)
}

func TestLoadEdgeList_RejectsMalformedLine(t *testing.T) {
	r := strings.NewReader("0 1 2\n")
	_, err := LoadEdgeList(r, false, nil)
	require.Error(t, err)
}

func TestLoadEdgeList_DeduplicatesRepeatedEdges(t *testing.T) {
	r := strings.NewReader("0 1\n1 0\n0 1\n")
	res, err := LoadEdgeList(r, false, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Graph.NumEdges())
}
