package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMalformedInput_IsMatchesSentinel(t *testing.T) {
	err := MalformedInput("load-graph", "line 4", errors.New("bad token"))

	assert.True(t, IsMalformedInput(err))
	assert.False(t, IsInvalidArgument(err))
	require.ErrorContains(t, err, "load-graph")
	require.ErrorContains(t, err, "bad token")
}

func TestNoCliques_WrapsSentinel(t *testing.T) {
	err := NoCliques("enumerate-cliques", 5)

	assert.True(t, errors.Is(err, ErrNoCliques))
	assert.True(t, IsNoCliques(err))
}

func TestErrorBuilder_UnwrapReturnsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewError("write-community").IoError().Context("commK").Cause(cause).Err()

	var pe *PercolationError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, cause, errors.Unwrap(err))
	assert.Equal(t, KindIoError, pe.Kind)
}

func TestTooManyCliques_ContextReportsCount(t *testing.T) {
	err := TooManyCliques("enumerate-cliques", 1<<31)

	assert.True(t, IsTooManyCliques(err))
	require.ErrorContains(t, err, "2147483648 cliques")
}
