package xerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithKeepsIdentity(t *testing.T) {
	err := ErrEdgeOutOfRange.With("edge %d: node %d", 3, 9)
	require.True(t, errors.Is(err, ErrEdgeOutOfRange))
	assert.False(t, errors.Is(err, ErrNegativeCapacity))
	assert.Contains(t, err.Error(), "edge 3: node 9")
	assert.NotEmpty(t, err.Stack)
}

func TestWrapPreservesCode(t *testing.T) {
	wrapped := fmt.Errorf("reading: %w", ErrMalformedInput.With("token 4"))
	e := Wrap(wrapped, ErrInternal, "parse failed")
	require.NotNil(t, e)
	assert.Equal(t, ErrInternal, e.Type)
	assert.True(t, errors.Is(e, ErrMalformedInput))

	direct := Wrap(ErrNegativeCapacity.With("c=-1"), ErrInternal, "bad edge")
	assert.Equal(t, ErrInvalidArg, direct.Type)
	assert.Equal(t, ErrNegativeCapacity.Code, direct.Code)
	assert.Nil(t, Wrap(nil, ErrInternal, "nothing"))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrInvalidGraph.HTTPStatus())
	assert.Equal(t, http.StatusTooManyRequests, ErrBusy.HTTPStatus())
	assert.Equal(t, http.StatusRequestEntityTooLarge, ErrGraphTooLarge.HTTPStatus())
	assert.Equal(t, "TooLarge", ErrGraphTooLarge.Type.String())
	assert.Equal(t, http.StatusInternalServerError, ErrInvariant.HTTPStatus())
	assert.Equal(t, "Unknown", ErrorType(99).String())
}
