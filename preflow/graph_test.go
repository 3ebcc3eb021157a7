package preflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/maxflow/xerrors"
)

func TestNewGraph(t *testing.T) {
	_, err := NewGraph(1)
	assert.True(t, errors.Is(err, xerrors.ErrInvalidGraph))

	g, err := NewGraph(3)
	require.NoError(t, err)
	assert.Equal(t, 0, g.Source())
	assert.Equal(t, 2, g.Sink())
	assert.Equal(t, 0, g.NumEdges())
}

func TestAddEdge(t *testing.T) {
	g, err := NewGraph(3)
	require.NoError(t, err)

	require.NoError(t, g.AddEdge(0, 1, 4))
	require.NoError(t, g.AddEdge(1, 1, 7))
	require.NoError(t, g.AddEdge(2, 1, 0))

	assert.True(t, errors.Is(g.AddEdge(0, 3, 1), xerrors.ErrEdgeOutOfRange))
	assert.True(t, errors.Is(g.AddEdge(-1, 2, 1), xerrors.ErrEdgeOutOfRange))
	assert.True(t, errors.Is(g.AddEdge(0, 2, -1), xerrors.ErrNegativeCapacity))

	assert.Equal(t, 3, g.NumEdges())
	assert.Equal(t, []int{0}, g.Incident(0))
	assert.Equal(t, []int{0, 1, 2}, g.Incident(1)) // 自环只登记一次
	assert.Equal(t, []int{2}, g.Incident(2))

	u, v := g.Endpoints(2)
	assert.Equal(t, 2, u)
	assert.Equal(t, 1, v)
	assert.Equal(t, int64(4), g.Residual(0, 0))
	assert.Equal(t, int64(4), g.Residual(0, 1))
}

func TestBuildRejectsBadArc(t *testing.T) {
	_, err := Build(2, []Arc{{From: 0, To: 1, Cap: 1}, {From: 0, To: 2, Cap: 1}})
	assert.True(t, errors.Is(err, xerrors.ErrEdgeOutOfRange))
}

func TestResidualBothSides(t *testing.T) {
	e := edge{u: 0, v: 1, cap: 5, flow: 3}
	assert.Equal(t, int64(2), e.residual(0))
	assert.Equal(t, int64(8), e.residual(1))
	e.flow = -5
	assert.Equal(t, int64(10), e.residual(0))
	assert.Equal(t, int64(0), e.residual(1))
	assert.Equal(t, 1, e.other(0))
	assert.Equal(t, 0, e.other(1))
}

func TestInvariantPanics(t *testing.T) {
	assert.NotPanics(t, func() { invariant(true, "never") })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, errors.Is(err, xerrors.ErrInvariant))
		assert.Contains(t, err.Error(), "node 3")
	}()
	invariant(false, "node %d", 3)
}
