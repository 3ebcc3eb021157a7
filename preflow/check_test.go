package preflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/maxflow/xerrors"
)

func diamond(t *testing.T) *Graph {
	t.Helper()
	g, err := Build(4, []Arc{{0, 1, 3}, {0, 2, 2}, {1, 3, 2}, {2, 3, 3}, {1, 2, 1}})
	require.NoError(t, err)
	return g
}

func TestCheckAcceptsSolved(t *testing.T) {
	g := diamond(t)
	solve(t, g, Parallel, 3)
	assert.NoError(t, Check(g))
}

func TestCheckRejectsUnsolved(t *testing.T) {
	g := diamond(t)
	err := Check(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrCheckFailed))
	assert.Contains(t, err.Error(), "source height")
}

func TestCheckRejectsOverCapacity(t *testing.T) {
	g := diamond(t)
	solve(t, g, Sequential, 1)
	g.edges[0].flow = g.edges[0].cap + 1
	err := Check(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrCheckFailed))
	assert.Contains(t, err.Error(), "exceeds capacity")

	var xe *xerrors.Error
	require.True(t, errors.As(err, &xe))
	assert.Equal(t, 0, xe.Context["edge"])
}

func TestCheckRejectsLeftoverExcess(t *testing.T) {
	g := diamond(t)
	solve(t, g, Sequential, 1)
	g.nodes[1].excess = 1
	err := Check(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "left at termination")
}

func TestCheckFindsAugmentingPath(t *testing.T) {
	g := diamond(t)
	// 合法但非最大的预流：零流、源点高度为 n
	g.nodes[g.source].height = g.NumNodes()
	err := Check(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrCheckFailed))
	assert.Contains(t, err.Error(), "augmenting path")
}
