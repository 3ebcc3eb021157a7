package graphio

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/maxflow/preflow"
	"github.com/wyfcoding/maxflow/xerrors"
)

func TestRead(t *testing.T) {
	in, err := Read(strings.NewReader("4 5 0 0\n0 1 3\n0 2 2\n1 3 2\n2 3 3\n1 2 1\nextra tokens"))
	require.NoError(t, err)
	assert.Equal(t, 4, in.Nodes)
	assert.Len(t, in.Arcs, 5)
	assert.Equal(t, preflow.Arc{From: 1, To: 2, Cap: 1}, in.Arcs[4])

	g, err := in.Graph()
	require.NoError(t, err)
	assert.Equal(t, 4, g.NumNodes())
	assert.Equal(t, 5, g.NumEdges())
}

func TestReadErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", xerrors.ErrMalformedInput},
		{"short header", "3 1", xerrors.ErrMalformedInput},
		{"not a number", "3 1 0 x", xerrors.ErrMalformedInput},
		{"one node", "1 0 0 0", xerrors.ErrInvalidGraph},
		{"negative m", "3 -1 0 0", xerrors.ErrMalformedInput},
		{"missing triple", "3 2 0 0\n0 1 4\n", xerrors.ErrMalformedInput},
		{"out of range", "3 1 0 0\n0 3 4\n", xerrors.ErrEdgeOutOfRange},
		{"negative id", "3 1 0 0\n-1 2 4\n", xerrors.ErrEdgeOutOfRange},
		{"negative cap", "3 1 0 0\n0 2 -4\n", xerrors.ErrNegativeCapacity},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tc.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestReadLimits(t *testing.T) {
	_, err := Read(strings.NewReader("4294967296 0 0 0"), WithMaxNodes(1<<20))
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrGraphTooLarge), "got %v", err)

	_, err = Read(strings.NewReader("3 1000000 0 0\n0 2 1\n"), WithMaxEdges(10))
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrGraphTooLarge), "got %v", err)

	in, err := Read(strings.NewReader("3 1 0 0\n0 2 1\n"), WithMaxNodes(3), WithMaxEdges(1))
	require.NoError(t, err)
	assert.Equal(t, 3, in.Nodes)

	// 未设置上限时只做格式校验
	in, err = Read(strings.NewReader("5000 0 0 0"))
	require.NoError(t, err)
	assert.Equal(t, 5000, in.Nodes)
}

func TestWriteRoundTrip(t *testing.T) {
	orig := Random(rand.New(rand.NewPCG(7, 11)), 20, 60, 50)
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, orig))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, orig.Nodes, got.Nodes)
	assert.Equal(t, orig.Arcs, got.Arcs)
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(rand.New(rand.NewPCG(1, 2)), 10, 30, 9)
	b := Random(rand.New(rand.NewPCG(1, 2)), 10, 30, 9)
	assert.Equal(t, a, b)
	for _, arc := range a.Arcs {
		assert.GreaterOrEqual(t, arc.Cap, int64(0))
		assert.LessOrEqual(t, arc.Cap, int64(9))
	}
}

func TestWriteResult(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResult(&buf, 4, 5, 5))
	assert.Equal(t, "n = 4\nm = 5\nf = 5\n", buf.String())
}

func TestWriteDOT(t *testing.T) {
	g, err := preflow.Build(3, []preflow.Arc{{From: 1, To: 0, Cap: 4}, {From: 1, To: 2, Cap: 3}, {From: 0, To: 2, Cap: 0}})
	require.NoError(t, err)
	_, err = preflow.Solve(context.Background(), g, preflow.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, g))
	out := buf.String()
	assert.Contains(t, out, `label="flow = 3"`)
	// 输入方向为 1→0 的边承载 0→1 的流量
	assert.Contains(t, out, `n0 -> n1 [label="3 (cap 4)", style=solid, color=darkgreen];`)
	assert.Contains(t, out, `n1 -> n2 [label="3 (cap 3)", style=solid, color=red];`)
	assert.Contains(t, out, `n0 -> n2 [label="0 (cap 0)", style=dashed, color=darkgreen];`)
}
