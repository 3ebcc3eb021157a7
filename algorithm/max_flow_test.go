package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDinicDirected(t *testing.T) {
	// CLRS 经典样例
	g := NewDinicGraph(6)
	g.AddEdge(0, 1, 16)
	g.AddEdge(0, 2, 13)
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 1, 4)
	g.AddEdge(1, 3, 12)
	g.AddEdge(3, 2, 9)
	g.AddEdge(2, 4, 14)
	g.AddEdge(4, 3, 7)
	g.AddEdge(3, 5, 20)
	g.AddEdge(4, 5, 4)
	assert.Equal(t, int64(23), g.MaxFlow(0, 5))
}

func TestDinicBidirectional(t *testing.T) {
	directed := NewDinicGraph(4)
	directed.AddEdge(0, 2, 5)
	directed.AddEdge(2, 1, 5)
	directed.AddEdge(0, 1, 1)
	directed.AddEdge(1, 3, 10)
	directed.AddEdge(2, 3, 1)
	assert.Equal(t, int64(6), directed.MaxFlow(0, 3))

	both := NewDinicGraph(4)
	both.AddBidirectionalEdge(3, 1, 4) // 输入方向朝向源点一侧
	both.AddBidirectionalEdge(1, 0, 6)
	assert.Equal(t, int64(4), both.MaxFlow(0, 3))
}

func TestDinicDegenerate(t *testing.T) {
	g := NewDinicGraph(3)
	g.AddBidirectionalEdge(1, 1, 9)
	assert.Equal(t, int64(0), g.MaxFlow(0, 2))
	assert.Equal(t, int64(0), g.MaxFlow(1, 1))
}
