// Package algorithm 提供独立于 preflow 的参考最大流实现，用于交叉验证。
package algorithm

import (
	"math"
)

// Arc 代表残量网络中的一条有向弧。
type Arc struct {
	To     int
	Cap    int64
	Flow   int64
	RevIdx int // 反向弧在邻接表中的索引。
}

// DinicGraph 实现了基于分层图和 DFS 的 Dinic 最大流算法。
// 非并发安全：每次求解使用各自的实例。
type DinicGraph struct {
	nodes int
	adj   [][]Arc
	level []int // 节点深度。
	ptr   []int // 当前弧优化：记录 DFS 遍历到哪条弧了。
	queue []int // 复用 buffer。
}

// NewDinicGraph 创建一个新的 Dinic 图。
func NewDinicGraph(n int) *DinicGraph {
	return &DinicGraph{
		nodes: n,
		adj:   make([][]Arc, n),
		level: make([]int, n),
		ptr:   make([]int, n),
		queue: make([]int, 0, n),
	}
}

// AddEdge 添加有向边和对应的反向边（反向容量为 0）。
func (g *DinicGraph) AddEdge(from, to int, capacity int64) {
	g.addPair(from, to, capacity, 0)
}

// AddBidirectionalEdge 添加一条两个方向都可使用、容量均为 capacity 的边。
// 正反两条弧共享同一份净流量：u→v 剩余 c-f，v→u 剩余 c+f。
func (g *DinicGraph) AddBidirectionalEdge(u, v int, capacity int64) {
	g.addPair(u, v, capacity, capacity)
}

func (g *DinicGraph) addPair(from, to int, capacity, reverse int64) {
	if from == to {
		return
	}
	g.adj[from] = append(g.adj[from], Arc{
		To:     to,
		Cap:    capacity,
		RevIdx: len(g.adj[to]),
	})
	g.adj[to] = append(g.adj[to], Arc{
		To:     from,
		Cap:    reverse,
		RevIdx: len(g.adj[from]) - 1,
	})
}

// bfs 构造分层图。
func (g *DinicGraph) bfs(s, t int) bool {
	for i := range g.level {
		g.level[i] = -1
	}
	g.level[s] = 0

	g.queue = g.queue[:0]
	g.queue = append(g.queue, s)

	for head := 0; head < len(g.queue); head++ {
		v := g.queue[head]
		for _, arc := range g.adj[v] {
			if arc.Cap-arc.Flow > 0 && g.level[arc.To] == -1 {
				g.level[arc.To] = g.level[v] + 1
				g.queue = append(g.queue, arc.To)
			}
		}
	}
	return g.level[t] != -1
}

// dfs 寻找阻塞流。
func (g *DinicGraph) dfs(v, t int, pushed int64) int64 {
	if pushed == 0 || v == t {
		return pushed
	}

	for g.ptr[v] < len(g.adj[v]) {
		i := g.ptr[v]
		arc := &g.adj[v][i]
		if g.level[v]+1 != g.level[arc.To] || arc.Cap-arc.Flow == 0 {
			g.ptr[v]++
			continue
		}

		tr := g.dfs(arc.To, t, min(pushed, arc.Cap-arc.Flow))
		if tr == 0 {
			g.ptr[v]++
			continue
		}

		arc.Flow += tr
		g.adj[arc.To][arc.RevIdx].Flow -= tr
		return tr
	}
	return 0
}

// MaxFlow 计算从 s 到 t 的最大流。s == t 时返回 0。
func (g *DinicGraph) MaxFlow(s, t int) int64 {
	if s == t {
		return 0
	}
	var flow int64
	for g.bfs(s, t) {
		for i := range g.ptr {
			g.ptr[i] = 0
		}
		for {
			pushed := g.dfs(s, t, math.MaxInt64)
			if pushed == 0 {
				break
			}
			flow += pushed
		}
	}
	return flow
}
