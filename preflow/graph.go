package preflow

import (
	"sync"

	"github.com/wyfcoding/maxflow/xerrors"
)

// Arc 描述输入中的一条边。
type Arc struct {
	From int   `json:"from"`
	To   int   `json:"to"`
	Cap  int64 `json:"cap"`
}

// node 保存一个节点的可变状态。mu 保护 excess 与 height。
type node struct {
	mu     sync.Mutex
	id     int
	excess int64
	height int
	adj    []int // 关联边的下标，按输入顺序排列。
}

// edge 保存一条边的可变状态。mu 保护 flow。
type edge struct {
	mu   sync.Mutex
	u, v int
	flow int64 // > 0 表示 u→v 方向。
	cap  int64
}

// other 返回边上与 id 相对的端点。
func (e *edge) other(id int) int {
	if id == e.u {
		return e.v
	}
	return e.u
}

// residual 返回从 from 一侧沿该边还能推送的量。
func (e *edge) residual(from int) int64 {
	if from == e.u {
		return e.cap - e.flow
	}
	return e.cap + e.flow
}

// Graph 是以连续数组存放节点与边的流网络，节点与边以稳定的整数下标标识。
type Graph struct {
	nodes  []node
	edges  []edge
	source int
	sink   int
}

// NewGraph 创建一个包含 n 个节点、没有边的图。源点为 0，汇点为 n-1。
func NewGraph(n int) (*Graph, error) {
	if n < 2 {
		return nil, xerrors.ErrInvalidGraph.With("node count %d", n)
	}
	g := &Graph{
		nodes:  make([]node, n),
		source: 0,
		sink:   n - 1,
	}
	for i := range g.nodes {
		g.nodes[i].id = i
	}
	return g, nil
}

// Build 依次加入 arcs 构造图。
func Build(n int, arcs []Arc) (*Graph, error) {
	g, err := NewGraph(n)
	if err != nil {
		return nil, err
	}
	g.edges = make([]edge, 0, len(arcs))
	for _, a := range arcs {
		if err := g.AddEdge(a.From, a.To, a.Cap); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddEdge 加入一条容量为 c 的边 u→v，并把它登记到两个端点的关联表中。
// 自环只登记一次，算法不会使用它。
func (g *Graph) AddEdge(u, v int, c int64) error {
	n := len(g.nodes)
	if u < 0 || u >= n || v < 0 || v >= n {
		return xerrors.ErrEdgeOutOfRange.With("edge %d: (%d, %d) with %d nodes", len(g.edges), u, v, n)
	}
	if c < 0 {
		return xerrors.ErrNegativeCapacity.With("edge %d: (%d, %d) capacity %d", len(g.edges), u, v, c)
	}
	idx := len(g.edges)
	g.edges = append(g.edges, edge{u: u, v: v, cap: c})
	g.nodes[u].adj = append(g.nodes[u].adj, idx)
	if v != u {
		g.nodes[v].adj = append(g.nodes[v].adj, idx)
	}
	return nil
}

// reset 清空上一次求解留下的预流与高度。
func (g *Graph) reset() {
	for i := range g.nodes {
		g.nodes[i].excess = 0
		g.nodes[i].height = 0
	}
	for i := range g.edges {
		g.edges[i].flow = 0
	}
}

// NumNodes 返回节点数。
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges 返回边数。
func (g *Graph) NumEdges() int { return len(g.edges) }

// Source 返回源点编号。
func (g *Graph) Source() int { return g.source }

// Sink 返回汇点编号。
func (g *Graph) Sink() int { return g.sink }

// Excess 返回节点 i 当前的余量。求解结束后汇点的余量即最大流。
func (g *Graph) Excess(i int) int64 { return g.nodes[i].excess }

// Height 返回节点 i 当前的高度标号。
func (g *Graph) Height(i int) int { return g.nodes[i].height }

// Flow 返回边 e 上的流量，正值表示沿输入方向。
func (g *Graph) Flow(e int) int64 { return g.edges[e].flow }

// Capacity 返回边 e 的容量。
func (g *Graph) Capacity(e int) int64 { return g.edges[e].cap }

// Endpoints 返回边 e 在输入中的端点顺序。
func (g *Graph) Endpoints(e int) (u, v int) { return g.edges[e].u, g.edges[e].v }

// Residual 返回从端点 from 沿边 e 还能推送的量。
func (g *Graph) Residual(e, from int) int64 { return g.edges[e].residual(from) }

// Incident 返回与节点 i 关联的边下标，调用方不得修改返回的切片。
func (g *Graph) Incident(i int) []int { return g.nodes[i].adj }

// MaxFlow 返回汇点的余量。
func (g *Graph) MaxFlow() int64 { return g.nodes[g.sink].excess }
