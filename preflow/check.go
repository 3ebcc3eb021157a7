package preflow

import (
	"errors"

	"github.com/wyfcoding/maxflow/xerrors"
)

// Check 在求解结束后验证最大流的各项性质：
// 非源汇节点余量为零、每条边 |f| ≤ c、每个节点的余量等于由边流量算出的净流入、
// 源点高度不低于 n，以及剩余网络中不存在从源点到汇点的增广路。
// 不得与 Solve 并发调用。
func Check(g *Graph) error {
	n := len(g.nodes)
	var errs []error

	net := make([]int64, n)
	for i := range g.edges {
		e := &g.edges[i]
		if e.flow > e.cap || -e.flow > e.cap {
			errs = append(errs, xerrors.ErrCheckFailed.With("edge %d (%d, %d): flow %d exceeds capacity %d", i, e.u, e.v, e.flow, e.cap).WithContext("edge", i))
		}
		net[e.u] -= e.flow
		net[e.v] += e.flow
	}

	for i := range g.nodes {
		x := &g.nodes[i]
		if x.excess < 0 {
			errs = append(errs, xerrors.ErrCheckFailed.With("node %d: negative excess %d", i, x.excess).WithContext("node", i))
		}
		if i != g.source && i != g.sink && x.excess != 0 {
			errs = append(errs, xerrors.ErrCheckFailed.With("node %d: excess %d left at termination", i, x.excess).WithContext("node", i))
		}
		// 源点的余量记录的是被退回的流量，它与净流入相差的正是源点送出的总量
		if i != g.source && x.excess != net[i] {
			errs = append(errs, xerrors.ErrCheckFailed.With("node %d: excess %d but net inflow %d", i, x.excess, net[i]).WithContext("node", i))
		}
	}
	if g.nodes[g.source].height < n {
		errs = append(errs, xerrors.ErrCheckFailed.With("source height %d below node count %d", g.nodes[g.source].height, n))
	}
	if net[g.sink] != -net[g.source] {
		errs = append(errs, xerrors.ErrCheckFailed.With("sink receives %d but source emits %d", net[g.sink], -net[g.source]))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return augmentingPathCheck(g)
}

// augmentingPathCheck 在剩余网络上从源点做 BFS，能到达汇点说明流不是最大的。
func augmentingPathCheck(g *Graph) error {
	visited := make([]bool, len(g.nodes))
	visited[g.source] = true
	frontier := []int{g.source}
	for len(frontier) > 0 {
		curr := frontier[0]
		frontier = frontier[1:]
		for _, ei := range g.nodes[curr].adj {
			e := &g.edges[ei]
			next := e.other(curr)
			if visited[next] || e.residual(curr) <= 0 {
				continue
			}
			if next == g.sink {
				return xerrors.ErrCheckFailed.With("augmenting path reaches sink via node %d; flow is not maximum", curr).WithContext("node", curr)
			}
			visited[next] = true
			frontier = append(frontier, next)
		}
	}
	return nil
}
