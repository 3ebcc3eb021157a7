package preflow

import (
	"github.com/sourcegraph/conc/iter"
)

// op 是批同步模式中一个节点在本轮的决定。edge < 0 表示重标号。
type op struct {
	node   int
	edge   int
	amount int64
}

// plan 在冻结的图上为 id 计算本轮操作，不修改任何状态。ok 为 false 表示节点已无余量。
func (en *engine) plan(id int) (op, bool) {
	g := en.g
	u := &g.nodes[id]
	if u.excess == 0 {
		return op{}, false
	}
	for _, ei := range u.adj {
		e := &g.edges[ei]
		oid := e.other(id)
		if oid == id {
			continue
		}
		if r := e.residual(id); r > 0 && u.height > g.nodes[oid].height {
			return op{node: id, edge: ei, amount: min(u.excess, r)}, true
		}
	}
	return op{node: id, edge: -1}, true
}

// runPhased 按轮推进：取出整个工作表，分块交给 worker 并发 plan，再按批次顺序逐个应用。
//
// 同一轮中的推送互不冲突：沿同一条边相向推送要求两端高度互相严格大于对方，不可能同时成立；
// 一个节点的余量只会被它自己的操作减少，所以计划时的推送量在应用时仍然合法。
func (en *engine) runPhased(initial []int, workers int) (counters, uint64) {
	g := en.g
	var (
		q      fifo
		c      counters
		rounds uint64
	)
	for _, id := range initial {
		q.push(id)
	}

	mapper := iter.Mapper[[]int, []op]{MaxGoroutines: workers}
	for q.len() > 0 {
		rounds++
		batch := q.drain()
		chunks := split(batch, workers)
		planned := mapper.Map(chunks, func(chunk *[]int) []op {
			ops := make([]op, 0, len(*chunk))
			for _, id := range *chunk {
				if o, ok := en.plan(id); ok {
					ops = append(ops, o)
				}
			}
			return ops
		})

		for _, ops := range planned {
			for _, o := range ops {
				var act activation
				u := &g.nodes[o.node]
				c.discharges++
				if o.edge < 0 {
					en.relabel(u, &act)
					c.relabels++
				} else {
					e := &g.edges[o.edge]
					en.push(u, &g.nodes[e.other(o.node)], e, o.amount, &act)
					c.pushes++
				}
				act.each(q.push)
			}
		}
	}
	return c, rounds
}

// split 把 ids 切成至多 parts 个连续块。
func split(ids []int, parts int) [][]int {
	if parts < 1 {
		parts = 1
	}
	size := (len(ids) + parts - 1) / parts
	if size == 0 {
		return nil
	}
	chunks := make([][]int, 0, parts)
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
