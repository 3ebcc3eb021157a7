package preflow

// counters 是单个执行者本地累计的操作次数，结束时汇总进 Result。
type counters struct {
	pushes     uint64
	relabels   uint64
	discharges uint64
}

func (c *counters) add(o counters) {
	c.pushes += o.pushes
	c.relabels += o.relabels
	c.discharges += o.discharges
}

// engine 在一张图上执行推送/重标号。locking 为 true 时按节点、边的细粒度锁保护每一步。
type engine struct {
	g        *Graph
	observer Observer
	locking  bool
}

// initPreflow 让所有离开源点的边饱和，并返回因此变为活跃的节点（按关联表顺序）。
// 在任何 worker 启动前单线程执行。
func (en *engine) initPreflow() []int {
	g := en.g
	s := &g.nodes[g.source]
	var active []int
	for _, ei := range s.adj {
		e := &g.edges[ei]
		o := e.other(g.source)
		if o == g.source || e.cap == 0 {
			continue
		}
		far := &g.nodes[o]
		s.excess += e.cap
		d := e.residual(g.source)
		invariant(d == e.cap, "edge %d leaving source already carries flow %d", ei, e.flow)
		if g.source == e.u {
			e.flow += d
		} else {
			e.flow -= d
		}
		s.excess -= d
		far.excess += d
		en.observer.Pushed(g.source, o, d)
		if far.excess == d && o != g.sink {
			active = append(active, o)
		}
	}
	s.height = len(g.nodes)
	return active
}

func (en *engine) lockPair(a, b *node, e *edge) {
	if !en.locking {
		return
	}
	// 全局一致的顺序：编号小的节点先加锁，边锁最后
	if a.id < b.id {
		a.mu.Lock()
		b.mu.Lock()
	} else {
		b.mu.Lock()
		a.mu.Lock()
	}
	e.mu.Lock()
}

func (en *engine) unlockPair(a, b *node, e *edge) {
	if !en.locking {
		return
	}
	e.mu.Unlock()
	a.mu.Unlock()
	b.mu.Unlock()
}

func (en *engine) lockNode(n *node) {
	if en.locking {
		n.mu.Lock()
	}
}

func (en *engine) unlockNode(n *node) {
	if en.locking {
		n.mu.Unlock()
	}
}

// active 判断 id 是否可以进入工作表：源点与汇点永不入表。
func (en *engine) active(id int) bool {
	return id != en.g.source && id != en.g.sink
}

// push 沿 e 从 u 向 o 推送 d。调用者持有 u、o 与 e 的锁（若启用）。
func (en *engine) push(u, o *node, e *edge, d int64, act *activation) {
	invariant(d > 0, "push of %d from %d to %d", d, u.id, o.id)
	if u.id == e.u {
		e.flow += d
	} else {
		e.flow -= d
	}
	u.excess -= d
	o.excess += d
	invariant(u.excess >= 0, "node %d excess %d after push", u.id, u.excess)
	invariant(e.flow <= e.cap && -e.flow <= e.cap, "edge (%d, %d) flow %d exceeds capacity %d", e.u, e.v, e.flow, e.cap)
	en.observer.Pushed(u.id, o.id, d)

	if u.excess > 0 {
		act.add(u.id)
	}
	// o 的余量恰为 d 说明推送前为零，刚刚变为活跃
	if o.excess == d && en.active(o.id) {
		act.add(o.id)
	}
}

// relabel 把 u 的高度加一并重新入表。调用者持有 u 的锁（若启用）。
func (en *engine) relabel(u *node, act *activation) {
	invariant(u.excess > 0, "relabel of node %d with excess %d", u.id, u.excess)
	u.height++
	en.observer.Relabeled(u.id, u.height)
	act.add(u.id)
}

// discharge 对活跃节点 id 执行一步：沿关联表找到第一条可推送的边推送一次；
// 一条都没有则重标号。所有判断都基于加锁之后读取的当前状态。
func (en *engine) discharge(id int, c *counters) (act activation) {
	g := en.g
	u := &g.nodes[id]
	c.discharges++

	for _, ei := range u.adj {
		e := &g.edges[ei]
		oid := e.other(id)
		if oid == id {
			continue
		}
		switch en.tryPush(u, &g.nodes[oid], e, &act) {
		case stepStale:
			return act
		case stepDone:
			c.pushes++
			return act
		}
	}

	if en.tryRelabel(u, &act) {
		c.relabels++
	}
	return act
}

type stepResult int

const (
	stepSkip  stepResult = iota // 该边不可推送，继续扫描
	stepDone                    // 已推送
	stepStale                   // 节点已无余量：工作表中的重复或过期条目
)

// tryPush 在持有 u、o、e 的锁时判断并执行一次推送。锁通过 defer 释放，
// 不变量失败引发的 panic 不会把锁留给其他 worker。
func (en *engine) tryPush(u, o *node, e *edge, act *activation) stepResult {
	en.lockPair(u, o, e)
	defer en.unlockPair(u, o, e)
	if u.excess == 0 {
		return stepStale
	}
	if r := e.residual(u.id); r > 0 && u.height > o.height {
		en.push(u, o, e, min(u.excess, r), act)
		return stepDone
	}
	return stepSkip
}

// tryRelabel 在持有 u 的锁时重标号。与 tryPush 一样先复查余量，零余量的条目不做任何修改。
func (en *engine) tryRelabel(u *node, act *activation) bool {
	en.lockNode(u)
	defer en.unlockNode(u)
	if u.excess == 0 {
		return false
	}
	en.relabel(u, act)
	return true
}

// runSequential 以单线程 FIFO 工作表驱动 discharge 直到工作表为空。
func (en *engine) runSequential(initial []int) counters {
	var (
		q fifo
		c counters
	)
	for _, id := range initial {
		q.push(id)
	}
	for {
		id, ok := q.pop()
		if !ok {
			return c
		}
		act := en.discharge(id, &c)
		act.each(q.push)
	}
}
