package preflow

import "sync"

// fifo 是以切片实现的节点编号队列。
type fifo struct {
	items []int
	head  int
}

func (q *fifo) push(id int) {
	q.items = append(q.items, id)
}

func (q *fifo) pop() (int, bool) {
	if q.head == len(q.items) {
		return 0, false
	}
	id := q.items[q.head]
	q.head++
	// 队列读空后复用底层数组；前半部分已消费过多时整体前移
	switch {
	case q.head == len(q.items):
		q.items = q.items[:0]
		q.head = 0
	case q.head > 1024 && q.head*2 > len(q.items):
		n := copy(q.items, q.items[q.head:])
		q.items = q.items[:n]
		q.head = 0
	}
	return id, true
}

func (q *fifo) len() int {
	return len(q.items) - q.head
}

// drain 取出当前全部元素，队列随之清空。
func (q *fifo) drain() []int {
	out := make([]int, q.len())
	copy(out, q.items[q.head:])
	q.items = q.items[:0]
	q.head = 0
	return out
}

// activation 记录一次推送或重标号之后需要进入工作表的节点，至多两个。
type activation struct {
	ids [2]int
	n   int
}

func (a *activation) add(id int) {
	a.ids[a.n] = id
	a.n++
}

func (a *activation) each(fn func(int)) {
	for i := 0; i < a.n; i++ {
		fn(a.ids[i])
	}
}

// sharedWorklist 是多个 worker 共用的活跃节点队列。
//
// inflight 统计已经取出节点、尚未调用 done 的 worker 数。take 只在队列为空且 inflight 为零时
// 才报告耗尽：此时没有 worker 还能产生新的活跃节点。done 在同一把锁下完成入队与计数递减，
// 因此不存在“新节点已产生但尚未入队、计数却已归零”的窗口。
type sharedWorklist struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    fifo
	inflight int
	aborted  bool
	waits    uint64 // take 因等待在途 worker 而阻塞的次数。
}

func newSharedWorklist() *sharedWorklist {
	w := &sharedWorklist{}
	w.cond = sync.NewCond(&w.mu)
	return w
}

// push 在 worker 启动前填充初始活跃节点。
func (w *sharedWorklist) push(id int) {
	w.mu.Lock()
	w.queue.push(id)
	w.mu.Unlock()
	w.cond.Signal()
}

// take 取出一个节点并把调用者登记为在途。返回 false 表示已达静默状态，调用者应退出。
func (w *sharedWorklist) take() (int, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.queue.len() == 0 && w.inflight > 0 && !w.aborted {
		w.waits++
		w.cond.Wait()
	}
	if w.aborted {
		return 0, false
	}
	id, ok := w.queue.pop()
	if !ok {
		// 静默：唤醒其余等待者让它们也退出
		w.cond.Broadcast()
		return 0, false
	}
	w.inflight++
	return id, true
}

// done 把本步激活的节点入队，并撤销调用者的在途登记。
func (w *sharedWorklist) done(act activation) {
	w.mu.Lock()
	act.each(w.queue.push)
	w.inflight--
	quiet := w.inflight == 0 && w.queue.len() == 0
	w.mu.Unlock()

	switch {
	case quiet:
		w.cond.Broadcast()
	case act.n > 0:
		for i := 0; i < act.n; i++ {
			w.cond.Signal()
		}
	}
}

// abort 让所有 take 立即返回 false，用于某个 worker 因不变量被破坏而崩溃时。
func (w *sharedWorklist) abort() {
	w.mu.Lock()
	w.aborted = true
	w.mu.Unlock()
	w.cond.Broadcast()
}
