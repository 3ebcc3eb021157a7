// Package graphio 读写最大流实例的文本格式：首行 "n m c p"，随后 m 行 "u v c"。
package graphio

import (
	"bufio"
	"io"
	"strconv"

	"github.com/wyfcoding/maxflow/preflow"
	"github.com/wyfcoding/maxflow/xerrors"
)

// Instance 是解析后的一个输入实例。C 与 P 来自更大的数据集格式，求解时不使用。
type Instance struct {
	Nodes int           `json:"nodes"`
	Arcs  []preflow.Arc `json:"arcs"`
	C     int64         `json:"c"`
	P     int64         `json:"p"`
}

// Graph 按实例构造一张全新的图，多次调用互不影响。
func (in *Instance) Graph() (*preflow.Graph, error) {
	return preflow.Build(in.Nodes, in.Arcs)
}

// ReadOption 调整 Read 的行为。
type ReadOption func(*readOptions)

type readOptions struct {
	maxNodes int64
	maxEdges int64
}

// WithMaxNodes 限制实例的节点数，n 超过上限时在分配任何节点之前返回 ErrGraphTooLarge。
// limit <= 0 表示不限制。
func WithMaxNodes(limit int64) ReadOption {
	return func(o *readOptions) { o.maxNodes = limit }
}

// WithMaxEdges 限制实例声明的边数。limit <= 0 表示不限制。
func WithMaxEdges(limit int64) ReadOption {
	return func(o *readOptions) { o.maxEdges = limit }
}

type tokenizer struct {
	sc  *bufio.Scanner
	pos int
}

func (t *tokenizer) next(what string) (int64, error) {
	if !t.sc.Scan() {
		if err := t.sc.Err(); err != nil {
			e := xerrors.ErrMalformedInput.With("token %d (%s): read failed", t.pos, what)
			e.Cause = err
			return 0, e
		}
		return 0, xerrors.ErrMalformedInput.With("token %d (%s): unexpected end of input", t.pos, what)
	}
	t.pos++
	v, err := strconv.ParseInt(t.sc.Text(), 10, 64)
	if err != nil {
		return 0, xerrors.ErrMalformedInput.With("token %d (%s): %q is not an integer", t.pos, what, t.sc.Text())
	}
	return v, nil
}

// Read 从 r 解析一个实例。多余的尾随内容会被忽略。
func Read(r io.Reader, opts ...ReadOption) (*Instance, error) {
	var o readOptions
	for _, opt := range opts {
		opt(&o)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)
	tk := &tokenizer{sc: sc}

	var head [4]int64
	for i, what := range [...]string{"n", "m", "c", "p"} {
		v, err := tk.next(what)
		if err != nil {
			return nil, err
		}
		head[i] = v
	}
	n, m := head[0], head[1]
	if n < 2 {
		return nil, xerrors.ErrInvalidGraph.With("node count %d", n)
	}
	if m < 0 {
		return nil, xerrors.ErrMalformedInput.With("edge count %d", m)
	}
	if o.maxNodes > 0 && n > o.maxNodes {
		return nil, xerrors.ErrGraphTooLarge.With("node count %d exceeds limit %d", n, o.maxNodes)
	}
	if o.maxEdges > 0 && m > o.maxEdges {
		return nil, xerrors.ErrGraphTooLarge.With("edge count %d exceeds limit %d", m, o.maxEdges)
	}

	in := &Instance{Nodes: int(n), C: head[2], P: head[3]}
	// m 来自输入，不直接用于预分配
	in.Arcs = make([]preflow.Arc, 0, min(m, 1<<16))
	for i := range m {
		u, err := tk.next("u")
		if err != nil {
			return nil, err
		}
		v, err := tk.next("v")
		if err != nil {
			return nil, err
		}
		c, err := tk.next("c")
		if err != nil {
			return nil, err
		}
		if u < 0 || u >= n || v < 0 || v >= n {
			return nil, xerrors.ErrEdgeOutOfRange.With("edge %d: (%d, %d) with %d nodes", i, u, v, n)
		}
		if c < 0 {
			return nil, xerrors.ErrNegativeCapacity.With("edge %d: (%d, %d) capacity %d", i, u, v, c)
		}
		in.Arcs = append(in.Arcs, preflow.Arc{From: int(u), To: int(v), Cap: c})
	}
	return in, nil
}
