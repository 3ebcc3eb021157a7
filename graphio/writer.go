package graphio

import (
	"bufio"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/wyfcoding/maxflow/preflow"
)

// Write 以 Read 可解析的格式写出实例。
func Write(w io.Writer, in *Instance) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d %d %d %d\n", in.Nodes, len(in.Arcs), in.C, in.P)
	for _, a := range in.Arcs {
		fmt.Fprintf(bw, "%d %d %d\n", a.From, a.To, a.Cap)
	}
	return bw.Flush()
}

// WriteResult 输出结果行：节点数、边数与最大流。
func WriteResult(w io.Writer, nodes, edges int, flow int64) error {
	_, err := fmt.Fprintf(w, "n = %d\nm = %d\nf = %d\n", nodes, edges, flow)
	return err
}

// Random 生成一个 n 个节点、m 条边、容量在 [0, maxCap] 内的随机实例。
// 相同种子的 rng 产生相同的实例。
func Random(rng *rand.Rand, n, m int, maxCap int64) *Instance {
	n = max(n, 2)
	m = max(m, 0)
	maxCap = max(maxCap, 0)
	in := &Instance{Nodes: n}
	in.Arcs = make([]preflow.Arc, 0, m)
	for range m {
		in.Arcs = append(in.Arcs, preflow.Arc{
			From: rng.IntN(n),
			To:   rng.IntN(n),
			Cap:  rng.Int64N(maxCap + 1),
		})
	}
	return in
}
