package graphio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/wyfcoding/maxflow/preflow"
)

// WriteDOT 以 Graphviz 格式输出求解后的图。边按实际流向绘制，标签为 "流量 (cap 容量)"；
// 饱和边为红色，无流量的边为虚线。
func WriteDOT(w io.Writer, g *preflow.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph G {\n")
	fmt.Fprintf(bw, "rankdir=LR;\n")
	fmt.Fprintf(bw, "labelloc=t; labeljust=l; label=\"flow = %d\";\n", g.MaxFlow())
	fmt.Fprintf(bw, "{ rank=source; n%d [shape=doublecircle]; }\n", g.Source())
	fmt.Fprintf(bw, "{ rank=sink; n%d [shape=doublecircle]; }\n", g.Sink())

	for e := range g.NumEdges() {
		u, v := g.Endpoints(e)
		f, c := g.Flow(e), g.Capacity(e)
		if f < 0 {
			u, v, f = v, u, -f
		}
		style := "solid"
		if f == 0 {
			style = "dashed"
		}
		color := "darkgreen"
		if c > 0 && f == c {
			color = "red"
		}
		fmt.Fprintf(bw, "n%d -> n%d [label=\"%d (cap %d)\", style=%s, color=%s];\n", u, v, f, c, style, color)
	}
	fmt.Fprintf(bw, "}\n")
	return bw.Flush()
}
