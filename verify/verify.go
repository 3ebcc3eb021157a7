// Package verify 在同一实例上并发运行全部求解方式与参考解法，比较最大流并逐一校验结果。
package verify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wyfcoding/maxflow/algorithm"
	"github.com/wyfcoding/maxflow/graphio"
	"github.com/wyfcoding/maxflow/metrics"
	"github.com/wyfcoding/maxflow/preflow"
	"github.com/wyfcoding/maxflow/tracing"
	"github.com/wyfcoding/maxflow/xerrors"
)

// ReferenceSolver 是报告中参考解法的名称。
const ReferenceSolver = "dinic"

// Outcome 是单个求解方式的结果。
type Outcome struct {
	Solver  string         `json:"solver"`
	Flow    int64          `json:"flow"`
	Elapsed time.Duration  `json:"elapsed"`
	Result  preflow.Result `json:"result"`
}

// Report 汇总一次交叉验证。
type Report struct {
	Flow     int64     `json:"flow"`
	Outcomes []Outcome `json:"outcomes"`
}

// Options 控制交叉验证。
type Options struct {
	Workers int
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// Run 为每种求解方式各自构造一张图并发求解，每个结果都要通过 preflow.Check；
// 所有流值一致时返回报告，否则返回 ErrFlowMismatch。
func Run(ctx context.Context, in *graphio.Instance, opts Options) (*Report, error) {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if in.Nodes < 2 {
		return nil, xerrors.ErrInvalidGraph.With("node count %d", in.Nodes)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	ctx, span := tracing.StartSpan(ctx, "verify.Run")
	defer span.End()

	modes := []preflow.Mode{preflow.Sequential, preflow.Parallel, preflow.Phased}
	outcomes := make([]Outcome, len(modes)+1)

	g, gctx := errgroup.WithContext(ctx)
	for i, mode := range modes {
		g.Go(func() error {
			graph, err := in.Graph()
			if err != nil {
				return err
			}
			res, err := preflow.Solve(gctx, graph,
				preflow.WithMode(mode),
				preflow.WithWorkers(opts.Workers),
				preflow.WithLogger(opts.Logger),
			)
			if err != nil {
				return err
			}
			if err := preflow.Check(graph); err != nil {
				opts.Metrics.ObserveFailure(mode.String(), "check_failed")
				return err
			}
			opts.Metrics.ObserveSolve(metrics.SolveStats{
				Mode:     res.Mode,
				Flow:     res.Flow,
				Pushes:   res.Pushes,
				Relabels: res.Relabels,
				Elapsed:  res.Elapsed,
			})
			outcomes[i] = Outcome{Solver: res.Mode, Flow: res.Flow, Elapsed: res.Elapsed, Result: res}
			return nil
		})
	}
	g.Go(func() error {
		start := time.Now()
		d := algorithm.NewDinicGraph(in.Nodes)
		for _, a := range in.Arcs {
			d.AddBidirectionalEdge(a.From, a.To, a.Cap)
		}
		outcomes[len(modes)] = Outcome{
			Solver:  ReferenceSolver,
			Flow:    d.MaxFlow(0, in.Nodes-1),
			Elapsed: time.Since(start),
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		tracing.SetError(ctx, err)
		return nil, err
	}

	report := &Report{Flow: outcomes[0].Flow, Outcomes: outcomes}
	var disagree []string
	for _, o := range outcomes {
		opts.Logger.InfoContext(ctx, "solver finished", "solver", o.Solver, "flow", o.Flow, "elapsed", o.Elapsed)
		if o.Flow != report.Flow {
			disagree = append(disagree, fmt.Sprintf("%s=%d", o.Solver, o.Flow))
		}
	}
	if len(disagree) > 0 {
		err := xerrors.ErrFlowMismatch.With("%s=%d but %s", outcomes[0].Solver, report.Flow, strings.Join(disagree, ", "))
		tracing.SetError(ctx, err)
		return report, err
	}
	return report, nil
}
