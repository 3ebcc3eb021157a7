package main

import (
	"context"
	"io"
	"os"

	"github.com/wyfcoding/maxflow/bootstrap"
	"github.com/wyfcoding/maxflow/graphio"
	"github.com/wyfcoding/maxflow/metrics"
	"github.com/wyfcoding/maxflow/preflow"
)

func runSolve(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	b := bootstrap.New(serviceName, version)
	fs := newFlagSet("solve", b)
	solverFlags(fs)
	dotPath := fs.String("dot", "", "write the solved graph in Graphviz format to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := b.Initialize(ctx, fs, "solve"); err != nil {
		return err
	}
	defer b.Shutdown(context.Background())
	logger := b.Logger.Logger
	conf := b.Config.Solver

	mode, err := preflow.ParseMode(conf.Mode)
	if err != nil {
		return err
	}
	in, err := readInstance(fs, stdin)
	if err != nil {
		logger.ErrorContext(ctx, "failed to read instance", "error", err)
		return err
	}
	g, err := in.Graph()
	if err != nil {
		return err
	}

	opts := []preflow.Option{
		preflow.WithMode(mode),
		preflow.WithWorkers(conf.Workers),
		preflow.WithLogger(logger),
	}
	if conf.TraceOps {
		opts = append(opts, preflow.WithObserver(preflow.LogObserver(logger)))
	}
	res, err := preflow.Solve(ctx, g, opts...)
	if err != nil {
		b.Metrics.ObserveFailure(mode.String(), "invalid_option")
		return err
	}
	if conf.Verify {
		if err := preflow.Check(g); err != nil {
			b.Metrics.ObserveFailure(mode.String(), "check_failed")
			logger.ErrorContext(ctx, "max flow check failed", "error", err)
			return err
		}
		logger.InfoContext(ctx, "max flow check passed", "flow", res.Flow)
	}
	b.Metrics.ObserveSolve(metrics.SolveStats{
		Mode:     res.Mode,
		Flow:     res.Flow,
		Pushes:   res.Pushes,
		Relabels: res.Relabels,
		Elapsed:  res.Elapsed,
	})
	if *dotPath != "" {
		if err := writeDOT(*dotPath, g); err != nil {
			logger.ErrorContext(ctx, "failed to write dot file", "path", *dotPath, "error", err)
			return err
		}
	}
	return graphio.WriteResult(stdout, g.NumNodes(), g.NumEdges(), res.Flow)
}

func writeDOT(path string, g *preflow.Graph) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := graphio.WriteDOT(f, g); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
