package main

import (
	"context"
	"fmt"
	"io"

	"github.com/wyfcoding/maxflow/bootstrap"
	"github.com/wyfcoding/maxflow/graphio"
	"github.com/wyfcoding/maxflow/logging"
	"github.com/wyfcoding/maxflow/verify"
)

func runVerify(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	b := bootstrap.New(serviceName, version)
	fs := newFlagSet("verify", b)
	fs.IntP("workers", "w", 4, "worker count for parallel and phased modes")
	bootstrap.AddFlag(fs, "workers", "solver.workers")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := b.Initialize(ctx, fs, "verify"); err != nil {
		return err
	}
	defer b.Shutdown(context.Background())

	in, err := readInstance(fs, stdin)
	if err != nil {
		return err
	}
	defer logging.LogDuration(ctx, "verify", "nodes", in.Nodes, "edges", len(in.Arcs))()
	report, err := verify.Run(ctx, in, verify.Options{
		Workers: b.Config.Solver.Workers,
		Logger:  b.Logger.Logger,
		Metrics: b.Metrics,
	})
	if err != nil {
		return err
	}
	for _, o := range report.Outcomes {
		fmt.Fprintf(stdout, "%-10s f = %d (%s)\n", o.Solver, o.Flow, o.Elapsed)
	}
	return graphio.WriteResult(stdout, in.Nodes, len(in.Arcs), report.Flow)
}
