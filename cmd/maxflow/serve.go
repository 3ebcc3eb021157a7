package main

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/maxflow/app"
	"github.com/wyfcoding/maxflow/bootstrap"
	"github.com/wyfcoding/maxflow/config"
	"github.com/wyfcoding/maxflow/health"
	"github.com/wyfcoding/maxflow/preflow"
	"github.com/wyfcoding/maxflow/server"
)

func runServe(ctx context.Context, args []string, _ io.Reader, _ io.Writer) error {
	b := bootstrap.New(serviceName, version)
	fs := newFlagSet("serve", b)
	solverFlags(fs)
	fs.String("addr", ":8080", "listen address")
	bootstrap.AddFlag(fs, "addr", "server.addr")
	fs.Int64("max-concurrent-workers", 16, "total workers shared by concurrent solves")
	bootstrap.AddFlag(fs, "max-concurrent-workers", "server.max_concurrent_workers")
	fs.Bool("rate-limit", false, "enable the token-bucket rate limit on /v1")
	bootstrap.AddFlag(fs, "rate-limit", "server.rate_limit.enabled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := b.Initialize(ctx, fs, "serve"); err != nil {
		return err
	}
	logger := b.Logger.Logger
	conf := &b.Config

	gin.SetMode(gin.ReleaseMode)

	checks := health.NewRegistry()
	checks.Register("sequential", health.SolverChecker(preflow.Sequential, 1, 0))
	checks.Register("parallel", health.SolverChecker(preflow.Parallel, 2, 0))

	api := server.NewAPI(conf, b.Metrics, checks, logger)
	engine := server.NewRouter(api, conf, b.Metrics, logger)

	if b.ConfigPath() != "" {
		b.Loader.RegisterReloadHook(func(next *config.Config) {
			api.ApplyConfig(next)
		})
		b.Loader.Watch(conf)
	}

	a := app.New(serviceName, logger,
		app.WithServer(server.NewGinServer(engine, conf.Server, logger)),
		app.WithCleanup(func() { b.Shutdown(context.Background()) }),
	)
	return a.Run(ctx)
}
