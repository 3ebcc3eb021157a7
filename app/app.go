// Package app 管理服务进程的生命周期：启动服务器、监听退出信号、优雅关闭并执行清理。
package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"golang.org/x/sync/errgroup"

)

// App 是应用程序的核心容器。
type App struct {
	name   string
	logger *slog.Logger
	opts   options
}

// New 创建一个新的应用程序实例。
func New(name string, logger *slog.Logger, opts ...Option) *App {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return &App{name: name, logger: logger, opts: o}
}

// Run 启动所有注册的服务器并阻塞，直到 ctx 被取消、收到 SIGINT/SIGTERM 或任一服务器出错。
// 退出前按注册的逆序执行清理函数。
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.logger.Info("Application starting...", "name", a.name, "pid", os.Getpid(), "servers", len(a.opts.servers))

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range a.opts.servers {
		g.Go(func() error {
			return srv.Start(gctx)
		})
	}
	err := g.Wait()
	if err != nil {
		a.logger.Error("server exited with error", "name", a.name, "error", err)
	}

	a.logger.Info("shutting down application", "name", a.name)
	for _, cleanup := range slices.Backward(a.opts.cleanups) {
		cleanup()
	}
	a.logger.Info("application shut down gracefully")
	return err
}
