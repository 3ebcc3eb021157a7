// Package health 提供求解服务的健康检查。
package health

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/wyfcoding/maxflow/preflow"
)

// Checker 定义健康检查函数原型。
type Checker func(ctx context.Context) error

// Registry 汇总多个具名检查项。
type Registry struct {
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewRegistry 创建空的检查项注册表。
func NewRegistry() *Registry {
	return &Registry{checkers: make(map[string]Checker)}
}

// Register 注册或替换一个检查项。
func (r *Registry) Register(name string, c Checker) {
	r.mu.Lock()
	r.checkers[name] = c
	r.mu.Unlock()
}

// Run 依名称顺序执行所有检查项，返回每项的状态（"ok" 或错误信息）以及合并后的错误。
func (r *Registry) Run(ctx context.Context) (map[string]string, error) {
	r.mu.RLock()
	checkers := maps.Clone(r.checkers)
	r.mu.RUnlock()

	status := make(map[string]string, len(checkers))
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(checkers)) {
		if err := checkers[name](ctx); err != nil {
			status[name] = err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		status[name] = "ok"
	}
	return status, errors.Join(errs...)
}

// SolverChecker 在一个已知答案的小图上运行指定模式的求解器。
func SolverChecker(mode preflow.Mode, workers int, timeout time.Duration) Checker {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	arcs := []preflow.Arc{{From: 0, To: 1, Cap: 3}, {From: 0, To: 2, Cap: 2}, {From: 1, To: 3, Cap: 2}, {From: 2, To: 3, Cap: 3}, {From: 1, To: 2, Cap: 1}}
	const want = 5
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

	return func(ctx context.Context) error {
		g, err := preflow.Build(4, arcs)
		if err != nil {
			return err
		}
		done := make(chan error, 1)
		go func() {
			res, err := preflow.Solve(ctx, g, preflow.WithMode(mode), preflow.WithWorkers(workers), preflow.WithLogger(quiet))
			if err == nil && res.Flow != want {
				err = fmt.Errorf("self-test flow %d, want %d", res.Flow, want)
			}
			done <- err
		}()

		select {
		case err := <-done:
			return err
		case <-time.After(timeout):
			return fmt.Errorf("%s self-test timed out after %s", mode, timeout)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
