package preflow

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/wyfcoding/maxflow/tracing"
	"github.com/wyfcoding/maxflow/xerrors"
)

// Mode 选择执行方式。
type Mode int

const (
	Sequential Mode = iota
	Parallel
	Phased
)

func (m Mode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	case Phased:
		return "phased"
	default:
		return "unknown"
	}
}

// ParseMode 解析 sequential / parallel / phased（大小写不敏感）。
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq":
		return Sequential, nil
	case "parallel", "par":
		return Parallel, nil
	case "phased":
		return Phased, nil
	}
	return 0, xerrors.ErrInvalidOption.With("unknown mode %q", s)
}

// Result 汇总一次求解。
type Result struct {
	Flow       int64         `json:"flow"`
	Mode       string        `json:"mode"`
	Workers    int           `json:"workers"`
	Pushes     uint64        `json:"pushes"`
	Relabels   uint64        `json:"relabels"`
	Discharges uint64        `json:"discharges"`
	Rounds     uint64        `json:"rounds,omitempty"` // phased 模式的轮数
	Waits      uint64        `json:"waits,omitempty"`  // parallel 模式下 worker 等待在途节点的次数
	Elapsed    time.Duration `json:"elapsed"`
}

type options struct {
	logger   *slog.Logger
	observer Observer
	mode     Mode
	workers  int
}

// Option 定义配置选项。
type Option func(*options)

// WithMode 设置执行方式，默认 Sequential。
func WithMode(m Mode) Option {
	return func(o *options) {
		o.mode = m
	}
}

// WithWorkers 设置 Parallel / Phased 模式的 worker 数，默认 GOMAXPROCS。
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithObserver 注入操作观察者。
func WithObserver(obs Observer) Option {
	return func(o *options) {
		o.observer = obs
	}
}

// WithLogger 设置日志记录器，默认 slog.Default()。
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Solve 在 g 上计算从源点到汇点的最大流。图上遗留的预流会先被清空，
// 所以同一实例可以重复求解。返回的 Result.Flow 等于求解结束后汇点的余量。
//
// 参数非法时返回 ErrInvalidOption 且不修改图；算法内部不变量被破坏时 panic。
func Solve(ctx context.Context, g *Graph, opts ...Option) (Result, error) {
	o := &options{
		logger:  slog.Default(),
		mode:    Sequential,
		workers: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.workers < 1 {
		return Result{}, xerrors.ErrInvalidOption.With("workers must be positive, got %d", o.workers)
	}
	if o.mode < Sequential || o.mode > Phased {
		return Result{}, xerrors.ErrInvalidOption.With("unknown mode %d", int(o.mode))
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.mode == Sequential {
		o.workers = 1
	}

	ctx, span := tracing.StartSpan(ctx, "preflow.Solve")
	defer span.End()
	tracing.AddTag(ctx, "mode", o.mode.String())
	tracing.AddTag(ctx, "workers", o.workers)
	tracing.AddTag(ctx, "nodes", g.NumNodes())
	tracing.AddTag(ctx, "edges", g.NumEdges())

	start := time.Now()
	g.reset()
	en := &engine{g: g, observer: o.observer, locking: o.mode == Parallel}
	initial := en.initPreflow()
	o.logger.DebugContext(ctx, "preflow initialized", "mode", o.mode.String(), "active", len(initial), "source_height", g.nodes[g.source].height)

	res := Result{Mode: o.mode.String(), Workers: o.workers}
	var c counters
	switch o.mode {
	case Sequential:
		c = en.runSequential(initial)
	case Parallel:
		c, res.Waits = en.runParallel(initial, o.workers, o.logger)
	case Phased:
		c, res.Rounds = en.runPhased(initial, o.workers)
	}

	res.Flow = g.MaxFlow()
	res.Pushes = c.pushes
	res.Relabels = c.relabels
	res.Discharges = c.discharges
	res.Elapsed = time.Since(start)
	tracing.AddTag(ctx, "flow", res.Flow)

	o.logger.InfoContext(ctx, "max flow computed",
		"mode", res.Mode,
		"workers", res.Workers,
		"nodes", g.NumNodes(),
		"edges", g.NumEdges(),
		"flow", res.Flow,
		"pushes", res.Pushes,
		"relabels", res.Relabels,
		"elapsed", res.Elapsed,
	)
	return res, nil
}
