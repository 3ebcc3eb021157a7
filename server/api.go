package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/wyfcoding/maxflow/config"
	"github.com/wyfcoding/maxflow/graphio"
	"github.com/wyfcoding/maxflow/health"
	"github.com/wyfcoding/maxflow/limiter"
	"github.com/wyfcoding/maxflow/metrics"
	"github.com/wyfcoding/maxflow/preflow"
	"github.com/wyfcoding/maxflow/response"
	"github.com/wyfcoding/maxflow/xerrors"
)

// SolveResponse 是 POST /v1/maxflow 的 data 字段。
type SolveResponse struct {
	Flow       int64   `json:"flow"`
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	Mode       string  `json:"mode"`
	Workers    int     `json:"workers"`
	Pushes     uint64  `json:"pushes"`
	Relabels   uint64  `json:"relabels"`
	Discharges uint64  `json:"discharges"`
	Rounds     uint64  `json:"rounds,omitempty"`
	Waits      uint64  `json:"waits,omitempty"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	Verified   bool    `json:"verified"`
}

// API 处理求解请求。并发求解占用的 worker 总数受加权信号量约束，每次求解按其 worker 数申请额度。
type API struct {
	logger   *slog.Logger
	metrics  *metrics.Metrics
	health   *health.Registry
	sem      *semaphore.Weighted
	capacity int64
	maxNodes int64
	maxEdges int64
	limiter  *limiter.LocalLimiter
	defaults atomic.Pointer[config.SolverConfig]
}

// NewAPI 按配置创建处理器。m 与 h 可以为 nil。
func NewAPI(conf *config.Config, m *metrics.Metrics, h *health.Registry, logger *slog.Logger) *API {
	if h == nil {
		h = health.NewRegistry()
	}
	capacity := max(conf.Server.MaxConcurrentWorkers, 1)
	a := &API{
		logger:   logger,
		metrics:  m,
		health:   h,
		sem:      semaphore.NewWeighted(capacity),
		capacity: capacity,
		maxNodes: conf.Server.MaxNodes,
		maxEdges: edgeLimit(conf.Server),
		limiter:  limiter.NewLocalLimiter(rate.Limit(conf.Server.RateLimit.Rate), conf.Server.RateLimit.Burst),
	}
	solver := conf.Solver
	a.defaults.Store(&solver)
	return a
}

// edgeLimit 取配置的边数上限与请求体容量可容纳边数中较小者。每条边至少占 6 字节（"u v c" 加分隔符）。
func edgeLimit(conf config.ServerConfig) int64 {
	limit := conf.MaxEdges
	if conf.MaxBodyBytes > 0 {
		byBody := max(conf.MaxBodyBytes/6, 1)
		if limit <= 0 || byBody < limit {
			limit = byBody
		}
	}
	return limit
}

// Limiter 返回 /v1 路由使用的令牌桶。
func (a *API) Limiter() limiter.Limiter {
	return a.limiter
}

// ApplyConfig 在配置热更新后替换默认求解参数与限流速率。信号量容量在进程生命周期内不变。
func (a *API) ApplyConfig(conf *config.Config) {
	solver := conf.Solver
	a.defaults.Store(&solver)
	a.limiter.SetRate(rate.Limit(conf.Server.RateLimit.Rate), conf.Server.RateLimit.Burst)
	a.logger.Info("solver defaults updated", "mode", solver.Mode, "workers", solver.Workers, "verify", solver.Verify)
}

// Healthz 运行所有健康检查项。
func (a *API) Healthz(c *gin.Context) {
	status, err := a.health.Run(c.Request.Context())
	code := http.StatusOK
	state := "ok"
	if err != nil {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	response.SuccessWithRawData(c, code, gin.H{"status": state, "checks": status})
}

// Solve 解析请求体中的实例并计算最大流。
// 查询参数 mode、workers 与 verify 覆盖配置中的默认值。
func (a *API) Solve(c *gin.Context) {
	ctx := c.Request.Context()
	defaults := a.defaults.Load()

	mode, workers, verify, err := a.parseQuery(c, defaults)
	if err != nil {
		a.metrics.ObserveFailure(c.Query("mode"), "invalid_option")
		_ = c.Error(err)
		return
	}

	in, err := graphio.Read(c.Request.Body, graphio.WithMaxNodes(a.maxNodes), graphio.WithMaxEdges(a.maxEdges))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.ErrorWithStatus(c, http.StatusRequestEntityTooLarge, "request body too large", tooLarge.Error())
			return
		}
		reason := "malformed_input"
		if errors.Is(err, xerrors.ErrGraphTooLarge) {
			reason = "too_large"
		}
		a.metrics.ObserveFailure(mode.String(), reason)
		_ = c.Error(err)
		return
	}
	g, err := in.Graph()
	if err != nil {
		a.metrics.ObserveFailure(mode.String(), "invalid_graph")
		_ = c.Error(err)
		return
	}

	weight := int64(workers)
	if !a.sem.TryAcquire(weight) {
		a.metrics.ObserveFailure(mode.String(), "busy")
		_ = c.Error(xerrors.ErrBusy.With("%d workers requested", workers))
		return
	}
	defer a.sem.Release(weight)

	opts := []preflow.Option{
		preflow.WithMode(mode),
		preflow.WithWorkers(workers),
		preflow.WithLogger(a.logger),
	}
	if defaults.TraceOps {
		opts = append(opts, preflow.WithObserver(preflow.LogObserver(a.logger)))
	}
	res, err := preflow.Solve(ctx, g, opts...)
	if err != nil {
		a.metrics.ObserveFailure(mode.String(), "invalid_option")
		_ = c.Error(err)
		return
	}
	if verify {
		if err := preflow.Check(g); err != nil {
			a.metrics.ObserveFailure(mode.String(), "check_failed")
			a.logger.ErrorContext(ctx, "max flow check failed", "mode", res.Mode, "error", err)
			_ = c.Error(err)
			return
		}
	}

	a.metrics.ObserveSolve(metrics.SolveStats{
		Mode:     res.Mode,
		Flow:     res.Flow,
		Pushes:   res.Pushes,
		Relabels: res.Relabels,
		Elapsed:  res.Elapsed,
	})
	response.Success(c, SolveResponse{
		Flow:       res.Flow,
		Nodes:      g.NumNodes(),
		Edges:      g.NumEdges(),
		Mode:       res.Mode,
		Workers:    res.Workers,
		Pushes:     res.Pushes,
		Relabels:   res.Relabels,
		Discharges: res.Discharges,
		Rounds:     res.Rounds,
		Waits:      res.Waits,
		ElapsedMS:  float64(res.Elapsed.Microseconds()) / 1000,
		Verified:   verify,
	})
}

func (a *API) parseQuery(c *gin.Context, defaults *config.SolverConfig) (preflow.Mode, int, bool, error) {
	modeStr := c.DefaultQuery("mode", defaults.Mode)
	mode, err := preflow.ParseMode(modeStr)
	if err != nil {
		return 0, 0, false, err
	}

	workers := defaults.Workers
	if s := c.Query("workers"); s != "" {
		workers, err = strconv.Atoi(s)
		if err != nil {
			return 0, 0, false, xerrors.ErrInvalidOption.With("workers %q is not an integer", s)
		}
	}
	if mode == preflow.Sequential {
		workers = 1
	}
	if workers < 1 || int64(workers) > a.capacity {
		return 0, 0, false, xerrors.ErrInvalidOption.With("workers must be in [1, %d], got %d", a.capacity, workers)
	}

	verify := defaults.Verify
	if s := c.Query("verify"); s != "" {
		verify, err = strconv.ParseBool(s)
		if err != nil {
			return 0, 0, false, xerrors.ErrInvalidOption.With("verify %q is not a boolean", s)
		}
	}
	return mode, workers, verify, nil
}
