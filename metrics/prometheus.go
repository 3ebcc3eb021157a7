// Package metrics 封装了基于 Prometheus 的指标注册表及求解器、HTTP 服务的标准指标。
package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 封装了内部独立的 Prometheus 注册中心与预定义指标。
type Metrics struct {
	registry *prometheus.Registry

	BuildInfo *prometheus.GaugeVec

	// 求解器指标 (维度: mode)
	SolvesTotal    *prometheus.CounterVec
	PushesTotal    *prometheus.CounterVec
	RelabelsTotal  *prometheus.CounterVec
	SolveDuration  *prometheus.HistogramVec
	LastFlow       *prometheus.GaugeVec
	SolverFailures *prometheus.CounterVec // 维度: mode, reason

	// HTTP 指标
	HTTPRequestsTotal   *prometheus.CounterVec   // 维度: method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // 维度: method, path
	HTTPInFlight        prometheus.Gauge
}

// NewMetrics 初始化并返回一个新的指标采集器，自动注册 Go 运行时与进程指标。
func NewMetrics(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{registry: reg}

	m.SolvesTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "maxflow_solves_total",
		Help: "Total number of completed max-flow computations",
	}, []string{"mode"})

	m.PushesTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "maxflow_pushes_total",
		Help: "Total number of push operations",
	}, []string{"mode"})

	m.RelabelsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "maxflow_relabels_total",
		Help: "Total number of relabel operations",
	}, []string{"mode"})

	m.SolveDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "maxflow_solve_duration_seconds",
		Help:    "Max-flow computation latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
	}, []string{"mode"})

	m.LastFlow = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "maxflow_last_flow",
		Help: "Flow value of the most recent computation",
	}, []string{"mode"})

	m.SolverFailures = m.NewCounterVec(prometheus.CounterOpts{
		Name: "maxflow_failures_total",
		Help: "Computations rejected or failed, by reason",
	}, []string{"mode", "reason"})

	m.HTTPRequestsTotal = m.NewCounterVec(prometheus.CounterOpts{
		Name: "http_server_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	m.HTTPRequestDuration = m.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_server_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	m.HTTPInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "http_server_requests_in_flight",
		Help: "Number of HTTP requests being served",
	})
	reg.MustRegister(m.HTTPInFlight)

	slog.Debug("unified metrics registry initialized", "service", serviceName)
	return m
}

// RegisterBuildInfo 注册构建信息指标。
func (m *Metrics) RegisterBuildInfo(serviceName, version string) {
	if m == nil || m.BuildInfo != nil {
		return
	}
	if serviceName == "" {
		serviceName = "unknown"
	}
	if version == "" {
		version = "unknown"
	}

	m.BuildInfo = m.NewGaugeVec(prometheus.GaugeOpts{
		Name: "build_info",
		Help: "Build information for the service",
	}, []string{"service", "version"})

	m.BuildInfo.WithLabelValues(serviceName, version).Set(1)
}

// SolveStats 是一次求解中需要上报的统计量。
type SolveStats struct {
	Mode     string
	Flow     int64
	Pushes   uint64
	Relabels uint64
	Elapsed  time.Duration
}

// ObserveSolve 记录一次完成的求解。
func (m *Metrics) ObserveSolve(s SolveStats) {
	if m == nil {
		return
	}
	m.SolvesTotal.WithLabelValues(s.Mode).Inc()
	m.PushesTotal.WithLabelValues(s.Mode).Add(float64(s.Pushes))
	m.RelabelsTotal.WithLabelValues(s.Mode).Add(float64(s.Relabels))
	m.SolveDuration.WithLabelValues(s.Mode).Observe(s.Elapsed.Seconds())
	m.LastFlow.WithLabelValues(s.Mode).Set(float64(s.Flow))
}

// ObserveFailure 记录一次被拒绝或失败的求解。
func (m *Metrics) ObserveFailure(mode, reason string) {
	if m == nil {
		return
	}
	m.SolverFailures.WithLabelValues(mode, reason).Inc()
}

// NewCounterVec 创建并注册一个新的计数器指标。
func (m *Metrics) NewCounterVec(opts prometheus.CounterOpts, labelNames []string) *prometheus.CounterVec {
	cv := prometheus.NewCounterVec(opts, labelNames)
	m.registry.MustRegister(cv)
	return cv
}

// NewGaugeVec 创建并注册一个新的仪表盘指标。
func (m *Metrics) NewGaugeVec(opts prometheus.GaugeOpts, labelNames []string) *prometheus.GaugeVec {
	gv := prometheus.NewGaugeVec(opts, labelNames)
	m.registry.MustRegister(gv)
	return gv
}

// NewHistogramVec 创建并注册一个新的直方图指标。
func (m *Metrics) NewHistogramVec(opts prometheus.HistogramOpts, labelNames []string) *prometheus.HistogramVec {
	hv := prometheus.NewHistogramVec(opts, labelNames)
	m.registry.MustRegister(hv)
	return hv
}

// Registry 返回底层注册中心，供测试与自定义采集使用。
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler 返回用于暴露指标的 HTTP 处理器。
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// WriteTextfile 以文本格式把当前指标写入文件，供 node_exporter 的 textfile 采集器读取。
// 适用于一次性运行的命令行场景。
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
