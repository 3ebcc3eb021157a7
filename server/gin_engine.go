package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/maxflow/config"
	"github.com/wyfcoding/maxflow/metrics"
	"github.com/wyfcoding/maxflow/middleware"
)

// NewDefaultGinEngine 创建一个新的 Gin 引擎实例，中间件顺序与集合由调用方决定。
func NewDefaultGinEngine(middlewares ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(middlewares...)
	return engine
}

// NewRouter 组装求解服务的完整路由：治理中间件、/v1 求解接口、健康检查与指标端点。
func NewRouter(api *API, conf *config.Config, m *metrics.Metrics, logger *slog.Logger) *gin.Engine {
	metricsPath := conf.Metrics.Path
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	engine := NewDefaultGinEngine(
		middleware.Recovery(logger),
		middleware.TracingMiddleware(conf.Tracing.ServiceName),
		middleware.TraceIDHeader(),
		middleware.Logger(logger),
		middleware.HTTPMetricsMiddlewareWithOptions(m, middleware.MetricsOptions{
			SkipPaths: []string{metricsPath, "/healthz"},
		}),
		middleware.HTTPErrorHandler(),
	)

	engine.GET("/healthz", api.Healthz)
	if m != nil && conf.Metrics.Enabled {
		engine.GET(metricsPath, gin.WrapH(m.Handler()))
	}

	v1 := engine.Group("/v1", middleware.MaxBodyBytes(conf.Server.MaxBodyBytes))
	if conf.Server.RateLimit.Enabled {
		v1.Use(middleware.RateLimitMiddleware(api.Limiter()))
	}
	v1.POST("/maxflow", api.Solve)
	return engine
}
