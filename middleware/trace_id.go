package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/wyfcoding/maxflow/tracing"
)

// HeaderXTraceID 定义 Trace ID 响应头名称。
const HeaderXTraceID = "X-Trace-ID"

// TraceIDHeader 返回一个 Gin 中间件，把当前 Trace ID 写入响应头，便于客户端关联日志。
// 需要放在 TracingMiddleware 之后。
func TraceIDHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if traceID := tracing.GetTraceID(c.Request.Context()); traceID != "" {
			c.Header(HeaderXTraceID, traceID)
		}
		c.Next()
	}
}
