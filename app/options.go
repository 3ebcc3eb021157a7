package app

import "github.com/wyfcoding/maxflow/server"

// Option 是一个函数类型，用于配置应用程序选项。
type Option func(*options)

type options struct {
	servers  []server.Server // 应用程序管理的服务器列表。
	cleanups []func()        // 关闭时需要执行的清理函数（例如刷新指标、关闭追踪导出器）。
}

// WithServer 向应用程序添加一个或多个服务器，它们在启动时被启动，在关闭时被优雅地关闭。
func WithServer(servers ...server.Server) Option {
	return func(o *options) {
		o.servers = append(o.servers, servers...)
	}
}

// WithCleanup 向应用程序添加一个清理函数。
func WithCleanup(cleanup func()) Option {
	return func(o *options) {
		o.cleanups = append(o.cleanups, cleanup)
	}
}
