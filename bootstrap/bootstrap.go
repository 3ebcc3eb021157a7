// Package bootstrap 负责命令行进程的通用基础设施初始化：配置、日志、链路追踪与指标。
package bootstrap

import (
	"context"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/wyfcoding/maxflow/config"
	"github.com/wyfcoding/maxflow/logging"
	"github.com/wyfcoding/maxflow/metrics"
	"github.com/wyfcoding/maxflow/tracing"
)

// Bootstrapper 处理通用基础设施的初始化。
type Bootstrapper struct {
	ServiceName string
	Version     string
	Loader      *config.Loader
	Config      config.Config
	Logger      *logging.Logger
	Metrics     *metrics.Metrics // metrics.enabled 为 false 时为 nil

	configPath string
	shutdown   []func(context.Context) error
}

// New 创建一个新的引导器实例。
func New(serviceName, version string) *Bootstrapper {
	return &Bootstrapper{
		ServiceName: serviceName,
		Version:     version,
		Loader:      config.NewLoader(),
	}
}

// AddFlag 为已定义的 flag 登记对应的配置键。
func AddFlag(fs *pflag.FlagSet, name, key string) {
	_ = fs.SetAnnotation(name, "config", []string{key})
}

// RegisterFlags 注册所有子命令共用的参数。
func (b *Bootstrapper) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&b.configPath, "config", "c", "", "path to a TOML config file")
	fs.String("log-level", "info", "log level: debug, info, warn, error")
	AddFlag(fs, "log-level", "log.level")
	fs.String("log-format", "json", "log format: json or text")
	AddFlag(fs, "log-format", "log.format")
	fs.String("log-file", "", "write logs to a rotated file instead of stderr")
	AddFlag(fs, "log-file", "log.file")
	fs.Bool("metrics", false, "collect Prometheus metrics")
	AddFlag(fs, "metrics", "metrics.enabled")
	fs.String("metrics-textfile", "", "write metrics in text format to this file on exit")
	AddFlag(fs, "metrics-textfile", "metrics.textfile")
	fs.Bool("tracing", false, "export OpenTelemetry traces over OTLP gRPC")
	AddFlag(fs, "tracing", "tracing.enabled")
	fs.String("otlp-endpoint", "", "OTLP gRPC collector endpoint")
	AddFlag(fs, "otlp-endpoint", "tracing.otlp_endpoint")
}

// ConfigPath 返回 --config 指定的文件路径。
func (b *Bootstrapper) ConfigPath() string {
	return b.configPath
}

// Initialize 加载配置并依次初始化日志、链路追踪与指标。
// module 写入每条日志的 module 字段；命令行日志写到 stderr，stdout 留给结果输出。
func (b *Bootstrapper) Initialize(ctx context.Context, fs *pflag.FlagSet, module string) error {
	if err := b.Loader.BindFlags(fs); err != nil {
		return err
	}
	if err := b.Loader.Load(b.configPath, &b.Config); err != nil {
		return err
	}
	if b.Config.Version == "" || b.Config.Version == "dev" {
		b.Config.Version = b.Version
	}

	lc := b.Config.Log
	var w io.Writer
	if lc.File == "" {
		w = os.Stderr
	}
	logging.InitFromConfig(logging.Config{
		Service:    b.ServiceName,
		Module:     module,
		Level:      lc.Level,
		Format:     lc.Format,
		File:       lc.File,
		MaxSize:    lc.MaxSize,
		MaxBackups: lc.MaxBackups,
		MaxAge:     lc.MaxAge,
		Compress:   lc.Compress,
		Console:    lc.Console,
		Writer:     w,
	})
	b.Logger = logging.Default()
	config.PrintWithMask(b.Config)

	if b.Config.Tracing.ServiceName == "" {
		b.Config.Tracing.ServiceName = b.ServiceName
	}
	shutdown, err := tracing.InitTracer(ctx, b.Config.Tracing)
	if err != nil {
		b.Logger.Error("failed to init tracer", "error", err)
		return err
	}
	b.shutdown = append(b.shutdown, shutdown)

	if b.Config.Metrics.Enabled || b.Config.Metrics.Textfile != "" {
		b.Metrics = metrics.NewMetrics(b.ServiceName)
		b.Metrics.RegisterBuildInfo(b.ServiceName, b.Config.Version)
	}
	return nil
}

// Shutdown 写出指标文本文件并关闭追踪导出器。
func (b *Bootstrapper) Shutdown(ctx context.Context) {
	if b.Metrics != nil && b.Config.Metrics.Textfile != "" {
		if err := b.Metrics.WriteTextfile(b.Config.Metrics.Textfile); err != nil {
			b.Logger.Error("failed to write metrics textfile", "path", b.Config.Metrics.Textfile, "error", err)
		} else {
			b.Logger.Debug("metrics textfile written", "path", b.Config.Metrics.Textfile)
		}
	}
	for _, fn := range b.shutdown {
		if err := fn(ctx); err != nil {
			b.Logger.Error("failed to shutdown tracer", "error", err)
		}
	}
}
