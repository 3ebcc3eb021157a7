// Package config 提供了统一的配置加载与管理能力.
// 配置来源优先级：命令行参数 > APP_ 前缀环境变量 > TOML 文件 > 默认值.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/wyfcoding/maxflow/logging"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config 全局顶级配置结构.
type Config struct {
	Version string        `mapstructure:"version" toml:"version"`
	Log     LogConfig     `mapstructure:"log"     toml:"log"`
	Solver  SolverConfig  `mapstructure:"solver"  toml:"solver"`
	Metrics MetricsConfig `mapstructure:"metrics" toml:"metrics"`
	Tracing TracingConfig `mapstructure:"tracing" toml:"tracing"`
	Server  ServerConfig  `mapstructure:"server"  toml:"server"`
}

// LogConfig 定义日志输出、级别与切割策略.
type LogConfig struct {
	Level      string `mapstructure:"level"       toml:"level"       validate:"oneof=debug info warn error"` // 日志级别。
	Format     string `mapstructure:"format"      toml:"format"      validate:"oneof=json text"`             // 日志格式（json/text）。
	File       string `mapstructure:"file"        toml:"file"`                                               // 日志文件路径。
	Console    bool   `mapstructure:"console"     toml:"console"`                                            // 写文件时是否同时输出到 stdout。
	MaxSize    int    `mapstructure:"max_size"    toml:"max_size"`                                           // 单个文件最大大小 (MB)。
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`                                        // 最大备份数。
	MaxAge     int    `mapstructure:"max_age"     toml:"max_age"`                                            // 最大保留天数。
	Compress   bool   `mapstructure:"compress"    toml:"compress"`                                           // 是否启用压缩。
}

// SolverConfig 定义最大流求解参数.
type SolverConfig struct {
	Mode     string `mapstructure:"mode"      toml:"mode"      validate:"oneof=sequential parallel phased"`
	Workers  int    `mapstructure:"workers"   toml:"workers"   validate:"min=1,max=1024"`
	Verify   bool   `mapstructure:"verify"    toml:"verify"`    // 求解后运行完整性检查。
	TraceOps bool   `mapstructure:"trace_ops" toml:"trace_ops"` // 以 debug 级别记录每次推送与重标号。
}

// MetricsConfig 普罗米修斯监控指标配置.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"  toml:"enabled"`
	Path     string `mapstructure:"path"     toml:"path"`
	Textfile string `mapstructure:"textfile" toml:"textfile"` // 一次性运行结束时写出的指标文件。
}

// TracingConfig 分布式链路追踪（OpenTelemetry）配置.
type TracingConfig struct {
	ServiceName  string  `mapstructure:"service_name"  toml:"service_name"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint" toml:"otlp_endpoint" validate:"required_if=Enabled true"`
	SamplerRatio float64 `mapstructure:"sampler_ratio" toml:"sampler_ratio" validate:"gte=0,lte=1"`
	Enabled      bool    `mapstructure:"enabled"       toml:"enabled"`
}

// ServerConfig 定义 HTTP 求解服务参数.
type ServerConfig struct {
	Addr                 string          `mapstructure:"addr"                   toml:"addr"                   validate:"required"`
	ReadTimeout          time.Duration   `mapstructure:"read_timeout"           toml:"read_timeout"`
	WriteTimeout         time.Duration   `mapstructure:"write_timeout"          toml:"write_timeout"`
	ShutdownTimeout      time.Duration   `mapstructure:"shutdown_timeout"       toml:"shutdown_timeout"`
	MaxBodyBytes         int64           `mapstructure:"max_body_bytes"         toml:"max_body_bytes"         validate:"min=1"`
	MaxConcurrentWorkers int64           `mapstructure:"max_concurrent_workers" toml:"max_concurrent_workers" validate:"min=1"`
	MaxNodes             int64           `mapstructure:"max_nodes"              toml:"max_nodes"              validate:"min=2"`
	MaxEdges             int64           `mapstructure:"max_edges"              toml:"max_edges"              validate:"min=1"`
	RateLimit            RateLimitConfig `mapstructure:"rate_limit"             toml:"rate_limit"`
}

// RateLimitConfig 定义令牌桶限流参数.
type RateLimitConfig struct {
	Rate    float64 `mapstructure:"rate"    toml:"rate"`
	Burst   int     `mapstructure:"burst"   toml:"burst"`
	Enabled bool    `mapstructure:"enabled" toml:"enabled"`
}

// Loader 封装一个独立的 viper 实例，便于命令行与测试各自持有.
type Loader struct {
	v        *viper.Viper
	validate *validator.Validate
	mu       sync.Mutex
	onReload []func(*Config)
}

// NewLoader 创建带默认值的加载器.
func NewLoader() *Loader {
	v := viper.New()
	setDefaults(v)
	return &Loader{v: v, validate: validator.New()}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.console", false)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("solver.mode", "sequential")
	v.SetDefault("solver.workers", 4)
	v.SetDefault("solver.verify", false)
	v.SetDefault("solver.trace_ops", false)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.textfile", "")
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.otlp_endpoint", "")
	v.SetDefault("tracing.service_name", "maxflow")
	v.SetDefault("tracing.sampler_ratio", 1.0)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 5*time.Minute)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 64<<20)
	v.SetDefault("server.max_concurrent_workers", 16)
	v.SetDefault("server.max_nodes", 1<<20)
	v.SetDefault("server.max_edges", 1<<23)
	v.SetDefault("server.rate_limit.enabled", false)
	v.SetDefault("server.rate_limit.rate", 10.0)
	v.SetDefault("server.rate_limit.burst", 20)
}

// BindFlags 把命令行参数绑定到配置键，flag 名中的 '-' 对应键中的 '_'，'.' 保持不变.
func (l *Loader) BindFlags(flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		key, ok := f.Annotations["config"]
		if !ok || len(key) == 0 || err != nil {
			return
		}
		err = l.v.BindPFlag(key[0], f)
	})
	return err
}

// Load 全生产级的配置加载逻辑. path 为空时只使用默认值、环境变量与命令行参数.
func (l *Loader) Load(path string, conf *Config) error {
	if path != "" {
		l.v.SetConfigFile(path)
		l.v.SetConfigType("toml")
	}

	l.v.SetEnvPrefix("APP")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if path != "" {
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config error: %w", err)
		}
	}

	if err := l.v.Unmarshal(conf); err != nil {
		return fmt.Errorf("unmarshal config error: %w", err)
	}

	if err := l.validate.Struct(conf); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// RegisterReloadHook 注册配置热更新回调。
func (l *Loader) RegisterReloadHook(hook func(*Config)) {
	if hook == nil {
		return
	}
	l.mu.Lock()
	l.onReload = append(l.onReload, hook)
	l.mu.Unlock()
}

// Watch 监听配置文件变更；重新解析并校验通过后更新日志级别并触发回调.
// 校验失败时保留旧配置.
func (l *Loader) Watch(conf *Config) {
	l.v.OnConfigChange(func(event fsnotify.Event) {
		slog.Info("detecting config change", "file", event.Name, "op", event.Op.String())
		const debounceTimeout = 500 * time.Millisecond
		time.Sleep(debounceTimeout)

		var next Config
		if err := l.v.Unmarshal(&next); err != nil {
			slog.Error("reload config unmarshal failed", "error", err)
			return
		}
		if err := l.validate.Struct(&next); err != nil {
			slog.Error("reload config validation failed", "error", err)
			return
		}

		l.mu.Lock()
		*conf = next
		hooks := append([]func(*Config){}, l.onReload...)
		l.mu.Unlock()

		logging.SetLevel(next.Log.Level)
		slog.Info("config hot-reloaded and validated successfully")
		for _, hook := range hooks {
			hook(&next)
		}
	})
	l.v.WatchConfig()
}

// PrintWithMask 脱敏打印当前配置.
func PrintWithMask(conf any) {
	data, err := json.Marshal(conf)
	if err != nil {
		slog.Error("failed to marshal config for printing", "error", err)

		return
	}

	var configMap map[string]any
	if unmarshalErr := json.Unmarshal(data, &configMap); unmarshalErr != nil {
		slog.Error("failed to unmarshal config for masking", "error", unmarshalErr)

		return
	}

	mask(configMap)

	maskedJSON, marshalErr := json.Marshal(configMap)
	if marshalErr != nil {
		slog.Error("failed to marshal masked config", "error", marshalErr)

		return
	}

	slog.Debug("Current effective configuration", "config", string(maskedJSON))
}

func mask(configMap map[string]any) {
	sensitiveKeys := []string{"password", "secret", "dsn", "key", "token", "endpoint"}

	for key, val := range configMap {
		if subMap, ok := val.(map[string]any); ok {
			mask(subMap)

			continue
		}

		for _, sensitiveKey := range sensitiveKeys {
			if strings.Contains(strings.ToLower(key), sensitiveKey) {
				configMap[key] = "******"

				break
			}
		}
	}
}
