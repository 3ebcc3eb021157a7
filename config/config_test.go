package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "maxflow.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	require.NoError(t, NewLoader().Load("", &cfg))

	assert.Equal(t, "sequential", cfg.Solver.Mode)
	assert.Equal(t, 4, cfg.Solver.Workers)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, int64(16), cfg.Server.MaxConcurrentWorkers)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxNodes)
	assert.Equal(t, int64(1<<23), cfg.Server.MaxEdges)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeTOML(t, `
[solver]
mode = "parallel"
workers = 2

[server]
read_timeout = "5s"

[log]
level = "debug"
`)
	t.Setenv("APP_SOLVER_WORKERS", "8")

	var cfg Config
	require.NoError(t, NewLoader().Load(path, &cfg))
	assert.Equal(t, "parallel", cfg.Solver.Mode)
	assert.Equal(t, 8, cfg.Solver.Workers, "env overrides file")
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"mode":    "[solver]\nmode = \"fastest\"\n",
		"workers": "[solver]\nworkers = 0\n",
		"tracing": "[tracing]\nenabled = true\n",
		"nodes":   "[server]\nmax_nodes = 1\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			var cfg Config
			err := NewLoader().Load(writeTOML(t, body), &cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	var cfg Config
	err := NewLoader().Load(filepath.Join(t.TempDir(), "absent.toml"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config error")
}

func TestBindFlags(t *testing.T) {
	flags := pflag.NewFlagSet("solve", pflag.ContinueOnError)
	flags.String("mode", "sequential", "")
	require.NoError(t, flags.SetAnnotation("mode", "config", []string{"solver.mode"}))
	flags.Int("unbound", 0, "")
	require.NoError(t, flags.Parse([]string{"--mode=phased"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(flags))
	var cfg Config
	require.NoError(t, l.Load("", &cfg))
	assert.Equal(t, "phased", cfg.Solver.Mode)
}

func TestMask(t *testing.T) {
	m := map[string]any{
		"tracing": map[string]any{"otlp_endpoint": "collector:4317", "enabled": true},
		"token":   "abc",
	}
	mask(m)
	assert.Equal(t, "******", m["tracing"].(map[string]any)["otlp_endpoint"])
	assert.Equal(t, true, m["tracing"].(map[string]any)["enabled"])
	assert.Equal(t, "******", m["token"])
}
