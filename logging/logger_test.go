package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFromConfigWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "maxflow", Module: "test", Level: "info", Writer: &buf})
	l.InfoContext(context.Background(), "solved", "flow", 5)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "solved", rec["msg"])
	assert.Equal(t, "maxflow", rec["service"])
	assert.Equal(t, "test", rec["module"])
	assert.Contains(t, rec, "timestamp")
	assert.EqualValues(t, 5, rec["flow"])
}

func TestSetLevelIsShared(t *testing.T) {
	var buf bytes.Buffer
	l := NewFromConfig(Config{Service: "maxflow", Module: "test", Level: "info", Writer: &buf, Format: "text"})
	defer SetLevel("info")

	l.Debug("hidden")
	assert.Zero(t, buf.Len())

	SetLevel("debug")
	l.Debug("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
}

func TestMultiHandlerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	l := slog.New(h).With("k", "v")
	l.Info("one")
	l.Error("two")

	assert.Contains(t, a.String(), "one")
	assert.Contains(t, a.String(), "two")
	assert.NotContains(t, b.String(), "one")
	assert.Contains(t, b.String(), "two")
}
