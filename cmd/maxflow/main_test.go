package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diamond = "4 5 0 0\n0 1 3\n0 2 2\n1 3 2\n2 3 3\n1 2 1\n"

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestSolveCommand(t *testing.T) {
	for _, mode := range []string{"sequential", "parallel", "phased"} {
		code, out, errOut := runCLI(t, diamond, "solve", "--mode", mode, "--workers", "3", "--verify")
		require.Equal(t, 0, code, errOut)
		assert.Equal(t, "n = 4\nm = 5\nf = 5\n", out)
	}
}

func TestSolveCommandFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "g.txt")
	require.NoError(t, os.WriteFile(path, []byte("2 1 0 0\n0 1 5\n"), 0o644))

	textfile := filepath.Join(dir, "maxflow.prom")
	code, out, errOut := runCLI(t, "", "solve", "--metrics-textfile", textfile, path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "n = 2\nm = 1\nf = 5\n", out)

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `maxflow_last_flow{mode="sequential"} 5`)
}

func TestSolveCommandDOT(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.dot")
	code, out, errOut := runCLI(t, diamond, "solve", "--dot", path)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "n = 4\nm = 5\nf = 5\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "digraph G {\n"))
	assert.Contains(t, string(data), `label="flow = 5"`)
	assert.Equal(t, 5, strings.Count(string(data), " -> "))
}

func TestSolveCommandErrors(t *testing.T) {
	code, _, errOut := runCLI(t, "2 1 0 0\n0 2 5\n", "solve")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "edge endpoint out of range")

	code, _, errOut = runCLI(t, diamond, "solve", "--mode", "greedy")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "config validation failed")
}

func TestVerifyCommand(t *testing.T) {
	code, out, errOut := runCLI(t, diamond, "verify", "--workers", "2")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "dinic")
	assert.True(t, strings.HasSuffix(out, "f = 5\n"), out)
}

func TestGenThenSolve(t *testing.T) {
	code, generated, errOut := runCLI(t, "", "gen", "--nodes", "50", "--edges", "200", "--seed", "7")
	require.Equal(t, 0, code, errOut)

	_, again, _ := runCLI(t, "", "gen", "--nodes", "50", "--edges", "200", "--seed", "7")
	assert.Equal(t, generated, again)

	code, seqOut, errOut := runCLI(t, generated, "solve")
	require.Equal(t, 0, code, errOut)
	code, parOut, errOut := runCLI(t, generated, "solve", "--mode", "parallel", "--workers", "4")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, seqOut, parOut)
}

func TestUnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "", "frobnicate")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "unknown command")

	code, _, _ = runCLI(t, "")
	assert.Equal(t, 2, code)

	code, out, _ := runCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dev\n", out)
}
