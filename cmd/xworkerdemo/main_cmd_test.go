package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xworker/internal/config"
	"github.com/omeyang/xworker/pkg/exec/xworker"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

func runArgs(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"xworkerdemo"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Success(t *testing.T) {
	code, out, _ := runArgs("--threads", "3", "--jobs", "2", "--steps", "1", "--step", "20ms", "--log-level", "error")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Synchronous start and stop")
	assert.Contains(t, out, "Test 2: 0")
}

func TestRun_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pool:\n  workers: 1\ndemo:\n  jobs: 1\n  steps: 1\n  step: 20ms\nlog:\n  level: error\n"), 0o600))

	code, out, _ := runArgs("--config", path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Test 1: 0")
	assert.NotContains(t, out, "Test 2: 0")
}

func TestRun_LogSource(t *testing.T) {
	args := []string{"--threads", "1", "--jobs", "2", "--steps", "1", "--step", "20ms", "--log-format", "json"}

	code, _, stderr := runArgs(args...)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, `"msg":"xworker: pool started"`)
	assert.NotContains(t, stderr, `"source":`)

	code, _, stderr = runArgs(append(args, "--log-source")...)
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, `"source":`)
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero threads", []string{"--threads", "0"}},
		{"bad level", []string{"--log-level", "loud"}},
		{"missing config", []string{"--config", "/nonexistent/demo.yaml"}},
		{"unknown flag", []string{"--bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runArgs(tt.args...)
			assert.Equal(t, 2, code)
		})
	}
}

func TestExitCode(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, 0, exitCode(nil, &stderr))
	assert.Equal(t, 1, exitCode(&exitError{code: 1}, &stderr))
	assert.Equal(t, 2, exitCode(&usageError{err: errors.New("bad")}, &stderr))
	assert.Equal(t, 1, exitCode(errors.New("boom"), &stderr))
	assert.Contains(t, stderr.String(), "boom")
}

func TestServe_StopsOnCancel(t *testing.T) {
	s := &settings{cfg: config.Default(), log: xlog.Discard()}
	s.cfg.Demo.Step = time.Millisecond
	s.cfg.Metrics.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.NoError(t, serve(ctx, s, 5*time.Millisecond))
}

func TestServe_InvalidWorkers(t *testing.T) {
	s := &settings{cfg: config.Default(), log: xlog.Discard()}
	s.cfg.Pool.Workers = 0

	var usageErr *usageError
	assert.ErrorAs(t, serve(context.Background(), s, time.Second), &usageErr)
}

func TestFeeder(t *testing.T) {
	pool := xworker.MustNew(xworker.WithWorkers(1), xworker.WithLogger(xlog.Discard()))
	feed := feeder(pool, xlog.Discard(), config.Demo{Steps: 1, Step: time.Millisecond})

	require.NoError(t, feed(context.Background()), "not accepting is skipped")

	require.True(t, pool.Start())
	defer pool.Stop()
	require.NoError(t, feed(context.Background()))
	require.NoError(t, feed(context.Background()), "capacity exhausted is skipped")
	assert.GreaterOrEqual(t, pool.Stats().Accepted, uint64(1))
}

func TestReloadLevel(t *testing.T) {
	logger, _, err := xlog.New().SetOutput(&bytes.Buffer{}).Build()
	require.NoError(t, err)

	apply := reloadLevel(context.Background(), logger)
	cfg := config.Default()
	cfg.Log.Level = "debug"
	apply(cfg, nil)
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())

	apply(config.Config{}, errors.New("parse"))
	assert.Equal(t, xlog.LevelDebug, logger.GetLevel())
}
