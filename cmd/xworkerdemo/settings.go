package main

import (
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xworker/internal/config"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

// settings 合并后的运行参数：默认值 < 配置文件 < 命令行。
type settings struct {
	cfg        config.Config
	configPath string
	log        xlog.LoggerWithLevel
	cleanup    func() error
}

func loadSettings(cmd *cli.Command, stderr io.Writer) (*settings, error) {
	cfg := config.Default()
	path := cmd.String("config")
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg = loaded
	}
	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}

	b := xlog.New().
		SetOutput(stderr).
		SetLevelString(cfg.Log.Level).
		SetFormat(cfg.Log.Format).
		SetAddSource(cfg.Log.Source).
		SetAttrs(xlog.Component("xworkerdemo"))
	if cfg.Log.File != "" {
		b.SetRotation(cfg.Log.File)
	}
	logger, cleanup, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return &settings{cfg: cfg, configPath: path, log: logger, cleanup: cleanup}, nil
}

// applyFlags 用显式设置的命令行参数覆盖配置。
func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet("threads") {
		cfg.Pool.Workers = cmd.Int("threads")
	}
	if cmd.IsSet("jobs") {
		cfg.Demo.Jobs = cmd.Int("jobs")
	}
	if cmd.IsSet("steps") {
		cfg.Demo.Steps = cmd.Int("steps")
	}
	if cmd.IsSet("step") {
		cfg.Demo.Step = cmd.Duration("step")
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	if cmd.IsSet("log-source") {
		cfg.Log.Source = cmd.Bool("log-source")
	}
	if cmd.IsSet("metrics-addr") {
		cfg.Metrics.Addr = cmd.String("metrics-addr")
	}
}

func (s *settings) close() {
	if s.cleanup != nil {
		_ = s.cleanup()
	}
}
