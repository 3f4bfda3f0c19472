// Package config 加载 xworkerdemo 的配置文件。
//
// 支持 YAML 与 JSON（按扩展名识别）。文件中缺失的键使用 Default 中的值，
// 加载后统一校验。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/omeyang/xworker/pkg/exec/xworker"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

// Format 配置文件格式。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

var (
	ErrEmptyPath         = errors.New("config: empty path")
	ErrUnsupportedFormat = errors.New("config: unsupported format")
	ErrLoad              = errors.New("config: load failed")
	ErrParse             = errors.New("config: parse failed")
	ErrInvalid           = errors.New("config: invalid value")
)

// Config 配置根节点。
type Config struct {
	Pool    Pool    `koanf:"pool"`
	Log     Log     `koanf:"log"`
	Metrics Metrics `koanf:"metrics"`
	Demo    Demo    `koanf:"demo"`
}

// Pool worker pool 参数。
type Pool struct {
	Workers int    `koanf:"workers"`
	Name    string `koanf:"name"`
}

// Log 日志参数。File 非空时输出到按大小轮转的文件，Source 记录调用位置。
type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"`
	Source bool   `koanf:"source"`
}

// Metrics Prometheus 端点，Addr 为空表示不启用。
type Metrics struct {
	Addr string `koanf:"addr"`
}

// Demo 示例任务参数。
type Demo struct {
	Jobs  int           `koanf:"jobs"`
	Steps int           `koanf:"steps"`
	Step  time.Duration `koanf:"step"`
}

// Default 返回默认配置。
func Default() Config {
	return Config{
		Pool: Pool{Workers: xworker.DefaultWorkers, Name: "demo"},
		Log:  Log{Level: "info", Format: "text"},
		Demo: Demo{Jobs: 3, Steps: 5, Step: 100 * time.Millisecond},
	}
}

// Load 读取并校验配置文件。
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, ErrEmptyPath
	}
	format, err := DetectFormat(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return Parse(data, format)
}

// Parse 解析并校验配置内容。空内容得到默认配置。
func Parse(data []byte, format Format) (Config, error) {
	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	cfg := Default()
	if len(data) > 0 {
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider(data), parser); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
		if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DetectFormat 根据扩展名识别格式。
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

// Validate 校验取值范围，返回的错误可用 errors.Is(err, ErrInvalid) 判断。
func (c Config) Validate() error {
	var errs []error
	if c.Pool.Workers < 1 || c.Pool.Workers > xworker.MaxWorkers {
		errs = append(errs, fmt.Errorf("pool.workers %d out of range [1, %d]", c.Pool.Workers, xworker.MaxWorkers))
	}
	if _, err := xlog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q (want text or json)", c.Log.Format))
	}
	if c.Demo.Jobs < 0 {
		errs = append(errs, fmt.Errorf("demo.jobs %d must not be negative", c.Demo.Jobs))
	}
	if c.Demo.Steps < 1 {
		errs = append(errs, fmt.Errorf("demo.steps %d must be positive", c.Demo.Steps))
	}
	if c.Demo.Step < 0 {
		errs = append(errs, fmt.Errorf("demo.step %s must not be negative", c.Demo.Step))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
