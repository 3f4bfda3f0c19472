package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2, cfg.Pool.Workers)
	assert.Equal(t, 3, cfg.Demo.Jobs)
	assert.Equal(t, 100*time.Millisecond, cfg.Demo.Step)
	assert.False(t, cfg.Log.Source)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "app.yaml", `
pool:
  workers: 4
  name: jobs
log:
  level: debug
  format: json
  source: true
demo:
  step: 250ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Pool.Workers)
	assert.Equal(t, "jobs", cfg.Pool.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Log.Source)
	assert.Equal(t, 250*time.Millisecond, cfg.Demo.Step)
	assert.Equal(t, 5, cfg.Demo.Steps, "missing keys keep defaults")
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "app.json", `{"pool":{"workers":8},"metrics":{"addr":":9090"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Pool.Workers)
	assert.Equal(t, ":9090", cfg.Metrics.Addr)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load("")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load("app.toml")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrLoad)

	_, err = Load(writeFile(t, "bad.json", "{"))
	assert.ErrorIs(t, err, ErrParse)

	_, err = Load(writeFile(t, "bad.yaml", "pool:\n  workers: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParse(t *testing.T) {
	cfg, err := Parse(nil, FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Parse([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"workers zero", func(c *Config) { c.Pool.Workers = 0 }},
		{"workers too many", func(c *Config) { c.Pool.Workers = 1 << 20 }},
		{"level", func(c *Config) { c.Log.Level = "loud" }},
		{"format", func(c *Config) { c.Log.Format = "xml" }},
		{"jobs", func(c *Config) { c.Demo.Jobs = -1 }},
		{"steps", func(c *Config) { c.Demo.Steps = 0 }},
		{"step", func(c *Config) { c.Demo.Step = -time.Second }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	for path, want := range map[string]Format{
		"a.yaml": FormatYAML,
		"a.YML":  FormatYAML,
		"a.json": FormatJSON,
	} {
		got, err := DetectFormat(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
