package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type change struct {
	cfg Config
	err error
}

// notify 非阻塞投递，避免测试结束后回调阻塞 Close。
func notify(changes chan<- change) func(Config, error) {
	return func(c Config, err error) {
		select {
		case changes <- change{c, err}:
		default:
		}
	}
}

// waitFor 等待满足条件的回调；截断写入可能先触发一次中间状态的重载。
func waitFor(t *testing.T, changes <-chan change, ok func(change) bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case c := <-changes:
			if ok(c) {
				return
			}
		case <-deadline:
			t.Fatal("no matching reload")
		}
	}
}

func TestWatch_Reload(t *testing.T) {
	path := writeFile(t, "app.yaml", "log:\n  level: info\n")

	changes := make(chan change, 16)
	w, err := Watch(path, notify(changes), 10*time.Millisecond)
	require.NoError(t, err)
	defer func() { assert.NoError(t, w.Close()) }()

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o600))

	waitFor(t, changes, func(c change) bool { return c.err == nil && c.cfg.Log.Level == "debug" })
}

func TestWatch_InvalidReload(t *testing.T) {
	path := writeFile(t, "app.yaml", "pool:\n  workers: 2\n")

	changes := make(chan change, 16)
	w, err := Watch(path, notify(changes), 10*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("pool:\n  workers: -3\n"), 0o600))

	waitFor(t, changes, func(c change) bool { return errors.Is(c.err, ErrInvalid) })
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	path := writeFile(t, "app.yaml", "")

	changes := make(chan change, 1)
	w, err := Watch(path, notify(changes), 10*time.Millisecond)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.yaml"), []byte("x: 1"), 0o600))
	select {
	case <-changes:
		t.Fatal("unexpected reload")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}

func TestWatch_Errors(t *testing.T) {
	_, err := Watch("", func(Config, error) {}, 0)
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Watch("app.yaml", nil, 0)
	assert.Error(t, err)

	_, err = Watch(filepath.Join(t.TempDir(), "missing", "app.yaml"), func(Config, error) {}, 0)
	assert.Error(t, err)
}
