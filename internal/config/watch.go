package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce 连续变更合并为一次重载的时间窗口。
const DefaultDebounce = 100 * time.Millisecond

// Watcher 监视配置文件，变更后重新 Load 并回调。
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	onChange func(Config, error)
	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	pending sync.WaitGroup
	done    chan struct{}
}

// Watch 开始监视 path。
//
// 监视的是文件所在目录，编辑器"写临时文件再 rename"的保存方式也能触发。
// onChange 在后台 goroutine 上调用：成功时 err 为 nil，
// 解析或校验失败时 cfg 为零值。debounce <= 0 使用 DefaultDebounce。
func Watch(path string, onChange func(Config, error), debounce time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if onChange == nil {
		return nil, errors.New("config: nil change callback")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := fw.Add(dir); err != nil {
		return nil, errors.Join(fmt.Errorf("config: watch %s: %w", dir, err), fw.Close())
	}

	w := &Watcher{
		path:     path,
		fs:       fw,
		onChange: onChange,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close 停止监视，等待后台 goroutine 与已触发的回调结束。可重复调用。
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.mu.Unlock()

	err := w.fs.Close()
	<-w.done
	w.pending.Wait()
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	name := filepath.Base(w.path)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				w.schedule()
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.onChange(Config{}, fmt.Errorf("config: watch: %w", err))
		}
	}
}

// schedule 重置防抖定时器。
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil && w.timer.Stop() {
		w.pending.Done()
	}
	w.pending.Add(1)
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	defer w.pending.Done()

	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}
	w.onChange(Load(w.path))
}
