package xworker

import (
	"context"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/omeyang/xworker/pkg/context/xctx"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

var _ Worker = (*Inline)(nil)

// Inline 在调用方 goroutine 上同步执行任务的执行器。
//
// DoWork 返回时任务已经执行完毕。Stop 等待正在执行的 DoWork 返回。
// 任务内部不能调用同一个 Inline 的 Stop，否则会死锁。
type Inline struct {
	log     xlog.Logger
	onPanic func(*PanicError)

	mu      sync.RWMutex
	started bool
	seq     atomic.Uint64
}

// NewInline 创建 Inline 执行器，只使用 WithLogger 与 WithPanicHandler。
func NewInline(opts ...Option) *Inline {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}
	return &Inline{log: o.logger, onPanic: o.onPanic}
}

// Start 开始接收任务，总是返回 true。
func (e *Inline) Start() bool {
	e.mu.Lock()
	e.started = true
	e.mu.Unlock()
	return true
}

// Stop 停止接收任务，总是返回 true。
func (e *Inline) Stop() bool {
	e.mu.Lock()
	e.started = false
	e.mu.Unlock()
	return true
}

// Started 报告是否已启动。
func (e *Inline) Started() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.started
}

// DoWork 立即执行 item。未启动或 item 为 nil 时返回 false。
// item 的 panic 会被捕获并报告，仍返回 true。
func (e *Inline) DoWork(item WorkItem) bool {
	if item == nil {
		return false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.started {
		return false
	}

	seq := e.seq.Add(1)
	if perr := e.run(item, seq); perr != nil {
		ctx := xctx.WithItem(context.Background(), seq)
		reportPanic(ctx, e.log, e.onPanic, "xworker: inline work item panicked", perr)
	}
	return true
}

func (e *Inline) run(item WorkItem, seq uint64) (perr *PanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = &PanicError{Value: r, Item: seq, Stack: debug.Stack()}
		}
	}()
	item()
	return nil
}
