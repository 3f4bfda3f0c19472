package xworker

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xworker/pkg/context/xctx"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

// 编译期接口检查
var _ Worker = (*Pool)(nil)

// Pool 固定大小的 worker pool。
//
// 所有 worker 共享一个 FIFO 队列。队列、可用计数、状态由同一把锁保护，
// 空闲 worker 在与该锁关联的条件变量上等待。执行用户任务时不持有锁。
type Pool struct {
	id      string
	name    string
	total   int
	opts    options
	log     xlog.Logger
	metrics *poolMetrics

	mu        sync.Mutex
	cond      *sync.Cond
	state     State
	available int
	active    int
	queue     *taskQueue
	gen       *generation
	seq       uint64

	accepted  atomic.Uint64
	rejected  atomic.Uint64
	completed atomic.Uint64
	panicked  atomic.Uint64
	abandoned atomic.Uint64
}

// generation 一次 Start 到完全停止之间的运行实例。
type generation struct {
	wg     sync.WaitGroup
	done   chan struct{}
	ctx    context.Context
	cancel context.CancelFunc
}

// New 创建 Pool。创建后处于 Idle 状态，需要调用 Start 才会接收任务。
func New(opts ...Option) (*Pool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers < 1 || o.workers > MaxWorkers {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidWorkers, o.workers, MaxWorkers)
	}
	if o.logger == nil {
		o.logger = xlog.Default()
	}

	p := &Pool{
		id:        uuid.NewString(),
		name:      o.name,
		total:     o.workers,
		opts:      o,
		log:       o.logger,
		available: o.workers,
		queue:     newTaskQueue(),
	}
	p.cond = sync.NewCond(&p.mu)

	m, err := newPoolMetrics(p, o.meterProvider, o.tracerProvider)
	if err != nil {
		return nil, fmt.Errorf("xworker: init metrics: %w", err)
	}
	p.metrics = m
	return p, nil
}

// MustNew 同 New，但出错时 panic。仅用于程序初始化。
func MustNew(opts ...Option) *Pool {
	p, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// NewDedicated 创建只有一个 worker 的 Pool，任务按接收顺序严格串行执行。
func NewDedicated(opts ...Option) (*Pool, error) {
	return New(append(opts, WithWorkers(1))...)
}

// ID 返回 pool 实例的唯一标识。
func (p *Pool) ID() string { return p.id }

// Name 返回 pool 名称。
func (p *Pool) Name() string { return p.name }

// Workers 返回 worker 数量，创建后不变。
func (p *Pool) Workers() int { return p.total }

// State 返回当前生命周期状态。
func (p *Pool) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Started 报告 pool 是否处于 Running 或 Stopping 状态。
func (p *Pool) Started() bool {
	return p.State() != StateIdle
}

// Start 创建 worker goroutine 并开始接收任务。
//
// 已处于 Running 时直接返回 true；处于 Stopping（已 RequestStop 但尚未
// 完全停止）时返回 false，状态不变。
func (p *Pool) Start() bool {
	ctx := p.logContext()

	p.mu.Lock()
	switch p.state {
	case StateRunning:
		p.mu.Unlock()
		return true
	case StateStopping:
		p.mu.Unlock()
		p.log.Warn(ctx, "xworker: start rejected",
			xlog.Err(ErrInvalidTransition), xlog.State(StateStopping))
		return false
	}

	gctx, cancel := context.WithCancel(xctx.WithPool(context.WithoutCancel(p.opts.baseCtx), p.name))
	g := &generation{done: make(chan struct{}), ctx: gctx, cancel: cancel}
	p.queue.reset()
	p.available = p.total
	p.active = 0
	p.gen = g
	p.state = StateRunning

	g.wg.Add(p.total)
	for id := 1; id <= p.total; id++ {
		go p.run(g, id)
	}
	go p.reap(g)
	p.mu.Unlock()

	p.log.Info(ctx, "xworker: pool started", slog.Int("workers", p.total))
	return true
}

// Stop 停止接收任务并同步等待关闭完成。
//
// 正在执行的任务会执行完毕，尚未开始的任务被丢弃。
// 多个调用方并发调用时都会阻塞到关闭完成并返回 true。Idle 状态下直接返回 true。
func (p *Pool) Stop() bool {
	if g := p.requestStop(); g != nil {
		<-g.done
	}
	return true
}

// StopContext 同 Stop，但在 ctx 结束时提前返回 ctx.Err()。
// 提前返回不会中止关闭流程。
func (p *Pool) StopContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	g := p.requestStop()
	if g == nil {
		return nil
	}
	select {
	case <-g.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestStop 发出停止信号后立即返回，不等待 goroutine 退出。
//
// 信号送达（Running 或已在 Stopping）返回 true；Idle 时返回 false。
// 随后用 Wait 或 Stop 完成关闭。
func (p *Pool) RequestStop() bool {
	return p.requestStop() != nil
}

// Interrupt 同 RequestStop，额外取消传给执行中 ContextItem 的 context。
func (p *Pool) Interrupt() bool {
	g := p.requestStop()
	if g == nil {
		return false
	}
	g.cancel()
	p.log.Info(p.logContext(), "xworker: in-flight items interrupted")
	return true
}

// Wait 阻塞到当前运行实例的所有 goroutine 退出、pool 回到 Idle。
//
// Idle 时立即返回 false；否则返回 true。
// 没有人请求停止时，Wait 会一直阻塞。
func (p *Pool) Wait() bool {
	p.mu.Lock()
	g := p.gen
	p.mu.Unlock()
	if g == nil {
		return false
	}
	<-g.done
	return true
}

// WaitContext 同 Wait，但在 ctx 结束时提前返回 ctx.Err()。
func (p *Pool) WaitContext(ctx context.Context) (bool, error) {
	if ctx == nil {
		return false, ErrNilContext
	}
	p.mu.Lock()
	g := p.gen
	p.mu.Unlock()
	if g == nil {
		return false, nil
	}
	select {
	case <-g.done:
		return true, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

// requestStop 将 Running 转为 Stopping 并关闭队列（唤醒全部空闲 worker）。
// 返回当前运行实例；Idle 时返回 nil。
func (p *Pool) requestStop() *generation {
	p.mu.Lock()
	g := p.gen
	first := p.state == StateRunning
	queued := p.queue.len()
	if first {
		p.state = StateStopping
		p.queue.close()
		p.cond.Broadcast()
	}
	p.mu.Unlock()

	if first {
		p.log.Info(p.logContext(), "xworker: stop requested", slog.Int("queued", queued))
	}
	return g
}

// DoWork 提交任务，返回 true 表示已接收。
//
// 永不阻塞：pool 不在 Running、没有空闲 worker 或 item 为 nil 时返回 false。
func (p *Pool) DoWork(item WorkItem) bool {
	return p.submit(contextItem(item)) == nil
}

// DoWorkContext 提交可协作中断的任务，语义同 DoWork。
func (p *Pool) DoWorkContext(item ContextItem) bool {
	return p.submit(item) == nil
}

// TrySubmit 同 DoWork，但返回拒绝原因：
// ErrNilItem、ErrNotAccepting 或 ErrCapacityExhausted。
func (p *Pool) TrySubmit(item WorkItem) error {
	return p.submit(contextItem(item))
}

// TrySubmitContext 同 DoWorkContext，但返回拒绝原因。
func (p *Pool) TrySubmitContext(item ContextItem) error {
	return p.submit(item)
}

func (p *Pool) submit(fn ContextItem) error {
	if fn == nil {
		p.reject(ErrNilItem)
		return ErrNilItem
	}

	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		p.reject(ErrNotAccepting)
		return ErrNotAccepting
	}
	if p.available == 0 {
		p.mu.Unlock()
		p.reject(ErrCapacityExhausted)
		return ErrCapacityExhausted
	}
	if !p.queue.push(task{seq: p.seq + 1, fn: fn, enqueued: time.Now()}) {
		p.mu.Unlock()
		p.reject(ErrNotAccepting)
		return ErrNotAccepting
	}
	p.seq++
	p.available--
	p.cond.Signal()
	p.mu.Unlock()

	p.accepted.Add(1)
	p.metrics.submitted(resultAccepted)
	return nil
}

func (p *Pool) reject(err error) {
	p.rejected.Add(1)
	p.metrics.submitted(rejectReason(err))
}

// run worker goroutine 主循环。
//
// 任务调用 runtime.Goexit 时当前 goroutine 无法继续，由替补 goroutine
// 沿用同一个 worker id 接管，worker 数量保持不变。
func (p *Pool) run(g *generation, id int) {
	exited := true
	defer func() {
		if exited {
			g.wg.Add(1)
			go p.run(g, id)
		}
		g.wg.Done()
	}()

	ctx := xctx.WithWorker(g.ctx, id)
	for {
		t, ok := p.next()
		if !ok {
			exited = false
			return
		}
		p.execute(ctx, id, t)
	}
}

// next 取出下一个任务；队列关闭时返回 false。
func (p *Pool) next() (task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for p.queue.waiting() {
		p.cond.Wait()
	}
	t, ok := p.queue.pop()
	if ok {
		p.active++
	}
	return t, ok
}

// release 归还任务占用的容量。每个已接收的任务恰好调用一次。
func (p *Pool) release() {
	p.mu.Lock()
	p.active--
	p.available++
	p.mu.Unlock()
}

// execute 执行单个任务。收尾放在 defer 中，任务 panic 或调用
// runtime.Goexit 时同样会结束 span、计数并归还容量。
func (p *Pool) execute(ctx context.Context, id int, t task) {
	ctx = xctx.WithItem(ctx, t.seq)
	p.metrics.queueWait(time.Since(t.enqueued))

	ctx, span := p.metrics.startItem(ctx, id, t.seq)
	start := time.Now()
	returned := false
	defer p.release()
	defer func() {
		var perr *PanicError
		if r := recover(); r != nil {
			perr = &PanicError{Value: r, Worker: id, Item: t.seq, Stack: debug.Stack()}
		} else if !returned {
			perr = &PanicError{Value: ErrItemExited, Worker: id, Item: t.seq, Stack: debug.Stack()}
		}
		p.metrics.endItem(ctx, span, time.Since(start), perr)

		if perr == nil {
			p.completed.Add(1)
			return
		}
		p.panicked.Add(1)
		reportPanic(ctx, p.log, p.opts.onPanic, "xworker: work item panicked", perr)
	}()

	t.fn(ctx)
	returned = true
}

// reportPanic 记录任务失败并通知 panic 处理器。处理器自身的 panic 被捕获。
func reportPanic(ctx context.Context, log xlog.Logger, onPanic func(*PanicError), msg string, perr *PanicError) {
	log.Error(ctx, msg,
		xlog.Panic(perr.Value),
		slog.String(xlog.KeyStack, string(perr.Stack)))
	if onPanic == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error(ctx, "xworker: panic handler panicked", xlog.Panic(r))
		}
	}()
	onPanic(perr)
}

// reap 等待运行实例的全部 goroutine 退出后把 pool 复位到 Idle。
func (p *Pool) reap(g *generation) {
	g.wg.Wait()
	g.cancel()

	p.mu.Lock()
	dropped := p.queue.reset()
	p.available = p.total
	p.active = 0
	p.state = StateIdle
	p.gen = nil
	p.mu.Unlock()

	p.abandoned.Add(uint64(dropped))
	p.log.Info(p.logContext(), "xworker: pool stopped", slog.Int("abandoned", dropped))
	close(g.done)
}

func (p *Pool) logContext() context.Context {
	return xctx.WithPool(context.Background(), p.name)
}
