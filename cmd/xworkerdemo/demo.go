package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/omeyang/xworker/pkg/exec/xworker"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

//go:generate mockgen -source=demo.go -destination=mock_executor_test.go -package=main

// executor 演示使用的 pool 能力，*xworker.Pool 满足该接口。
type executor interface {
	Start() bool
	Stop() bool
	RequestStop() bool
	Wait() bool
	Interrupt() bool
	DoWorkContext(item xworker.ContextItem) bool
}

// demo 依次运行两个生命周期场景。
type demo struct {
	out     *lockedWriter
	log     xlog.Logger
	newPool func() (executor, error)
	jobs    int
	steps   int
	step    time.Duration
	// settle 提交任务后等待 worker 开始执行的时间
	settle time.Duration
}

func newDemo(w io.Writer, s *settings) *demo {
	cfg := s.cfg
	return &demo{
		out: &lockedWriter{w: w},
		log: s.log,
		newPool: func() (executor, error) {
			return xworker.New(
				xworker.WithWorkers(cfg.Pool.Workers),
				xworker.WithName(cfg.Pool.Name),
				xworker.WithLogger(s.log),
			)
		},
		jobs:   cfg.Demo.Jobs,
		steps:  cfg.Demo.Steps,
		step:   cfg.Demo.Step,
		settle: cfg.Demo.Step,
	}
}

func (d *demo) run(ctx context.Context) error {
	d.out.println("xworker pool demo")
	d.out.println("")

	ok := d.scenario(ctx, "Synchronous start and stop", func(p executor) bool {
		return d.report("Stopping pool... ", p.Stop)
	})
	ok = d.scenario(ctx, "Synchronous start and asynchronous stop", func(p executor) bool {
		requested := d.report("Requesting pool stop... ", p.RequestStop)
		return d.report("Blocking for stop... ", p.Wait) && requested
	}) && ok

	d.out.println("")
	if !ok {
		return &exitError{code: 1}
	}
	return nil
}

// scenario 在新 pool 上执行 Start、提交任务，然后交给 shutdown 关闭。
func (d *demo) scenario(ctx context.Context, title string, shutdown func(executor) bool) bool {
	d.out.println(title)
	p, err := d.newPool()
	if err != nil {
		d.out.println("Creating pool... ERROR")
		d.log.Error(ctx, "create pool failed", xlog.Err(err))
		return false
	}

	started := d.report("Starting pool... ", p.Start)
	if started {
		d.submit(ctx, p)
	}
	return shutdown(p) && started
}

// submit 提交示例任务并等待 worker 开始执行。ctx 取消时中断执行中的任务。
func (d *demo) submit(ctx context.Context, p executor) {
	for n := 1; n <= d.jobs; n++ {
		if !p.DoWorkContext(d.job(n)) {
			d.log.Warn(ctx, "job rejected", slog.Int("job", n))
		}
	}
	if d.settle <= 0 {
		return
	}
	t := time.NewTimer(d.settle)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
		p.Interrupt()
	}
}

// job 返回第 n 个示例任务。每次打印后检查 ctx，作为中断点。
func (d *demo) job(n int) xworker.ContextItem {
	return func(ctx context.Context) {
		for i := 0; i < d.steps; i++ {
			d.out.printf("Test %d: %d\n", n, i)
			if d.step <= 0 {
				if ctx.Err() != nil {
					return
				}
				continue
			}
			t := time.NewTimer(d.step)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return
			}
		}
	}
}

// report 打印 label，执行 fn 并输出 OK 或 ERROR。
func (d *demo) report(label string, fn func() bool) bool {
	ok := fn()
	result := "OK"
	if !ok {
		result = "ERROR"
	}
	d.out.println(label + result)
	return ok
}

// lockedWriter 串行化多个 worker 的输出。
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
}

func (l *lockedWriter) println(s string) {
	l.printf("%s\n", s)
}
