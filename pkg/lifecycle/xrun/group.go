package xrun

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/sync/errgroup"

	"github.com/omeyang/xworker/pkg/observability/xlog"
)

// Group 并发运行多个服务并协调关闭。
//
// 任一服务返回非 nil 错误或调用 Cancel 后，传给所有服务的 context 被取消。
// Go、Cancel 可并发调用；Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回的 context 在任一服务失败时被取消。
// nil ctx 视为 context.Background()。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{eg: eg, ctx: egCtx, causeCtx: causeCtx, cancel: cancel, opts: o}, egCtx
}

// Go 启动一个服务。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 同 Go，并在服务启动、退出时记录日志。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		attrs := []slog.Attr{slog.String("group", g.opts.name), slog.String("service", name)}
		g.opts.logger.Debug(g.ctx, "service starting", attrs...)

		err := fn(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.opts.logger.Warn(g.ctx, "service exited with error", append(attrs, xlog.Err(err))...)
		} else {
			g.opts.logger.Debug(g.ctx, "service stopped", attrs...)
		}
		return err
	})
}

// Wait 等待所有服务退出并返回第一个错误。
//
// context.Canceled 被过滤：若 Group 是经 Cancel(cause) 或信号取消的，
// 返回该 cause；普通取消返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil && g.causeCtx.Err() == nil {
		// 服务内部产生的 context.Canceled
		return err
	}
	if g.causeCtx.Err() != nil {
		if cause := context.Cause(g.causeCtx); cause != nil && !errors.Is(cause, context.Canceled) {
			return cause
		}
	}
	return nil
}

// Cancel 取消所有服务，cause 会由 Wait 返回。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回传给服务的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// watchSignals 收到信号后以 *SignalError 取消 Group。
func (g *Group) watchSignals(signals []os.Signal) {
	if len(signals) == 0 {
		signals = DefaultSignals()
	}
	g.Go(func(ctx context.Context) error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, signals...)
		defer signal.Stop(sigCh)

		var sig os.Signal
		select {
		case sig = <-testSigChan(ctx):
		case sig = <-sigCh:
		case <-ctx.Done():
			return ctx.Err()
		}

		g.opts.logger.Info(ctx, "received signal",
			slog.String("group", g.opts.name), slog.String("signal", sig.String()))
		g.cancel(&SignalError{Signal: sig})
		return nil
	})
}

// Run 监听信号并运行服务，阻塞到全部服务退出。
//
// 收到信号时返回 *SignalError（errors.Is(err, ErrSignal) 为 true）。
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, services...)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)
	if !g.opts.noSignalHandler {
		g.watchSignals(g.opts.signals)
	}
	for _, svc := range services {
		g.Go(svc)
	}
	return g.Wait()
}

type testSigChanKey struct{}

// testSigChan 返回测试注入的信号通道，生产环境为 nil。
func testSigChan(ctx context.Context) <-chan os.Signal {
	c, _ := ctx.Value(testSigChanKey{}).(<-chan os.Signal)
	return c
}
