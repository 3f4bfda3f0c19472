package xrun

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Pool 支持两阶段关闭的执行器，*xworker.Pool 满足该接口。
type Pool interface {
	Start() bool
	RequestStop() bool
	Wait() bool
}

// PoolService 返回运行 pool 的服务函数。
//
// 启动 pool 后阻塞到 ctx 取消，随后调用 RequestStop 并 Wait：
// 执行中的任务会完成，未开始的任务被丢弃。返回 ctx.Err()。
func PoolService(p Pool) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if p == nil {
			return ErrNilPool
		}
		if !p.Start() {
			return ErrPoolStart
		}
		<-ctx.Done()
		p.RequestStop()
		p.Wait()
		return ctx.Err()
	}
}

// HTTPServerInterface HTTPServer 所需的服务器能力，*http.Server 满足该接口。
type HTTPServerInterface interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServer 返回运行 server 的服务函数，ctx 取消后优雅关闭。
//
// shutdownTimeout <= 0 表示 Shutdown 不设超时。
func HTTPServer(server HTTPServerInterface, shutdownTimeout time.Duration) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if server == nil {
			return ErrNilServer
		}
		shutdownErr := make(chan error, 1)
		listenDone := make(chan struct{})

		go func() {
			select {
			case <-ctx.Done():
				sctx := context.WithoutCancel(ctx)
				if shutdownTimeout > 0 {
					var cancel context.CancelFunc
					sctx, cancel = context.WithTimeout(sctx, shutdownTimeout)
					defer cancel()
				}
				shutdownErr <- server.Shutdown(sctx)
			case <-listenDone:
			}
		}()

		err := server.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			close(listenDone)
			return err
		}
		select {
		case err = <-shutdownErr:
			return err
		case <-ctx.Done():
			return <-shutdownErr
		default:
			// 外部直接关闭了 server
			close(listenDone)
			return nil
		}
	}
}

// Ticker 返回周期执行 fn 的服务函数，fn 返回错误时服务退出。
// immediate 为 true 时启动后立即执行一次。
func Ticker(interval time.Duration, immediate bool, fn func(ctx context.Context) error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if interval <= 0 {
			return ErrInvalidInterval
		}
		if fn == nil {
			return ErrNilFunc
		}
		if immediate {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx); err != nil {
				return err
			}
		}

		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if err := fn(ctx); err != nil {
					return err
				}
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
