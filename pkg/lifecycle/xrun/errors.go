package xrun

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrSignal 表示因收到系统信号而终止，配合 errors.Is 使用。
	ErrSignal = errors.New("received signal")

	// ErrNilFunc 表示服务函数为 nil。
	ErrNilFunc = errors.New("xrun: nil function")

	// ErrNilServer 表示 HTTPServer 的 server 参数为 nil。
	ErrNilServer = errors.New("xrun: nil server")

	// ErrNilPool 表示 PoolService 的 pool 参数为 nil。
	ErrNilPool = errors.New("xrun: nil pool")

	// ErrPoolStart 表示 pool 启动失败（通常是上一次关闭尚未完成）。
	ErrPoolStart = errors.New("xrun: pool failed to start")

	// ErrInvalidInterval 表示 Ticker 的间隔不是正数。
	ErrInvalidInterval = errors.New("xrun: interval must be positive")
)

// SignalError 携带触发退出的信号。
//
//	var sigErr *xrun.SignalError
//	if errors.As(err, &sigErr) {
//		fmt.Println(sigErr.Signal)
//	}
type SignalError struct {
	Signal os.Signal
}

// Error 实现 error 接口。
func (e *SignalError) Error() string {
	if e.Signal == nil {
		return "received signal <nil>"
	}
	return fmt.Sprintf("received signal %s", e.Signal)
}

// Unwrap 返回 ErrSignal。
func (e *SignalError) Unwrap() error {
	return ErrSignal
}
