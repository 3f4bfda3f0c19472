package xlog

import (
	"log/slog"
	"time"

	"github.com/omeyang/xworker/pkg/context/xctx"
)

// 常用属性 Key 常量
const (
	KeyError     = "error"
	KeyStack     = "stack"
	KeyDuration  = "duration"
	KeyCount     = "count"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyState     = "state"
	KeyPanic     = "panic"

	// 与 xctx 注入的字段保持一致
	KeyPool   = xctx.KeyPool
	KeyWorker = xctx.KeyWorker
	KeyItem   = xctx.KeyItem
)

// Err 创建错误属性，err 为 nil 时返回空属性（会被 slog 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Duration 创建耗时属性，输出人类可读格式（如 "1.5s"）。
func Duration(d time.Duration) slog.Attr {
	return slog.String(KeyDuration, d.String())
}

// Component 创建组件名属性
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// Operation 创建操作名属性
func Operation(name string) slog.Attr {
	return slog.String(KeyOperation, name)
}

// Count 创建计数属性
func Count(n int64) slog.Attr {
	return slog.Int64(KeyCount, n)
}

// Pool 创建 pool 名称属性
func Pool(name string) slog.Attr {
	return slog.String(KeyPool, name)
}

// Worker 创建 worker 编号属性
func Worker(id int) slog.Attr {
	return slog.Int(KeyWorker, id)
}

// Item 创建任务序号属性
func Item(seq uint64) slog.Attr {
	return slog.Uint64(KeyItem, seq)
}

// State 创建生命周期状态属性，接受任何 fmt.Stringer（如 xworker.State）。
func State(s interface{ String() string }) slog.Attr {
	if s == nil {
		return slog.String(KeyState, "")
	}
	return slog.String(KeyState, s.String())
}

// Panic 创建 panic 值属性
func Panic(v any) slog.Attr {
	return slog.Any(KeyPanic, v)
}
