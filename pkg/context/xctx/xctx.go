package xctx

import (
	"context"
	"errors"
)

// contextKey 包私有类型，避免与其他包的 context key 冲突。
type contextKey string

const (
	keyPool   contextKey = "xworker_pool"
	keyWorker contextKey = "xworker_worker"
	keyItem   contextKey = "xworker_item"
)

// 日志属性 Key 常量。
const (
	KeyPool    = "pool"
	KeyWorker  = "worker_id"
	KeyItem    = "item_seq"
	KeyTraceID = "trace_id"
	KeySpanID  = "span_id"
)

// ErrNilContext 表示传入的 context 为 nil。
var ErrNilContext = errors.New("xctx: nil context")

// WithPool 返回携带 pool 名称的 context。
// ctx 为 nil 时以 context.Background() 为父 context。
func WithPool(ctx context.Context, name string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, keyPool, name)
}

// Pool 返回 context 中的 pool 名称，不存在时返回空字符串。
func Pool(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(keyPool).(string)
	return v
}

// WithWorker 返回携带 worker 编号的 context。
func WithWorker(ctx context.Context, id int) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, keyWorker, id)
}

// Worker 返回 context 中的 worker 编号。
func Worker(ctx context.Context) (int, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(keyWorker).(int)
	return v, ok
}

// WithItem 返回携带任务序号的 context。
func WithItem(ctx context.Context, seq uint64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, keyItem, seq)
}

// Item 返回 context 中的任务序号。
func Item(ctx context.Context) (uint64, bool) {
	if ctx == nil {
		return 0, false
	}
	v, ok := ctx.Value(keyItem).(uint64)
	return v, ok
}

// RequireWorker 与 Worker 相同，但缺失时返回错误。
//
// 用于只应在 pool 内执行的代码路径做断言。
func RequireWorker(ctx context.Context) (int, error) {
	if ctx == nil {
		return 0, ErrNilContext
	}
	id, ok := Worker(ctx)
	if !ok {
		return 0, errors.New("xctx: missing worker_id")
	}
	return id, nil
}
