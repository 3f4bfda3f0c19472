package xworker

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v5"
)

// 默认重提交参数。
const (
	DefaultRetryAttempts = 5
	DefaultRetryDelay    = 10 * time.Millisecond
	DefaultRetryMaxDelay = 500 * time.Millisecond
)

// RetryOption SubmitRetry 的配置选项。
type RetryOption func(*retryConfig)

type retryConfig struct {
	attempts uint
	delay    time.Duration
	maxDelay time.Duration
	onRetry  func(attempt int, err error)
}

// WithRetryAttempts 设置最大提交次数（含首次），0 被忽略。
func WithRetryAttempts(n uint) RetryOption {
	return func(c *retryConfig) {
		if n > 0 {
			c.attempts = n
		}
	}
}

// WithRetryDelay 设置初始退避间隔。
func WithRetryDelay(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d > 0 {
			c.delay = d
		}
	}
}

// WithRetryMaxDelay 设置退避间隔上限。
func WithRetryMaxDelay(d time.Duration) RetryOption {
	return func(c *retryConfig) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// WithOnRetry 设置每次重提交前的回调，attempt 从 1 开始。
func WithOnRetry(fn func(attempt int, err error)) RetryOption {
	return func(c *retryConfig) {
		c.onRetry = fn
	}
}

// submitter 能返回拒绝原因的执行器。
type submitter interface {
	TrySubmit(item WorkItem) error
}

// SubmitRetry 提交任务，在 ErrCapacityExhausted 时按指数退避重试。
//
// 其余拒绝原因（ErrNotAccepting、ErrNilItem）立即返回。
// 尝试次数用尽后返回最后一次的错误；ctx 结束时返回 ctx 的错误。
func SubmitRetry(ctx context.Context, w Worker, item WorkItem, opts ...RetryOption) error {
	if ctx == nil {
		return ErrNilContext
	}
	if w == nil {
		return ErrNilWorker
	}
	if item == nil {
		return ErrNilItem
	}

	cfg := retryConfig{
		attempts: DefaultRetryAttempts,
		delay:    DefaultRetryDelay,
		maxDelay: DefaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return retry.New(
		retry.Context(ctx),
		retry.Attempts(cfg.attempts),
		retry.Delay(cfg.delay),
		retry.MaxDelay(cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, ErrCapacityExhausted)
		}),
		retry.OnRetry(func(n uint, err error) {
			if cfg.onRetry != nil {
				cfg.onRetry(int(n)+1, err)
			}
		}),
	).Do(func() error {
		return trySubmit(w, item)
	})
}

// trySubmit 对不提供 TrySubmit 的执行器按 Started 推断拒绝原因。
func trySubmit(w Worker, item WorkItem) error {
	if s, ok := w.(submitter); ok {
		return s.TrySubmit(item)
	}
	if w.DoWork(item) {
		return nil
	}
	if !w.Started() {
		return ErrNotAccepting
	}
	return ErrCapacityExhausted
}
