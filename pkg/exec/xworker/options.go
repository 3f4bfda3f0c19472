package xworker

import (
	"context"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/omeyang/xworker/pkg/observability/xlog"
)

const (
	// DefaultWorkers 默认 worker 数量。
	DefaultWorkers = 2
	// MaxWorkers worker 数量上限。
	MaxWorkers = 1 << 16
)

// Option 定义 Pool 可选配置函数类型。
type Option func(*options)

type options struct {
	workers        int
	name           string
	logger         xlog.Logger
	onPanic        func(*PanicError)
	meterProvider  metric.MeterProvider
	tracerProvider trace.TracerProvider
	baseCtx        context.Context
}

func defaultOptions() options {
	return options{
		workers: DefaultWorkers,
		name:    "xworker",
		baseCtx: context.Background(),
	}
}

// WithWorkers 设置 worker 数量，范围 [1, MaxWorkers]，默认 2。
// 超出范围时 New 返回 ErrInvalidWorkers。
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithName 设置 pool 名称，用于日志、指标和任务 context。空字符串被忽略。
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithLogger 设置日志记录器，默认使用 xlog.Default()。nil 被忽略。
func WithLogger(logger xlog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithPanicHandler 设置任务 panic 回调。
//
// 回调在执行任务的 worker goroutine 上同步调用，回调自身的 panic 会被吞掉。
func WithPanicHandler(fn func(*PanicError)) Option {
	return func(o *options) {
		o.onPanic = fn
	}
}

// WithMeterProvider 设置 OpenTelemetry MeterProvider，默认使用全局 provider。
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		if mp != nil {
			o.meterProvider = mp
		}
	}
}

// WithTracerProvider 设置 OpenTelemetry TracerProvider，默认使用全局 provider。
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracerProvider = tp
		}
	}
}

// WithBaseContext 设置任务 context 的父 context（只继承其中的值）。
func WithBaseContext(ctx context.Context) Option {
	return func(o *options) {
		if ctx != nil {
			o.baseCtx = ctx
		}
	}
}
