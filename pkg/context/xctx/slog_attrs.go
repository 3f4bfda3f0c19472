package xctx

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// MaxAttrs AppendAttrs 最多追加的属性数量。
const MaxAttrs = 5

// AppendAttrs 将 context 中的执行信息追加到 attrs 并返回。
//
// 追加顺序：pool、worker_id、item_seq、trace_id、span_id，仅追加存在的字段。
// trace 信息取自 OpenTelemetry 的 SpanContext。
func AppendAttrs(attrs []slog.Attr, ctx context.Context) []slog.Attr {
	if ctx == nil {
		return attrs
	}
	if v := Pool(ctx); v != "" {
		attrs = append(attrs, slog.String(KeyPool, v))
	}
	if v, ok := Worker(ctx); ok {
		attrs = append(attrs, slog.Int(KeyWorker, v))
	}
	if v, ok := Item(ctx); ok {
		attrs = append(attrs, slog.Uint64(KeyItem, v))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String(KeyTraceID, sc.TraceID().String()),
			slog.String(KeySpanID, sc.SpanID().String()),
		)
	}
	return attrs
}

// Attrs 返回 context 中的执行信息，没有任何字段时返回 nil。
func Attrs(ctx context.Context) []slog.Attr {
	attrs := AppendAttrs(make([]slog.Attr, 0, MaxAttrs), ctx)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
