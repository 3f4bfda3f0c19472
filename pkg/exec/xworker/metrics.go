package xworker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/omeyang/xworker/xworker"

	metricSubmissions  = "xworker.submissions"
	metricItems        = "xworker.items"
	metricItemDuration = "xworker.item.duration"
	metricQueueWait    = "xworker.queue.wait"
	metricAvailable    = "xworker.workers.available"
	metricQueued       = "xworker.items.queued"
	metricActive       = "xworker.items.active"

	spanItem = "xworker.item"

	attrPool   = "pool"
	attrResult = "result"
	attrWorker = "worker"
	attrItem   = "item"

	resultAccepted     = "accepted"
	resultNotAccepting = "not_accepting"
	resultCapacity     = "capacity_exhausted"
	resultNilItem      = "nil_item"
	resultOK           = "ok"
	resultPanic        = "panic"
)

// poolMetrics OpenTelemetry 指标与追踪。
type poolMetrics struct {
	tracer      trace.Tracer
	pool        attribute.KeyValue
	submissions metric.Int64Counter
	items       metric.Int64Counter
	duration    metric.Float64Histogram
	wait        metric.Float64Histogram
}

func newPoolMetrics(p *Pool, mp metric.MeterProvider, tp trace.TracerProvider) (*poolMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	meter := mp.Meter(instrumentationName)
	m := &poolMetrics{
		tracer: tp.Tracer(instrumentationName),
		pool:   attribute.String(attrPool, p.name),
	}

	var err error
	if m.submissions, err = meter.Int64Counter(metricSubmissions,
		metric.WithDescription("work item submissions by result"),
		metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSubmissions, err)
	}
	if m.items, err = meter.Int64Counter(metricItems,
		metric.WithDescription("executed work items by result"),
		metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create %s: %w", metricItems, err)
	}
	if m.duration, err = meter.Float64Histogram(metricItemDuration,
		metric.WithDescription("work item execution time"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create %s: %w", metricItemDuration, err)
	}
	if m.wait, err = meter.Float64Histogram(metricQueueWait,
		metric.WithDescription("time between acceptance and dispatch"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create %s: %w", metricQueueWait, err)
	}

	available, err := meter.Int64ObservableGauge(metricAvailable,
		metric.WithDescription("workers free to accept an item"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricAvailable, err)
	}
	queued, err := meter.Int64ObservableGauge(metricQueued,
		metric.WithDescription("accepted items waiting for a worker"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricQueued, err)
	}
	active, err := meter.Int64ObservableGauge(metricActive,
		metric.WithDescription("items currently executing"))
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricActive, err)
	}

	attrs := metric.WithAttributes(m.pool)
	if _, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		s := p.Stats()
		o.ObserveInt64(available, int64(s.Available), attrs)
		o.ObserveInt64(queued, int64(s.Queued), attrs)
		o.ObserveInt64(active, int64(s.Active), attrs)
		return nil
	}, available, queued, active); err != nil {
		return nil, fmt.Errorf("register gauges: %w", err)
	}
	return m, nil
}

func (m *poolMetrics) submitted(result string) {
	m.submissions.Add(context.Background(), 1,
		metric.WithAttributes(m.pool, attribute.String(attrResult, result)))
}

func (m *poolMetrics) queueWait(d time.Duration) {
	m.wait.Record(context.Background(), d.Seconds(), metric.WithAttributes(m.pool))
}

func (m *poolMetrics) startItem(ctx context.Context, worker int, seq uint64) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, spanItem,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(m.pool,
			attribute.Int(attrWorker, worker),
			attribute.Int64(attrItem, clampInt64(seq))))
}

// endItem 结束 span 并记录执行结果。ctx 可能已被 Interrupt 取消。
func (m *poolMetrics) endItem(ctx context.Context, span trace.Span, elapsed time.Duration, perr *PanicError) {
	result := resultOK
	if perr != nil {
		result = resultPanic
		span.RecordError(perr)
		span.SetStatus(codes.Error, "work item panicked")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()

	mctx := context.WithoutCancel(ctx)
	attrs := metric.WithAttributes(m.pool, attribute.String(attrResult, result))
	m.items.Add(mctx, 1, attrs)
	m.duration.Record(mctx, elapsed.Seconds(), attrs)
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExhausted):
		return resultCapacity
	case errors.Is(err, ErrNilItem):
		return resultNilItem
	default:
		return resultNotAccepting
	}
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}
