package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omeyang/xworker/internal/config"
	"github.com/omeyang/xworker/pkg/exec/xworker"
	"github.com/omeyang/xworker/pkg/lifecycle/xrun"
	"github.com/omeyang/xworker/pkg/observability/xlog"
)

const shutdownTimeout = 5 * time.Second

// serve 常驻运行 pool，按 interval 提交示例任务，直到收到信号或 ctx 取消。
func serve(ctx context.Context, s *settings, interval time.Duration) error {
	cfg := s.cfg
	pool, err := xworker.New(
		xworker.WithWorkers(cfg.Pool.Workers),
		xworker.WithName(cfg.Pool.Name),
		xworker.WithLogger(s.log),
	)
	if err != nil {
		return &usageError{err: err}
	}

	if s.configPath != "" {
		w, err := config.Watch(s.configPath, reloadLevel(ctx, s.log), 0)
		if err != nil {
			s.log.Warn(ctx, "config watch disabled", xlog.Err(err))
		} else {
			defer func() { _ = w.Close() }()
		}
	}

	services := []func(context.Context) error{
		xrun.PoolService(pool),
		xrun.Ticker(interval, false, feeder(pool, s.log, cfg.Demo)),
	}
	if cfg.Metrics.Addr != "" {
		services = append(services, xrun.HTTPServer(metricsServer(cfg.Metrics.Addr, pool), shutdownTimeout))
		s.log.Info(ctx, "metrics endpoint enabled", slog.String("addr", cfg.Metrics.Addr))
	}

	err = xrun.RunWithOptions(ctx, []xrun.Option{xrun.WithName("xworkerdemo"), xrun.WithLogger(s.log)}, services...)
	st := pool.Stats()
	s.log.Info(ctx, "serve finished",
		slog.Uint64("completed", st.Completed),
		slog.Uint64("rejected", st.Rejected),
		slog.Uint64("abandoned", st.Abandoned))

	// 信号或调用方取消都属于正常退出
	if err == nil || errors.Is(err, xrun.ErrSignal) || ctx.Err() != nil {
		return nil
	}
	return err
}

// feeder 每次调用提交一个示例任务，没有空闲 worker 时跳过。
func feeder(pool *xworker.Pool, log xlog.Logger, demo config.Demo) func(context.Context) error {
	var seq atomic.Int64
	return func(ctx context.Context) error {
		n := seq.Add(1)
		err := pool.TrySubmitContext(func(ctx context.Context) {
			for i := 0; i < demo.Steps; i++ {
				log.Debug(ctx, "job step", slog.Int64("job", n), slog.Int("step", i))
				t := time.NewTimer(demo.Step)
				select {
				case <-t.C:
				case <-ctx.Done():
					t.Stop()
					return
				}
			}
		})
		switch {
		case err == nil, errors.Is(err, xworker.ErrCapacityExhausted):
			return nil
		case errors.Is(err, xworker.ErrNotAccepting):
			// pool 尚未启动或正在关闭
			return nil
		default:
			return err
		}
	}
}

// reloadLevel 配置文件变更时更新日志级别。
func reloadLevel(ctx context.Context, log xlog.LoggerWithLevel) func(config.Config, error) {
	return func(cfg config.Config, err error) {
		if err != nil {
			log.Warn(ctx, "config reload failed", xlog.Err(err))
			return
		}
		level, err := xlog.ParseLevel(cfg.Log.Level)
		if err != nil {
			return
		}
		log.SetLevel(level)
		log.Info(ctx, "log level reloaded", slog.String("level", level.String()))
	}
}

func metricsServer(addr string, pool *xworker.Pool) *http.Server {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		xworker.NewCollector(pool),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
}
