package xworker

import (
	"github.com/prometheus/client_golang/prometheus"
)

const promNamespace = "xworker"

// Collector 将一个或多个 Pool 的 Stats 导出为 Prometheus 指标。
//
//	reg := prometheus.NewRegistry()
//	reg.MustRegister(xworker.NewCollector(pool))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
type Collector struct {
	pools []*Pool

	workers   *prometheus.Desc
	available *prometheus.Desc
	queued    *prometheus.Desc
	active    *prometheus.Desc
	running   *prometheus.Desc
	items     *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector 创建 Collector，nil pool 被忽略。
func NewCollector(pools ...*Pool) *Collector {
	c := &Collector{
		workers: prometheus.NewDesc(prometheus.BuildFQName(promNamespace, "", "workers"),
			"Configured number of workers.", []string{attrPool}, nil),
		available: prometheus.NewDesc(prometheus.BuildFQName(promNamespace, "", "available_workers"),
			"Workers free to accept an item.", []string{attrPool}, nil),
		queued: prometheus.NewDesc(prometheus.BuildFQName(promNamespace, "", "queued_items"),
			"Accepted items waiting for a worker.", []string{attrPool}, nil),
		active: prometheus.NewDesc(prometheus.BuildFQName(promNamespace, "", "active_items"),
			"Items currently executing.", []string{attrPool}, nil),
		running: prometheus.NewDesc(prometheus.BuildFQName(promNamespace, "", "started"),
			"1 if the pool is running or stopping.", []string{attrPool, "state"}, nil),
		items: prometheus.NewDesc(prometheus.BuildFQName(promNamespace, "", "items_total"),
			"Work items by outcome.", []string{attrPool, attrResult}, nil),
	}
	for _, p := range pools {
		if p != nil {
			c.pools = append(c.pools, p)
		}
	}
	return c
}

// Describe 实现 prometheus.Collector。
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.workers
	ch <- c.available
	ch <- c.queued
	ch <- c.active
	ch <- c.running
	ch <- c.items
}

// Collect 实现 prometheus.Collector。
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for _, p := range c.pools {
		s := p.Stats()
		name := s.Name

		ch <- prometheus.MustNewConstMetric(c.workers, prometheus.GaugeValue, float64(s.Workers), name)
		ch <- prometheus.MustNewConstMetric(c.available, prometheus.GaugeValue, float64(s.Available), name)
		ch <- prometheus.MustNewConstMetric(c.queued, prometheus.GaugeValue, float64(s.Queued), name)
		ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(s.Active), name)

		started := 0.0
		if s.State != StateIdle {
			started = 1
		}
		ch <- prometheus.MustNewConstMetric(c.running, prometheus.GaugeValue, started, name, s.State.String())

		for _, kv := range []struct {
			result string
			v      uint64
		}{
			{resultAccepted, s.Accepted},
			{"rejected", s.Rejected},
			{resultOK, s.Completed},
			{resultPanic, s.Panicked},
			{"abandoned", s.Abandoned},
		} {
			ch <- prometheus.MustNewConstMetric(c.items, prometheus.CounterValue, float64(kv.v), name, kv.result)
		}
	}
}
