package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "fast_note"

// Metrics Prometheus 指标集合
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	NoteOps      *prometheus.CounterVec
	NotesTotal   prometheus.Gauge
}

// New creates the collectors on a fresh registry so a reloaded server does not re-register
// New 在独立的 Registry 上创建指标
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		NoteOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "note_operations_total",
			Help:      "Note store operations by kind and result.",
		}, []string{"op", "result"}),
		NotesTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "notes",
			Help:      "Number of notes seen at the last count.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.NoteOps,
		m.NotesTotal,
	)
	return m
}

// ObserveNoteOp 记录一次笔记操作
func (m *Metrics) ObserveNoteOp(op string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.NoteOps.WithLabelValues(op, result).Inc()
}

// SetNotesTotal 更新笔记总数
func (m *Metrics) SetNotesTotal(n int64) {
	if m == nil {
		return
	}
	m.NotesTotal.Set(float64(n))
}
