package monitoring

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics. Every Record/Set method is safe on
// a nil receiver so managers can run without instrumentation.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec

	// File manager metrics
	FileOps        *prometheus.CounterVec
	FileOpDuration *prometheus.HistogramVec
	Navigations    *prometheus.CounterVec
	UndoOps        *prometheus.CounterVec
	UndoDepth      prometheus.Gauge
	RecycleItems   prometheus.Gauge
	ClipboardItems prometheus.Gauge
	MountedDrives  prometheus.Gauge

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot Snapshot

	mu sync.RWMutex
}

// Snapshot holds current metric values for the JSON API
type Snapshot struct {
	TotalRequests int64   `json:"total_requests"`
	TotalErrors   int64   `json:"total_errors"`
	FileOps       int64   `json:"file_ops"`
	FileOpErrors  int64   `json:"file_op_errors"`
	UndoDepth     int64   `json:"undo_depth"`
	RecycleItems  int64   `json:"recycle_items"`
	WSConnections int64   `json:"ws_connections"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// NewMetrics creates a metrics collector with its own registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenexplorer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zenexplorer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		// File manager metrics
		FileOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenexplorer_file_operations_total",
				Help: "Total number of file operations by kind and outcome",
			},
			[]string{"op", "status"},
		),
		FileOpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zenexplorer_file_operation_duration_seconds",
				Help:    "File operation duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 5},
			},
			[]string{"op"},
		),
		Navigations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenexplorer_navigations_total",
				Help: "Total number of navigation attempts by outcome",
			},
			[]string{"status"},
		),
		UndoOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenexplorer_undo_total",
				Help: "Total number of undo attempts by entry kind and outcome",
			},
			[]string{"kind", "status"},
		),
		UndoDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenexplorer_undo_depth",
				Help: "Number of entries on the undo stack",
			},
		),
		RecycleItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenexplorer_recycle_bin_items",
				Help: "Number of items in the recycle bin",
			},
		),
		ClipboardItems: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenexplorer_clipboard_items",
				Help: "Number of paths on the clipboard",
			},
		),
		MountedDrives: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenexplorer_mounted_drives",
				Help: "Number of mounted drive letters",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "zenexplorer_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zenexplorer_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "zenexplorer_uptime_seconds",
			Help: "Service uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RegisterEventDrops exposes a counter maintained elsewhere, such as the
// event bus drop count.
func (m *Metrics) RegisterEventDrops(count func() int64) {
	if m == nil {
		return
	}
	promauto.With(m.registry).NewCounterFunc(
		prometheus.CounterOpts{
			Name: "zenexplorer_events_dropped_total",
			Help: "Change notifications dropped because a subscriber was full",
		},
		func() float64 { return float64(count()) },
	)
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.TotalRequests++
	if status != "" && (status[0] == '4' || status[0] == '5') {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordFileOp records a file operation such as "paste" or "delete"
func (m *Metrics) RecordFileOp(op, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.FileOps.WithLabelValues(op, status).Inc()
	m.FileOpDuration.WithLabelValues(op).Observe(duration.Seconds())

	m.mu.Lock()
	m.snapshot.FileOps++
	if status == StatusError {
		m.snapshot.FileOpErrors++
	}
	m.mu.Unlock()
}

// RecordNavigation records a navigation outcome
func (m *Metrics) RecordNavigation(status string) {
	if m == nil {
		return
	}
	m.Navigations.WithLabelValues(status).Inc()
}

// RecordUndo records an undo attempt
func (m *Metrics) RecordUndo(kind, status string) {
	if m == nil {
		return
	}
	m.UndoOps.WithLabelValues(kind, status).Inc()
}

// SetUndoDepth sets the undo stack depth
func (m *Metrics) SetUndoDepth(depth int) {
	if m == nil {
		return
	}
	m.UndoDepth.Set(float64(depth))
	m.mu.Lock()
	m.snapshot.UndoDepth = int64(depth)
	m.mu.Unlock()
}

// SetRecycleItems sets the number of recycled items
func (m *Metrics) SetRecycleItems(count int) {
	if m == nil {
		return
	}
	m.RecycleItems.Set(float64(count))
	m.mu.Lock()
	m.snapshot.RecycleItems = int64(count)
	m.mu.Unlock()
}

// SetClipboardItems sets the number of clipboard paths
func (m *Metrics) SetClipboardItems(count int) {
	if m == nil {
		return
	}
	m.ClipboardItems.Set(float64(count))
}

// SetMountedDrives sets the number of mounted drives
func (m *Metrics) SetMountedDrives(count int) {
	if m == nil {
		return
	}
	m.MountedDrives.Set(float64(count))
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	if m == nil {
		return
	}
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.WSConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	if m == nil {
		return
	}
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.WSConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON API
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := m.snapshot
	snap.UptimeSeconds = time.Since(m.startTime).Seconds()
	return snap
}
