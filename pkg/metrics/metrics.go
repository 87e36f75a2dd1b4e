package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service counters. Hot paths bump atomics; Prometheus
// reads them through counter and gauge funcs.
type Metrics struct {
	// Frame pipeline
	FramesIngested atomic.Uint64
	FramesSent     atomic.Uint64
	FramesDropped  atomic.Uint64
	Placeholders   atomic.Uint64
	StreamClients  atomic.Int64

	// ROI feed and editor sessions
	FeedSubscribers atomic.Int64
	EditorSessions  atomic.Int64

	ROIOperations *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec

	registry *prometheus.Registry
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ROIOperations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servetrack_roi_operations_total",
			Help: "ROI reads, saves and deletes by outcome",
		}, []string{"operation", "outcome"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "servetrack_roi_cache_lookups_total",
			Help: "ROI cache lookups by result",
		}, []string{"result"}),
	}

	m.registry.MustRegister(m.ROIOperations, m.CacheLookups)
	m.registerFuncs()

	return m
}

func (m *Metrics) registerFuncs() {
	type fn struct {
		name string
		help string
		read func() float64
	}

	counters := []fn{
		{"servetrack_stream_frames_ingested_total", "Frames pushed by the detector", func() float64 { return float64(m.FramesIngested.Load()) }},
		{"servetrack_stream_frames_sent_total", "Frames written to MJPEG clients", func() float64 { return float64(m.FramesSent.Load()) }},
		{"servetrack_stream_frames_dropped_total", "Frames dropped for slow MJPEG clients", func() float64 { return float64(m.FramesDropped.Load()) }},
		{"servetrack_stream_placeholders_total", "Placeholder frames sent while the detector was idle", func() float64 { return float64(m.Placeholders.Load()) }},
	}
	for _, c := range counters {
		m.registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{Name: c.name, Help: c.help}, c.read))
	}

	gauges := []fn{
		{"servetrack_stream_clients", "Connected MJPEG clients", func() float64 { return float64(m.StreamClients.Load()) }},
		{"servetrack_roi_feed_subscribers", "Connected ROI change feed subscribers", func() float64 { return float64(m.FeedSubscribers.Load()) }},
		{"servetrack_editor_sessions", "Open ROI editor sessions", func() float64 { return float64(m.EditorSessions.Load()) }},
	}
	for _, g := range gauges {
		m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: g.name, Help: g.help}, g.read))
	}
}

// ObserveROI records one ROI operation outcome.
func (m *Metrics) ObserveROI(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.ROIOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if hit {
		m.CacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.CacheLookups.WithLabelValues("miss").Inc()
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
