package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/flexmark/pkg/marker"
)

// Cache lookup results.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
)

// Metrics holds the engine's collectors.
type Metrics struct {
	Marks          *prometheus.CounterVec
	Removed        prometheus.Counter
	RenderDuration *prometheus.HistogramVec
	CacheRequests  *prometheus.CounterVec
}

// NewMetrics creates unregistered collectors.
func NewMetrics() *Metrics {
	return &Metrics{
		Marks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flexmark_marks_total",
				Help: "Total number of mark nodes created",
			},
			[]string{"pass"},
		),
		Removed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "flexmark_nodes_removed_total",
				Help: "Total number of empty spans removed",
			},
		),
		RenderDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "flexmark_render_duration_seconds",
				Help:    "Duration of document renders",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"format"},
		),
		CacheRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "flexmark_cache_requests_total",
				Help: "Total number of render cache lookups",
			},
			[]string{"result"},
		),
	}
}

// Register registers every collector with reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Marks, m.Removed, m.RenderDuration, m.CacheRequests} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Hooks returns transformer hooks feeding the mark and removal counters.
func (m *Metrics) Hooks() marker.Hooks {
	return marker.Hooks{
		OnMark: func(e *marker.MarkEvent) {
			m.Marks.WithLabelValues(string(e.Pass)).Inc()
		},
		OnPassEnd: func(e *marker.PassEvent) {
			// Removals create no mark, so they are read from the run's counters.
			if e.Pass == marker.PassEmpty && e.Stats.Removed > 0 {
				m.Removed.Add(float64(e.Stats.Removed))
			}
		},
	}
}

// ObserveRender records the duration of a render in format.
func (m *Metrics) ObserveRender(format string, d time.Duration) {
	m.RenderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	result := CacheMiss
	if hit {
		result = CacheHit
	}
	m.CacheRequests.WithLabelValues(result).Inc()
}
