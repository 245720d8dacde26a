// Package metrics provides observability for the screening module.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects screening latencies and outcomes.
type Metrics struct {
	// Per-identity match latencies by source
	MatchLatency *prometheus.HistogramVec

	// Final dispositions per screening run
	Dispositions *prometheus.CounterVec

	// Overall screening latency including identity collection
	ScreenLatency prometheus.Histogram
}

// New creates a Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		MatchLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swiftscreen_match_duration_seconds",
			Help:    "Duration of per-identity match operations by source",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}, []string{"source"}), // source: "watchlist", "blacklist"

		Dispositions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "swiftscreen_dispositions_total",
			Help: "Total screening runs by resulting disposition",
		}, []string{"disposition"}),

		ScreenLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "swiftscreen_screen_duration_seconds",
			Help:    "Duration of full screening runs including identity collection",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveMatchLatency records the duration of matching one identity against a source.
func (m *Metrics) ObserveMatchLatency(source string, d time.Duration) {
	if m != nil {
		m.MatchLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementDisposition records a screening outcome.
func (m *Metrics) IncrementDisposition(disposition string) {
	if m != nil {
		m.Dispositions.WithLabelValues(disposition).Inc()
	}
}

// ObserveScreenLatency records the total screening duration.
func (m *Metrics) ObserveScreenLatency(d time.Duration) {
	if m != nil {
		m.ScreenLatency.Observe(d.Seconds())
	}
}
