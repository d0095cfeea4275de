package driver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/tilepath/astar"
)

// Metrics records search outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	outcomes   *prometheus.CounterVec
	iterations prometheus.Histogram
	active     prometheus.Gauge
}

// NewMetrics registers the tilepath search metrics with reg.
// Pass prometheus.DefaultRegisterer to expose them on the default /metrics handler.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		// outcomes counts resolved searches by "succeeded" or failure reason
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tilepath_search_outcomes_total",
			Help: "Resolved searches by outcome",
		}, []string{"outcome"}),
		iterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tilepath_search_iterations",
			Help:    "Iterations taken by resolved searches",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 to 2048
		}),
		active: f.NewGauge(prometheus.GaugeOpts{
			Name: "tilepath_scheduler_active_searches",
			Help: "Searches registered with a scheduler and not yet resolved",
		}),
	}
}

// Observe records the outcome of a resolved search.
func (m *Metrics) Observe(s Stepper) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(Outcome(s)).Inc()
	m.iterations.Observe(float64(s.Iterations()))
}

func (m *Metrics) activeInc() {
	if m != nil {
		m.active.Inc()
	}
}

func (m *Metrics) activeDec() {
	if m != nil {
		m.active.Dec()
	}
}

// Outcome labels a search: its phase while unresolved or on success, its
// failure reason otherwise.
func Outcome(s Stepper) string {
	if s.Phase() == astar.PhaseFailed {
		return s.Reason().String()
	}
	return s.Phase().String()
}
