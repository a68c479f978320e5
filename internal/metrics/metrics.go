package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks frontier computations and lookups.
type Metrics struct {
	Computations    *prometheus.CounterVec
	ComputeDuration prometheus.Histogram
	InputPoints     prometheus.Histogram
	FrontierSize    prometheus.Histogram
	Lookups         *prometheus.CounterVec
	Renders         *prometheus.CounterVec
}

var sizeBuckets = prometheus.ExponentialBuckets(1, 4, 10)

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Computations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_computations_total",
			Help: "Frontier extractions, by kind (points or indices) and outcome",
		}, []string{"kind", "outcome"}),
		ComputeDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "frontier_compute_duration_seconds",
			Help:    "Duration of a single frontier extraction",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		InputPoints: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "frontier_input_points",
			Help:    "Number of input points per extraction",
			Buckets: sizeBuckets,
		}),
		FrontierSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "frontier_size",
			Help:    "Number of points on each extracted frontier",
			Buckets: sizeBuckets,
		}),
		Lookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_lookups_total",
			Help: "Frontier lookups by axis and whether a point qualified",
		}, []string{"axis", "result"}),
		Renders: f.NewCounterVec(prometheus.CounterOpts{
			Name: "frontier_renders_total",
			Help: "Rendered frontier plots by format",
		}, []string{"format"}),
	}
}

// ObserveComputation records one extraction. Call with time.Now() taken
// before the extraction started.
func (m *Metrics) ObserveComputation(kind string, start time.Time, inputs, size int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.Computations.WithLabelValues(kind, outcome).Inc()
	if err != nil {
		return
	}
	m.ComputeDuration.Observe(time.Since(start).Seconds())
	m.InputPoints.Observe(float64(inputs))
	m.FrontierSize.Observe(float64(size))
}

// ObserveLookup records a lookup on axis "x" or "y".
func (m *Metrics) ObserveLookup(axis string, found bool) {
	result := "hit"
	if !found {
		result = "empty"
	}
	m.Lookups.WithLabelValues(axis, result).Inc()
}

func (m *Metrics) ObserveRender(format string) {
	m.Renders.WithLabelValues(format).Inc()
}
