// Package metrics collects Prometheus metrics for the preference
// strategies: computation counts and durations, emitted list lengths,
// suppressed solver failures, and assignment matrix sizes.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector gathers Prometheus metrics for preference computations. All
// record methods are nil-safe so strategies can run without metrics
// wired (library use) and with them (the simulation binary).
type Collector struct {
	computationsTotal *prometheus.CounterVec
	computeDuration   *prometheus.HistogramVec
	preferenceLength  *prometheus.HistogramVec
	solverFailures    *prometheus.CounterVec
	matrixColumns     prometheus.Histogram

	logger *zap.Logger
}

// NewCollector creates a collector registered on the default registerer.
func NewCollector(namespace string, logger *zap.Logger) *Collector {
	return NewCollectorWith(namespace, prometheus.DefaultRegisterer, logger)
}

// NewCollectorWith creates a collector registered on the given
// registerer. Tests pass a fresh registry to avoid duplicate
// registration across cases.
func NewCollectorWith(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.computationsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "preference_computations_total",
			Help:      "Total number of preference computations",
		},
		[]string{"strategy", "phase"},
	)

	c.computeDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "preference_compute_duration_seconds",
			Help:      "Preference computation duration in seconds",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"strategy", "phase"},
	)

	c.preferenceLength = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "preference_list_length",
			Help:      "Length of emitted preference lists",
			Buckets:   prometheus.LinearBuckets(0, 2, 11),
		},
		[]string{"strategy", "phase"},
	)

	c.solverFailures = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solver_failures_total",
			Help:      "Internal failures suppressed at the preference boundary",
		},
		[]string{"strategy", "phase", "reason"},
	)

	c.matrixColumns = factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assignment_matrix_columns",
			Help:      "Column count of assignment cost matrices (pairs + individuals)",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	logger.Info("metrics collector initialized", zap.String("namespace", namespace))

	return c
}

// RecordComputation records one completed preference computation and the
// length of the list it returned.
func (c *Collector) RecordComputation(strategy, phase string, listLen int, duration time.Duration) {
	if c == nil {
		return
	}
	c.computationsTotal.WithLabelValues(strategy, phase).Inc()
	c.computeDuration.WithLabelValues(strategy, phase).Observe(duration.Seconds())
	c.preferenceLength.WithLabelValues(strategy, phase).Observe(float64(listLen))
}

// RecordSolverFailure counts an internal fault that was converted to an
// empty preference list at the boundary. Degenerate-but-valid empty
// results are not failures and go through RecordComputation instead.
func (c *Collector) RecordSolverFailure(strategy, phase, reason string) {
	if c == nil {
		return
	}
	c.solverFailures.WithLabelValues(strategy, phase, reason).Inc()
}

// RecordMatrixBuild records the column count of a freshly built
// assignment matrix. Column growth is quadratic in agent count.
func (c *Collector) RecordMatrixBuild(columns int) {
	if c == nil {
		return
	}
	c.matrixColumns.Observe(float64(columns))
}
