package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	simulationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsim_simulations_total",
			Help: "Total number of simulation runs by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	simulationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "finsim_simulation_duration_seconds",
			Help:    "Duration of simulation runs by kind",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"kind"},
	)

	cacheResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "finsim_projection_cache_results_total",
			Help: "Projection cache lookups by result",
		},
		[]string{"result"},
	)
)

// SimulationTimer starts a duration observation for one simulation run.
// kind is "base" or "stress".
func SimulationTimer(kind string) *prometheus.Timer {
	return prometheus.NewTimer(simulationDuration.WithLabelValues(kind))
}

// SimulationCompleted counts a successful run.
func SimulationCompleted(kind string) {
	simulationsTotal.WithLabelValues(kind, "ok").Inc()
}

// SimulationFailed counts a failed run.
func SimulationFailed(kind string) {
	simulationsTotal.WithLabelValues(kind, "error").Inc()
}

// CacheHit counts a projection cache hit.
func CacheHit() {
	cacheResults.WithLabelValues("hit").Inc()
}

// CacheMiss counts a projection cache miss.
func CacheMiss() {
	cacheResults.WithLabelValues("miss").Inc()
}
