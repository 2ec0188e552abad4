package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskengine_simulations_total",
			Help: "Total number of Monte Carlo simulations run",
		},
		[]string{"distribution", "status"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskengine_simulation_duration_seconds",
			Help:    "Simulation wall-clock duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"distribution"},
	)

	r.SimulationSamples = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "riskengine_simulation_samples",
			Help:    "Number of samples drawn per simulation",
			Buckets: []float64{100, 1000, 10000, 100000},
		},
		[]string{"distribution"},
	)

	r.SamplesDrawnTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "riskengine_samples_drawn_total",
			Help: "Total number of severity samples drawn",
		},
	)

	r.SimulationsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "riskengine_simulations_in_flight",
			Help: "Number of simulations currently running",
		},
	)
}
