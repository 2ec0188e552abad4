package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the risk engine
type Registry struct {
	// Simulation Metrics
	SimulationsTotal    *prometheus.CounterVec
	SimulationDuration  *prometheus.HistogramVec
	SimulationSamples   *prometheus.HistogramVec
	SamplesDrawnTotal   prometheus.Counter
	SimulationsInFlight prometheus.Gauge

	// Assessment Metrics
	AssessmentsTotal   *prometheus.CounterVec
	AssessmentDuration prometheus.Histogram
	AssessmentRisks    prometheus.Histogram
	CacheHitsTotal     prometheus.Counter
	CacheMissesTotal   prometheus.Counter

	// Analysis Metrics
	AnalysisNetworkNodes   prometheus.Gauge
	AnalysisNetworkEdges   prometheus.Gauge
	AnalysisNetworkDensity prometheus.Gauge
	AnalysisClustersFound  prometheus.Histogram

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	// Initialize all metrics
	r.initSimulationMetrics()
	r.initAssessmentMetrics()
	r.initAnalysisMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
