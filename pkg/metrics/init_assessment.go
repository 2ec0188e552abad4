package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initAssessmentMetrics() {
	r.AssessmentsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "riskengine_assessments_total",
			Help: "Total number of risk assessments requested",
		},
		[]string{"status"},
	)

	r.AssessmentDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riskengine_assessment_duration_seconds",
			Help:    "End-to-end assessment duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0, 120.0},
		},
	)

	r.AssessmentRisks = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riskengine_assessment_risks",
			Help:    "Number of risks per assessment",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
		},
	)

	r.CacheHitsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "riskengine_report_cache_hits_total",
			Help: "Assessments served from the fingerprint cache",
		},
	)

	r.CacheMissesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "riskengine_report_cache_misses_total",
			Help: "Assessments computed because no cached report matched",
		},
	)
}

func (r *Registry) initAnalysisMetrics() {
	r.AnalysisNetworkNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "riskengine_analysis_network_nodes",
			Help: "Node count of the most recent correlation network",
		},
	)

	r.AnalysisNetworkEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "riskengine_analysis_network_edges",
			Help: "Edge count of the most recent correlation network",
		},
	)

	r.AnalysisNetworkDensity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "riskengine_analysis_network_density",
			Help: "Density of the most recent correlation network",
		},
	)

	r.AnalysisClustersFound = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "riskengine_analysis_clusters_found",
			Help:    "Risk clusters detected per multi-risk assessment",
			Buckets: []float64{0, 1, 2, 5, 10, 25},
		},
	)
}
