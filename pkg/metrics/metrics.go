package metrics

import (
	"time"
)

// RecordSimulation records one completed (or failed) simulation run.
func (r *Registry) RecordSimulation(distribution, status string, duration time.Duration, samples int) {
	r.SimulationsTotal.WithLabelValues(distribution, status).Inc()
	r.SimulationDuration.WithLabelValues(distribution).Observe(duration.Seconds())
	if samples > 0 {
		r.SimulationSamples.WithLabelValues(distribution).Observe(float64(samples))
		r.SamplesDrawnTotal.Add(float64(samples))
	}
}

// SimulationStarted marks a simulation as in flight. The returned function
// marks it finished.
func (r *Registry) SimulationStarted() func() {
	r.SimulationsInFlight.Inc()
	return r.SimulationsInFlight.Dec
}

// RecordAssessment records one assessment request.
func (r *Registry) RecordAssessment(status string, duration time.Duration, risks int) {
	r.AssessmentsTotal.WithLabelValues(status).Inc()
	r.AssessmentDuration.Observe(duration.Seconds())
	r.AssessmentRisks.Observe(float64(risks))
}

// RecordCacheHit counts an assessment served from the fingerprint cache.
func (r *Registry) RecordCacheHit() {
	r.CacheHitsTotal.Inc()
}

// RecordCacheMiss counts an assessment that had to be computed.
func (r *Registry) RecordCacheMiss() {
	r.CacheMissesTotal.Inc()
}

// UpdateNetworkMetrics publishes the shape of the latest correlation network.
func (r *Registry) UpdateNetworkMetrics(nodes, edges int, density float64) {
	r.AnalysisNetworkNodes.Set(float64(nodes))
	r.AnalysisNetworkEdges.Set(float64(edges))
	r.AnalysisNetworkDensity.Set(density)
}

// RecordClusters records how many clusters a multi-risk analysis found.
func (r *Registry) RecordClusters(count int) {
	r.AnalysisClustersFound.Observe(float64(count))
}
