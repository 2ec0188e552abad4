// Package systemic derives system-level risk indicators from the shape of
// the correlation network and the detected clusters: risk that emerges from
// interconnection rather than from any single record.
package systemic

import (
	"github.com/riskforge/riskengine/pkg/clustering"
	"github.com/riskforge/riskengine/pkg/correlation"
)

// Weighting constants for the indicator formulas. Documented design choice:
// contagion leans on how densely connected the network is, vulnerability on
// how much of the portfolio sits inside high-risk clusters, and resilience
// is the complement of their weighted combination.
const (
	contagionDensityWeight = 0.6
	contagionClusterWeight = 0.4

	highRiskClusterScore = 0.6

	resilienceContagionWeight     = 0.55
	resilienceVulnerabilityWeight = 0.45
)

// Indicators holds the three systemic risk measures, each in [0,1].
type Indicators struct {
	ContagionRisk      float64 `json:"contagionRisk"`
	VulnerabilityIndex float64 `json:"vulnerabilityIndex"`
	Resilience         float64 `json:"resilience"`
}

// Derive computes systemic indicators from network metrics and clusters.
// totalRisks is the size of the analyzed risk set, used to express cluster
// membership as a portfolio share.
func Derive(metrics *correlation.NetworkMetrics, clusters []clustering.Cluster, totalRisks int) Indicators {
	contagion := clamp01(contagionDensityWeight*metrics.Density +
		contagionClusterWeight*meanClusterScore(clusters))

	vulnerability := clamp01(highRiskShare(clusters, totalRisks))

	resilience := clamp01(1 - (resilienceContagionWeight*contagion +
		resilienceVulnerabilityWeight*vulnerability))

	return Indicators{
		ContagionRisk:      contagion,
		VulnerabilityIndex: vulnerability,
		Resilience:         resilience,
	}
}

func meanClusterScore(clusters []clustering.Cluster) float64 {
	if len(clusters) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range clusters {
		sum += c.AggregateScore
	}
	return sum / float64(len(clusters))
}

// highRiskShare is the fraction of risks that belong to a cluster whose
// aggregate score is at or above the high-risk bar.
func highRiskShare(clusters []clustering.Cluster, totalRisks int) float64 {
	if totalRisks == 0 {
		return 0
	}
	inHighRisk := 0
	for _, c := range clusters {
		if c.AggregateScore >= highRiskClusterScore {
			inHighRisk += len(c.RiskIDs)
		}
	}
	return float64(inHighRisk) / float64(totalRisks)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
