// Package recommend turns assessed exposures into an ordered, deterministic
// set of treatment recommendations.
package recommend

import (
	"fmt"
	"sort"

	"github.com/riskforge/riskengine/pkg/clustering"
	"github.com/riskforge/riskengine/pkg/risk"
)

// DefaultCostCap is the spend above which a recommendation requires
// critical-priority sign-off regardless of the underlying severity band.
const DefaultCostCap = 250_000

// Config tunes generation. The zero value is usable; CostCap defaults to
// DefaultCostCap.
type Config struct {
	CostCap float64
}

// DefaultConfig returns the standard generation configuration.
func DefaultConfig() Config {
	return Config{CostCap: DefaultCostCap}
}

// Input carries everything generation needs. Severities is optional; when a
// risk ID is absent the severity derived from its probability and impact is
// used instead.
type Input struct {
	Risks      []risk.Input
	Severities map[string]float64
	Clusters   []clustering.Cluster
}

// Generate produces recommendations for every risk plus one systemic entry
// per cluster. Output order is priority, then effectiveness, then ID, all
// descending except the ID tiebreak, and is fully deterministic for a given
// input.
func Generate(in Input, cfg Config) []Recommendation {
	if cfg.CostCap <= 0 {
		cfg.CostCap = DefaultCostCap
	}

	clusterOf := make(map[string]string, len(in.Risks))
	for _, c := range in.Clusters {
		for _, id := range c.RiskIDs {
			clusterOf[id] = c.ID
		}
	}

	recs := make([]Recommendation, 0, len(in.Risks)+len(in.Clusters))
	for _, r := range in.Risks {
		sev, ok := in.Severities[r.ID]
		if !ok {
			sev = r.Severity()
		}
		recs = append(recs, forRisk(r, sev, clusterOf[r.ID], cfg)...)
	}
	for _, c := range in.Clusters {
		recs = append(recs, forCluster(c, cfg))
	}

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if a.Priority.rank() != b.Priority.rank() {
			return a.Priority.rank() > b.Priority.rank()
		}
		if a.Effectiveness != b.Effectiveness {
			return a.Effectiveness > b.Effectiveness
		}
		return a.ID < b.ID
	})
	return recs
}

func forRisk(r risk.Input, severity float64, clusterID string, cfg Config) []Recommendation {
	b := bandFor(severity)
	rules := applicableRules(r.Category, b)

	out := make([]Recommendation, 0, len(rules))
	for _, rl := range rules {
		cost := scaledCost(rl.baseCost, severity)
		prio := b.priority()
		if clusterID != "" {
			prio = prio.escalate()
		}
		if cost > cfg.CostCap {
			prio = PriorityCritical
		}
		out = append(out, Recommendation{
			ID:                 fmt.Sprintf("rec-%s-%s", r.ID, rl.code),
			RiskID:             r.ID,
			ClusterID:          clusterID,
			Type:               rl.typ,
			Priority:           prio,
			EstimatedCost:      cost,
			ImplementationDays: rl.days,
			Effectiveness:      rl.effectiveness,
			Rationale:          rl.rationale,
			ExpectedBenefit:    rl.benefit,
		})
	}
	return out
}

// applicableRules selects the category templates whose minimum band the
// severity reaches. A risk that clears no template falls back to
// accept-and-monitor.
func applicableRules(cat risk.Category, b band) []rule {
	var out []rule
	for _, rl := range categoryRules[cat] {
		if b >= rl.minBand {
			out = append(out, rl)
		}
	}
	if len(out) == 0 {
		out = append(out, acceptanceRule)
	}
	return out
}

func forCluster(c clustering.Cluster, cfg Config) Recommendation {
	b := bandFor(c.AggregateScore)
	prio := b.priority().escalate()
	cost := scaledCost(100_000, c.AggregateScore) * float64(len(c.RiskIDs)) / 2
	if cost > cfg.CostCap {
		prio = PriorityCritical
	}
	return Recommendation{
		ID:                 fmt.Sprintf("rec-%s-systemic", c.ID),
		ClusterID:          c.ID,
		Type:               TypeMitigation,
		Priority:           prio,
		EstimatedCost:      cost,
		ImplementationDays: 90,
		Effectiveness:      0.65,
		Rationale:          fmt.Sprintf("%d correlated risks share common factors; treating the shared drivers addresses them together", len(c.RiskIDs)),
		ExpectedBenefit:    "Single intervention reduces exposure across the whole cluster",
	}
}

// scaledCost grows the template cost with severity: a severity-1 exposure
// costs 1.5x the base, a severity-0 exposure 0.5x.
func scaledCost(base, severity float64) float64 {
	return base * (0.5 + severity)
}
