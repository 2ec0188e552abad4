package recommend

import (
	"github.com/riskforge/riskengine/pkg/risk"
)

// rule is one category-specific treatment template. Costs are scaled by the
// subject's severity before the cost-cap check.
type rule struct {
	code          string
	typ           Type
	baseCost      float64
	days          int
	effectiveness float64
	rationale     string
	benefit       string
	// minBand is the lowest severity band this rule applies to.
	minBand band
}

type band int

const (
	bandLow band = iota
	bandMedium
	bandHigh
	bandCritical
)

// Severity band cut points over the [0,1] severity scale.
const (
	mediumBandFloor   = 0.25
	highBandFloor     = 0.45
	criticalBandFloor = 0.70
)

func bandFor(severity float64) band {
	switch {
	case severity >= criticalBandFloor:
		return bandCritical
	case severity >= highBandFloor:
		return bandHigh
	case severity >= mediumBandFloor:
		return bandMedium
	default:
		return bandLow
	}
}

func (b band) priority() Priority {
	switch b {
	case bandCritical:
		return PriorityCritical
	case bandHigh:
		return PriorityHigh
	case bandMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// categoryRules maps each risk category to its treatment templates, ordered
// by escalation tier.
var categoryRules = map[risk.Category][]rule{
	risk.CategoryCybersecurity: {
		{
			code: "cyber-controls", typ: TypeMitigation,
			baseCost: 85_000, days: 60, effectiveness: 0.75, minBand: bandMedium,
			rationale: "Hardening access controls and patching cadence reduces the exploited attack surface",
			benefit:   "Lower breach likelihood and contained blast radius",
		},
		{
			code: "cyber-insurance", typ: TypeTransfer,
			baseCost: 40_000, days: 30, effectiveness: 0.5, minBand: bandHigh,
			rationale: "Cyber insurance transfers residual financial exposure that controls cannot eliminate",
			benefit:   "Capped financial downside after an incident",
		},
	},
	risk.CategoryOperational: {
		{
			code: "ops-redundancy", typ: TypeMitigation,
			baseCost: 120_000, days: 90, effectiveness: 0.7, minBand: bandMedium,
			rationale: "Redundant capacity and documented failover remove single points of failure",
			benefit:   "Continuity through supplier or process disruption",
		},
		{
			code: "ops-outsource", typ: TypeTransfer,
			baseCost: 60_000, days: 45, effectiveness: 0.55, minBand: bandHigh,
			rationale: "Contracting the exposed process to a specialized provider shifts execution risk",
			benefit:   "Contractual recourse and predictable service levels",
		},
	},
	risk.CategoryFinancial: {
		{
			code: "fin-hedge", typ: TypeTransfer,
			baseCost: 50_000, days: 20, effectiveness: 0.65, minBand: bandMedium,
			rationale: "Hedging instruments offset the measured exposure at known carry cost",
			benefit:   "Bounded downside under adverse market moves",
		},
		{
			code: "fin-reserves", typ: TypeMitigation,
			baseCost: 30_000, days: 15, effectiveness: 0.5, minBand: bandLow,
			rationale: "A dedicated loss reserve absorbs expected-case impact without external financing",
			benefit:   "Liquidity protection at expected loss levels",
		},
	},
	risk.CategoryCompliance: {
		{
			code: "comp-remediate", typ: TypeMitigation,
			baseCost: 70_000, days: 75, effectiveness: 0.8, minBand: bandMedium,
			rationale: "Closing the identified control gaps removes the finding before the next audit cycle",
			benefit:   "Avoided penalties and reduced regulatory scrutiny",
		},
		{
			code: "comp-exit", typ: TypeAvoidance,
			baseCost: 150_000, days: 120, effectiveness: 0.9, minBand: bandCritical,
			rationale: "Exiting the non-compliant activity eliminates an exposure that cannot be remediated in time",
			benefit:   "Removal of the sanctioned exposure entirely",
		},
	},
	risk.CategoryStrategic: {
		{
			code: "strat-diversify", typ: TypeMitigation,
			baseCost: 200_000, days: 180, effectiveness: 0.6, minBand: bandMedium,
			rationale: "Diversifying the dependent revenue stream reduces concentration on the threatened position",
			benefit:   "Reduced earnings sensitivity to the strategic shift",
		},
	},
}

// acceptanceRule is the universal low-band treatment: monitor and accept.
var acceptanceRule = rule{
	code: "accept-monitor", typ: TypeAcceptance,
	baseCost: 5_000, days: 10, effectiveness: 0.2, minBand: bandLow,
	rationale: "Exposure is within appetite; periodic monitoring is cheaper than active treatment",
	benefit:   "Treatment budget preserved for material exposures",
}
