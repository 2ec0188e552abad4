package recommend

// Type is the treatment strategy a recommendation proposes.
type Type string

const (
	TypeMitigation Type = "mitigation"
	TypeTransfer   Type = "transfer"
	TypeAvoidance  Type = "avoidance"
	TypeAcceptance Type = "acceptance"
)

// Priority ranks how urgently a recommendation should be acted on.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// rank orders priorities for sorting and escalation.
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

// escalate raises a priority one band, capped at critical.
func (p Priority) escalate() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityCritical
	}
}

// Recommendation is one ranked treatment proposal. IDs are derived from the
// subject and rule code, so identical inputs always produce identical
// recommendation sets.
type Recommendation struct {
	ID                 string   `json:"id"`
	RiskID             string   `json:"riskId,omitempty"`
	ClusterID          string   `json:"clusterId,omitempty"`
	Type               Type     `json:"type"`
	Priority           Priority `json:"priority"`
	EstimatedCost      float64  `json:"estimatedCost"`
	ImplementationDays int      `json:"implementationDays"`
	Effectiveness      float64  `json:"effectiveness"`
	Rationale          string   `json:"rationale"`
	ExpectedBenefit    string   `json:"expectedBenefit"`
}
