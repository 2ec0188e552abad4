// Package assessment orchestrates the full analysis pipeline and assembles
// the resulting report.
package assessment

import (
	"time"

	"github.com/riskforge/riskengine/pkg/clustering"
	"github.com/riskforge/riskengine/pkg/correlation"
	"github.com/riskforge/riskengine/pkg/recommend"
	"github.com/riskforge/riskengine/pkg/simulation"
	"github.com/riskforge/riskengine/pkg/systemic"
)

// Report is the complete outcome of one portfolio assessment. Correlation,
// Network and Systemic are nil when the portfolio holds a single risk, and
// Clusters is empty when no risks correlate above the edge threshold.
type Report struct {
	Framework   string    `json:"framework"`
	GeneratedAt time.Time `json:"generatedAt"`
	Seed        uint64    `json:"seed"`

	Parameters  simulation.Parameters `json:"parameters"`
	Simulations []simulation.Result   `json:"simulations"`

	Correlation *correlation.Matrix         `json:"correlation,omitempty"`
	Network     *correlation.NetworkMetrics `json:"network,omitempty"`
	Clusters    []clustering.Cluster        `json:"clusters"`
	Systemic    *systemic.Indicators        `json:"systemic,omitempty"`

	Recommendations []recommend.Recommendation `json:"recommendations"`

	// ExecutiveSummary is reserved for downstream narrative tooling and is
	// always empty in engine output.
	ExecutiveSummary string `json:"executiveSummary"`
}
