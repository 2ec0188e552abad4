package simulation

import (
	"errors"
	"fmt"

	"github.com/riskforge/riskengine/pkg/sampling"
)

// MaxIterations bounds a single simulation run. Larger requests are rejected
// rather than silently truncated.
const MaxIterations = 100_000

// Parameters configures one simulation run.
type Parameters struct {
	// TimeframeDays is the horizon the trajectory spans. Must be positive.
	TimeframeDays int `json:"timeframeDays" yaml:"timeframe_days"`

	// Iterations is the Monte Carlo sample count. Must be in [1, MaxIterations].
	Iterations int `json:"iterations" yaml:"iterations"`

	// Distribution overrides the default sampling family for all risks.
	Distribution sampling.Family `json:"distribution,omitempty" yaml:"distribution,omitempty"`

	// Distributions overrides the sampling family per risk ID, taking
	// precedence over Distribution.
	Distributions map[string]sampling.Family `json:"distributions,omitempty" yaml:"distributions,omitempty"`
}

// InvalidParameterError reports a malformed simulation parameter, always
// naming the offending field.
type InvalidParameterError struct {
	Param  string
	Value  any
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid simulation parameter %s: %s (got %v)", e.Param, e.Reason, e.Value)
}

// ErrSimulationCancelled is returned when a run is cancelled or times out
// mid-flight. No partial result accompanies it: partial-sample statistics
// would be misleading.
var ErrSimulationCancelled = errors.New("simulation cancelled")

// Validate checks the parameters, returning an *InvalidParameterError for
// the first violation.
func (p Parameters) Validate() error {
	if p.TimeframeDays <= 0 {
		return &InvalidParameterError{
			Param:  "TimeframeDays",
			Value:  p.TimeframeDays,
			Reason: "must be a positive number of days",
		}
	}
	if p.Iterations <= 0 {
		return &InvalidParameterError{
			Param:  "Iterations",
			Value:  p.Iterations,
			Reason: "must be positive",
		}
	}
	if p.Iterations > MaxIterations {
		return &InvalidParameterError{
			Param:  "Iterations",
			Value:  p.Iterations,
			Reason: fmt.Sprintf("must not exceed %d", MaxIterations),
		}
	}
	if p.Distribution != "" && !p.Distribution.Valid() {
		return &InvalidParameterError{
			Param:  "Distribution",
			Value:  p.Distribution,
			Reason: "unknown distribution family",
		}
	}
	for id, fam := range p.Distributions {
		if !fam.Valid() {
			return &InvalidParameterError{
				Param:  "Distributions[" + id + "]",
				Value:  fam,
				Reason: "unknown distribution family",
			}
		}
	}
	return nil
}

// familyFor resolves the sampling family for a given risk ID.
func (p Parameters) familyFor(riskID string) sampling.Family {
	if fam, ok := p.Distributions[riskID]; ok {
		return fam
	}
	if p.Distribution != "" {
		return p.Distribution
	}
	return sampling.FamilyTriangular
}
