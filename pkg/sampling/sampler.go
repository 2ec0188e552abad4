// Package sampling converts qualitative (probability, impact) ratings into
// continuous severity samples.
//
// The sampling model is documented here because the choice of distribution
// and its anchoring is a contract with downstream statistics:
//
//   - mode m = (probability/100) * (impact/100), the normalized severity
//   - extremity e = |2m - 1|, how far the rating sits from the midpoint
//   - spread s = 1 - e/2, so variance shrinks as ratings become extreme
//   - triangular (default): support [m*(1-0.6s), m*(1+0.2s)] with mode m,
//     giving a best case near 0.4x and a worst case near 1.2x severity at
//     maximum spread
//   - log-normal: mode m with sigma = 0.35s (mu = ln(m) + sigma^2)
//
// Samples are dimensionless severities on the same [0, ~1.2] scale as the
// mode; callers owning a financial range project them into currency.
package sampling

import (
	"fmt"
	"math"

	"github.com/riskforge/riskengine/pkg/risk"
	"github.com/riskforge/riskengine/pkg/rng"
)

// Family selects the sampling distribution.
type Family string

const (
	FamilyTriangular Family = "triangular"
	FamilyLogNormal  Family = "lognormal"
)

// Valid reports whether the family is a known distribution.
func (f Family) Valid() bool {
	return f == FamilyTriangular || f == FamilyLogNormal
}

// maxResampleAttempts bounds the resampling loop for invalid draws. With
// valid inputs a draw is never invalid, so exhausting the retries signals a
// configuration bug rather than bad data.
const maxResampleAttempts = 8

// DistributionError reports that the sampler produced invalid values even
// after bounded resampling.
type DistributionError struct {
	RiskID   string
	Family   Family
	Param    string
	Attempts int
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("distribution %q produced invalid samples for risk %q (param %s) after %d attempts",
		e.Family, e.RiskID, e.Param, e.Attempts)
}

// Sampler draws severity samples for a risk using a configured distribution.
type Sampler struct {
	family Family
}

// NewSampler creates a sampler for the given family. Unknown families fall
// back to triangular.
func NewSampler(family Family) *Sampler {
	if !family.Valid() {
		family = FamilyTriangular
	}
	return &Sampler{family: family}
}

// Family returns the distribution family this sampler draws from.
func (s *Sampler) Family() Family {
	return s.family
}

// Sample draws one severity sample for the risk. Deterministic for a fixed
// source. NaN or negative draws are resampled up to maxResampleAttempts,
// then reported as a *DistributionError.
func (s *Sampler) Sample(r risk.Input, src *rng.Source) (float64, error) {
	mode := r.Severity()
	if mode == 0 {
		return 0, nil
	}

	spread := spreadFor(mode)

	for attempt := 0; attempt < maxResampleAttempts; attempt++ {
		var v float64
		switch s.family {
		case FamilyLogNormal:
			sigma := 0.35 * spread
			mu := math.Log(mode) + sigma*sigma
			v = src.LogNormal(mu, sigma)
		default:
			low := mode * (1 - 0.6*spread)
			high := mode * (1 + 0.2*spread)
			v = src.Triangular(low, mode, high)
		}

		if !math.IsNaN(v) && v >= 0 {
			return v, nil
		}
	}

	return 0, &DistributionError{
		RiskID:   r.ID,
		Family:   s.family,
		Param:    "severity",
		Attempts: maxResampleAttempts,
	}
}

// spreadFor computes the variance scale for a severity mode: ratings near
// the extremes (certain/negligible) get a tighter distribution than ratings
// near the midpoint.
func spreadFor(mode float64) float64 {
	extremity := math.Abs(2*mode - 1)
	return 1 - extremity/2
}
