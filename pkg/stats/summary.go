// Package stats reduces simulation sample sets to the summary statistics a
// risk report carries: percentiles, confidence intervals, and Value-at-Risk.
package stats

import (
	"errors"
	"math"
	"sort"
)

// PercentilePoint pairs a percentile rank (0-100) with its sample value.
type PercentilePoint struct {
	Rank  float64 `json:"rank"`
	Value float64 `json:"value"`
}

// ConfidenceInterval is a symmetric interval around the sample mean.
type ConfidenceInterval struct {
	Level float64 `json:"level"` // confidence level in percent, e.g. 95
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
}

// VaREntry is the loss threshold not exceeded with the given confidence.
type VaREntry struct {
	Level float64 `json:"level"` // confidence level in percent
	Value float64 `json:"value"`
}

// Summary holds the statistical reduction of one sample set.
type Summary struct {
	ExpectedValue       float64              `json:"expectedValue"`
	StdDev              float64              `json:"stdDev"`
	Percentiles         []PercentilePoint    `json:"percentiles"`
	ConfidenceIntervals []ConfidenceInterval `json:"confidenceIntervals"`
	ValueAtRisk         []VaREntry           `json:"valueAtRisk"`
	SampleCount         int                  `json:"sampleCount"`
}

// DefaultPercentileRanks are the ranks reported in a standard summary.
var DefaultPercentileRanks = []float64{0, 5, 10, 25, 50, 75, 90, 95, 99, 100}

// DefaultConfidenceLevels are the confidence levels for intervals and VaR.
var DefaultConfidenceLevels = []float64{90, 95, 99}

// zScores maps confidence levels to two-sided normal critical values.
var zScores = map[float64]float64{
	80: 1.2816,
	90: 1.6449,
	95: 1.9600,
	99: 2.5758,
}

// ErrNoSamples is returned when a summary is requested for an empty set.
var ErrNoSamples = errors.New("cannot summarize empty sample set")

// Summarize reduces a sample set using the default percentile ranks and
// confidence levels. The input slice is not modified.
func Summarize(samples []float64) (*Summary, error) {
	return SummarizeLevels(samples, DefaultPercentileRanks, DefaultConfidenceLevels)
}

// SummarizeLevels reduces a sample set at explicit percentile ranks and
// confidence levels.
//
// Percentiles use linear interpolation on sorted samples (the type-7
// quantile estimator). Confidence intervals are mean +/- z*s/sqrt(n), a
// normal approximation justified by the large iteration counts the engine
// runs. Samples are losses, so VaR at confidence C is the C-th percentile:
// the threshold not exceeded with probability C.
func SummarizeLevels(samples []float64, ranks, levels []float64) (*Summary, error) {
	n := len(samples)
	if n == 0 {
		return nil, ErrNoSamples
	}

	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)

	mean := Mean(samples)
	stddev := StdDev(samples, mean)

	percentiles := make([]PercentilePoint, 0, len(ranks))
	for _, rank := range ranks {
		percentiles = append(percentiles, PercentilePoint{
			Rank:  rank,
			Value: quantileSorted(sorted, rank/100),
		})
	}

	stderr := stddev / math.Sqrt(float64(n))
	intervals := make([]ConfidenceInterval, 0, len(levels))
	varEntries := make([]VaREntry, 0, len(levels))
	for _, level := range levels {
		z := zScoreFor(level)
		intervals = append(intervals, ConfidenceInterval{
			Level: level,
			Lower: mean - z*stderr,
			Upper: mean + z*stderr,
		})
		varEntries = append(varEntries, VaREntry{
			Level: level,
			Value: quantileSorted(sorted, level/100),
		})
	}

	return &Summary{
		ExpectedValue:       mean,
		StdDev:              stddev,
		Percentiles:         percentiles,
		ConfidenceIntervals: intervals,
		ValueAtRisk:         varEntries,
		SampleCount:         n,
	}, nil
}

// Mean returns the arithmetic mean of the samples.
func Mean(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

// StdDev returns the sample standard deviation (n-1 denominator) around the
// given mean.
func StdDev(samples []float64, mean float64) float64 {
	n := len(samples)
	if n < 2 {
		return 0
	}
	sum := 0.0
	for _, v := range samples {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(n-1))
}

// quantileSorted computes the type-7 quantile of an ascending sample slice
// at probability p in [0,1].
func quantileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := p * float64(n-1)
	lo := int(math.Floor(h))
	frac := h - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// zScoreFor resolves the critical value for a confidence level, falling back
// to a direct inverse-normal approximation for non-standard levels.
func zScoreFor(level float64) float64 {
	if z, ok := zScores[level]; ok {
		return z
	}
	// Beasley-Springer-Moro style rational approximation for the upper
	// two-sided tail; accurate to ~1e-4 over practical levels.
	p := 1 - (1-level/100)/2
	return inverseNormalCDF(p)
}

// inverseNormalCDF approximates the standard normal quantile function using
// the Acklam rational approximation.
func inverseNormalCDF(p float64) float64 {
	if p <= 0 || p >= 1 {
		return math.NaN()
	}

	a := []float64{-3.969683028665376e+01, 2.209460984245205e+02, -2.759285104469687e+02,
		1.383577518672690e+02, -3.066479806614716e+01, 2.506628277459239e+00}
	b := []float64{-5.447609879822406e+01, 1.615858368580409e+02, -1.556989798598866e+02,
		6.680131188771972e+01, -1.328068155288572e+01}
	c := []float64{-7.784894002430293e-03, -3.223964580411365e-01, -2.400758277161838e+00,
		-2.549732539343734e+00, 4.374664141464968e+00, 2.938163982698783e+00}
	d := []float64{7.784695709041462e-03, 3.224671290700398e-01, 2.445134137142996e+00,
		3.754408661907416e+00}

	const pLow = 0.02425
	switch {
	case p < pLow:
		q := math.Sqrt(-2 * math.Log(p))
		return (((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	case p <= 1-pLow:
		q := p - 0.5
		r := q * q
		return (((((a[0]*r+a[1])*r+a[2])*r+a[3])*r+a[4])*r + a[5]) * q /
			(((((b[0]*r+b[1])*r+b[2])*r+b[3])*r+b[4])*r + 1)
	default:
		q := math.Sqrt(-2 * math.Log(1-p))
		return -(((((c[0]*q+c[1])*q+c[2])*q+c[3])*q+c[4])*q + c[5]) /
			((((d[0]*q+d[1])*q+d[2])*q+d[3])*q + 1)
	}
}
