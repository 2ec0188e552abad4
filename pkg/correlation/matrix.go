// Package correlation builds pairwise correlation structure over a risk set
// and derives network metrics from the induced correlation graph.
//
// The pairwise formula is a documented design choice:
//
//	corr(i,j) = 0.50*jaccard(factors_i, factors_j)
//	          + 0.30*affinity(category_i, category_j)
//	          + 0.20*(1 - |severity_i - severity_j|)
//
// with severity = (probability/100)*(impact/100). Every term lies in [0,1],
// so entries lie in [0,1] (a subset of the contract range [-1,1]); the
// matrix is symmetric with unit diagonal by construction.
package correlation

import (
	"fmt"
	"math"

	"github.com/riskforge/riskengine/pkg/risk"
)

// Weights for the three correlation terms.
const (
	factorWeight   = 0.50
	categoryWeight = 0.30
	severityWeight = 0.20
)

// DefaultEdgeThreshold is the correlation above which two risks are
// considered connected in the network graph.
const DefaultEdgeThreshold = 0.3

// DefaultHighSeverity marks a risk as high-severity for critical-path
// selection.
const DefaultHighSeverity = 0.45

// DefaultTopCriticalPaths bounds how many critical paths are reported.
const DefaultTopCriticalPaths = 3

// Config tunes the correlation graph construction.
type Config struct {
	EdgeThreshold    float64 `json:"edgeThreshold" yaml:"edge_threshold" validate:"gte=-1,lte=1"`
	HighSeverity     float64 `json:"highSeverity" yaml:"high_severity" validate:"gte=0,lte=1"`
	TopCriticalPaths int     `json:"topCriticalPaths" yaml:"top_critical_paths" validate:"gte=0"`
}

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		EdgeThreshold:    DefaultEdgeThreshold,
		HighSeverity:     DefaultHighSeverity,
		TopCriticalPaths: DefaultTopCriticalPaths,
	}
}

// InsufficientDataError reports a correlation request over fewer than two
// risks.
type InsufficientDataError struct {
	Got  int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("correlation requires at least %d risks, got %d (parameter risks)", e.Need, e.Got)
}

// Matrix is a symmetric correlation matrix indexed by risk identifiers.
type Matrix struct {
	IDs    []string    `json:"ids"`
	Values [][]float64 `json:"values"`

	index map[string]int
}

// At returns the correlation between positions i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.Values[i][j]
}

// ByID returns the correlation between two risk identifiers.
func (m *Matrix) ByID(a, b string) (float64, bool) {
	i, okA := m.index[a]
	j, okB := m.index[b]
	if !okA || !okB {
		return 0, false
	}
	return m.Values[i][j], true
}

// Size returns the matrix dimension.
func (m *Matrix) Size() int {
	return len(m.IDs)
}

// BuildMatrix computes the pairwise correlation matrix for a risk set.
// Requires at least two risks.
func BuildMatrix(risks []risk.Input) (*Matrix, error) {
	if len(risks) < 2 {
		return nil, &InsufficientDataError{Got: len(risks), Need: 2}
	}

	n := len(risks)
	m := &Matrix{
		IDs:    make([]string, n),
		Values: make([][]float64, n),
		index:  make(map[string]int, n),
	}
	for i, r := range risks {
		m.IDs[i] = r.ID
		m.index[r.ID] = i
		m.Values[i] = make([]float64, n)
		m.Values[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			c := Pairwise(risks[i], risks[j])
			m.Values[i][j] = c
			m.Values[j][i] = c
		}
	}
	return m, nil
}

// Pairwise computes the documented correlation between two risks.
func Pairwise(a, b risk.Input) float64 {
	c := factorWeight*jaccard(a.Factors, b.Factors) +
		categoryWeight*categoryAffinity(a.Category, b.Category) +
		severityWeight*(1-math.Abs(a.Severity()-b.Severity()))

	return clamp(c, -1, 1)
}

// jaccard is |A∩B| / |A∪B| over factor tags. Two risks with no factors at
// all share no observable exposure channel, so the overlap term is 0, not 1.
func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	setA := make(map[string]bool, len(a))
	for _, f := range a {
		setA[f] = true
	}

	intersection := 0
	setB := make(map[string]bool, len(b))
	for _, f := range b {
		if setB[f] {
			continue
		}
		setB[f] = true
		if setA[f] {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// relatedCategories maps category pairs with known spillover to a base
// affinity. Same-category pairs score 1.0; unrelated pairs 0.2.
var relatedCategories = map[[2]risk.Category]float64{
	{risk.CategoryCybersecurity, risk.CategoryOperational}: 0.5,
	{risk.CategoryFinancial, risk.CategoryStrategic}:       0.5,
	{risk.CategoryCompliance, risk.CategoryOperational}:    0.4,
	{risk.CategoryCompliance, risk.CategoryFinancial}:      0.4,
	{risk.CategoryCybersecurity, risk.CategoryCompliance}:  0.4,
	{risk.CategoryOperational, risk.CategoryStrategic}:     0.3,
}

func categoryAffinity(a, b risk.Category) float64 {
	if a == b {
		return 1.0
	}
	if v, ok := relatedCategories[[2]risk.Category{a, b}]; ok {
		return v
	}
	if v, ok := relatedCategories[[2]risk.Category{b, a}]; ok {
		return v
	}
	return 0.2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
