package clustering

import (
	"math"
	"testing"

	"github.com/riskforge/riskengine/pkg/correlation"
	"github.com/riskforge/riskengine/pkg/risk"
)

func makeRisk(id string, cat risk.Category, prob, impact float64, factors ...string) risk.Input {
	return risk.Input{
		ID:          id,
		Title:       id,
		Category:    cat,
		Probability: prob,
		Impact:      impact,
		Factors:     factors,
	}
}

func buildMatrix(t *testing.T, risks []risk.Input) *correlation.Matrix {
	t.Helper()
	m, err := correlation.BuildMatrix(risks)
	if err != nil {
		t.Fatalf("BuildMatrix failed: %v", err)
	}
	return m
}

func TestDetect_SharedFactorsSameCluster(t *testing.T) {
	// Two risks sharing all factors and category must correlate above the
	// default threshold and land in the same cluster.
	risks := []risk.Input{
		makeRisk("a", risk.CategoryCybersecurity, 80, 90, "vendor", "cloud"),
		makeRisk("b", risk.CategoryCybersecurity, 75, 85, "vendor", "cloud"),
	}

	clusters := Detect(risks, buildMatrix(t, risks), correlation.DefaultEdgeThreshold)
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if len(clusters[0].RiskIDs) != 2 {
		t.Errorf("Cluster members = %v, want both risks", clusters[0].RiskIDs)
	}
}

func TestDetect_NoCorrelationNoClusters(t *testing.T) {
	// Disjoint factors, unrelated categories, distant severities: every
	// pair falls below the threshold, so no clusters are reported.
	risks := []risk.Input{
		makeRisk("a", risk.CategoryCybersecurity, 95, 95, "phishing"),
		makeRisk("b", risk.CategoryStrategic, 5, 5, "m&a"),
		makeRisk("c", risk.CategoryFinancial, 50, 50, "liquidity"),
	}

	m := buildMatrix(t, risks)
	// Use a threshold above every off-diagonal entry to force isolation.
	max := 0.0
	for i := 0; i < m.Size(); i++ {
		for j := i + 1; j < m.Size(); j++ {
			if m.At(i, j) > max {
				max = m.At(i, j)
			}
		}
	}

	clusters := Detect(risks, m, max+0.01)
	if len(clusters) != 0 {
		t.Errorf("Expected no clusters, got %v", clusters)
	}
}

func TestDetect_SingletonsExcluded(t *testing.T) {
	risks := []risk.Input{
		makeRisk("a", risk.CategoryOperational, 70, 70, "staffing", "supply"),
		makeRisk("b", risk.CategoryOperational, 65, 75, "staffing", "supply"),
		makeRisk("c", risk.CategoryFinancial, 10, 10, "fx"),
	}

	clusters := Detect(risks, buildMatrix(t, risks), 0.6)
	for _, c := range clusters {
		if len(c.RiskIDs) < 2 {
			t.Errorf("Cluster %s has %d members; singletons must not be reported", c.ID, len(c.RiskIDs))
		}
		for _, id := range c.RiskIDs {
			if id == "c" {
				t.Errorf("Uncorrelated risk %q placed in cluster %s", id, c.ID)
			}
		}
	}
}

func TestDetect_AggregateIndependentOR(t *testing.T) {
	risks := []risk.Input{
		makeRisk("a", risk.CategoryOperational, 50, 50, "x"), // severity 0.25
		makeRisk("b", risk.CategoryOperational, 60, 50, "x"), // severity 0.30
	}

	clusters := Detect(risks, buildMatrix(t, risks), 0.3)
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}

	want := 1 - (1-0.25)*(1-0.30) // 0.475, not 0.55
	if math.Abs(clusters[0].AggregateScore-want) > 1e-12 {
		t.Errorf("AggregateScore = %v, want %v (independent-OR, not sum)", clusters[0].AggregateScore, want)
	}
}

func TestDetect_AggregateNeverExceedsOne(t *testing.T) {
	risks := []risk.Input{
		makeRisk("a", risk.CategoryOperational, 95, 95, "x"),
		makeRisk("b", risk.CategoryOperational, 90, 95, "x"),
		makeRisk("c", risk.CategoryOperational, 85, 95, "x"),
	}

	clusters := Detect(risks, buildMatrix(t, risks), 0.3)
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}
	if s := clusters[0].AggregateScore; s < 0 || s > 1 {
		t.Errorf("AggregateScore %v outside [0,1]", s)
	}
}

func TestDetect_CommonFactors(t *testing.T) {
	risks := []risk.Input{
		makeRisk("a", risk.CategoryCybersecurity, 80, 80, "vendor", "cloud", "mfa"),
		makeRisk("b", risk.CategoryCybersecurity, 75, 85, "cloud", "vendor"),
	}

	clusters := Detect(risks, buildMatrix(t, risks), 0.3)
	if len(clusters) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(clusters))
	}

	got := clusters[0].CommonFactors
	if len(got) != 2 || got[0] != "vendor" || got[1] != "cloud" {
		t.Errorf("CommonFactors = %v, want [vendor cloud] in first-member order", got)
	}
}

func TestDetect_DeterministicIDs(t *testing.T) {
	risks := []risk.Input{
		makeRisk("a", risk.CategoryOperational, 70, 70, "x"),
		makeRisk("b", risk.CategoryOperational, 70, 70, "x"),
		makeRisk("c", risk.CategoryFinancial, 70, 70, "y"),
		makeRisk("d", risk.CategoryFinancial, 70, 70, "y"),
	}
	m := buildMatrix(t, risks)

	first := Detect(risks, m, 0.6)
	second := Detect(risks, m, 0.6)

	if len(first) != len(second) {
		t.Fatalf("Cluster counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("Cluster IDs not deterministic: %s vs %s", first[i].ID, second[i].ID)
		}
	}
}
