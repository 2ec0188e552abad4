package correlation

import (
	"math"
	"testing"

	"github.com/riskforge/riskengine/pkg/risk"
)

// matrixFromValues builds a Matrix directly for graph-shape tests.
func matrixFromValues(ids []string, values [][]float64) *Matrix {
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	return &Matrix{IDs: ids, Values: values, index: index}
}

func triangleMatrix() *Matrix {
	// a-b, b-c, a-c all above threshold: a complete K3.
	return matrixFromValues(
		[]string{"a", "b", "c"},
		[][]float64{
			{1.0, 0.8, 0.7},
			{0.8, 1.0, 0.6},
			{0.7, 0.6, 1.0},
		},
	)
}

func pathMatrix() *Matrix {
	// a-b-c-d path, no shortcuts.
	return matrixFromValues(
		[]string{"a", "b", "c", "d"},
		[][]float64{
			{1.0, 0.5, 0.1, 0.1},
			{0.5, 1.0, 0.5, 0.1},
			{0.1, 0.5, 1.0, 0.5},
			{0.1, 0.1, 0.5, 1.0},
		},
	)
}

func severeRisks(ids ...string) []risk.Input {
	out := make([]risk.Input, len(ids))
	for i, id := range ids {
		out[i] = makeRisk(id, risk.CategoryOperational, 90, 90)
	}
	return out
}

func TestComputeNetworkMetrics_CompleteTriangle(t *testing.T) {
	m := triangleMatrix()
	metrics := ComputeNetworkMetrics(severeRisks("a", "b", "c"), m, DefaultConfig())

	if metrics.Density != 1.0 {
		t.Errorf("Density = %v, want 1.0 for K3", metrics.Density)
	}
	if metrics.ClusteringCoefficient != 1.0 {
		t.Errorf("ClusteringCoefficient = %v, want 1.0 for K3", metrics.ClusteringCoefficient)
	}
	if metrics.AvgPathLength == nil || *metrics.AvgPathLength != 1.0 {
		t.Errorf("AvgPathLength = %v, want 1.0 for K3", metrics.AvgPathLength)
	}
	if metrics.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", metrics.EdgeCount)
	}
}

func TestComputeNetworkMetrics_Path(t *testing.T) {
	m := pathMatrix()
	metrics := ComputeNetworkMetrics(severeRisks("a", "b", "c", "d"), m, DefaultConfig())

	if metrics.EdgeCount != 3 {
		t.Errorf("EdgeCount = %d, want 3", metrics.EdgeCount)
	}
	wantDensity := 3.0 / 6.0
	if math.Abs(metrics.Density-wantDensity) > 1e-12 {
		t.Errorf("Density = %v, want %v", metrics.Density, wantDensity)
	}
	if metrics.ClusteringCoefficient != 0 {
		t.Errorf("ClusteringCoefficient = %v, want 0 for a path graph", metrics.ClusteringCoefficient)
	}
	// Pairs: ab=1 ac=2 ad=3 bc=1 bd=2 cd=1, mean = 10/6.
	want := 10.0 / 6.0
	if metrics.AvgPathLength == nil || math.Abs(*metrics.AvgPathLength-want) > 1e-12 {
		t.Errorf("AvgPathLength = %v, want %v", metrics.AvgPathLength, want)
	}
}

func TestComputeNetworkMetrics_DisconnectedNilPathLength(t *testing.T) {
	m := matrixFromValues(
		[]string{"a", "b", "c"},
		[][]float64{
			{1.0, 0.8, 0.0},
			{0.8, 1.0, 0.0},
			{0.0, 0.0, 1.0},
		},
	)

	metrics := ComputeNetworkMetrics(severeRisks("a", "b", "c"), m, DefaultConfig())
	if metrics.AvgPathLength != nil {
		t.Errorf("AvgPathLength = %v, want nil for disconnected graph", *metrics.AvgPathLength)
	}
}

func TestComputeNetworkMetrics_DensityInUnitRange(t *testing.T) {
	risks := []risk.Input{
		makeRisk("a", risk.CategoryCybersecurity, 80, 90, "vendor"),
		makeRisk("b", risk.CategoryOperational, 40, 60, "vendor"),
		makeRisk("c", risk.CategoryFinancial, 20, 30),
		makeRisk("d", risk.CategoryStrategic, 70, 10, "m&a"),
	}

	_, metrics, err := Analyze(risks, DefaultConfig())
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if metrics.Density < 0 || metrics.Density > 1 {
		t.Errorf("Density %v outside [0,1]", metrics.Density)
	}
	if metrics.ClusteringCoefficient < 0 || metrics.ClusteringCoefficient > 1 {
		t.Errorf("ClusteringCoefficient %v outside [0,1]", metrics.ClusteringCoefficient)
	}
}

func TestCriticalPaths_LongestFirst(t *testing.T) {
	m := pathMatrix()
	metrics := ComputeNetworkMetrics(severeRisks("a", "b", "c", "d"), m, DefaultConfig())

	if len(metrics.CriticalPaths) == 0 {
		t.Fatal("Expected critical paths for severe path graph")
	}
	// The longest shortest-path is a->b->c->d.
	first := metrics.CriticalPaths[0]
	want := []string{"a", "b", "c", "d"}
	if len(first) != len(want) {
		t.Fatalf("First critical path = %v, want %v", first, want)
	}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("First critical path = %v, want %v", first, want)
		}
	}
	if len(metrics.CriticalPaths) > DefaultTopCriticalPaths {
		t.Errorf("Reported %d critical paths, cap is %d", len(metrics.CriticalPaths), DefaultTopCriticalPaths)
	}
}

func TestCriticalPaths_NoSevereNodes(t *testing.T) {
	mild := []risk.Input{
		makeRisk("a", risk.CategoryOperational, 20, 20),
		makeRisk("b", risk.CategoryOperational, 20, 20),
	}
	m := matrixFromValues(
		[]string{"a", "b"},
		[][]float64{{1.0, 0.9}, {0.9, 1.0}},
	)

	metrics := ComputeNetworkMetrics(mild, m, DefaultConfig())
	if len(metrics.CriticalPaths) != 0 {
		t.Errorf("Expected no critical paths without high-severity nodes, got %v", metrics.CriticalPaths)
	}
}

func TestAnalyze_SingleRisk(t *testing.T) {
	_, _, err := Analyze([]risk.Input{makeRisk("a", risk.CategoryFinancial, 50, 50)}, DefaultConfig())
	if err == nil {
		t.Fatal("Expected error for single-risk analysis")
	}
}
