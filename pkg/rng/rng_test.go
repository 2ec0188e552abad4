package rng

import (
	"math"
	"testing"
)

func TestNew_Deterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("Sources with identical seeds diverged at draw %d", i)
		}
	}
}

func TestNew_DifferentSeedsDiverge(t *testing.T) {
	a := New(42)
	b := New(43)

	same := 0
	for i := 0; i < 100; i++ {
		if a.Float64() == b.Float64() {
			same++
		}
	}
	if same == 100 {
		t.Error("Sources with different seeds produced identical sequences")
	}
}

func TestSplit_IndependentOfConsumption(t *testing.T) {
	a := New(42)
	b := New(42)

	// Consuming from one parent must not perturb the derived stream.
	for i := 0; i < 50; i++ {
		a.Float64()
	}

	sa := a.Split(3)
	sb := b.Split(3)
	for i := 0; i < 100; i++ {
		if sa.Float64() != sb.Float64() {
			t.Fatalf("Split streams diverged at draw %d", i)
		}
	}
}

func TestSplit_StreamsDiffer(t *testing.T) {
	s := New(42)
	a := s.Split(0)
	b := s.Split(1)

	if a.Float64() == b.Float64() && a.Float64() == b.Float64() {
		t.Error("Distinct stream indices produced identical draws")
	}
}

func TestTriangular_WithinBounds(t *testing.T) {
	s := New(7)
	low, mode, high := 0.2, 0.5, 1.1

	for i := 0; i < 10000; i++ {
		v := s.Triangular(low, mode, high)
		if v < low || v > high {
			t.Fatalf("Triangular draw %v outside [%v, %v]", v, low, high)
		}
	}
}

func TestTriangular_MeanApproximation(t *testing.T) {
	s := New(7)
	low, mode, high := 0.0, 0.6, 1.2
	want := (low + mode + high) / 3.0

	sum := 0.0
	n := 200000
	for i := 0; i < n; i++ {
		sum += s.Triangular(low, mode, high)
	}
	got := sum / float64(n)

	if math.Abs(got-want) > 0.01 {
		t.Errorf("Triangular mean = %v, want ~%v", got, want)
	}
}

func TestTriangular_DegenerateInterval(t *testing.T) {
	s := New(1)
	if v := s.Triangular(0.5, 0.5, 0.5); v != 0.5 {
		t.Errorf("Degenerate triangular = %v, want 0.5", v)
	}
}

func TestLogNormal_Positive(t *testing.T) {
	s := New(9)
	for i := 0; i < 10000; i++ {
		if v := s.LogNormal(-0.3, 0.25); v <= 0 {
			t.Fatalf("LogNormal draw %v is not positive", v)
		}
	}
}
