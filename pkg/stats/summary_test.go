package stats

import (
	"math"
	"testing"
)

func TestSummarize_Empty(t *testing.T) {
	if _, err := Summarize(nil); err != ErrNoSamples {
		t.Errorf("Expected ErrNoSamples, got %v", err)
	}
}

func TestSummarize_KnownValues(t *testing.T) {
	samples := []float64{1, 2, 3, 4, 5}

	s, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if s.ExpectedValue != 3 {
		t.Errorf("ExpectedValue = %v, want 3", s.ExpectedValue)
	}
	want := math.Sqrt(2.5) // sample variance of 1..5 is 2.5
	if math.Abs(s.StdDev-want) > 1e-12 {
		t.Errorf("StdDev = %v, want %v", s.StdDev, want)
	}
	if s.SampleCount != 5 {
		t.Errorf("SampleCount = %d, want 5", s.SampleCount)
	}
}

func TestSummarize_Type7Quantiles(t *testing.T) {
	// Type-7 median of [1,2,3,4] is 2.5; p25 is 1.75.
	samples := []float64{4, 1, 3, 2}

	s, err := SummarizeLevels(samples, []float64{25, 50}, nil)
	if err != nil {
		t.Fatalf("SummarizeLevels failed: %v", err)
	}

	if got := s.Percentiles[0].Value; math.Abs(got-1.75) > 1e-12 {
		t.Errorf("p25 = %v, want 1.75", got)
	}
	if got := s.Percentiles[1].Value; math.Abs(got-2.5) > 1e-12 {
		t.Errorf("p50 = %v, want 2.5", got)
	}
}

func TestSummarize_PercentilesMonotonic(t *testing.T) {
	samples := []float64{9, 1, 7, 3, 5, 2, 8, 4, 6, 0}

	s, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	for i := 1; i < len(s.Percentiles); i++ {
		if s.Percentiles[i].Value < s.Percentiles[i-1].Value {
			t.Errorf("Percentiles not monotonic: p%v=%v > p%v=%v",
				s.Percentiles[i-1].Rank, s.Percentiles[i-1].Value,
				s.Percentiles[i].Rank, s.Percentiles[i].Value)
		}
	}
}

func TestSummarize_VaRMonotonic(t *testing.T) {
	samples := []float64{0.1, 0.9, 0.4, 0.7, 0.2, 0.8, 0.3, 0.6, 0.5}

	s, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	for i := 1; i < len(s.ValueAtRisk); i++ {
		prev, cur := s.ValueAtRisk[i-1], s.ValueAtRisk[i]
		if cur.Level <= prev.Level {
			t.Errorf("VaR levels not ascending: %v then %v", prev.Level, cur.Level)
		}
		if cur.Value < prev.Value {
			t.Errorf("VaR not monotonic: VaR(%v)=%v > VaR(%v)=%v",
				prev.Level, prev.Value, cur.Level, cur.Value)
		}
	}
}

func TestSummarize_ConfidenceIntervalsContainMean(t *testing.T) {
	samples := []float64{2, 4, 4, 4, 5, 5, 7, 9}

	s, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	for _, ci := range s.ConfidenceIntervals {
		if ci.Lower > s.ExpectedValue || ci.Upper < s.ExpectedValue {
			t.Errorf("CI at %v%% [%v, %v] does not contain mean %v",
				ci.Level, ci.Lower, ci.Upper, s.ExpectedValue)
		}
	}

	// Higher confidence means a wider interval.
	for i := 1; i < len(s.ConfidenceIntervals); i++ {
		prev, cur := s.ConfidenceIntervals[i-1], s.ConfidenceIntervals[i]
		if (cur.Upper - cur.Lower) < (prev.Upper - prev.Lower) {
			t.Errorf("CI width at %v%% is narrower than at %v%%", cur.Level, prev.Level)
		}
	}
}

func TestSummarize_SingleSample(t *testing.T) {
	s, err := Summarize([]float64{3.7})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if s.ExpectedValue != 3.7 || s.StdDev != 0 {
		t.Errorf("Single sample: mean=%v stddev=%v, want 3.7 and 0", s.ExpectedValue, s.StdDev)
	}
	for _, p := range s.Percentiles {
		if p.Value != 3.7 {
			t.Errorf("p%v = %v, want 3.7", p.Rank, p.Value)
		}
	}
}

func TestSummarize_InputNotMutated(t *testing.T) {
	samples := []float64{5, 1, 3}
	if _, err := Summarize(samples); err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if samples[0] != 5 || samples[1] != 1 || samples[2] != 3 {
		t.Errorf("Summarize mutated its input: %v", samples)
	}
}

func TestZScoreFor_NonStandardLevel(t *testing.T) {
	// 97.5% two-sided corresponds to z ~ 2.2414.
	z := zScoreFor(97.5)
	if math.Abs(z-2.2414) > 0.001 {
		t.Errorf("zScoreFor(97.5) = %v, want ~2.2414", z)
	}
}
