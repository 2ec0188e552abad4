package risk

import (
	"strings"
	"testing"
)

func validInput() Input {
	return Input{
		ID:          "risk-1",
		Title:       "Ransomware exposure",
		Category:    CategoryCybersecurity,
		Probability: 78,
		Impact:      95,
		Factors:     []string{"legacy-systems", "remote-access"},
	}
}

func TestValidate_ValidInput(t *testing.T) {
	in := validInput()
	if err := Validate(&in); err != nil {
		t.Fatalf("Validate failed for valid input: %v", err)
	}
}

func TestValidate_NilInput(t *testing.T) {
	if err := Validate(nil); err == nil {
		t.Error("Expected error for nil input")
	}
}

func TestValidate_ProbabilityOutOfRange(t *testing.T) {
	in := validInput()
	in.Probability = 120

	err := Validate(&in)
	if err == nil {
		t.Fatal("Expected error for probability > 100")
	}
	if !strings.Contains(err.Error(), "Probability") {
		t.Errorf("Error should name the offending field, got: %v", err)
	}
}

func TestValidate_NegativeImpact(t *testing.T) {
	in := validInput()
	in.Impact = -5

	err := Validate(&in)
	if err == nil {
		t.Fatal("Expected error for negative impact")
	}
	if !strings.Contains(err.Error(), "Impact") {
		t.Errorf("Error should name the offending field, got: %v", err)
	}
}

func TestValidate_UnknownCategory(t *testing.T) {
	in := validInput()
	in.Category = "reputational"

	err := Validate(&in)
	if err == nil {
		t.Fatal("Expected error for unknown category")
	}
	if !strings.Contains(err.Error(), "Category") {
		t.Errorf("Error should name the offending field, got: %v", err)
	}
}

func TestValidate_FinancialRangeInverted(t *testing.T) {
	in := validInput()
	in.Financial = &FinancialRange{Min: 1000, Max: 100, Currency: "USD"}

	if err := Validate(&in); err == nil {
		t.Error("Expected error for Max < Min financial range")
	}
}

func TestValidateSet_DuplicateIDs(t *testing.T) {
	a := validInput()
	b := validInput() // same ID

	err := ValidateSet([]Input{a, b})
	if err == nil {
		t.Fatal("Expected error for duplicate risk IDs")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Error should mention duplicate, got: %v", err)
	}
}

func TestValidateSet_Empty(t *testing.T) {
	if err := ValidateSet(nil); err == nil {
		t.Error("Expected error for empty risk set")
	}
}

func TestSeverity(t *testing.T) {
	tests := []struct {
		name        string
		probability float64
		impact      float64
		want        float64
	}{
		{"zero", 0, 0, 0},
		{"max", 100, 100, 1.0},
		{"mid", 50, 50, 0.25},
		{"scenario", 78, 95, 0.741},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Probability: tt.probability, Impact: tt.impact}
			got := in.Severity()
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Severity() = %v, want %v", got, tt.want)
			}
		})
	}
}
