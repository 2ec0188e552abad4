package risk

// Category classifies a risk by the domain it threatens.
type Category string

const (
	CategoryCybersecurity Category = "cybersecurity"
	CategoryOperational   Category = "operational"
	CategoryFinancial     Category = "financial"
	CategoryCompliance    Category = "compliance"
	CategoryStrategic     Category = "strategic"
)

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryCybersecurity, CategoryOperational, CategoryFinancial,
		CategoryCompliance, CategoryStrategic:
		return true
	}
	return false
}

// Categories lists all known categories in a stable order.
func Categories() []Category {
	return []Category{
		CategoryCybersecurity,
		CategoryOperational,
		CategoryFinancial,
		CategoryCompliance,
		CategoryStrategic,
	}
}

// FinancialRange is an optional historical financial-impact band for a risk.
type FinancialRange struct {
	Min      float64 `json:"min" yaml:"min" validate:"gte=0"`
	Max      float64 `json:"max" yaml:"max" validate:"gtefield=Min"`
	Currency string  `json:"currency" yaml:"currency" validate:"omitempty,len=3"`
}

// Input is a single qualitative risk record as supplied by the caller.
// Inputs are treated as immutable once handed to the engine: no component
// mutates them, and callers must not modify them mid-analysis.
type Input struct {
	ID          string          `json:"id" yaml:"id" validate:"required,max=128"`
	Title       string          `json:"title" yaml:"title" validate:"required,max=256"`
	Category    Category        `json:"category" yaml:"category" validate:"required"`
	Probability float64         `json:"probability" yaml:"probability" validate:"gte=0,lte=100"`
	Impact      float64         `json:"impact" yaml:"impact" validate:"gte=0,lte=100"`
	Factors     []string        `json:"factors,omitempty" yaml:"factors,omitempty" validate:"omitempty,max=32,dive,max=64"`
	Financial   *FinancialRange `json:"financial,omitempty" yaml:"financial,omitempty"`
}

// Severity is the normalized probability-impact product in [0,1].
// It anchors the sampling distribution mode and all severity banding.
func (in Input) Severity() float64 {
	return (in.Probability / 100.0) * (in.Impact / 100.0)
}
