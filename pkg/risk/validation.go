package risk

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is a singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks a single risk record against the engine's input contract.
// Returns an error naming the first offending field.
func Validate(in *Input) error {
	if in == nil {
		return errors.New("risk input cannot be nil")
	}

	if err := validate.Struct(in); err != nil {
		return formatValidationError(in.ID, err)
	}

	if !in.Category.Valid() {
		return fmt.Errorf("risk %q: Category: unknown category %q", in.ID, in.Category)
	}

	return nil
}

// ValidateSet validates every risk in a set and checks for duplicate IDs.
func ValidateSet(risks []Input) error {
	if len(risks) == 0 {
		return errors.New("risk set cannot be empty")
	}

	seen := make(map[string]bool, len(risks))
	for i := range risks {
		if err := Validate(&risks[i]); err != nil {
			return err
		}
		if seen[risks[i].ID] {
			return fmt.Errorf("risk %q: ID: duplicate identifier in risk set", risks[i].ID)
		}
		seen[risks[i].ID] = true
	}
	return nil
}

// formatValidationError converts validator errors into readable messages
func formatValidationError(riskID string, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldErr := range validationErrors {
			switch fieldErr.Tag() {
			case "required":
				return fmt.Errorf("risk %q: %s: field is required", riskID, fieldErr.Field())
			case "gte":
				return fmt.Errorf("risk %q: %s: must be >= %s, got %v", riskID, fieldErr.Field(), fieldErr.Param(), fieldErr.Value())
			case "lte":
				return fmt.Errorf("risk %q: %s: must be <= %s, got %v", riskID, fieldErr.Field(), fieldErr.Param(), fieldErr.Value())
			case "gtefield":
				return fmt.Errorf("risk %q: %s: must be >= %s", riskID, fieldErr.Field(), fieldErr.Param())
			case "max":
				return fmt.Errorf("risk %q: %s: exceeds maximum length %s", riskID, fieldErr.Field(), fieldErr.Param())
			default:
				return fmt.Errorf("risk %q: %s: failed %s validation", riskID, fieldErr.Field(), fieldErr.Tag())
			}
		}
	}
	return err
}
