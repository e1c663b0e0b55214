package nutrition

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar day format used across the API and storage.
const DateLayout = "2006-01-02"

// ValidationError reports a food value that cannot be aggregated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate rejects negative and non-finite numeric fields.
func Validate(f Food) error {
	return checkFields([]field{
		{"serving_size", f.ServingSize},
		{"number_of_servings", f.NumberOfServings},
		{"protein", f.Protein},
		{"carbs", f.Carbs},
		{"fat", f.Fat},
		{"calories", f.Calories},
	})
}

// ValidateGoals rejects negative and non-finite targets.
func ValidateGoals(g Goals) error {
	return checkFields([]field{
		{"daily_calorie_goal", g.Calories},
		{"protein_target", g.Protein},
		{"carbs_target", g.Carbs},
		{"fat_target", g.Fat},
	})
}

type field struct {
	name  string
	value float64
}

func checkFields(fields []field) error {
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &ValidationError{Field: f.name, Message: "must be a finite number"}
		}
		if f.value < 0 {
			return &ValidationError{Field: f.name, Message: "must not be negative"}
		}
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// IsValidDate reports whether s is a YYYY-MM-DD calendar day.
func IsValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}
