package nutrition

import (
	"fmt"
	"math"
)

// Atwater factors, kcal per gram.
const (
	ProteinKcalPerGram = 4
	CarbsKcalPerGram   = 4
	FatKcalPerGram     = 9
)

// Food is the nutrition view of one logged food entry.
type Food struct {
	Name             string  `json:"name"`
	ServingSize      float64 `json:"serving_size"`
	ServingUnit      string  `json:"serving_unit"`
	NumberOfServings float64 `json:"number_of_servings"`
	Protein          float64 `json:"protein"`
	Carbs            float64 `json:"carbs"`
	Fat              float64 `json:"fat"`
	Calories         float64 `json:"calories"`
}

// DailyTotals holds summed calories and macro grams for a day.
type DailyTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Aggregate sums calories and macros across foods. No rounding is applied.
func Aggregate(foods []Food) DailyTotals {
	var t DailyTotals
	for _, f := range foods {
		t.Calories += f.Calories
		t.Protein += f.Protein
		t.Carbs += f.Carbs
		t.Fat += f.Fat
	}
	return t
}

// AggregateValidated validates every food before summing.
func AggregateValidated(foods []Food) (DailyTotals, error) {
	for i, f := range foods {
		if err := Validate(f); err != nil {
			return DailyTotals{}, fmt.Errorf("food %d: %w", i, err)
		}
	}
	return Aggregate(foods), nil
}

// Add returns the element-wise sum of a and b.
func Add(a, b DailyTotals) DailyTotals {
	return DailyTotals{
		Calories: a.Calories + b.Calories,
		Protein:  a.Protein + b.Protein,
		Carbs:    a.Carbs + b.Carbs,
		Fat:      a.Fat + b.Fat,
	}
}

// DeriveCalories computes calories from macro grams.
func DeriveCalories(protein, carbs, fat float64) float64 {
	return protein*ProteinKcalPerGram + carbs*CarbsKcalPerGram + fat*FatKcalPerGram
}

// DefaultCalories is the value stored for an entry created without explicit calories.
func DefaultCalories(protein, carbs, fat float64) float64 {
	return math.Round(DeriveCalories(protein, carbs, fat))
}
