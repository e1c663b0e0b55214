// Package export renders a user's food log as CSV, JSON or YAML documents.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

const (
	// Version of the JSON and YAML document layout
	Version = "1.0"
	Tool    = "macrotrack"
)

// CSVHeader is the first row of every CSV export
var CSVHeader = []string{"Date", "Meal Type", "Food Name", "Servings", "Calories", "Protein (g)", "Carbs (g)", "Fat (g)"}

// Food is one exported food entry
type Food struct {
	Name             string  `json:"name" yaml:"name"`
	ServingSize      float64 `json:"serving_size" yaml:"serving_size"`
	ServingUnit      string  `json:"serving_unit" yaml:"serving_unit"`
	NumberOfServings float64 `json:"number_of_servings" yaml:"number_of_servings"`
	Calories         float64 `json:"calories" yaml:"calories"`
	Protein          float64 `json:"protein" yaml:"protein"`
	Carbs            float64 `json:"carbs" yaml:"carbs"`
	Fat              float64 `json:"fat" yaml:"fat"`
}

// Meal is one exported meal with its totals
type Meal struct {
	Date     string                `json:"date" yaml:"date"`
	MealType nutrition.MealType    `json:"meal_type" yaml:"meal_type"`
	Totals   nutrition.DailyTotals `json:"totals" yaml:"totals"`
	Foods    []Food                `json:"foods" yaml:"foods"`
}

// Document is the JSON/YAML export layout
type Document struct {
	Version    string    `json:"version" yaml:"version"`
	Tool       string    `json:"tool" yaml:"tool"`
	ExportedAt time.Time `json:"exported_at" yaml:"exported_at"`
	From       string    `json:"from,omitempty" yaml:"from,omitempty"`
	To         string    `json:"to,omitempty" yaml:"to,omitempty"`
	Meals      []Meal    `json:"meals" yaml:"meals"`
}

// NewDocument converts stored meals into an export document
func NewDocument(meals []models.Meal, from, to string, exportedAt time.Time) Document {
	doc := Document{
		Version:    Version,
		Tool:       Tool,
		ExportedAt: exportedAt.UTC(),
		From:       from,
		To:         to,
		Meals:      make([]Meal, 0, len(meals)),
	}
	for _, m := range meals {
		meal := Meal{
			Date:     m.Date,
			MealType: m.MealType,
			Totals:   nutrition.Aggregate(m.Nutrition()),
			Foods:    make([]Food, 0, len(m.Foods)),
		}
		for _, f := range m.Foods {
			meal.Foods = append(meal.Foods, Food{
				Name:             f.Name,
				ServingSize:      f.ServingSize,
				ServingUnit:      f.ServingUnit,
				NumberOfServings: f.NumberOfServings,
				Calories:         f.Calories,
				Protein:          f.Protein,
				Carbs:            f.Carbs,
				Fat:              f.Fat,
			})
		}
		doc.Meals = append(doc.Meals, meal)
	}
	return doc
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Servings renders the servings column, e.g. "1.5 cup"
func Servings(f Food) string {
	return fmt.Sprintf("%s %s", formatNumber(f.NumberOfServings), f.ServingUnit)
}

// CSV writes one row per food entry. Empty meals produce no rows.
func CSV(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeader); err != nil {
		return nil, err
	}
	for _, meal := range doc.Meals {
		for _, f := range meal.Foods {
			row := []string{
				meal.Date,
				string(meal.MealType),
				f.Name,
				Servings(f),
				formatNumber(f.Calories),
				formatNumber(f.Protein),
				formatNumber(f.Carbs),
				formatNumber(f.Fat),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// JSON renders the document indented
func JSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// YAML renders the document
func YAML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
