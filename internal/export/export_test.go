package export

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

func sampleMeals() []models.Meal {
	return []models.Meal{
		{
			Date:     "2024-03-01",
			MealType: nutrition.Breakfast,
			Foods: []models.FoodEntry{
				{Name: "Oatmeal", ServingSize: 40, ServingUnit: "g", NumberOfServings: 1, Protein: 5, Carbs: 27, Fat: 3, Calories: 150},
				{Name: "Milk, whole", ServingSize: 1, ServingUnit: "cup", NumberOfServings: 1.5, Protein: 12, Carbs: 18, Fat: 12, Calories: 229.5},
			},
		},
		{Date: "2024-03-01", MealType: nutrition.Lunch},
	}
}

func TestCSV(t *testing.T) {
	doc := NewDocument(sampleMeals(), "2024-03-01", "2024-03-01", time.Now())

	data, err := CSV(doc)
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Date,Meal Type,Food Name,Servings,Calories,Protein (g),Carbs (g),Fat (g)", strings.Join(rows[0], ","))
	assert.Equal(t, []string{"2024-03-01", "breakfast", "Oatmeal", "1 g", "150", "5", "27", "3"}, rows[1])
	assert.Equal(t, []string{"2024-03-01", "breakfast", "Milk, whole", "1.5 cup", "229.5", "12", "18", "12"}, rows[2])
}

func TestCSVEmpty(t *testing.T) {
	data, err := CSV(NewDocument(nil, "", "", time.Now()))
	require.NoError(t, err)
	assert.Equal(t, strings.Join(CSVHeader, ",")+"\n", string(data))
}

func TestJSON(t *testing.T) {
	exportedAt := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	data, err := JSON(NewDocument(sampleMeals(), "2024-03-01", "2024-03-01", exportedAt))
	require.NoError(t, err)

	var doc Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, Version, doc.Version)
	assert.Equal(t, Tool, doc.Tool)
	assert.True(t, exportedAt.Equal(doc.ExportedAt))
	require.Len(t, doc.Meals, 2)
	assert.Equal(t, nutrition.DailyTotals{Calories: 379.5, Protein: 17, Carbs: 45, Fat: 15}, doc.Meals[0].Totals)
	assert.Empty(t, doc.Meals[1].Foods)
}

func TestYAML(t *testing.T) {
	data, err := YAML(NewDocument(sampleMeals(), "", "", time.Now()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "tool: macrotrack")
	assert.NotContains(t, string(data), "from:")

	var doc Document
	require.NoError(t, yaml.Unmarshal(data, &doc))
	require.Len(t, doc.Meals, 2)
	assert.Equal(t, "Oatmeal", doc.Meals[0].Foods[0].Name)
}
