package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// MealTotals are the totals of a single meal slot
type MealTotals struct {
	MealID    uuid.UUID             `json:"meal_id"`
	MealType  nutrition.MealType    `json:"meal_type"`
	FoodCount int                   `json:"food_count"`
	Totals    nutrition.DailyTotals `json:"totals"`
}

// DailySummary is the aggregated view of one day
type DailySummary struct {
	Date      string                `json:"date"`
	Totals    nutrition.DailyTotals `json:"totals"`
	Goals     nutrition.Goals       `json:"goals"`
	Progress  nutrition.Progress    `json:"progress"`
	Meals     []MealTotals          `json:"meals"`
	FoodCount int                   `json:"food_count"`
}

// DayTotals is one point of the history series
type DayTotals struct {
	Date           string                `json:"date"`
	Totals         nutrition.DailyTotals `json:"totals"`
	CaloriePercent float64               `json:"calorie_percent"`
	OverGoal       bool                  `json:"over_goal"`
}

// History is the per-day series between two dates, inclusive
type History struct {
	From    string                `json:"from"`
	To      string                `json:"to"`
	Days    []DayTotals           `json:"days"`
	Average nutrition.DailyTotals `json:"average"`
}

// ArchiveResponse points at an uploaded export
type ArchiveResponse struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
