package types

import (
	"github.com/pageza/macrotrack/backend/internal/models"
)

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// FoodRequest describes a food to log. Calories are derived from the
// macros when omitted.
type FoodRequest struct {
	Name             string   `json:"name" binding:"required,max=255"`
	ServingSize      *float64 `json:"serving_size" binding:"omitempty,gte=0"`
	ServingUnit      string   `json:"serving_unit" binding:"omitempty,servingunit"`
	NumberOfServings *float64 `json:"number_of_servings" binding:"omitempty,gte=0"`
	Protein          float64  `json:"protein" binding:"gte=0"`
	Carbs            float64  `json:"carbs" binding:"gte=0"`
	Fat              float64  `json:"fat" binding:"gte=0"`
	Calories         *float64 `json:"calories" binding:"omitempty,gte=0"`
}

// LogFoodRequest logs a food into a meal slot, creating the meal if needed
type LogFoodRequest struct {
	Date     string `json:"date" binding:"required,calendardate"`
	MealType string `json:"meal_type" binding:"required,mealtype"`
	FoodRequest
}

// CreateMealRequest creates a meal with an optional initial list of foods
type CreateMealRequest struct {
	Date     string        `json:"date" binding:"required,calendardate"`
	MealType string        `json:"meal_type" binding:"required,mealtype"`
	Foods    []FoodRequest `json:"foods" binding:"omitempty,dive"`
}

// UpdateFoodRequest is a partial update of a logged food
type UpdateFoodRequest struct {
	Name             *string  `json:"name" binding:"omitempty,min=1,max=255"`
	ServingSize      *float64 `json:"serving_size" binding:"omitempty,gte=0"`
	ServingUnit      *string  `json:"serving_unit" binding:"omitempty,servingunit"`
	NumberOfServings *float64 `json:"number_of_servings" binding:"omitempty,gte=0"`
	Protein          *float64 `json:"protein" binding:"omitempty,gte=0"`
	Carbs            *float64 `json:"carbs" binding:"omitempty,gte=0"`
	Fat              *float64 `json:"fat" binding:"omitempty,gte=0"`
	Calories         *float64 `json:"calories" binding:"omitempty,gte=0"`
}

// UpdateGoalsRequest is a partial update of the user's goals
type UpdateGoalsRequest struct {
	DailyCalorieGoal *float64 `json:"daily_calorie_goal" binding:"omitempty,gte=0"`
	ProteinTarget    *float64 `json:"protein_target" binding:"omitempty,gte=0"`
	CarbsTarget      *float64 `json:"carbs_target" binding:"omitempty,gte=0"`
	FatTarget        *float64 `json:"fat_target" binding:"omitempty,gte=0"`
	Notes            *string  `json:"notes" binding:"omitempty,max=1000"`
}

// ExportArchiveRequest is the body of POST /export/archive
type ExportArchiveRequest struct {
	Format string `json:"format" binding:"required,oneof=csv json yaml"`
	From   string `json:"from" binding:"omitempty,calendardate"`
	To     string `json:"to" binding:"omitempty,calendardate"`
}
