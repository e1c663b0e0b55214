package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	IssueToken(user *models.User) (string, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// IGoalsService defines the interface for daily goal settings
type IGoalsService interface {
	GetGoals(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error)
	UpdateGoals(ctx context.Context, userID uuid.UUID, req *types.UpdateGoalsRequest) (*models.UserGoals, error)
}

// IMealService defines the interface for meal and food logging
type IMealService interface {
	CreateMeal(ctx context.Context, userID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error)
	GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error)
	ListMeals(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error)
	ListMealsInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]models.Meal, error)
	DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error
	LogFood(ctx context.Context, userID uuid.UUID, req *types.LogFoodRequest) (*models.FoodEntry, error)
	AddFood(ctx context.Context, userID, mealID uuid.UUID, req *types.FoodRequest) (*models.FoodEntry, error)
	UpdateFood(ctx context.Context, userID, foodID uuid.UUID, req *types.UpdateFoodRequest) (*models.FoodEntry, error)
	DeleteFood(ctx context.Context, userID, foodID uuid.UUID) error
	FoodsForDay(ctx context.Context, userID uuid.UUID, date string) ([]nutrition.Food, error)
}

// ISummaryService defines the interface for aggregated daily views
type ISummaryService interface {
	DailySummary(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error)
	History(ctx context.Context, userID uuid.UUID, from, to string) (*types.History, error)
}

// IExportService defines the interface for exporting the food log
type IExportService interface {
	Export(ctx context.Context, userID uuid.UUID, format ExportFormat, from, to string) (*ExportFile, error)
	Archive(ctx context.Context, userID uuid.UUID, format ExportFormat, from, to string) (*types.ArchiveResponse, error)
}
