package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

var (
	_ service.IMealService    = (*MockMealService)(nil)
	_ service.IGoalsService   = (*MockGoalsService)(nil)
	_ service.ISummaryService = (*MockSummaryService)(nil)
	_ service.IExportService  = (*MockExportService)(nil)
)

// MockMealService is a mock implementation of the MealService interface
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) meal(args mock.Arguments) (*models.Meal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meal), args.Error(1)
}

func (m *MockMealService) entry(args mock.Arguments) (*models.FoodEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodEntry), args.Error(1)
}

func (m *MockMealService) meals(args mock.Arguments) ([]models.Meal, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Meal), args.Error(1)
}

func (m *MockMealService) CreateMeal(ctx context.Context, userID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error) {
	return m.meal(m.Called(ctx, userID, req))
}

func (m *MockMealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	return m.meal(m.Called(ctx, userID, mealID))
}

func (m *MockMealService) ListMeals(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error) {
	return m.meals(m.Called(ctx, userID, date))
}

func (m *MockMealService) ListMealsInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]models.Meal, error) {
	return m.meals(m.Called(ctx, userID, from, to))
}

func (m *MockMealService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	return m.Called(ctx, userID, mealID).Error(0)
}

func (m *MockMealService) LogFood(ctx context.Context, userID uuid.UUID, req *types.LogFoodRequest) (*models.FoodEntry, error) {
	return m.entry(m.Called(ctx, userID, req))
}

func (m *MockMealService) AddFood(ctx context.Context, userID, mealID uuid.UUID, req *types.FoodRequest) (*models.FoodEntry, error) {
	return m.entry(m.Called(ctx, userID, mealID, req))
}

func (m *MockMealService) UpdateFood(ctx context.Context, userID, foodID uuid.UUID, req *types.UpdateFoodRequest) (*models.FoodEntry, error) {
	return m.entry(m.Called(ctx, userID, foodID, req))
}

func (m *MockMealService) DeleteFood(ctx context.Context, userID, foodID uuid.UUID) error {
	return m.Called(ctx, userID, foodID).Error(0)
}

func (m *MockMealService) FoodsForDay(ctx context.Context, userID uuid.UUID, date string) ([]nutrition.Food, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]nutrition.Food), args.Error(1)
}

// MockGoalsService is a mock implementation of the GoalsService interface
type MockGoalsService struct {
	mock.Mock
}

func (m *MockGoalsService) GetGoals(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGoals), args.Error(1)
}

func (m *MockGoalsService) UpdateGoals(ctx context.Context, userID uuid.UUID, req *types.UpdateGoalsRequest) (*models.UserGoals, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserGoals), args.Error(1)
}

// MockSummaryService is a mock implementation of the SummaryService interface
type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) DailySummary(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error) {
	args := m.Called(ctx, userID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.DailySummary), args.Error(1)
}

func (m *MockSummaryService) History(ctx context.Context, userID uuid.UUID, from, to string) (*types.History, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.History), args.Error(1)
}

// MockExportService is a mock implementation of the ExportService interface
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) Export(ctx context.Context, userID uuid.UUID, format service.ExportFormat, from, to string) (*service.ExportFile, error) {
	args := m.Called(ctx, userID, format, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportFile), args.Error(1)
}

func (m *MockExportService) Archive(ctx context.Context, userID uuid.UUID, format service.ExportFormat, from, to string) (*types.ArchiveResponse, error) {
	args := m.Called(ctx, userID, format, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.ArchiveResponse), args.Error(1)
}
