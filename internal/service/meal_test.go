package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
	"github.com/pageza/macrotrack/backend/internal/types"
)

type recorder struct {
	mutations []service.Mutation
}

func (r *recorder) listen(_ context.Context, m service.Mutation) error {
	r.mutations = append(r.mutations, m)
	return nil
}

func setupMealTest(t *testing.T) (*gorm.DB, *service.MealService, *models.User, *recorder) {
	t.Helper()
	db := testhelpers.SetupTestDatabase(t)
	notifier := service.NewNotifier(nil)
	rec := &recorder{}
	notifier.Subscribe(rec.listen)
	return db, service.NewMealService(db, notifier), testhelpers.CreateTestUser(t, db), rec
}

func logFood(date, mealType, name string, protein, carbs, fat float64, calories *float64) *types.LogFoodRequest {
	return &types.LogFoodRequest{
		Date:     date,
		MealType: mealType,
		FoodRequest: types.FoodRequest{
			Name:     name,
			Protein:  protein,
			Carbs:    carbs,
			Fat:      fat,
			Calories: calories,
		},
	}
}

func TestLogFoodCreatesMealOnce(t *testing.T) {
	db, mealSvc, user, rec := setupMealTest(t)
	ctx := context.Background()

	first, err := mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "Breakfast", "Eggs", 12, 1, 10, nil))
	require.NoError(t, err)
	second, err := mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "breakfast", "Toast", 3, 15, 1, float(80)))
	require.NoError(t, err)

	assert.Equal(t, first.MealID, second.MealID)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)

	var meals int64
	require.NoError(t, db.Model(&models.Meal{}).Where("user_id = ?", user.ID).Count(&meals).Error)
	assert.Equal(t, int64(1), meals)

	require.Len(t, rec.mutations, 2)
	assert.Equal(t, service.SubjectFood, rec.mutations[0].Subject)
	assert.Equal(t, "2024-03-01", rec.mutations[0].Date)
}

func TestLogFoodDefaults(t *testing.T) {
	_, mealSvc, user, _ := setupMealTest(t)

	entry, err := mealSvc.LogFood(context.Background(), user.ID, logFood("2024-03-01", "lunch", "Rice", 1.2, 2.5, 1.5, nil))
	require.NoError(t, err)

	assert.Equal(t, float64(service.DefaultServingSize), entry.ServingSize)
	assert.Equal(t, service.DefaultServingUnit, entry.ServingUnit)
	assert.Equal(t, float64(service.DefaultNumberOfServings), entry.NumberOfServings)
	assert.Equal(t, float64(28), entry.Calories)
	assert.True(t, entry.CaloriesDerived)
}

func TestLogFoodKeepsExplicitCalories(t *testing.T) {
	_, mealSvc, user, _ := setupMealTest(t)

	entry, err := mealSvc.LogFood(context.Background(), user.ID, logFood("2024-03-01", "dinner", "Salmon", 25, 0, 12, float(0)))
	require.NoError(t, err)
	assert.Equal(t, float64(0), entry.Calories)
	assert.False(t, entry.CaloriesDerived)
}

func TestLogFoodValidation(t *testing.T) {
	_, mealSvc, user, rec := setupMealTest(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   *types.LogFoodRequest
		field string
	}{
		{"bad date", logFood("03/01/2024", "lunch", "Rice", 1, 1, 1, nil), "date"},
		{"bad meal type", logFood("2024-03-01", "brunch", "Rice", 1, 1, 1, nil), "meal_type"},
		{"negative macro", logFood("2024-03-01", "lunch", "Rice", -1, 1, 1, nil), "protein"},
		{"negative calories", logFood("2024-03-01", "lunch", "Rice", 1, 1, 1, float(-5)), "calories"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mealSvc.LogFood(ctx, user.ID, tt.req)
			var ve *nutrition.ValidationError
			require.True(t, errors.As(err, &ve), "got %v", err)
			assert.Equal(t, tt.field, ve.Field)
		})
	}

	unit := logFood("2024-03-01", "lunch", "Rice", 1, 1, 1, nil)
	unit.ServingUnit = "lb"
	_, err := mealSvc.LogFood(ctx, user.ID, unit)
	var ve *nutrition.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "serving_unit", ve.Field)

	assert.Empty(t, rec.mutations)
}

func TestCreateMealAppendsToExistingSlot(t *testing.T) {
	_, mealSvc, user, rec := setupMealTest(t)
	ctx := context.Background()

	meal, err := mealSvc.CreateMeal(ctx, user.ID, &types.CreateMealRequest{
		Date:     "2024-03-02",
		MealType: "lunch",
		Foods: []types.FoodRequest{
			{Name: "Chicken", Protein: 31, Fat: 3.6},
			{Name: "Broccoli", Protein: 2.8, Carbs: 7, Fat: 0.4},
		},
	})
	require.NoError(t, err)
	require.Len(t, meal.Foods, 2)
	assert.Equal(t, "Chicken", meal.Foods[0].Name)

	again, err := mealSvc.CreateMeal(ctx, user.ID, &types.CreateMealRequest{
		Date:     "2024-03-02",
		MealType: "lunch",
		Foods:    []types.FoodRequest{{Name: "Apple", Carbs: 25}},
	})
	require.NoError(t, err)
	assert.Equal(t, meal.ID, again.ID)
	require.Len(t, again.Foods, 3)
	assert.Equal(t, "Apple", again.Foods[2].Name)

	require.Len(t, rec.mutations, 2)
	assert.Equal(t, service.MutationCreated, rec.mutations[0].Kind)
	assert.Equal(t, service.MutationUpdated, rec.mutations[1].Kind)
}

func TestListMealsOrdersSlots(t *testing.T) {
	db, mealSvc, user, _ := setupMealTest(t)
	testhelpers.CreateTestMeal(t, db, user.ID, "2024-03-01", nutrition.Snacks)
	testhelpers.CreateTestMeal(t, db, user.ID, "2024-03-01", nutrition.Breakfast)
	testhelpers.CreateTestMeal(t, db, user.ID, "2024-03-01", nutrition.Dinner)
	testhelpers.CreateTestMeal(t, db, user.ID, "2024-03-02", nutrition.Lunch)

	meals, err := mealSvc.ListMeals(context.Background(), user.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, meals, 3)
	assert.Equal(t, nutrition.Breakfast, meals[0].MealType)
	assert.Equal(t, nutrition.Dinner, meals[1].MealType)
	assert.Equal(t, nutrition.Snacks, meals[2].MealType)

	ranged, err := mealSvc.ListMealsInRange(context.Background(), user.ID, "2024-03-01", "2024-03-02")
	require.NoError(t, err)
	assert.Len(t, ranged, 4)
	assert.Equal(t, "2024-03-02", ranged[3].Date)

	_, err = mealSvc.ListMealsInRange(context.Background(), user.ID, "2024-03-03", "2024-03-01")
	assert.Error(t, err)
}

func TestMealOwnership(t *testing.T) {
	db, mealSvc, user, _ := setupMealTest(t)
	other := testhelpers.CreateTestUser(t, db)
	meal := testhelpers.CreateTestMeal(t, db, other.ID, "2024-03-01", nutrition.Lunch,
		models.FoodEntry{Name: "Soup", ServingSize: 250, ServingUnit: "ml", NumberOfServings: 1, Calories: 120})
	ctx := context.Background()

	_, err := mealSvc.GetMeal(ctx, user.ID, meal.ID)
	assert.ErrorIs(t, err, service.ErrMealNotFound)
	assert.ErrorIs(t, mealSvc.DeleteMeal(ctx, user.ID, meal.ID), service.ErrMealNotFound)

	_, err = mealSvc.AddFood(ctx, user.ID, meal.ID, &types.FoodRequest{Name: "Bread"})
	assert.ErrorIs(t, err, service.ErrMealNotFound)

	foodID := meal.Foods[0].ID
	_, err = mealSvc.UpdateFood(ctx, user.ID, foodID, &types.UpdateFoodRequest{Calories: float(1)})
	assert.ErrorIs(t, err, service.ErrFoodNotFound)
	assert.ErrorIs(t, mealSvc.DeleteFood(ctx, user.ID, foodID), service.ErrFoodNotFound)
	assert.ErrorIs(t, mealSvc.DeleteFood(ctx, user.ID, uuid.New()), service.ErrFoodNotFound)

	owned, err := mealSvc.GetMeal(ctx, other.ID, meal.ID)
	require.NoError(t, err)
	assert.Len(t, owned.Foods, 1)
}

func TestUpdateFoodCalories(t *testing.T) {
	_, mealSvc, user, rec := setupMealTest(t)
	ctx := context.Background()

	derived, err := mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "lunch", "Beans", 10, 20, 1, nil))
	require.NoError(t, err)
	assert.Equal(t, float64(129), derived.Calories)

	// Derived calories follow macro edits
	updated, err := mealSvc.UpdateFood(ctx, user.ID, derived.ID, &types.UpdateFoodRequest{Protein: float(15)})
	require.NoError(t, err)
	assert.Equal(t, float64(149), updated.Calories)
	assert.True(t, updated.CaloriesDerived)

	entered, err := mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "lunch", "Bar", 10, 20, 5, float(200)))
	require.NoError(t, err)

	// Entered calories never do
	updated, err = mealSvc.UpdateFood(ctx, user.ID, entered.ID, &types.UpdateFoodRequest{Fat: float(9)})
	require.NoError(t, err)
	assert.Equal(t, float64(200), updated.Calories)
	assert.Equal(t, float64(9), updated.Fat)

	updated, err = mealSvc.UpdateFood(ctx, user.ID, derived.ID, &types.UpdateFoodRequest{Calories: float(150)})
	require.NoError(t, err)
	assert.Equal(t, float64(150), updated.Calories)
	assert.False(t, updated.CaloriesDerived)

	_, err = mealSvc.UpdateFood(ctx, user.ID, derived.ID, &types.UpdateFoodRequest{Carbs: float(-1)})
	assert.Error(t, err)

	assert.Len(t, rec.mutations, 5)
}

func TestDeleteFoodAndMeal(t *testing.T) {
	db, mealSvc, user, rec := setupMealTest(t)
	ctx := context.Background()

	entry, err := mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "snacks", "Nuts", 5, 5, 14, nil))
	require.NoError(t, err)
	_, err = mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "snacks", "Yogurt", 10, 6, 0, nil))
	require.NoError(t, err)

	require.NoError(t, mealSvc.DeleteFood(ctx, user.ID, entry.ID))
	meal, err := mealSvc.GetMeal(ctx, user.ID, entry.MealID)
	require.NoError(t, err)
	require.Len(t, meal.Foods, 1)
	assert.Equal(t, "Yogurt", meal.Foods[0].Name)

	require.NoError(t, mealSvc.DeleteMeal(ctx, user.ID, meal.ID))
	_, err = mealSvc.GetMeal(ctx, user.ID, meal.ID)
	assert.ErrorIs(t, err, service.ErrMealNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.FoodEntry{}).Where("meal_id = ?", meal.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)

	last := rec.mutations[len(rec.mutations)-1]
	assert.Equal(t, service.SubjectMeal, last.Subject)
	assert.Equal(t, service.MutationDeleted, last.Kind)
}

func TestFoodsForDay(t *testing.T) {
	_, mealSvc, user, _ := setupMealTest(t)
	ctx := context.Background()

	_, err := mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "dinner", "Pasta", 12, 70, 2, nil))
	require.NoError(t, err)
	_, err = mealSvc.LogFood(ctx, user.ID, logFood("2024-03-01", "breakfast", "Eggs", 12, 1, 10, nil))
	require.NoError(t, err)

	foods, err := mealSvc.FoodsForDay(ctx, user.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, foods, 2)
	assert.Equal(t, "Eggs", foods[0].Name)

	totals := nutrition.Aggregate(foods)
	assert.Equal(t, float64(24), totals.Protein)
}
