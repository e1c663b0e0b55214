package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

var (
	ErrMealNotFound = errors.New("meal not found")
	ErrFoodNotFound = errors.New("food entry not found")
)

// Serving defaults applied when a food is logged without them
const (
	DefaultServingSize      = 100
	DefaultServingUnit      = "g"
	DefaultNumberOfServings = 1
)

// MealService handles meals and the foods logged into them
type MealService struct {
	db       *gorm.DB
	notifier *Notifier
}

// Ensure MealService implements IMealService
var _ IMealService = (*MealService)(nil)

// NewMealService creates a new MealService instance
func NewMealService(db *gorm.DB, notifier *Notifier) *MealService {
	return &MealService{
		db:       db,
		notifier: notifier,
	}
}

func validateSlot(date, mealType string) (nutrition.MealType, error) {
	if !nutrition.IsValidDate(date) {
		return "", &nutrition.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"}
	}
	mt, err := nutrition.ParseMealType(mealType)
	if err != nil {
		return "", &nutrition.ValidationError{Field: "meal_type", Message: err.Error()}
	}
	return mt, nil
}

// newFoodEntry builds an entry from req, applying serving defaults and
// deriving calories once when they were not given.
func newFoodEntry(req *types.FoodRequest) (*models.FoodEntry, error) {
	entry := &models.FoodEntry{
		Name:             req.Name,
		ServingSize:      DefaultServingSize,
		ServingUnit:      DefaultServingUnit,
		NumberOfServings: DefaultNumberOfServings,
		Protein:          req.Protein,
		Carbs:            req.Carbs,
		Fat:              req.Fat,
	}
	if req.ServingSize != nil {
		entry.ServingSize = *req.ServingSize
	}
	if req.ServingUnit != "" {
		entry.ServingUnit = req.ServingUnit
	}
	if req.NumberOfServings != nil {
		entry.NumberOfServings = *req.NumberOfServings
	}
	if req.Calories != nil {
		entry.Calories = *req.Calories
	} else {
		entry.Calories = nutrition.DefaultCalories(entry.Protein, entry.Carbs, entry.Fat)
		entry.CaloriesDerived = true
	}

	if err := validateEntry(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func validateEntry(entry *models.FoodEntry) error {
	if entry.Name == "" {
		return &nutrition.ValidationError{Field: "name", Message: "is required"}
	}
	if !nutrition.IsValidServingUnit(entry.ServingUnit) {
		return &nutrition.ValidationError{Field: "serving_unit", Message: "must be one of g, ml, oz, cup"}
	}
	return nutrition.Validate(entry.Nutrition())
}

// snapshotOptions returns transaction options giving one consistent view
// across the statements of a read.
func snapshotOptions(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
	}
	return nil
}

func sortMeals(meals []models.Meal) {
	order := make(map[nutrition.MealType]int, len(nutrition.MealTypes))
	for i, mt := range nutrition.MealTypes {
		order[mt] = i
	}
	sort.SliceStable(meals, func(i, j int) bool {
		if meals[i].Date != meals[j].Date {
			return meals[i].Date < meals[j].Date
		}
		return order[meals[i].MealType] < order[meals[j].MealType]
	})
}

func orderedFoods(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, created_at ASC")
}

// findOrCreateMeal returns the user's meal for the slot, inserting it if absent
func findOrCreateMeal(tx *gorm.DB, userID uuid.UUID, date string, mealType nutrition.MealType) (*models.Meal, bool, error) {
	candidate := models.Meal{UserID: userID, Date: date, MealType: mealType}
	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}, {Name: "meal_type"}},
		DoNothing: true,
	}).Create(&candidate)
	if result.Error != nil {
		return nil, false, result.Error
	}

	var meal models.Meal
	if err := tx.Where("user_id = ? AND date = ? AND meal_type = ?", userID, date, mealType).First(&meal).Error; err != nil {
		return nil, false, err
	}
	return &meal, result.RowsAffected > 0, nil
}

func nextPosition(tx *gorm.DB, mealID uuid.UUID) (int, error) {
	var maxPos sql.NullInt64
	if err := tx.Model(&models.FoodEntry{}).
		Where("meal_id = ?", mealID).
		Select("MAX(position)").
		Scan(&maxPos).Error; err != nil {
		return 0, err
	}
	if !maxPos.Valid {
		return 0, nil
	}
	return int(maxPos.Int64) + 1, nil
}

func addFoods(tx *gorm.DB, mealID uuid.UUID, entries []*models.FoodEntry) error {
	pos, err := nextPosition(tx, mealID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		entry.MealID = mealID
		entry.Position = pos
		pos++
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateMeal creates the meal for a slot with its initial foods. If the slot
// already has a meal the foods are appended to it.
func (s *MealService) CreateMeal(ctx context.Context, userID uuid.UUID, req *types.CreateMealRequest) (*models.Meal, error) {
	mealType, err := validateSlot(req.Date, req.MealType)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.FoodEntry, 0, len(req.Foods))
	for i := range req.Foods {
		entry, err := newFoodEntry(&req.Foods[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	var meal models.Meal
	var created bool
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, isNew, err := findOrCreateMeal(tx, userID, req.Date, mealType)
		if err != nil {
			return err
		}
		created = isNew
		if err := addFoods(tx, m.ID, entries); err != nil {
			return err
		}
		return tx.Preload("Foods", orderedFoods).First(&meal, "id = ?", m.ID).Error
	})
	if err != nil {
		return nil, err
	}

	kind := MutationUpdated
	if created {
		kind = MutationCreated
	}
	s.notifier.Notify(ctx, Mutation{UserID: userID, Date: meal.Date, Kind: kind, Subject: SubjectMeal, ID: meal.ID})
	return &meal, nil
}

// GetMeal returns one of the user's meals with its foods
func (s *MealService) GetMeal(ctx context.Context, userID, mealID uuid.UUID) (*models.Meal, error) {
	var meal models.Meal
	err := s.db.WithContext(ctx).
		Preload("Foods", orderedFoods).
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrMealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &meal, nil
}

// ListMeals returns the user's meals for one day in slot order
func (s *MealService) ListMeals(ctx context.Context, userID uuid.UUID, date string) ([]models.Meal, error) {
	if !nutrition.IsValidDate(date) {
		return nil, &nutrition.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"}
	}
	return s.ListMealsInRange(ctx, userID, date, date)
}

// ListMealsInRange returns the user's meals between from and to inclusive.
// An empty bound leaves that side open. Meals and foods are read in one
// transaction so the result is a consistent snapshot.
func (s *MealService) ListMealsInRange(ctx context.Context, userID uuid.UUID, from, to string) ([]models.Meal, error) {
	if from != "" && !nutrition.IsValidDate(from) {
		return nil, &nutrition.ValidationError{Field: "from", Message: "must be a YYYY-MM-DD date"}
	}
	if to != "" && !nutrition.IsValidDate(to) {
		return nil, &nutrition.ValidationError{Field: "to", Message: "must be a YYYY-MM-DD date"}
	}
	if from != "" && to != "" && from > to {
		return nil, &nutrition.ValidationError{Field: "from", Message: "must not be after to"}
	}

	var meals []models.Meal
	db := s.db.WithContext(ctx)
	err := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Preload("Foods", orderedFoods).Where("user_id = ?", userID)
		if from != "" {
			query = query.Where("date >= ?", from)
		}
		if to != "" {
			query = query.Where("date <= ?", to)
		}
		return query.Find(&meals).Error
	}, snapshotOptions(db)...)
	if err != nil {
		return nil, err
	}

	sortMeals(meals)
	return meals, nil
}

// DeleteMeal removes a meal and all its foods
func (s *MealService) DeleteMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	var meal models.Meal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMealNotFound
			}
			return err
		}
		if err := tx.Where("meal_id = ?", meal.ID).Delete(&models.FoodEntry{}).Error; err != nil {
			return err
		}
		return tx.Delete(&meal).Error
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, Mutation{UserID: userID, Date: meal.Date, Kind: MutationDeleted, Subject: SubjectMeal, ID: meal.ID})
	return nil
}

// LogFood adds a food to the user's meal for (date, meal type), creating the meal when needed
func (s *MealService) LogFood(ctx context.Context, userID uuid.UUID, req *types.LogFoodRequest) (*models.FoodEntry, error) {
	mealType, err := validateSlot(req.Date, req.MealType)
	if err != nil {
		return nil, err
	}
	entry, err := newFoodEntry(&req.FoodRequest)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		meal, _, err := findOrCreateMeal(tx, userID, req.Date, mealType)
		if err != nil {
			return err
		}
		return addFoods(tx, meal.ID, []*models.FoodEntry{entry})
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Mutation{UserID: userID, Date: req.Date, Kind: MutationCreated, Subject: SubjectFood, ID: entry.ID})
	return entry, nil
}

// AddFood appends a food to an existing meal
func (s *MealService) AddFood(ctx context.Context, userID, mealID uuid.UUID, req *types.FoodRequest) (*models.FoodEntry, error) {
	entry, err := newFoodEntry(req)
	if err != nil {
		return nil, err
	}

	var meal models.Meal
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", mealID, userID).First(&meal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrMealNotFound
			}
			return err
		}
		return addFoods(tx, meal.ID, []*models.FoodEntry{entry})
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Mutation{UserID: userID, Date: meal.Date, Kind: MutationCreated, Subject: SubjectFood, ID: entry.ID})
	return entry, nil
}

// findFood loads a food entry together with its meal, scoped to userID
func findFood(tx *gorm.DB, userID, foodID uuid.UUID) (*models.FoodEntry, *models.Meal, error) {
	var entry models.FoodEntry
	err := tx.Joins("JOIN meals ON meals.id = meal_entries.meal_id").
		Where("meal_entries.id = ? AND meals.user_id = ?", foodID, userID).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, ErrFoodNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	var meal models.Meal
	if err := tx.Where("id = ?", entry.MealID).First(&meal).Error; err != nil {
		return nil, nil, err
	}
	return &entry, &meal, nil
}

// UpdateFood applies a partial update. Explicit calories are stored as given;
// derived calories follow macro changes, entered calories never do.
func (s *MealService) UpdateFood(ctx context.Context, userID, foodID uuid.UUID, req *types.UpdateFoodRequest) (*models.FoodEntry, error) {
	var entry *models.FoodEntry
	var meal *models.Meal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		entry, meal, err = findFood(tx, userID, foodID)
		if err != nil {
			return err
		}

		macrosChanged := false
		if req.Name != nil {
			entry.Name = *req.Name
		}
		if req.ServingSize != nil {
			entry.ServingSize = *req.ServingSize
		}
		if req.ServingUnit != nil {
			entry.ServingUnit = *req.ServingUnit
		}
		if req.NumberOfServings != nil {
			entry.NumberOfServings = *req.NumberOfServings
		}
		if req.Protein != nil {
			entry.Protein = *req.Protein
			macrosChanged = true
		}
		if req.Carbs != nil {
			entry.Carbs = *req.Carbs
			macrosChanged = true
		}
		if req.Fat != nil {
			entry.Fat = *req.Fat
			macrosChanged = true
		}

		switch {
		case req.Calories != nil:
			entry.Calories = *req.Calories
			entry.CaloriesDerived = false
		case macrosChanged && entry.CaloriesDerived:
			entry.Calories = nutrition.DefaultCalories(entry.Protein, entry.Carbs, entry.Fat)
		}

		if err := validateEntry(entry); err != nil {
			return err
		}
		return tx.Save(entry).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Mutation{UserID: userID, Date: meal.Date, Kind: MutationUpdated, Subject: SubjectFood, ID: entry.ID})
	return entry, nil
}

// DeleteFood removes a food entry. The meal is kept even when it becomes empty.
func (s *MealService) DeleteFood(ctx context.Context, userID, foodID uuid.UUID) error {
	var meal *models.Meal
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, m, err := findFood(tx, userID, foodID)
		if err != nil {
			return err
		}
		meal = m
		return tx.Delete(entry).Error
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, Mutation{UserID: userID, Date: meal.Date, Kind: MutationDeleted, Subject: SubjectFood, ID: foodID})
	return nil
}

// FoodsForDay returns every food the user logged on date, in slot order
func (s *MealService) FoodsForDay(ctx context.Context, userID uuid.UUID, date string) ([]nutrition.Food, error) {
	meals, err := s.ListMeals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	var foods []nutrition.Food
	for _, meal := range meals {
		foods = append(foods, meal.Nutrition()...)
	}
	return foods, nil
}
