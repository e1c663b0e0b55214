package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// Meal is one meal slot (breakfast, lunch, dinner or snacks) on one day.
type Meal struct {
	ID        uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID          `gorm:"type:varchar(36);not null;uniqueIndex:idx_meals_user_date_type" json:"user_id"`
	Date      string             `gorm:"type:varchar(10);not null;uniqueIndex:idx_meals_user_date_type" json:"date"`
	MealType  nutrition.MealType `gorm:"type:varchar(16);not null;uniqueIndex:idx_meals_user_date_type" json:"meal_type"`
	Foods     []FoodEntry        `gorm:"foreignKey:MealID;constraint:OnDelete:CASCADE" json:"foods"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// BeforeCreate assigns an ID when the caller did not.
func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Nutrition returns the foods of the meal in aggregator form.
func (m Meal) Nutrition() []nutrition.Food {
	foods := make([]nutrition.Food, 0, len(m.Foods))
	for _, f := range m.Foods {
		foods = append(foods, f.Nutrition())
	}
	return foods
}

// FoodEntry is a single food logged into a meal.
type FoodEntry struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	MealID           uuid.UUID `gorm:"type:varchar(36);not null;index" json:"meal_id"`
	Position         int       `gorm:"not null;default:0" json:"position"`
	Name             string    `gorm:"size:255;not null" json:"name"`
	ServingSize      float64   `gorm:"not null" json:"serving_size"`
	ServingUnit      string    `gorm:"size:16;not null" json:"serving_unit"`
	NumberOfServings float64   `gorm:"not null" json:"number_of_servings"`
	Protein          float64   `gorm:"not null" json:"protein"`
	Carbs            float64   `gorm:"not null" json:"carbs"`
	Fat              float64   `gorm:"not null" json:"fat"`
	Calories         float64   `gorm:"not null" json:"calories"`
	CaloriesDerived  bool      `gorm:"not null;default:false" json:"calories_derived"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (FoodEntry) TableName() string {
	return "meal_entries"
}

// BeforeCreate assigns an ID when the caller did not.
func (f *FoodEntry) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Nutrition converts the entry into aggregator form.
func (f FoodEntry) Nutrition() nutrition.Food {
	return nutrition.Food{
		Name:             f.Name,
		ServingSize:      f.ServingSize,
		ServingUnit:      f.ServingUnit,
		NumberOfServings: f.NumberOfServings,
		Protein:          f.Protein,
		Carbs:            f.Carbs,
		Fat:              f.Fat,
		Calories:         f.Calories,
	}
}
