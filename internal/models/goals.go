package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
)

// Default targets for a user who has never saved goals.
const (
	DefaultCalorieGoal   = 2000
	DefaultProteinTarget = 150
	DefaultCarbsTarget   = 200
	DefaultFatTarget     = 65
)

// UserGoals holds one user's daily calorie and macro targets.
type UserGoals struct {
	ID               uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID           uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	DailyCalorieGoal float64   `gorm:"not null" json:"daily_calorie_goal"`
	ProteinTarget    float64   `gorm:"not null" json:"protein_target"`
	CarbsTarget      float64   `gorm:"not null" json:"carbs_target"`
	FatTarget        float64   `gorm:"not null" json:"fat_target"`
	Notes            *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UserGoals) TableName() string {
	return "user_goals"
}

// BeforeCreate assigns an ID when the caller did not.
func (g *UserGoals) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// DefaultGoals returns the starting targets for userID.
func DefaultGoals(userID uuid.UUID) UserGoals {
	return UserGoals{
		UserID:           userID,
		DailyCalorieGoal: DefaultCalorieGoal,
		ProteinTarget:    DefaultProteinTarget,
		CarbsTarget:      DefaultCarbsTarget,
		FatTarget:        DefaultFatTarget,
	}
}

// Targets converts the record into aggregator goals.
func (g UserGoals) Targets() nutrition.Goals {
	return nutrition.Goals{
		Calories: g.DailyCalorieGoal,
		Protein:  g.ProteinTarget,
		Carbs:    g.CarbsTarget,
		Fat:      g.FatTarget,
	}
}
