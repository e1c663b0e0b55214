package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// GoalsService handles per-user daily goal settings
type GoalsService struct {
	db       *gorm.DB
	notifier *Notifier
}

// Ensure GoalsService implements IGoalsService
var _ IGoalsService = (*GoalsService)(nil)

// NewGoalsService creates a new GoalsService instance
func NewGoalsService(db *gorm.DB, notifier *Notifier) *GoalsService {
	return &GoalsService{
		db:       db,
		notifier: notifier,
	}
}

// GetGoals returns the user's goals, creating the defaults on first read
func (s *GoalsService) GetGoals(ctx context.Context, userID uuid.UUID) (*models.UserGoals, error) {
	return s.getOrCreate(s.db.WithContext(ctx), userID)
}

func (s *GoalsService) getOrCreate(db *gorm.DB, userID uuid.UUID) (*models.UserGoals, error) {
	var goals models.UserGoals
	err := db.Where("user_id = ?", userID).First(&goals).Error
	if err == nil {
		return &goals, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	// A concurrent first read may insert the same row
	defaults := models.DefaultGoals(userID)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&defaults).Error; err != nil {
		return nil, err
	}

	var created models.UserGoals
	if err := db.Where("user_id = ?", userID).First(&created).Error; err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateGoals applies the fields present in req
func (s *GoalsService) UpdateGoals(ctx context.Context, userID uuid.UUID, req *types.UpdateGoalsRequest) (*models.UserGoals, error) {
	var goals *models.UserGoals
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.getOrCreate(tx, userID)
		if err != nil {
			return err
		}

		if req.DailyCalorieGoal != nil {
			current.DailyCalorieGoal = *req.DailyCalorieGoal
		}
		if req.ProteinTarget != nil {
			current.ProteinTarget = *req.ProteinTarget
		}
		if req.CarbsTarget != nil {
			current.CarbsTarget = *req.CarbsTarget
		}
		if req.FatTarget != nil {
			current.FatTarget = *req.FatTarget
		}
		if req.Notes != nil {
			if *req.Notes == "" {
				current.Notes = nil
			} else {
				notes := *req.Notes
				current.Notes = &notes
			}
		}

		if err := nutrition.ValidateGoals(current.Targets()); err != nil {
			return err
		}

		if err := tx.Save(current).Error; err != nil {
			return err
		}
		goals = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, Mutation{
		UserID:  userID,
		Kind:    MutationUpdated,
		Subject: SubjectGoals,
		ID:      goals.ID,
	})
	return goals, nil
}
