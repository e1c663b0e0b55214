package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// MaxHistoryDays bounds the range accepted by History
const MaxHistoryDays = 366

// SummaryService aggregates logged foods into daily totals and goal progress
type SummaryService struct {
	meals  IMealService
	goals  IGoalsService
	cache  SummaryCache
	logger logging.Logger
}

// Ensure SummaryService implements ISummaryService
var _ ISummaryService = (*SummaryService)(nil)

// NewSummaryService creates a new SummaryService instance. A nil cache falls
// back to an in-process one.
func NewSummaryService(meals IMealService, goals IGoalsService, cache SummaryCache, logger logging.Logger) *SummaryService {
	if cache == nil {
		cache = NewMemorySummaryCache()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &SummaryService{
		meals:  meals,
		goals:  goals,
		cache:  cache,
		logger: logger,
	}
}

// DailySummary returns the totals and progress for one day, served from the
// cache when a fresh entry exists.
func (s *SummaryService) DailySummary(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error) {
	if !nutrition.IsValidDate(date) {
		return nil, &nutrition.ValidationError{Field: "date", Message: "must be a YYYY-MM-DD date"}
	}

	cached, ok, err := s.cache.Get(ctx, userID, date)
	if err != nil {
		s.logger.Printf("summary cache read failed for user %s on %s: %v", userID, date, err)
	}
	if ok {
		return cached, nil
	}
	return s.Recompute(ctx, userID, date)
}

// Recompute aggregates the day from storage and refreshes the cache entry.
// The entry is only written if no invalidation happened since the cache
// version was read, so a slow read cannot overwrite a newer summary.
func (s *SummaryService) Recompute(ctx context.Context, userID uuid.UUID, date string) (*types.DailySummary, error) {
	version, versionErr := s.cache.Version(ctx, userID)
	if versionErr != nil {
		s.logger.Printf("summary cache version read failed for user %s: %v", userID, versionErr)
	}

	meals, err := s.meals.ListMeals(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary, err := buildSummary(date, meals, goals.Targets())
	if err != nil {
		return nil, err
	}
	if versionErr != nil {
		return summary, nil
	}
	stored, err := s.cache.SetIfVersion(ctx, userID, date, version, summary)
	if err != nil {
		s.logger.Printf("summary cache write failed for user %s on %s: %v", userID, date, err)
	} else if !stored {
		s.logger.Printf("summary for user %s on %s superseded before caching", userID, date)
	}
	return summary, nil
}

// buildSummary fails on stored values that cannot be aggregated rather
// than summing them
func buildSummary(date string, meals []models.Meal, goals nutrition.Goals) (*types.DailySummary, error) {
	summary := &types.DailySummary{
		Date:  date,
		Goals: goals,
		Meals: make([]types.MealTotals, 0, len(meals)),
	}
	for _, meal := range meals {
		totals, err := nutrition.AggregateValidated(meal.Nutrition())
		if err != nil {
			return nil, fmt.Errorf("meal %s: %w", meal.ID, err)
		}
		summary.Meals = append(summary.Meals, types.MealTotals{
			MealID:    meal.ID,
			MealType:  meal.MealType,
			FoodCount: len(meal.Foods),
			Totals:    totals,
		})
		summary.Totals = nutrition.Add(summary.Totals, totals)
		summary.FoodCount += len(meal.Foods)
	}
	summary.Progress = nutrition.ComputeProgress(summary.Totals, goals)
	return summary, nil
}

// OnMutation keeps cached summaries in step with committed changes. Goal
// changes affect every day of the user; log changes affect a single day.
func (s *SummaryService) OnMutation(ctx context.Context, m Mutation) error {
	if m.Subject == SubjectGoals || m.Date == "" {
		return s.cache.InvalidateUser(ctx, m.UserID)
	}
	// Invalidating first also refuses reads that started before the commit
	if err := s.cache.Invalidate(ctx, m.UserID, m.Date); err != nil {
		return err
	}
	_, err := s.Recompute(ctx, m.UserID, m.Date)
	return err
}

// History returns per-day totals between from and to inclusive. Days without
// entries are present with zero totals, and Average is taken over every day.
func (s *SummaryService) History(ctx context.Context, userID uuid.UUID, from, to string) (*types.History, error) {
	start, err := nutrition.ParseDate(from)
	if err != nil {
		return nil, &nutrition.ValidationError{Field: "from", Message: err.Error()}
	}
	end, err := nutrition.ParseDate(to)
	if err != nil {
		return nil, &nutrition.ValidationError{Field: "to", Message: err.Error()}
	}
	if end.Before(start) {
		return nil, &nutrition.ValidationError{Field: "from", Message: "must not be after to"}
	}
	days := int(end.Sub(start).Hours()/24) + 1
	if days > MaxHistoryDays {
		return nil, &nutrition.ValidationError{Field: "to", Message: "range must not exceed 366 days"}
	}

	meals, err := s.meals.ListMealsInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	goals, err := s.goals.GetGoals(ctx, userID)
	if err != nil {
		return nil, err
	}
	targets := goals.Targets()

	byDate := make(map[string]nutrition.DailyTotals)
	for _, meal := range meals {
		totals, err := nutrition.AggregateValidated(meal.Nutrition())
		if err != nil {
			return nil, fmt.Errorf("meal %s on %s: %w", meal.ID, meal.Date, err)
		}
		byDate[meal.Date] = nutrition.Add(byDate[meal.Date], totals)
	}

	history := &types.History{
		From: from,
		To:   to,
		Days: make([]types.DayTotals, 0, days),
	}
	var sum nutrition.DailyTotals
	for day := start; !day.After(end); day = day.Add(24 * time.Hour) {
		date := day.Format(nutrition.DateLayout)
		totals := byDate[date]
		calories := nutrition.Measure(totals.Calories, targets.Calories)
		history.Days = append(history.Days, types.DayTotals{
			Date:           date,
			Totals:         totals,
			CaloriePercent: calories.Percent,
			OverGoal:       calories.OverGoal,
		})
		sum = nutrition.Add(sum, totals)
	}

	n := float64(len(history.Days))
	history.Average = nutrition.DailyTotals{
		Calories: sum.Calories / n,
		Protein:  sum.Protein / n,
		Carbs:    sum.Carbs / n,
		Fat:      sum.Fat / n,
	}
	return history, nil
}
