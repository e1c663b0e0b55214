package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
	"github.com/pageza/macrotrack/backend/internal/types"
)

func float(v float64) *float64 { return &v }

func TestGetGoalsCreatesDefaults(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	goalsSvc := service.NewGoalsService(db, nil)
	user := testhelpers.CreateTestUser(t, db)

	goals, err := goalsSvc.GetGoals(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, nutrition.Goals{Calories: 2000, Protein: 150, Carbs: 200, Fat: 65}, goals.Targets())

	again, err := goalsSvc.GetGoals(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, goals.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.UserGoals{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateGoals(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	notifier := service.NewNotifier(nil)
	var seen []service.Mutation
	notifier.Subscribe(func(_ context.Context, m service.Mutation) error {
		seen = append(seen, m)
		return nil
	})
	goalsSvc := service.NewGoalsService(db, notifier)
	user := testhelpers.CreateTestUser(t, db)
	notes := "cutting"

	goals, err := goalsSvc.UpdateGoals(context.Background(), user.ID, &types.UpdateGoalsRequest{
		DailyCalorieGoal: float(1800),
		FatTarget:        float(0),
		Notes:            &notes,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(1800), goals.DailyCalorieGoal)
	assert.Equal(t, float64(150), goals.ProteinTarget)
	assert.Equal(t, float64(0), goals.FatTarget)
	require.NotNil(t, goals.Notes)
	assert.Equal(t, "cutting", *goals.Notes)

	require.Len(t, seen, 1)
	assert.Equal(t, service.SubjectGoals, seen[0].Subject)
	assert.Equal(t, user.ID, seen[0].UserID)

	empty := ""
	goals, err = goalsSvc.UpdateGoals(context.Background(), user.ID, &types.UpdateGoalsRequest{Notes: &empty})
	require.NoError(t, err)
	assert.Nil(t, goals.Notes)
}

func TestUpdateGoalsRejectsNegative(t *testing.T) {
	db := testhelpers.SetupTestDatabase(t)
	goalsSvc := service.NewGoalsService(db, nil)
	user := testhelpers.CreateTestUser(t, db)

	_, err := goalsSvc.UpdateGoals(context.Background(), user.ID, &types.UpdateGoalsRequest{ProteinTarget: float(-1)})
	var ve *nutrition.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "protein_target", ve.Field)

	goals, err := goalsSvc.GetGoals(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(150), goals.ProteinTarget)
}
