package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/server"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
	"github.com/pageza/macrotrack/backend/internal/types"
)

type client struct {
	t       *testing.T
	handler http.Handler
	token   string
}

func setupHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		ServerHost:   "localhost",
		ServerPort:   "0",
		JWTSecret:    "integration-secret",
		ExportURLTTL: time.Minute,
	}
	srv, err := server.New(cfg, server.Deps{DB: testhelpers.SetupTestDatabase(t), Logger: logging.Discard()})
	require.NoError(t, err)
	return srv.Handler()
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func (c *client) decode(w *httptest.ResponseRecorder, status int, v any) {
	c.t.Helper()
	require.Equal(c.t, status, w.Code, w.Body.String())
	if v != nil {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), v))
	}
}

func register(t *testing.T, handler http.Handler, name string) *client {
	t.Helper()
	c := &client{t: t, handler: handler}
	var resp types.AuthResponse
	c.decode(c.do(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "password123",
	}), http.StatusCreated, &resp)
	require.NotEmpty(t, resp.Token)
	c.token = resp.Token
	return c
}

func TestIntegrationMealLifecycle(t *testing.T) {
	c := register(t, setupHandler(t), "tester")

	var meal models.Meal
	c.decode(c.do(http.MethodPost, "/api/v1/meals", map[string]any{
		"date":      "2024-03-01",
		"meal_type": "lunch",
		"foods": []map[string]any{
			{"name": "Rice", "serving_size": 150, "carbs": 42, "protein": 4},
		},
	}), http.StatusCreated, &meal)
	require.Len(t, meal.Foods, 1)
	assert.Equal(t, float64(184), meal.Foods[0].Calories)

	var added models.FoodEntry
	c.decode(c.do(http.MethodPost, "/api/v1/meals/"+meal.ID.String()+"/foods", map[string]any{
		"name": "Chicken", "protein": 31, "fat": 3.6,
	}), http.StatusCreated, &added)
	assert.Equal(t, 1, added.Position)

	var updated models.FoodEntry
	c.decode(c.do(http.MethodPut, "/api/v1/foods/"+added.ID.String(), map[string]any{
		"protein": 40,
	}), http.StatusOK, &updated)
	assert.Equal(t, float64(40), updated.Protein)
	assert.Equal(t, float64(192), updated.Calories)
	assert.True(t, updated.CaloriesDerived)

	var summary types.DailySummary
	c.decode(c.do(http.MethodGet, "/api/v1/summary?date=2024-03-01", nil), http.StatusOK, &summary)
	assert.Equal(t, float64(376), summary.Totals.Calories)
	assert.Equal(t, 2, summary.FoodCount)

	c.decode(c.do(http.MethodDelete, "/api/v1/foods/"+added.ID.String(), nil), http.StatusNoContent, nil)
	c.decode(c.do(http.MethodGet, "/api/v1/summary?date=2024-03-01", nil), http.StatusOK, &summary)
	assert.Equal(t, float64(184), summary.Totals.Calories)

	c.decode(c.do(http.MethodDelete, "/api/v1/meals/"+meal.ID.String(), nil), http.StatusNoContent, nil)
	c.decode(c.do(http.MethodGet, "/api/v1/meals/"+meal.ID.String(), nil), http.StatusNotFound, nil)

	c.decode(c.do(http.MethodGet, "/api/v1/summary?date=2024-03-01", nil), http.StatusOK, &summary)
	assert.Zero(t, summary.Totals.Calories)
	assert.Empty(t, summary.Meals)
}

func TestIntegrationUsersAreIsolated(t *testing.T) {
	handler := setupHandler(t)
	alice := register(t, handler, "alice")
	bob := register(t, handler, "bob")

	var food models.FoodEntry
	alice.decode(alice.do(http.MethodPost, "/api/v1/foods", map[string]any{
		"date": "2024-03-01", "meal_type": "breakfast", "name": "Eggs", "protein": 12, "carbs": 1, "fat": 10,
	}), http.StatusCreated, &food)

	bob.decode(bob.do(http.MethodGet, "/api/v1/meals/"+food.MealID.String(), nil), http.StatusNotFound, nil)
	bob.decode(bob.do(http.MethodPut, "/api/v1/foods/"+food.ID.String(), map[string]any{"protein": 1}), http.StatusNotFound, nil)
	bob.decode(bob.do(http.MethodDelete, "/api/v1/foods/"+food.ID.String(), nil), http.StatusNotFound, nil)
	bob.decode(bob.do(http.MethodPost, "/api/v1/meals/"+food.MealID.String()+"/foods", map[string]any{"name": "Sneaky"}), http.StatusNotFound, nil)

	var meals []models.Meal
	bob.decode(bob.do(http.MethodGet, "/api/v1/meals?date=2024-03-01", nil), http.StatusOK, &meals)
	assert.Empty(t, meals)

	var summary types.DailySummary
	bob.decode(bob.do(http.MethodGet, "/api/v1/summary?date=2024-03-01", nil), http.StatusOK, &summary)
	assert.Zero(t, summary.FoodCount)

	alice.decode(alice.do(http.MethodGet, "/api/v1/summary?date=2024-03-01", nil), http.StatusOK, &summary)
	assert.Equal(t, float64(142), summary.Totals.Calories)

	bob.decode(bob.do(http.MethodPut, "/api/v1/goals", map[string]any{"daily_calorie_goal": 100}), http.StatusOK, nil)
	alice.decode(alice.do(http.MethodGet, "/api/v1/summary?date=2024-03-01", nil), http.StatusOK, &summary)
	assert.Equal(t, float64(2000), summary.Goals.Calories)
	assert.False(t, summary.Progress.Calories.OverGoal)
}

func TestIntegrationHistory(t *testing.T) {
	c := register(t, setupHandler(t), "historian")

	for _, day := range []struct {
		date     string
		calories float64
	}{
		{"2024-03-01", 1800},
		{"2024-03-03", 2400},
	} {
		c.decode(c.do(http.MethodPost, "/api/v1/foods", map[string]any{
			"date": day.date, "meal_type": "dinner", "name": "Dinner", "calories": day.calories,
		}), http.StatusCreated, nil)
	}

	var history types.History
	c.decode(c.do(http.MethodGet, "/api/v1/summary/history?from=2024-03-01&to=2024-03-03", nil), http.StatusOK, &history)
	require.Len(t, history.Days, 3)
	assert.Equal(t, "2024-03-02", history.Days[1].Date)
	assert.Zero(t, history.Days[1].Totals.Calories)
	assert.True(t, history.Days[2].OverGoal)
	assert.Equal(t, float64(100), history.Days[2].CaloriePercent)
	assert.Equal(t, float64(1400), history.Average.Calories)

	c.decode(c.do(http.MethodGet, "/api/v1/summary/history?from=2024-03-03&to=2024-03-01", nil), http.StatusBadRequest, nil)
}
