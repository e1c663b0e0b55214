package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macrotrack/backend/config"
	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/testhelpers"
	"github.com/pageza/macrotrack/backend/internal/types"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		ServerHost:   "localhost",
		ServerPort:   "8080",
		JWTSecret:    "test-secret",
		CORSOrigins:  []string{"http://localhost:5173"},
		ExportURLTTL: time.Minute,
	}
	srv, err := New(cfg, Deps{DB: testhelpers.SetupTestDatabase(t), Logger: logging.Discard()})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNew(t *testing.T) {
	srv := newTestServer(t)
	assert.NotNil(t, srv.Services())
	assert.Equal(t, "localhost:8080", srv.http.Addr)

	w := do(t, srv, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/api/v1/goals", "/api/v1/meals?date=2024-03-01", "/api/v1/summary", "/api/v1/export"} {
		w := do(t, srv, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := do(t, srv, http.MethodGet, "/api/v1/goals", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFoodLoggingFlow(t *testing.T) {
	srv := newTestServer(t)

	w := do(t, srv, http.MethodPost, "/api/v1/auth/register", "", types.RegisterRequest{
		Name: "Ada", Email: "ada@example.com", Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var auth types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	token := auth.Token

	w = do(t, srv, http.MethodPost, "/api/v1/auth/login", "", types.LoginRequest{Email: "ada@example.com", Password: "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	foods := []map[string]any{
		{"date": "2024-03-01", "meal_type": "breakfast", "name": "Eggs", "protein": 12, "carbs": 1, "fat": 10},
		{"date": "2024-03-01", "meal_type": "breakfast", "name": "Toast", "protein": 3, "carbs": 14, "fat": 1, "calories": 80},
		{"date": "2024-03-01", "meal_type": "dinner", "name": "Salmon", "protein": 34, "carbs": 0, "fat": 22, "calories": 340},
	}
	for _, food := range foods {
		w = do(t, srv, http.MethodPost, "/api/v1/foods", token, food)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = do(t, srv, http.MethodPut, "/api/v1/goals", token, map[string]any{"daily_calorie_goal": 1000})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, srv, http.MethodGet, "/api/v1/summary?date=2024-03-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary types.DailySummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, float64(562), summary.Totals.Calories)
	assert.Equal(t, float64(49), summary.Totals.Protein)
	assert.Equal(t, 3, summary.FoodCount)
	assert.Len(t, summary.Meals, 2)
	assert.InDelta(t, 56.2, summary.Progress.Calories.Percent, 1e-9)

	w = do(t, srv, http.MethodGet, "/api/v1/meals?date=2024-03-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"calories_derived":true`)

	w = do(t, srv, http.MethodGet, "/api/v1/export?format=csv&from=2024-03-01&to=2024-03-01", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "2024-03-01,dinner,Salmon,1 g,340,34,0,22", lines[3])

	w = do(t, srv, http.MethodPost, "/api/v1/export/archive", token, map[string]any{"format": "csv"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
