package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pageza/macrotrack/backend/internal/middleware"
	"github.com/pageza/macrotrack/backend/internal/mocks"
)

type testEnv struct {
	router  *gin.Engine
	userID  uuid.UUID
	auth    *mocks.MockAuthService
	goals   *mocks.MockGoalsService
	meals   *mocks.MockMealService
	summary *mocks.MockSummaryService
	export  *mocks.MockExportService
}

// setupTestRouter mounts every handler over mocks. Protected routes see a
// fixed authenticated user.
func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, RegisterValidators())

	env := &testEnv{
		userID:  uuid.New(),
		auth:    new(mocks.MockAuthService),
		goals:   new(mocks.MockGoalsService),
		meals:   new(mocks.MockMealService),
		summary: new(mocks.MockSummaryService),
		export:  new(mocks.MockExportService),
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(nil))
	v1 := router.Group("/api/v1")
	NewAuthHandler(env.auth).RegisterRoutes(v1)

	protected := v1.Group("")
	protected.Use(func(c *gin.Context) {
		c.Set(middleware.ContextUserID, env.userID)
	})
	NewAuthHandler(env.auth).RegisterProtectedRoutes(protected)
	NewGoalsHandler(env.goals).RegisterRoutes(protected)
	NewMealHandler(env.meals).RegisterRoutes(protected)
	NewSummaryHandler(env.summary).RegisterRoutes(protected)
	NewExportHandler(env.export).RegisterRoutes(protected)

	env.router = router
	t.Cleanup(func() {
		env.auth.AssertExpectations(t)
		env.goals.AssertExpectations(t)
		env.meals.AssertExpectations(t)
		env.summary.AssertExpectations(t)
		env.export.AssertExpectations(t)
	})
	return env
}

// performRequest sends body as JSON when it is not nil
func (e *testEnv) performRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error
}
