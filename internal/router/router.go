package router

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/api"
	"github.com/pageza/macrotrack/backend/internal/logging"
	"github.com/pageza/macrotrack/backend/internal/middleware"
)

// Handlers groups the API handlers mounted by SetupRouter
type Handlers struct {
	Health  *api.HealthHandler
	Auth    *api.AuthHandler
	Goals   *api.GoalsHandler
	Meals   *api.MealHandler
	Summary *api.SummaryHandler
	Export  *api.ExportHandler
}

// Options tunes the middleware chain
type Options struct {
	CORSOrigins []string
	Logger      logging.Logger
	// FoodLogLimiter guards food logging mutations; nil disables limiting
	FoodLogLimiter *middleware.RateLimiter
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, tokens middleware.TokenValidator, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.ErrorHandler(opts.Logger))
	router.Use(middleware.CORS(opts.CORSOrigins))

	// API v1 routes
	v1 := router.Group("/api/v1")
	h.Health.RegisterRoutes(v1)
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(tokens))
	{
		var mutation []gin.HandlerFunc
		if opts.FoodLogLimiter != nil {
			mutation = append(mutation, opts.FoodLogLimiter.RateLimitMiddleware())
		}

		h.Auth.RegisterProtectedRoutes(protected)
		h.Goals.RegisterRoutes(protected)
		h.Meals.RegisterRoutes(protected, mutation...)
		h.Summary.RegisterRoutes(protected)
		h.Export.RegisterRoutes(protected)
	}

	return router
}
