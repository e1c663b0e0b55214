package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/models"
	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// MealHandler serves meals and the foods logged into them
type MealHandler struct {
	mealService service.IMealService
}

// NewMealHandler creates a new MealHandler
func NewMealHandler(mealService service.IMealService) *MealHandler {
	return &MealHandler{mealService: mealService}
}

// RegisterRoutes registers the meal and food routes. mutation runs in front
// of every route that logs or changes food, typically a rate limiter.
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup, mutation ...gin.HandlerFunc) {
	guarded := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		chain := make([]gin.HandlerFunc, 0, len(mutation)+1)
		chain = append(chain, mutation...)
		return append(chain, handler)
	}

	meals := router.Group("/meals")
	{
		meals.GET("", h.ListMeals)
		meals.POST("", guarded(h.CreateMeal)...)
		meals.GET("/:id", h.GetMeal)
		meals.DELETE("/:id", h.DeleteMeal)
		meals.POST("/:id/foods", guarded(h.AddFood)...)
	}

	foods := router.Group("/foods")
	{
		foods.POST("", guarded(h.LogFood)...)
		foods.PUT("/:id", guarded(h.UpdateFood)...)
		foods.DELETE("/:id", h.DeleteFood)
	}
}

// ListMeals returns the meals of ?date=, or of the ?from=&to= range
func (h *MealHandler) ListMeals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var (
		meals []models.Meal
		err   error
	)
	if date := c.Query("date"); date != "" {
		meals, err = h.mealService.ListMeals(c.Request.Context(), userID, date)
	} else {
		from, to := c.Query("from"), c.Query("to")
		if from == "" && to == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date or from/to query parameters are required"})
			return
		}
		meals, err = h.mealService.ListMealsInRange(c.Request.Context(), userID, from, to)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

// CreateMeal creates a meal slot with its initial foods
func (h *MealHandler) CreateMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.CreateMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	meal, err := h.mealService.CreateMeal(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

// GetMeal returns one meal with its foods
func (h *MealHandler) GetMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "meal")
	if !ok {
		return
	}

	meal, err := h.mealService.GetMeal(c.Request.Context(), userID, mealID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

// DeleteMeal removes a meal and its foods
func (h *MealHandler) DeleteMeal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "meal")
	if !ok {
		return
	}

	if err := h.mealService.DeleteMeal(c.Request.Context(), userID, mealID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFood appends a food to a meal
func (h *MealHandler) AddFood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	mealID, ok := pathID(c, "meal")
	if !ok {
		return
	}

	var req types.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.mealService.AddFood(c.Request.Context(), userID, mealID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// LogFood logs a food into the meal for (date, meal_type)
func (h *MealHandler) LogFood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.LogFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.mealService.LogFood(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// UpdateFood applies a partial update to a logged food
func (h *MealHandler) UpdateFood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	foodID, ok := pathID(c, "food")
	if !ok {
		return
	}

	var req types.UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	entry, err := h.mealService.UpdateFood(c.Request.Context(), userID, foodID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// DeleteFood removes a logged food
func (h *MealHandler) DeleteFood(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	foodID, ok := pathID(c, "food")
	if !ok {
		return
	}

	if err := h.mealService.DeleteFood(c.Request.Context(), userID, foodID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
