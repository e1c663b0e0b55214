package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// GoalsHandler serves the user's daily targets
type GoalsHandler struct {
	goalsService service.IGoalsService
}

// NewGoalsHandler creates a new GoalsHandler
func NewGoalsHandler(goalsService service.IGoalsService) *GoalsHandler {
	return &GoalsHandler{goalsService: goalsService}
}

// RegisterRoutes registers the goals routes
func (h *GoalsHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.GET("", h.GetGoals)
		goals.PUT("", h.UpdateGoals)
	}
}

// GetGoals returns the user's goals, defaults included
func (h *GoalsHandler) GetGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	goals, err := h.goalsService.GetGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}

// UpdateGoals applies a partial update to the user's goals
func (h *GoalsHandler) UpdateGoals(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.UpdateGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	goals, err := h.goalsService.UpdateGoals(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, goals)
}
