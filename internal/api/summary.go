package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/nutrition"
	"github.com/pageza/macrotrack/backend/internal/service"
)

// DefaultHistoryDays is the window of /summary/history when from is omitted
const DefaultHistoryDays = 7

// SummaryHandler serves aggregated daily views
type SummaryHandler struct {
	summaryService service.ISummaryService
	now            func() time.Time
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService service.ISummaryService) *SummaryHandler {
	return &SummaryHandler{
		summaryService: summaryService,
		now:            time.Now,
	}
}

// RegisterRoutes registers the summary routes
func (h *SummaryHandler) RegisterRoutes(router *gin.RouterGroup) {
	summary := router.Group("/summary")
	{
		summary.GET("", h.DailySummary)
		summary.GET("/history", h.History)
	}
}

func (h *SummaryHandler) today() string {
	return h.now().Format(nutrition.DateLayout)
}

// DailySummary returns totals and goal progress for ?date=, today by default
func (h *SummaryHandler) DailySummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.summaryService.DailySummary(c.Request.Context(), userID, c.DefaultQuery("date", h.today()))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// History returns per-day totals for ?from=&to=. to defaults to today and
// from to a week before it.
func (h *SummaryHandler) History(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	to := c.DefaultQuery("to", h.today())
	from := c.Query("from")
	if from == "" {
		end, err := nutrition.ParseDate(to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to: " + err.Error()})
			return
		}
		from = end.AddDate(0, 0, -(DefaultHistoryDays - 1)).Format(nutrition.DateLayout)
	}

	history, err := h.summaryService.History(c.Request.Context(), userID, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
