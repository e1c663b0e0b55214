package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/logging"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler recovers panics and turns errors attached with c.Error into a
// JSON error response when the handler wrote nothing itself.
func ErrorHandler(logger logging.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logging.Discard()
	}
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Printf("panic serving %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal Server Error"})
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			logger.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, e.Err)
		}
		if c.Writer.Written() {
			return
		}

		status := c.Writer.Status()
		if status < http.StatusBadRequest {
			status = http.StatusInternalServerError
		}
		msg := c.Errors.Last().Error()
		if status >= http.StatusInternalServerError {
			msg = "Internal Server Error"
		}
		c.JSON(status, ErrorResponse{Error: msg})
	}
}
