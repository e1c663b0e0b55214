package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/macrotrack/backend/internal/service"
	"github.com/pageza/macrotrack/backend/internal/types"
)

// ExportHandler serves log downloads and archives
type ExportHandler struct {
	exportService service.IExportService
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(exportService service.IExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// RegisterRoutes registers the export routes
func (h *ExportHandler) RegisterRoutes(router *gin.RouterGroup) {
	export := router.Group("/export")
	{
		export.GET("", h.Download)
		export.POST("/archive", h.Archive)
	}
}

// Download streams the export as an attachment
func (h *ExportHandler) Download(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}

	file, err := h.exportService.Export(c.Request.Context(), userID, format, c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Archive uploads the export and returns a presigned link
func (h *ExportHandler) Archive(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req types.ExportArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	format, err := service.ParseExportFormat(req.Format)
	if err != nil {
		respondError(c, err)
		return
	}

	resp, err := h.exportService.Archive(c.Request.Context(), userID, format, req.From, req.To)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
