package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/export"
	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
)

// ExportService renders report documents.
type ExportService interface {
	ExportSales(ctx context.Context, req models.SalesReportRequest, format chrome.Format) (*export.Document, error)
	ExportAnalytics(ctx context.Context, req models.AnalyticsReportRequest, format chrome.Format) (*export.Document, error)
}

// ExportHandler streams rendered reports as downloads.
type ExportHandler struct {
	svc    ExportService
	logger *zap.Logger
}

// NewExportHandler constructs the HTTP handler adapter.
func NewExportHandler(svc ExportService, logger *zap.Logger) *ExportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportHandler{svc: svc, logger: logger}
}

// Sales returns a handler exporting the single-day report as format.
func (h *ExportHandler) Sales(format chrome.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.SalesReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid sales export payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "currentDate is required"})
			return
		}

		doc, err := h.svc.ExportSales(c.Request.Context(), req, format)
		h.respond(c, format, doc, err)
	}
}

// Analytics returns a handler exporting the analytics report as format.
func (h *ExportHandler) Analytics(format chrome.Format) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AnalyticsReportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.logger.Warn("invalid analytics export payload", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		doc, err := h.svc.ExportAnalytics(c.Request.Context(), req, format)
		h.respond(c, format, doc, err)
	}
}

func (h *ExportHandler) respond(c *gin.Context, format chrome.Format, doc *export.Document, err error) {
	if errors.Is(err, export.ErrInvalidRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("export failed", zap.String("format", string(format)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": fmt.Sprintf("Failed to generate %s", strings.ToUpper(string(format))),
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
