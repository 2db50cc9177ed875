package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/analytics"
)

// DashboardService computes analytics for a period.
type DashboardService interface {
	Dashboard(ctx context.Context, period analytics.Period) (models.Dashboard, error)
}

// AnalyticsHandler serves the analytics dashboard data.
type AnalyticsHandler struct {
	svc    DashboardService
	logger *zap.Logger
}

// NewAnalyticsHandler constructs the HTTP handler adapter.
func NewAnalyticsHandler(svc DashboardService, logger *zap.Logger) *AnalyticsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsHandler{svc: svc, logger: logger}
}

// Dashboard returns summaries, product rollups and stats for ?period=.
func (h *AnalyticsHandler) Dashboard(c *gin.Context) {
	period, err := analytics.ParsePeriod(c.Query("period"))
	if errors.Is(err, analytics.ErrUnknownPeriod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dashboard, err := h.svc.Dashboard(c.Request.Context(), period)
	if err != nil {
		h.logger.Error("failed computing dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute analytics"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
