package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/domain/models"
	"github.com/mamadbah2/salestracker/internal/service/analytics"
)

// SalesService is the ledger API consumed by SalesHandler.
type SalesService interface {
	Ledger(ctx context.Context) (models.Ledger, error)
	Dates(ctx context.Context) ([]string, error)
	Records(ctx context.Context, date string) ([]models.ProductSaleRecord, error)
	AddRecord(ctx context.Context, date string, input models.RecordInput) (models.ProductSaleRecord, error)
	RemoveRecord(ctx context.Context, date, id string) error
	Clear(ctx context.Context) error
}

// SalesHandler exposes record entry and ledger browsing.
type SalesHandler struct {
	svc    SalesService
	logger *zap.Logger
}

// NewSalesHandler constructs the HTTP handler adapter.
func NewSalesHandler(svc SalesService, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{svc: svc, logger: logger}
}

// Ledger returns every record grouped by date.
func (h *SalesHandler) Ledger(c *gin.Context) {
	ledger, err := h.svc.Ledger(c.Request.Context())
	if err != nil {
		h.logger.Error("failed loading ledger", zap.Error(err))
	}
	if respondSalesError(c, err) {
		return
	}

	c.JSON(http.StatusOK, ledger)
}

// Dates lists dates with records, newest first.
func (h *SalesHandler) Dates(c *gin.Context) {
	dates, err := h.svc.Dates(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing dates", zap.Error(err))
	}
	if respondSalesError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"dates": dates})
}

// Day returns the records of one date with their summary.
func (h *SalesHandler) Day(c *gin.Context) {
	date := c.Param("date")

	records, err := h.svc.Records(c.Request.Context(), date)
	if respondSalesError(c, err) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":    date,
		"records": records,
		"summary": analytics.SummarizeDay(date, records),
	})
}

// AddRecord validates and stores a new record for the date in the path.
func (h *SalesHandler) AddRecord(c *gin.Context) {
	var input models.RecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("invalid record payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	record, err := h.svc.AddRecord(c.Request.Context(), c.Param("date"), input)
	if respondSalesError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, withWarning(gin.H{"record": record}, err))
}

// RemoveRecord deletes one record.
func (h *SalesHandler) RemoveRecord(c *gin.Context) {
	err := h.svc.RemoveRecord(c.Request.Context(), c.Param("date"), c.Param("id"))
	if respondSalesError(c, err) {
		return
	}

	c.JSON(http.StatusOK, withWarning(gin.H{"status": "deleted"}, err))
}

// Clear wipes the ledger.
func (h *SalesHandler) Clear(c *gin.Context) {
	err := h.svc.Clear(c.Request.Context())
	if respondSalesError(c, err) {
		return
	}

	h.logger.Info("all sales data cleared")
	c.JSON(http.StatusOK, withWarning(gin.H{"status": "cleared"}, err))
}
