package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/salestracker/internal/service/sales"
)

// persistenceWarning is shown when a change was applied but could not be saved.
const persistenceWarning = "Failed to save data. Please try again."

// respondSalesError maps sales service errors to HTTP responses. It reports
// whether the request is finished.
func respondSalesError(c *gin.Context, err error) bool {
	var vErr *sales.ValidationError
	switch {
	case err == nil:
		return false
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, sales.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, sales.ErrPersistence):
		return false
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sales data"})
	}
	return true
}

// withWarning adds the persistence warning to body when err carries one.
func withWarning(body gin.H, err error) gin.H {
	if errors.Is(err, sales.ErrPersistence) {
		body["warning"] = persistenceWarning
	}
	return body
}
