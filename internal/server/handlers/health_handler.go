package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
)

// Pinger is implemented by store backends that hold a connection.
type Pinger interface {
	Ping(ctx context.Context) error
}

// BrowserProbe reports whether a remote browser is reachable.
type BrowserProbe interface {
	Check(ctx context.Context) (*chrome.Version, error)
}

// HealthHandler answers liveness and readiness checks.
type HealthHandler struct {
	store  Pinger
	probe  BrowserProbe
	logger *zap.Logger
}

// NewHealthHandler builds a HealthHandler. Nil dependencies are skipped in readiness checks.
func NewHealthHandler(store Pinger, probe BrowserProbe, logger *zap.Logger) *HealthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthHandler{store: store, probe: probe, logger: logger}
}

// Live always reports ok.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready checks the store connection and the remote browser.
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{}
	ready := true

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			h.logger.Warn("store not ready", zap.Error(err))
			checks["store"] = err.Error()
			ready = false
		} else {
			checks["store"] = "ok"
		}
	}

	if h.probe != nil {
		if version, err := h.probe.Check(ctx); err != nil {
			h.logger.Warn("browser not ready", zap.Error(err))
			checks["browser"] = err.Error()
			ready = false
		} else {
			checks["browser"] = version.Browser
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": checks})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "checks": checks})
}
