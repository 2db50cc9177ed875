package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/mamadbah2/salestracker/internal/server/handlers"
	"github.com/mamadbah2/salestracker/pkg/clients/chrome"
)

// Handlers groups the HTTP adapters mounted by New.
type Handlers struct {
	Sales     *handlers.SalesHandler
	Analytics *handlers.AnalyticsHandler
	Export    *handlers.ExportHandler
	Health    *handlers.HealthHandler
	// Metrics serves /metrics. Nil uses the default Prometheus registry.
	Metrics http.Handler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	metrics := h.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}

	r.GET("/healthz", h.Health.Live)
	r.GET("/readyz", h.Health.Ready)
	r.GET("/metrics", gin.WrapH(metrics))

	api := r.Group("/api")
	{
		api.GET("/sales", h.Sales.Ledger)
		api.DELETE("/sales", h.Sales.Clear)
		api.GET("/sales/dates", h.Sales.Dates)
		api.GET("/sales/:date", h.Sales.Day)
		api.POST("/sales/:date/products", h.Sales.AddRecord)
		api.DELETE("/sales/:date/products/:id", h.Sales.RemoveRecord)

		api.GET("/analytics", h.Analytics.Dashboard)

		api.POST("/export/png", h.Export.Sales(chrome.FormatPNG))
		api.POST("/export/pdf", h.Export.Sales(chrome.FormatPDF))
		api.POST("/export/analytics-png", h.Export.Analytics(chrome.FormatPNG))
		api.POST("/export/analytics-pdf", h.Export.Analytics(chrome.FormatPDF))
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
