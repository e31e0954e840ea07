package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
)

const serviceName = "containeryard"

// RouterOptions carries what the router needs beyond the mediator
type RouterOptions struct {
	Logger *slog.Logger
	Server config.ServerConfig

	// MetricsHandler is mounted at MetricsPath when non-nil
	MetricsHandler http.Handler
	MetricsPath    string

	// Ready reports whether dependencies (the database) are reachable
	Ready func(ctx context.Context) error
}

// NewRouter builds the gin engine with middleware and every route mounted
func NewRouter(m mediator.Mediator, opts RouterOptions) *gin.Engine {
	InitValidator()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(Recovery(logger))
	router.Use(RequestID())
	router.Use(ContextLogger(logger))
	router.Use(AccessLog(logger, "/health", "/ready", opts.MetricsPath))
	router.Use(CORS(opts.Server.CORSOrigins))
	if opts.Server.RateLimit.Requests > 0 {
		router.Use(RateLimit(opts.Server.RateLimit.Requests, opts.Server.RateLimit.Burst))
	}

	router.NoRoute(NoRoute())
	router.NoMethod(NoMethod())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	})
	router.GET("/ready", func(c *gin.Context) {
		if opts.Ready != nil {
			if err := opts.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		router.GET(opts.MetricsPath, gin.WrapH(opts.MetricsHandler))
	}

	h := NewHandlers(m)
	v1 := router.Group("/api/v1")
	{
		positions := v1.Group("/positions")
		positions.POST("/suggest", h.SuggestPosition)
		positions.POST("", h.AssignPosition)
		positions.PUT("/:id", h.MovePosition)
		positions.DELETE("/:id", h.RemovePosition)

		stays := v1.Group("/stays")
		stays.POST("", h.RegisterArrival)
		stays.POST("/:id/exit", h.RecordExit)

		orders := v1.Group("/work-orders")
		orders.POST("", h.CreateWorkOrder)
		orders.GET("", h.ListWorkOrders)
		orders.GET("/:id", h.GetWorkOrder)
		orders.POST("/:id/assign", h.AssignWorkOrder)
		orders.POST("/:id/complete", h.CompleteWorkOrder)
		orders.POST("/:id/cancel", h.CancelWorkOrder)
		orders.POST("/:id/status", h.UpdateWorkOrderStatus)

		yardGroup := v1.Group("/yard")
		yardGroup.GET("/layout", h.GetLayout)
		yardGroup.GET("/unplaced", h.GetUnplaced)
		yardGroup.GET("/stats", h.GetStatistics)
	}

	return router
}
