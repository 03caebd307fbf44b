// Package server serves the expression compiler and numerical methods as a
// JSON API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zephyrtronium/numcalc/internal/config"
	"github.com/zephyrtronium/numcalc/roots"
)

// Handler aggregates the API handlers.
type Handler struct {
	cfg *config.Config
	log logrus.FieldLogger
	// roots holds the configured tolerance, iteration limit, and logger for
	// root finding. Request fields override it.
	roots roots.Option
}

// NewHandler creates the API handlers.
func NewHandler(cfg *config.Config, log logrus.FieldLogger) *Handler {
	return &Handler{
		cfg:   cfg,
		log:   log,
		roots: roots.Preset(roots.Tol(cfg.Tolerance), roots.MaxIter(cfg.MaxIter), roots.Logger(log)),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	api := r.Group("/api/v1")
	{
		api.GET("/functions", h.Functions)
		api.POST("/eval", h.Eval)
		api.POST("/roots", h.Roots)
		api.POST("/derivative", h.Derivative)
		api.POST("/integrate", h.Integrate)
		api.POST("/interpolate", h.Interpolate)
		api.POST("/matrix", h.Matrix)
	}
}

// New creates the HTTP handler for the API.
func New(cfg *config.Config, log logrus.FieldLogger) http.Handler {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(loggerMiddleware(log))
	NewHandler(cfg, log).RegisterRoutes(router)
	return router
}

// loggerMiddleware logs each request at info level.
func loggerMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.WithFields(logrus.Fields{
			"method":   method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		}).Info("HTTP request")
	}
}
