// Package router assembles the gin engine: middleware, API routes, and the
// operational endpoints.
package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/infrastructure/monitoring"
	"github.com/bizcomply/bizcomply/internal/interfaces/http/handlers"
	"github.com/bizcomply/bizcomply/internal/interfaces/http/middleware"
	apperrors "github.com/bizcomply/bizcomply/pkg/errors"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Compliance *handlers.ComplianceHandler
	Business   *handlers.BusinessHandler
	Regulation *handlers.RegulationHandler
	Health     *handlers.HealthHandler
}

// New builds the gin engine with all middleware and routes attached.
func New(cfg *config.ServerConfig, log logger.Logger, metrics *monitoring.Metrics, registry *prometheus.Registry, h Handlers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
	}))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Observability(log, metrics))

	engine.GET("/health", h.Health.Live)
	engine.GET("/health/ready", h.Health.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	if cfg.PprofEnabled {
		pprof.Register(engine)
	}

	api := engine.Group("/api/v1")
	{
		compliance := api.Group("/compliance")
		{
			compliance.POST("/check", h.Compliance.Check)
			compliance.POST("/:businessId/save", h.Compliance.CheckAndSave)
			compliance.GET("/:businessId/history", h.Compliance.History)
			compliance.GET("/:businessId/latest", h.Compliance.Latest)
			compliance.GET("/:businessId/regulations", h.Compliance.AppliedRegulations)
		}

		businesses := api.Group("/businesses")
		{
			businesses.POST("", h.Business.Create)
			businesses.GET("", h.Business.List)
			businesses.GET("/stats/overview", h.Business.Overview)
			businesses.GET("/:id", h.Business.Get)
			businesses.PUT("/:id", h.Business.Update)
			businesses.DELETE("/:id", h.Business.Delete)
		}

		regulations := api.Group("/regulations")
		{
			regulations.GET("", h.Regulation.List)
			regulations.GET("/meta/categories", h.Regulation.Categories)
			regulations.GET("/meta/jurisdictions", h.Regulation.Jurisdictions)
			regulations.GET("/stats/overview", h.Regulation.Overview)
			regulations.GET("/:id", h.Regulation.Get)
		}
	}

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, apperrors.Response{
			Error:            string(apperrors.CodeNotFound),
			ErrorDescription: "route not found",
		})
	})

	return engine
}
