package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/orris-inc/monitor/internal/interfaces/http/middleware"
	"github.com/orris-inc/monitor/internal/interfaces/http/routes"
	"github.com/orris-inc/monitor/internal/shared/utils"
)

// Router represents the HTTP router configuration
type Router struct {
	*Container
}

func NewRouter(container *Container) *Router {
	return &Router{Container: container}
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Recovery(r.log))
	r.engine.Use(middleware.Logger(r.log))
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Metrics())

	r.engine.GET("/health", r.healthCheck)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.SetupAnalyticsRoutes(r.engine, &routes.AnalyticsRouteConfig{
		Handler:        r.analyticsHandler,
		AuthMiddleware: r.authMiddleware,
		RateLimiter:    r.rateLimiter,
		RequiredScope:  r.cfg.Auth.JWT.RequiredScope,
	})
}

func (r *Router) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok"}
	healthy := true

	if sqlDB, err := r.db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "unavailable"
		healthy = false
	}

	if r.redis != nil {
		status["redis"] = "ok"
		if err := r.redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "unavailable"
			healthy = false
		}
	}

	if !healthy {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "service unhealthy")
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "healthy", status)
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
