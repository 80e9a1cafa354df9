package http

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/monitor/internal/application/analytics/usecases"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/infrastructure/auth"
	"github.com/orris-inc/monitor/internal/infrastructure/config"
	"github.com/orris-inc/monitor/internal/infrastructure/repository"
	"github.com/orris-inc/monitor/internal/infrastructure/trends"
	analyticsHandlers "github.com/orris-inc/monitor/internal/interfaces/http/handlers/analytics"
	"github.com/orris-inc/monitor/internal/interfaces/http/middleware"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// Container holds the infrastructure components, use cases, handlers and
// middlewares of the API and wires them together.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	recordRepo    analytics.RecordRepository
	trendProvider usecases.TrendProvider

	// Handlers
	analyticsHandler *analyticsHandlers.Handler

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter
}

// NewContainer creates a Container with all dependencies wired together.
// redisClient may be nil, in which case rate limiting is disabled.
func NewContainer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
		redis:  redisClient,
	}

	jwtSvc, err := auth.NewJWTServiceFromConfig(cfg.Auth.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize jwt service: %w", err)
	}
	c.authMiddleware = middleware.NewAuthMiddleware(jwtSvc, log.Named("auth"))

	if redisClient != nil && cfg.RateLimit.Enabled {
		c.rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit.RequestsPerWindow, cfg.RateLimit.Window, log.Named("ratelimit"))
	}

	c.recordRepo = repository.NewRecordRepository(db, log.Named("repository"))
	c.trendProvider = trends.NewSerpAPIClient(cfg.Trends, log.Named("trends"))

	c.initAnalytics()

	return c, nil
}

func (c *Container) initAnalytics() {
	log := c.log.Named("analytics")

	c.analyticsHandler = analyticsHandlers.NewHandler(
		usecases.NewGetSeriesUseCase(c.recordRepo, log),
		usecases.NewGetPredictionUseCase(c.recordRepo, c.trendProvider, c.cfg.Trends.SearchTerm, log),
		usecases.NewGetIndicatorUseCase(c.recordRepo, log),
		usecases.NewGetBreakdownUseCase(c.recordRepo, log),
		usecases.NewListPaymentsUseCase(c.recordRepo, log),
		usecases.NewListRecentPaymentsUseCase(c.recordRepo, log),
		usecases.NewListOffersUseCase(c.recordRepo, log),
		log,
	)
}

// RecordRepository exposes the shared repository to background consumers.
func (c *Container) RecordRepository() analytics.RecordRepository {
	return c.recordRepo
}
