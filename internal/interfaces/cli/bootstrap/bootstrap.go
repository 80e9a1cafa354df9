// Package bootstrap initializes the process-wide dependencies shared by the
// CLI commands.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/orris-inc/monitor/internal/application/analytics/usecases"
	"github.com/orris-inc/monitor/internal/domain/analytics"
	"github.com/orris-inc/monitor/internal/infrastructure/config"
	"github.com/orris-inc/monitor/internal/infrastructure/database"
	"github.com/orris-inc/monitor/internal/infrastructure/ingest"
	"github.com/orris-inc/monitor/internal/infrastructure/migration"
	"github.com/orris-inc/monitor/internal/shared/biztime"
	"github.com/orris-inc/monitor/internal/shared/goroutine"
	"github.com/orris-inc/monitor/internal/shared/logger"
)

// Runtime holds the initialized logger, database and Redis client.
type Runtime struct {
	Log   logger.Interface
	Redis *redis.Client
}

// ResolveEnv lets the ENV variable override the --env flag.
func ResolveEnv(flagValue string) string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		return envVar
	}
	return flagValue
}

// ScriptsPath returns the absolute goose scripts directory.
func ScriptsPath() (string, error) {
	return filepath.Abs(migration.DefaultScriptsPath)
}

// New initializes logging, the business timezone, the database and, when
// configured, Redis.
func New(cfg *config.Config) (*Runtime, error) {
	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	rt := &Runtime{Log: log}

	if cfg.Redis.Host != "" {
		rt.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.GetAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rt.Redis.Ping(ctx).Err(); err != nil {
			rt.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Infow("redis connection established", "address", cfg.Redis.GetAddr())
	}

	return rt, nil
}

// Close releases the database and Redis connections.
func (r *Runtime) Close() {
	if r.Redis != nil {
		if err := r.Redis.Close(); err != nil {
			r.Log.Warnw("failed to close redis client", "error", err)
		}
	}
	if err := database.Close(); err != nil {
		r.Log.Warnw("failed to close database", "error", err)
	}
	_ = logger.Sync()
}

// StartConsumers runs one consumer per ingestion stream on g until ctx ends.
func StartConsumers(ctx context.Context, g *errgroup.Group, cfg *config.Config, rt *Runtime, repo analytics.RecordRepository) {
	log := rt.Log.Named("ingest")

	consumers := []*ingest.StreamConsumer{
		ingest.NewStreamConsumer(rt.Redis, ingest.ConsumerConfig{
			Stream:    cfg.Ingest.OfferStream,
			Group:     cfg.Ingest.Group,
			Consumer:  cfg.Ingest.Consumer,
			BatchSize: cfg.Ingest.BatchSize,
			Block:     cfg.Ingest.Block,
			ClaimIdle: cfg.Ingest.ClaimIdle,
		}, ingest.NewOfferHandler(usecases.NewRecordOfferUseCase(repo, log)), log),
		ingest.NewStreamConsumer(rt.Redis, ingest.ConsumerConfig{
			Stream:    cfg.Ingest.PaymentStream,
			Group:     cfg.Ingest.Group,
			Consumer:  cfg.Ingest.Consumer,
			BatchSize: cfg.Ingest.BatchSize,
			Block:     cfg.Ingest.Block,
			ClaimIdle: cfg.Ingest.ClaimIdle,
		}, ingest.NewPaymentHandler(usecases.NewRecordPaymentUseCase(repo, log)), log),
	}

	for _, consumer := range consumers {
		g.Go(goroutine.Recover(log, "stream-consumer", func() error {
			return consumer.Run(ctx)
		}))
	}
}
