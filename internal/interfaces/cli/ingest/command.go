package ingest

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/orris-inc/monitor/internal/infrastructure/config"
	"github.com/orris-inc/monitor/internal/infrastructure/database"
	"github.com/orris-inc/monitor/internal/infrastructure/repository"
	"github.com/orris-inc/monitor/internal/interfaces/cli/bootstrap"
	"github.com/orris-inc/monitor/internal/shared/constants"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Consume offer and payment streams",
		Long:  `Consume the offer and payment Redis streams and append every valid event to the record store.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	env = bootstrap.ResolveEnv(env)

	cfg, err := config.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rt, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.Redis == nil {
		return fmt.Errorf("stream ingestion requires redis")
	}

	rt.Log.Infow("starting stream ingestion",
		"environment", env,
		"offer_stream", cfg.Ingest.OfferStream,
		"payment_stream", cfg.Ingest.PaymentStream,
		"group", cfg.Ingest.Group)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	repo := repository.NewRecordRepository(database.Get(), rt.Log.Named("repository"))
	bootstrap.StartConsumers(gctx, g, cfg, rt, repo)

	if err := g.Wait(); err != nil {
		rt.Log.Errorw("stream ingestion stopped with error", "error", err)
		return err
	}

	rt.Log.Infow("stream ingestion stopped")
	return nil
}
