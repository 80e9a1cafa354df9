package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/orris-inc/monitor/internal/interfaces/cli/ingest"
	"github.com/orris-inc/monitor/internal/interfaces/cli/migrate"
	"github.com/orris-inc/monitor/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Monitor - offer and payment analytics",
		Long:  `Monitor aggregates offer and payment events into dashboard indicators, time series and trend-adjusted forecasts.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		ingest.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
