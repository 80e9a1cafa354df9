// Command worker runs stream ingestion as a standalone process, so the API
// and the consumers can be scaled separately.
package main

import (
	"os"

	"github.com/orris-inc/monitor/internal/interfaces/cli/ingest"
)

func main() {
	cmd := ingest.NewCommand()
	cmd.Use = "worker"

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
