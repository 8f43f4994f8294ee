// Command cli is the bizcomply administrative tool: migrations, corpus
// seeding, and ad-hoc compliance checks from the terminal.
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/bizcomply/bizcomply/internal/config"
	"github.com/bizcomply/bizcomply/internal/infrastructure/persistence/postgres"
	"github.com/bizcomply/bizcomply/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:   "bizcomply-admin",
	Short: "Administrative tool for the bizcomply compliance service",
	Long: `bizcomply-admin manages the compliance service out of band:
database migrations, regulation corpus seeding, and one-off compliance
checks against the stored corpus.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDatabase loads configuration and connects, shared by the subcommands.
func openDatabase(ctx context.Context) (*postgres.DBConnection, logger.Logger, error) {
	log := logger.MustNew(logger.Options{Level: "warn", Format: "console"})

	cfg, err := config.Load(log)
	if err != nil {
		return nil, nil, err
	}

	conn, err := postgres.NewDBConnection(ctx, &cfg.Database, log)
	if err != nil {
		return nil, nil, err
	}
	return conn, log, nil
}
