package main

import (
	"github.com/spf13/cobra"

	"github.com/bizcomply/bizcomply/internal/infrastructure/persistence/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the regulation corpus into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		conn, log, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer conn.Close()

		if err := conn.Migrate(ctx); err != nil {
			return err
		}
		if err := postgres.NewSeeder(conn.DB(), log).Seed(ctx); err != nil {
			return err
		}
		cmd.Println("regulation corpus seeded")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
