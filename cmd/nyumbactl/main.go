// nyumbactl runs schema migration and seeding without starting the server,
// for deploy pipelines and local setup.
package main

import (
	"fmt"
	"os"

	"nyumbani/internal/database"
	"nyumbani/pkg/config"
	"nyumbani/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nyumbactl",
		Short: "Nyumbani database administration tool",
	}

	rootCmd.AddCommand(migrateCmd(), seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := logger.Initialize(cfg); err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	if err := database.Initialize(cfg); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	return nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer database.Close()
			return database.Migrate()
		},
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default landlord account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := setup(); err != nil {
				return err
			}
			defer database.Close()
			if err := database.Migrate(); err != nil {
				return err
			}
			return database.Seed(database.GetDB())
		},
	}
}
