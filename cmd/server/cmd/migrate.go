package cmd

import (
	"fmt"
	"os"

	"github.com/gatherly/server/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	migrationsPath string
	downSteps      int
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply pending database migrations, or roll back with --down.

Examples:
  # Apply all pending migrations
  server migrate

  # Roll back the last migration
  server migrate --down 1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		databaseURL := os.Getenv("DATABASE_URL")
		if databaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required")
		}

		if downSteps > 0 {
			return postgres.MigrateDown(databaseURL, migrationsPath, downSteps)
		}
		return postgres.MigrateUp(databaseURL, migrationsPath)
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrationsPath, "path", postgres.DefaultMigrationsPath, "migrations directory")
	migrateCmd.Flags().IntVar(&downSteps, "down", 0, "roll back this many migrations instead of applying")
}
