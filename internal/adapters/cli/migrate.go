package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/infrastructure/database"
)

// NewMigrateCommand creates the migrate command
func NewMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update every table and index used by the service, including the
unique coordinate index on positions and the partial unique index that allows
one active work order per container stay.

Example:
  yardctl migrate`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}

			fmt.Printf("✓ Schema migrated (%s)\n", cfg.Database.Type)
			return nil
		},
	}

	return cmd
}
