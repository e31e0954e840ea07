package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
)

var serveMigrate bool

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API on the configured server address until interrupted.

Application logs go to the configured logging output.

Examples:
  yardctl serve
  yardctl serve --migrate
  YARD_SERVER_ADDRESS=:9090 yardctl serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if verbose {
				cfg.Logging.Level = "debug"
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return RunServer(ctx, cfg, serveMigrate)
		},
	}

	cmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Migrate the schema before serving")

	return cmd
}

// RunServer opens the application and serves the HTTP API until ctx is done
func RunServer(ctx context.Context, cfg *config.Config, migrate bool) error {
	app, err := OpenApp(cfg, migrate)
	if err != nil {
		return err
	}
	defer app.Close()

	app.Logger.Info("container yard service starting",
		"database", cfg.Database.Type,
		"zones", cfg.Yard.Zones,
		"kafka", cfg.Events.KafkaEnabled(),
		"metrics", cfg.Metrics.Enabled,
	)
	return app.Serve(ctx)
}
