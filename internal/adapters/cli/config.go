package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
)

var (
	defaultOperator  string
	defaultEquipment string
	defaultZone      string
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage containeryard configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (YARD_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

Operator preferences (operator, equipment, zone) are stored in ~/.containeryard/config.json

Examples:
  yardctl config show
  yardctl config set-defaults --operator j.silva --equipment RS-01
  yardctl config set-defaults --zone B
  yardctl config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetDefaultsCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and operator preferences.

Example:
  yardctl config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			prefs, err := handler.Load()
			if err != nil {
				return fmt.Errorf("failed to load user config: %w", err)
			}

			if outputJSON {
				return printJSON(map[string]interface{}{"config": cfg, "preferences": prefs})
			}

			fmt.Println("Database:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			} else if cfg.Database.URL != "" {
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			} else {
				fmt.Printf("  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
				fmt.Printf("  Name:             %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}

			fmt.Println("\nServer:")
			fmt.Printf("  Address:          %s\n", cfg.Server.Address)
			fmt.Printf("  CORS origins:     %s\n", strings.Join(cfg.Server.CORSOrigins, ", "))
			fmt.Printf("  Rate limit:       %.0f req/s (burst %d)\n", cfg.Server.RateLimit.Requests, cfg.Server.RateLimit.Burst)

			fmt.Println("\nYard:")
			fmt.Printf("  Zones:            %s\n", strings.Join(cfg.Yard.Zones, ", "))
			fmt.Printf("  Grid:             %d rows x %d bays x %d tiers\n", cfg.Yard.Rows, cfg.Yard.Bays, cfg.Yard.Tiers)
			fmt.Printf("  Sub-slots:        %s\n", strings.Join(cfg.Yard.SubSlots, ", "))
			fmt.Printf("  Preferred height: %d\n", cfg.Yard.PreferredStackHeight)
			for _, rule := range cfg.Yard.SizeRules {
				fmt.Printf("  %dft:             rows %v, sub-slots %s\n", rule.Size, rule.Rows, strings.Join(rule.SubSlots, ","))
			}

			fmt.Println("\nEvents:")
			if cfg.Events.KafkaEnabled() {
				fmt.Printf("  Brokers:          %s\n", strings.Join(cfg.Events.Brokers, ", "))
				fmt.Printf("  Topic:            %s\n", cfg.Events.Topic)
			} else {
				fmt.Println("  Publisher:        log")
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			fmt.Printf("\nPreferences (%s):\n", handler.GetConfigPath())
			fmt.Printf("  Operator:         %s\n", orNone(prefs.DefaultOperator))
			fmt.Printf("  Equipment:        %s\n", orNone(prefs.DefaultEquipmentID))
			fmt.Printf("  Zone:             %s\n", orNone(prefs.DefaultZone))

			return nil
		},
	}

	return cmd
}

// newConfigSetDefaultsCommand creates the config set-defaults subcommand
func newConfigSetDefaultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-defaults",
		Short: "Set default operator, equipment or zone",
		Long: `Store operator preferences used when the corresponding flag is omitted.

Only the flags given are changed.

Examples:
  yardctl config set-defaults --operator j.silva
  yardctl config set-defaults --equipment RS-01 --zone C`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaultOperator == "" && defaultEquipment == "" && defaultZone == "" {
				return fmt.Errorf("at least one of --operator, --equipment or --zone is required")
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			err = handler.Update(func(prefs *config.UserConfig) {
				if defaultOperator != "" {
					prefs.DefaultOperator = defaultOperator
				}
				if defaultEquipment != "" {
					prefs.DefaultEquipmentID = defaultEquipment
				}
				if defaultZone != "" {
					prefs.DefaultZone = strings.ToUpper(defaultZone)
				}
			})
			if err != nil {
				return fmt.Errorf("failed to save preferences: %w", err)
			}

			fmt.Println("✓ Defaults saved")
			fmt.Printf("  Config file: %s\n", handler.GetConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&defaultOperator, "operator", "", "Operator recorded on completed work orders")
	cmd.Flags().StringVar(&defaultEquipment, "equipment", "", "Equipment the operator is driving")
	cmd.Flags().StringVar(&defaultZone, "zone", "", "Preferred zone for suggestions")

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear operator preferences",
		Long: `Remove every stored preference.

Example:
  yardctl config clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := handler.Clear(); err != nil {
				return fmt.Errorf("failed to clear preferences: %w", err)
			}

			fmt.Println("✓ Preferences cleared")
			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
