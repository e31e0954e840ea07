package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
	outputJSON bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yardctl",
		Short: "yardctl - Operate the container yard placement service",
		Long: `yardctl places containers in the yard, drives work orders through their
lifecycle and inspects yard occupancy. Commands run directly against the
configured database; "yardctl serve" starts the HTTP API.

Examples:
  yardctl migrate
  yardctl seed --file fixtures/yard.yaml
  yardctl position suggest --stay stay-1001 --zone B
  yardctl position assign --stay stay-1001 --at B-R06-B01-T1-A
  yardctl workorder create --stay stay-1002 --priority HIGH
  yardctl workorder complete <work-order-id> --equipment RS-01
  yardctl yard layout --zone A --tier 1
  yardctl serve`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: search ./config.yaml, ./configs, /etc/containeryard)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output (application logs on stderr)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false,
		"Print results as JSON")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewSeedCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewStayCommand())
	rootCmd.AddCommand(NewPositionCommand())
	rootCmd.AddCommand(NewWorkOrderCommand())
	rootCmd.AddCommand(NewYardCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
