package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
)

// loadConfig loads the system configuration named by --config. Outside of
// verbose mode application logs are limited to warnings on stderr so they do
// not mix with command output.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	if verbose {
		cfg.Logging.Level = "debug"
		cfg.Logging.Format = "text"
	} else {
		cfg.Logging.Level = "warn"
	}
	return cfg, nil
}

// withApp opens the application for a single command and closes it afterwards.
// The context is cancelled on SIGINT/SIGTERM.
func withApp(fn func(ctx context.Context, app *App) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := OpenApp(cfg, false)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return describeError(fn(ctx, app))
}

// describeError prefixes domain errors with their code so scripts can match on it
func describeError(err error) error {
	if err == nil {
		return nil
	}
	if code := shared.CodeOf(err); code != "" {
		return fmt.Errorf("%s: %w", code, err)
	}
	return err
}

// userPreferences loads ~/.containeryard/config.json, or empty preferences
// when it cannot be read
func userPreferences() *config.UserConfig {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return &config.UserConfig{}
	}
	prefs, err := handler.Load()
	if err != nil {
		return &config.UserConfig{}
	}
	return prefs
}

// resolveDefault returns the flag value, falling back to the user preference
func resolveDefault(flagValue, preference string) string {
	if flagValue != "" {
		return flagValue
	}
	return preference
}

// printJSON writes v as indented JSON to stdout
func printJSON(v interface{}) error {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(bytes))
	return nil
}
