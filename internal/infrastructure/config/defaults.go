package config

import (
	"time"

	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "postgres"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "containeryard"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "containeryard"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
	if cfg.Logging.Service == "" {
		cfg.Logging.Service = "containeryard"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30 * time.Second
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = []string{"*"}
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 50
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 100
	}

	// Metrics defaults
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Events defaults
	if cfg.Events.Topic == "" {
		cfg.Events.Topic = "containeryard.events"
	}
	if cfg.Events.ClientID == "" {
		cfg.Events.ClientID = "containeryard"
	}
	if cfg.Events.BatchTimeout == 0 {
		cfg.Events.BatchTimeout = 50 * time.Millisecond
	}
	if cfg.Events.RequiredAcks == "" {
		cfg.Events.RequiredAcks = "all"
	}
	if cfg.Events.Breaker.MaxFailures == 0 {
		cfg.Events.Breaker.MaxFailures = 5
	}
	if cfg.Events.Breaker.OpenTimeout == 0 {
		cfg.Events.Breaker.OpenTimeout = 30 * time.Second
	}

	// Yard defaults come from the reference layout, field by field
	ref := yardConfigFromLayout(yard.DefaultLayout())
	if len(cfg.Yard.Zones) == 0 {
		cfg.Yard.Zones = ref.Zones
	}
	if cfg.Yard.Rows == 0 {
		cfg.Yard.Rows = ref.Rows
	}
	if cfg.Yard.Bays == 0 {
		cfg.Yard.Bays = ref.Bays
	}
	if cfg.Yard.Tiers == 0 {
		cfg.Yard.Tiers = ref.Tiers
	}
	if len(cfg.Yard.SubSlots) == 0 {
		cfg.Yard.SubSlots = ref.SubSlots
	}
	if cfg.Yard.PreferredStackHeight == 0 {
		cfg.Yard.PreferredStackHeight = ref.PreferredStackHeight
	}
	if len(cfg.Yard.SizeRules) == 0 {
		cfg.Yard.SizeRules = ref.SizeRules
	}
}
