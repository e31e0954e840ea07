package config

import "time"

// EventsConfig holds domain event publishing configuration.
// With no brokers configured events are written to the log instead of Kafka.
type EventsConfig struct {
	Brokers  []string `mapstructure:"brokers" validate:"dive,hostname_port"`
	Topic    string   `mapstructure:"topic" validate:"required"`
	ClientID string   `mapstructure:"client_id"`

	BatchTimeout time.Duration `mapstructure:"batch_timeout"`

	// Required acks: none, one, all
	RequiredAcks string `mapstructure:"required_acks" validate:"oneof=none one all"`

	// Circuit breaker around the broker
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// BreakerConfig holds circuit breaker settings
type BreakerConfig struct {
	// Consecutive failures that open the breaker
	MaxFailures uint32        `mapstructure:"max_failures" validate:"min=1"`
	OpenTimeout time.Duration `mapstructure:"open_timeout"`
}

// KafkaEnabled reports whether a broker is configured
func (c EventsConfig) KafkaEnabled() bool {
	return len(c.Brokers) > 0
}
