package events

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/infrastructure/config"
)

// Publisher is an EventPublisher holding resources released at shutdown
type Publisher interface {
	common.EventPublisher
	io.Closer
}

// MultiPublisher fans events out to every publisher and joins their errors
type MultiPublisher []Publisher

func (m MultiPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, events...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiPublisher) Close() error {
	var errs []error
	for _, p := range m {
		if err := p.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewPublisher selects Kafka when brokers are configured, otherwise the log.
// With debug logging enabled Kafka events are also logged.
func NewPublisher(cfg config.EventsConfig, logger *slog.Logger) Publisher {
	if !cfg.KafkaEnabled() {
		return NewLogPublisher(logger)
	}
	kafkaPublisher := NewKafkaPublisher(cfg, logger)
	if logger != nil && logger.Enabled(context.Background(), slog.LevelDebug) {
		return MultiPublisher{kafkaPublisher, NewLogPublisher(logger)}
	}
	return kafkaPublisher
}
