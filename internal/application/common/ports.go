package common

import (
	"context"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// Repositories groups the stores bound to one database session.
// Inside UnitOfWork.Do every repository shares the same transaction.
type Repositories struct {
	Positions  yard.PositionRepository
	Stays      yard.ContainerStayRepository
	WorkOrders workorder.Repository
	Equipment  workorder.EquipmentRepository
}

// UnitOfWork runs fn inside a single database transaction.
// fn's error rolls the transaction back and is returned unchanged.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
	// Repositories returns stores bound to the plain (non-transactional) session
	Repositories() Repositories
}

// EventPublisher delivers domain events after commit.
// Implementations must not block the caller for long; failures are reported, not retried.
type EventPublisher interface {
	Publish(ctx context.Context, events ...shared.DomainEvent) error
}
