package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// GormUnitOfWork runs application operations inside a database transaction
type GormUnitOfWork struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormUnitOfWork creates a unit of work over db
func NewGormUnitOfWork(db *gorm.DB, clock shared.Clock) *GormUnitOfWork {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormUnitOfWork{db: db, clock: clock}
}

// Do runs fn in a transaction. A returned error or panic rolls it back.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, repos common.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, u.repositories(tx))
	})
}

// Repositories returns repositories bound to the root connection, for reads
// that do not need a transaction
func (u *GormUnitOfWork) Repositories() common.Repositories {
	return u.repositories(u.db)
}

func (u *GormUnitOfWork) repositories(db *gorm.DB) common.Repositories {
	return common.Repositories{
		Positions:  NewGormPositionRepository(db, u.clock),
		Stays:      NewGormContainerStayRepository(db),
		WorkOrders: NewGormWorkOrderRepository(db, u.clock),
		Equipment:  NewGormEquipmentRepository(db),
	}
}
