package workorder

import "context"

// ListFilter selects work orders for the read side.
// Zero values mean "no restriction" except where noted.
type ListFilter struct {
	EquipmentID string
	// IncludeCompleted adds COMPLETED orders when filtering by equipment
	IncludeCompleted bool
	UnassignedOnly   bool
	ActiveOnly       bool
	Zone             string
	Limit            int
}

// Repository persists work orders. Lookups return (nil, nil) when nothing matches.
type Repository interface {
	// Create inserts a new order. A second active order for the same stay is
	// rejected by the store and reported as WorkOrderAlreadyExists.
	Create(ctx context.Context, order *WorkOrder) error
	Update(ctx context.Context, order *WorkOrder) error
	FindByID(ctx context.Context, id string) (*WorkOrder, error)
	// LockByID reads the order and holds a row lock until the transaction ends
	LockByID(ctx context.Context, id string) (*WorkOrder, error)
	FindActiveByStay(ctx context.Context, stayID string) (*WorkOrder, error)
	List(ctx context.Context, filter ListFilter) ([]*WorkOrder, error)
}

// EquipmentRepository stores the equipment read model (seeded from the fleet system)
type EquipmentRepository interface {
	EquipmentDirectory
	Upsert(ctx context.Context, eq *Equipment) error
	List(ctx context.Context) ([]*Equipment, error)
}
