package yard

import (
	"context"
	"time"
)

// SlotFilter narrows occupancy reads
type SlotFilter struct {
	Zone  string
	Tier  int
	Limit int
}

// PositionRepository is the occupancy store.
// Lookups return (nil, nil) when nothing matches.
type PositionRepository interface {
	FindByID(ctx context.Context, id int64) (*Position, error)
	FindByStay(ctx context.Context, stayID string) (*Position, error)

	// Create inserts the position and sets its id.
	// A coordinate uniqueness violation is reported as PositionOccupied.
	Create(ctx context.Context, position *Position) error
	Update(ctx context.Context, position *Position) error
	Delete(ctx context.Context, id int64) error

	// LockStack returns the occupied slots of one stack, locking them for the
	// rest of the transaction where the database supports row locks.
	LockStack(ctx context.Context, stack StackKey) ([]OccupiedSlot, error)
	ListSlots(ctx context.Context, filter SlotFilter) ([]OccupiedSlot, error)
	CountByZone(ctx context.Context) (map[string]int, error)
}

// ContainerStayRepository is the slice of the stay registry used by the yard
type ContainerStayRepository interface {
	FindByID(ctx context.Context, id string) (*ContainerStay, error)
	// LockByID reads the stay and holds a row lock until the transaction ends
	LockByID(ctx context.Context, id string) (*ContainerStay, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]*ContainerStay, error)
	Create(ctx context.Context, stay *ContainerStay) error
	UpdateCurrentLocation(ctx context.Context, id string, location string) error
	MarkExited(ctx context.Context, id string, at time.Time) error
	// ListUnplaced returns stays on the yard with neither a position nor an active work order
	ListUnplaced(ctx context.Context, limit int) ([]*ContainerStay, error)
}
