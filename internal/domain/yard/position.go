package yard

import (
	"time"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// Position is the physically confirmed location of a container stay.
//
// Invariants:
// - At most one Position per container stay
// - No two Positions share a coordinate (enforced by the store's unique index)
type Position struct {
	id           int64
	stayID       string
	coordinate   Coordinate
	autoAssigned bool
	placedAt     time.Time
	updatedAt    time.Time
	clock        shared.Clock
}

// NewPosition creates an unsaved position; the id is assigned by the repository
func NewPosition(stayID string, at Coordinate, autoAssigned bool, clock shared.Clock) *Position {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	now := clock.Now()
	return &Position{
		stayID:       stayID,
		coordinate:   at,
		autoAssigned: autoAssigned,
		placedAt:     now,
		updatedAt:    now,
		clock:        clock,
	}
}

// ReconstructPosition rebuilds a Position from persisted state
func ReconstructPosition(id int64, stayID string, at Coordinate, autoAssigned bool, placedAt, updatedAt time.Time, clock shared.Clock) *Position {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Position{
		id:           id,
		stayID:       stayID,
		coordinate:   at,
		autoAssigned: autoAssigned,
		placedAt:     placedAt,
		updatedAt:    updatedAt,
		clock:        clock,
	}
}

func (p *Position) ID() int64 { return p.id }
func (p *Position) StayID() string { return p.stayID }
func (p *Position) Coordinate() Coordinate { return p.coordinate }
func (p *Position) AutoAssigned() bool { return p.autoAssigned }
func (p *Position) PlacedAt() time.Time { return p.placedAt }
func (p *Position) UpdatedAt() time.Time { return p.updatedAt }

// SetID is called by the repository after insert
func (p *Position) SetID(id int64) {
	p.id = id
}

// MoveTo relocates the position. A move is always a manual placement.
func (p *Position) MoveTo(at Coordinate) {
	p.coordinate = at
	p.autoAssigned = false
	p.updatedAt = p.clock.Now()
}
