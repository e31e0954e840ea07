package workorder

import (
	"fmt"
	"time"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// WorkOrder is the intent to place a container at a target coordinate.
// The target is not a Position; it becomes one only when the order completes.
//
// Invariants:
// - At most one active (non-terminal) order per container stay
// - Terminal orders never change again
// - completedAt is set if and only if status is COMPLETED
type WorkOrder struct {
	id           string
	stayID       string
	target       yard.Coordinate
	priority     Priority
	equipmentID  *string
	status       Status
	notes        string
	operator     string
	cancelReason string
	createdAt    time.Time
	updatedAt    time.Time
	assignedAt   *time.Time
	completedAt  *time.Time
	cancelledAt  *time.Time
	clock        shared.Clock
}

// NewWorkOrder creates a PENDING order. An equipment reference may be recorded
// up front; the order still starts PENDING until explicitly assigned.
func NewWorkOrder(id, stayID string, target yard.Coordinate, priority Priority, equipmentID *string, notes string, clock shared.Clock) (*WorkOrder, error) {
	if id == "" {
		return nil, shared.NewValidationError("id", "work order id cannot be empty")
	}
	if stayID == "" {
		return nil, shared.NewValidationError("containerStayId", "container stay id cannot be empty")
	}
	if _, ok := priorityRank[priority]; !ok {
		return nil, NewInvalidPriorityError(string(priority))
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}

	now := clock.Now()
	return &WorkOrder{
		id:          id,
		stayID:      stayID,
		target:      target,
		priority:    priority,
		equipmentID: equipmentID,
		status:      StatusPending,
		notes:       notes,
		createdAt:   now,
		updatedAt:   now,
		clock:       clock,
	}, nil
}

// Snapshot is the persisted state of a work order
type Snapshot struct {
	ID           string
	StayID       string
	Target       yard.Coordinate
	Priority     Priority
	EquipmentID  *string
	Status       Status
	Notes        string
	Operator     string
	CancelReason string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	AssignedAt   *time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

// Reconstruct rebuilds a work order from persisted state
func Reconstruct(s Snapshot, clock shared.Clock) *WorkOrder {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &WorkOrder{
		id:           s.ID,
		stayID:       s.StayID,
		target:       s.Target,
		priority:     s.Priority,
		equipmentID:  s.EquipmentID,
		status:       s.Status,
		notes:        s.Notes,
		operator:     s.Operator,
		cancelReason: s.CancelReason,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		assignedAt:   s.AssignedAt,
		completedAt:  s.CompletedAt,
		cancelledAt:  s.CancelledAt,
		clock:        clock,
	}
}

// Snapshot returns the current state for persistence
func (w *WorkOrder) Snapshot() Snapshot {
	return Snapshot{
		ID:           w.id,
		StayID:       w.stayID,
		Target:       w.target,
		Priority:     w.priority,
		EquipmentID:  w.equipmentID,
		Status:       w.status,
		Notes:        w.notes,
		Operator:     w.operator,
		CancelReason: w.cancelReason,
		CreatedAt:    w.createdAt,
		UpdatedAt:    w.updatedAt,
		AssignedAt:   w.assignedAt,
		CompletedAt:  w.completedAt,
		CancelledAt:  w.cancelledAt,
	}
}

// Getters

func (w *WorkOrder) ID() string { return w.id }
func (w *WorkOrder) StayID() string { return w.stayID }
func (w *WorkOrder) Target() yard.Coordinate { return w.target }
func (w *WorkOrder) Priority() Priority { return w.priority }
func (w *WorkOrder) EquipmentID() *string { return w.equipmentID }
func (w *WorkOrder) Status() Status { return w.status }
func (w *WorkOrder) Notes() string { return w.notes }
func (w *WorkOrder) Operator() string { return w.operator }
func (w *WorkOrder) CancelReason() string { return w.cancelReason }
func (w *WorkOrder) CreatedAt() time.Time { return w.createdAt }
func (w *WorkOrder) UpdatedAt() time.Time { return w.updatedAt }
func (w *WorkOrder) AssignedAt() *time.Time { return w.assignedAt }
func (w *WorkOrder) CompletedAt() *time.Time { return w.completedAt }
func (w *WorkOrder) CancelledAt() *time.Time { return w.cancelledAt }
func (w *WorkOrder) IsActive() bool { return w.status.IsActive() }
func (w *WorkOrder) IsAssignedTo(id string) bool { return w.equipmentID != nil && *w.equipmentID == id }
func (w *WorkOrder) HasEquipment() bool { return w.equipmentID != nil }

// State transitions

// AssignTo records the vehicle responsible for a PENDING order. The order stays
// PENDING so it can still be completed; reassigning replaces the vehicle.
func (w *WorkOrder) AssignTo(equipmentID string) error {
	if w.status != StatusPending {
		return NewInvalidStatusError(w.id, w.status, "assign")
	}

	now := w.clock.Now()
	id := equipmentID
	w.equipmentID = &id
	w.assignedAt = &now
	w.updatedAt = now
	return nil
}

// Complete confirms the physical placement. When equipmentID is given it must
// match the assigned vehicle. The caller is responsible for creating the
// Position in the same transaction.
func (w *WorkOrder) Complete(equipmentID *string, operator string) error {
	if !w.status.CanTransitionTo(StatusCompleted) {
		return NewInvalidStatusError(w.id, w.status, "complete")
	}
	if equipmentID != nil && !w.IsAssignedTo(*equipmentID) {
		assigned := ""
		if w.equipmentID != nil {
			assigned = *w.equipmentID
		}
		return NewNotAssignedToVehicleError(w.id, *equipmentID, assigned)
	}

	now := w.clock.Now()
	w.status = StatusCompleted
	w.completedAt = &now
	w.updatedAt = now
	if operator != "" {
		w.operator = operator
	}
	return nil
}

// Cancel ends a non-terminal order without physical side effects
func (w *WorkOrder) Cancel(reason string) error {
	if !w.status.CanTransitionTo(StatusCancelled) {
		return NewInvalidStatusError(w.id, w.status, "cancel")
	}

	now := w.clock.Now()
	w.status = StatusCancelled
	w.cancelReason = reason
	w.cancelledAt = &now
	w.updatedAt = now
	return nil
}

// UpdateStatus moves between the workflow states (ASSIGNED, ACCEPTED, IN_PROGRESS).
// Completion and cancellation have their own methods.
func (w *WorkOrder) UpdateStatus(target Status) error {
	switch target {
	case StatusAssigned, StatusAccepted, StatusInProgress:
	default:
		return NewInvalidStatusError(w.id, w.status, fmt.Sprintf("set status %s on", target))
	}
	if !w.status.CanTransitionTo(target) {
		return NewInvalidStatusError(w.id, w.status, fmt.Sprintf("set status %s on", target))
	}

	w.status = target
	w.updatedAt = w.clock.Now()
	return nil
}
