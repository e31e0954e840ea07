package workorder

import (
	"time"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

const (
	EventWorkOrderCreated   = "workorder.created"
	EventWorkOrderAssigned  = "workorder.assigned"
	EventWorkOrderCompleted = "workorder.completed"
	EventWorkOrderCancelled = "workorder.cancelled"
	EventWorkOrderStatus    = "workorder.status_changed"
)

// WorkOrderEvent carries the order state at the time of the change
type WorkOrderEvent struct {
	shared.BaseEvent
	StayID      string `json:"containerStayId"`
	Target      string `json:"target"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	EquipmentID string `json:"equipmentId,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

func NewEvent(eventType string, w *WorkOrder, at time.Time) WorkOrderEvent {
	ev := WorkOrderEvent{
		BaseEvent: shared.NewBaseEvent(eventType, w.ID(), at),
		StayID:    w.StayID(),
		Target:    w.Target().String(),
		Priority:  string(w.Priority()),
		Status:    string(w.Status()),
	}
	if w.EquipmentID() != nil {
		ev.EquipmentID = *w.EquipmentID()
	}
	if w.Status() == StatusCancelled {
		ev.Reason = w.CancelReason()
	}
	return ev
}
