package workorder

import (
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

const (
	CodeWorkOrderAlreadyExists = "WORK_ORDER_ALREADY_EXISTS"
	CodeWorkOrderNotFound      = "WORK_ORDER_NOT_FOUND"
	CodeInvalidStatus          = "INVALID_STATUS"
	CodeNotAssignedToVehicle   = "NOT_ASSIGNED_TO_VEHICLE"
	CodeVehicleNotFound        = "VEHICLE_NOT_FOUND"
	CodeInvalidPriority        = "INVALID_PRIORITY"
)

type WorkOrderError struct {
	*shared.DomainError
	WorkOrderID string
}

func newWorkOrderError(code, id, message string) *WorkOrderError {
	de := shared.NewDomainError(code, message)
	if id != "" {
		de.WithDetail("workOrderId", id)
	}
	return &WorkOrderError{DomainError: de, WorkOrderID: id}
}

type WorkOrderAlreadyExistsError struct {
	*WorkOrderError
	StayID string
}

// NewWorkOrderAlreadyExistsError reports the active order blocking a new one.
// existingID may be empty when the conflict was detected by the store.
func NewWorkOrderAlreadyExistsError(stayID, existingID string) *WorkOrderAlreadyExistsError {
	err := &WorkOrderAlreadyExistsError{
		WorkOrderError: newWorkOrderError(CodeWorkOrderAlreadyExists, existingID,
			fmt.Sprintf("container stay %s already has an active work order", stayID)),
		StayID: stayID,
	}
	err.WithDetail("containerStayId", stayID)
	return err
}

func NewWorkOrderNotFoundError(id string) *WorkOrderError {
	return newWorkOrderError(CodeWorkOrderNotFound, id, fmt.Sprintf("work order %s not found", id))
}

type InvalidStatusError struct {
	*WorkOrderError
	Current Status
	Action  string
}

func NewInvalidStatusError(id string, current Status, action string) *InvalidStatusError {
	err := &InvalidStatusError{
		WorkOrderError: newWorkOrderError(CodeInvalidStatus, id,
			fmt.Sprintf("cannot %s work order %s in status %s", action, id, current)),
		Current: current,
		Action:  action,
	}
	err.WithDetail("status", string(current)).WithDetail("action", action)
	return err
}

func NewInvalidStatusValueError(value string) *WorkOrderError {
	return newWorkOrderError(CodeInvalidStatus, "", fmt.Sprintf("unknown work order status %q", value))
}

type NotAssignedToVehicleError struct {
	*WorkOrderError
	EquipmentID string
	AssignedID  string
}

func NewNotAssignedToVehicleError(id, equipmentID, assignedID string) *NotAssignedToVehicleError {
	err := &NotAssignedToVehicleError{
		WorkOrderError: newWorkOrderError(CodeNotAssignedToVehicle, id,
			fmt.Sprintf("work order %s is not assigned to equipment %s", id, equipmentID)),
		EquipmentID: equipmentID,
		AssignedID:  assignedID,
	}
	err.WithDetail("equipmentId", equipmentID)
	if assignedID != "" {
		err.WithDetail("assignedEquipmentId", assignedID)
	}
	return err
}

type VehicleNotFoundError struct {
	*shared.DomainError
	EquipmentID string
}

func NewVehicleNotFoundError(equipmentID string) *VehicleNotFoundError {
	return &VehicleNotFoundError{
		DomainError: shared.NewDomainErrorf(CodeVehicleNotFound, "equipment %s not found or inactive", equipmentID).
			WithDetail("equipmentId", equipmentID),
		EquipmentID: equipmentID,
	}
}

type InvalidPriorityError struct {
	*shared.DomainError
	Value string
}

func NewInvalidPriorityError(value string) *InvalidPriorityError {
	return &InvalidPriorityError{
		DomainError: shared.NewDomainErrorf(CodeInvalidPriority,
			"invalid priority %q: must be LOW, MEDIUM, HIGH or URGENT", value).WithDetail("priority", value),
		Value: value,
	}
}
