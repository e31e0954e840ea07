package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
)

// AssignToVehicleCommand hands a PENDING work order to a piece of equipment.
// The order stays PENDING.
type AssignToVehicleCommand struct {
	WorkOrderID string
	EquipmentID string
}

type AssignToVehicleResponse struct {
	WorkOrder *workorder.WorkOrder
	Equipment *workorder.Equipment
}

type AssignToVehicleHandler struct {
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewAssignToVehicleHandler(uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *AssignToVehicleHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &AssignToVehicleHandler{uow: uow, clock: clock, publisher: publisher}
}

func (h *AssignToVehicleHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AssignToVehicleCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AssignToVehicleCommand")
	}

	resp := &AssignToVehicleResponse{}
	err := h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		order, err := lockOrder(ctx, repos, cmd.WorkOrderID)
		if err != nil {
			return err
		}
		if order.Status() != workorder.StatusPending {
			return workorder.NewInvalidStatusError(order.ID(), order.Status(), "assign")
		}

		equipment, err := workorder.RequireActiveEquipment(ctx, repos.Equipment, cmd.EquipmentID)
		if err != nil {
			return err
		}

		if err := order.AssignTo(equipment.ID); err != nil {
			return err
		}
		if err := repos.WorkOrders.Update(ctx, order); err != nil {
			return fmt.Errorf("failed to save work order %s: %w", order.ID(), err)
		}

		resp.WorkOrder = order
		resp.Equipment = equipment
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Info("work order assigned",
		"work_order_id", resp.WorkOrder.ID(),
		"equipment_id", resp.Equipment.ID,
		"equipment_type", string(resp.Equipment.Type),
	)
	common.PublishBestEffort(ctx, h.publisher, workorder.NewEvent(workorder.EventWorkOrderAssigned, resp.WorkOrder, h.clock.Now()))
	return resp, nil
}
