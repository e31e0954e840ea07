package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/adapters/metrics"
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/pkg/utils"
)

// CreateWorkOrderCommand records the intent to place a container.
// Without a Target the engine's suggestion (optionally scoped by ZonePreference) is used.
type CreateWorkOrderCommand struct {
	ContainerStayID string
	Target          *yard.Coordinate
	ZonePreference  string
	Priority        string
	EquipmentID     *string
	Notes           string
}

type CreateWorkOrderResponse struct {
	WorkOrder *workorder.WorkOrder
	// Suggestion is set when the target came from the engine
	Suggestion *yard.Suggestion
}

type CreateWorkOrderHandler struct {
	engine    *placement.Engine
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewCreateWorkOrderHandler(engine *placement.Engine, uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *CreateWorkOrderHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CreateWorkOrderHandler{engine: engine, uow: uow, clock: clock, publisher: publisher}
}

func (h *CreateWorkOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CreateWorkOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CreateWorkOrderCommand")
	}

	resp := &CreateWorkOrderResponse{}
	err := h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		stay, err := repos.Stays.LockByID(ctx, cmd.ContainerStayID)
		if err != nil {
			return fmt.Errorf("failed to load container stay %s: %w", cmd.ContainerStayID, err)
		}
		if stay == nil {
			return yard.NewContainerStayNotFoundError(cmd.ContainerStayID)
		}
		if stay.HasExited() {
			return yard.NewContainerExitedError(stay.ID)
		}

		active, err := repos.WorkOrders.FindActiveByStay(ctx, stay.ID)
		if err != nil {
			return fmt.Errorf("failed to check active work orders: %w", err)
		}
		if active != nil {
			return workorder.NewWorkOrderAlreadyExistsError(stay.ID, active.ID())
		}

		target, err := h.resolveTarget(ctx, repos, cmd, stay.ID, resp)
		if err != nil {
			return err
		}

		priority, err := workorder.ParsePriority(cmd.Priority)
		if err != nil {
			return err
		}

		if cmd.EquipmentID != nil {
			if _, err := workorder.RequireActiveEquipment(ctx, repos.Equipment, *cmd.EquipmentID); err != nil {
				return err
			}
		}

		order, err := workorder.NewWorkOrder(
			utils.GenerateWorkOrderID(stay.ContainerNumber),
			stay.ID,
			target,
			priority,
			cmd.EquipmentID,
			cmd.Notes,
			h.clock,
		)
		if err != nil {
			return err
		}
		if err := repos.WorkOrders.Create(ctx, order); err != nil {
			return err
		}
		resp.WorkOrder = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkOrderTransition(string(workorder.StatusPending))
	logging.LoggerFromContext(ctx).Info("work order created",
		"work_order_id", resp.WorkOrder.ID(),
		"container_stay_id", resp.WorkOrder.StayID(),
		"target", resp.WorkOrder.Target().String(),
		"priority", string(resp.WorkOrder.Priority()),
	)
	common.PublishBestEffort(ctx, h.publisher, workorder.NewEvent(workorder.EventWorkOrderCreated, resp.WorkOrder, h.clock.Now()))
	return resp, nil
}

func (h *CreateWorkOrderHandler) resolveTarget(ctx context.Context, repos common.Repositories, cmd *CreateWorkOrderCommand, stayID string, resp *CreateWorkOrderResponse) (yard.Coordinate, error) {
	if cmd.Target == nil {
		reserved, err := activeTargets(ctx, repos)
		if err != nil {
			return yard.Coordinate{}, err
		}
		suggestion, err := h.engine.SuggestAvoidingWith(ctx, repos, stayID, cmd.ZonePreference, reserved)
		if err != nil {
			return yard.Coordinate{}, err
		}
		resp.Suggestion = &suggestion
		return suggestion.Coordinate, nil
	}

	if err := h.engine.Layout().ValidateCoordinate(*cmd.Target); err != nil {
		return yard.Coordinate{}, err
	}
	placed, err := repos.Positions.FindByStay(ctx, stayID)
	if err != nil {
		return yard.Coordinate{}, fmt.Errorf("failed to load position of stay %s: %w", stayID, err)
	}
	if placed != nil {
		return yard.Coordinate{}, yard.NewContainerAlreadyPlacedError(stayID, placed.Coordinate())
	}
	return *cmd.Target, nil
}

// activeTargets lists the coordinates already promised to active work orders
func activeTargets(ctx context.Context, repos common.Repositories) ([]yard.Coordinate, error) {
	orders, err := repos.WorkOrders.List(ctx, workorder.ListFilter{ActiveOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load active work orders: %w", err)
	}
	targets := make([]yard.Coordinate, 0, len(orders))
	for _, o := range orders {
		targets = append(targets, o.Target())
	}
	return targets, nil
}
