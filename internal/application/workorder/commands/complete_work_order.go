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
)

// CompleteWorkOrderCommand confirms the physical placement of a work order.
// The target becomes an auto-assigned Position in the same transaction that
// marks the order COMPLETED; if placement fails nothing is written.
type CompleteWorkOrderCommand struct {
	WorkOrderID string
	EquipmentID *string
	Operator    string
}

type CompleteWorkOrderResponse struct {
	WorkOrder *workorder.WorkOrder
	Position  *yard.Position
}

type CompleteWorkOrderHandler struct {
	engine    *placement.Engine
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewCompleteWorkOrderHandler(engine *placement.Engine, uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *CompleteWorkOrderHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CompleteWorkOrderHandler{engine: engine, uow: uow, clock: clock, publisher: publisher}
}

func (h *CompleteWorkOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CompleteWorkOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CompleteWorkOrderCommand")
	}

	resp := &CompleteWorkOrderResponse{}
	var events common.EventBuffer

	err := h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		order, err := lockOrder(ctx, repos, cmd.WorkOrderID)
		if err != nil {
			return err
		}

		if err := order.Complete(cmd.EquipmentID, cmd.Operator); err != nil {
			return err
		}

		position, err := h.engine.AssignWith(ctx, repos, &events, order.StayID(), order.Target(), true)
		if err != nil {
			return err
		}

		if err := repos.WorkOrders.Update(ctx, order); err != nil {
			return fmt.Errorf("failed to save work order %s: %w", order.ID(), err)
		}
		events.Record(workorder.NewEvent(workorder.EventWorkOrderCompleted, order, h.clock.Now()))

		resp.WorkOrder = order
		resp.Position = position
		return nil
	})
	placement.RecordOutcome("complete_work_order", err)
	if err != nil {
		logging.LoggerFromContext(ctx).Warn("work order completion rejected",
			"work_order_id", cmd.WorkOrderID,
			"code", shared.CodeOf(err),
			"error", err,
		)
		return nil, err
	}

	metrics.RecordWorkOrderTransition(string(workorder.StatusCompleted))
	logging.LoggerFromContext(ctx).Info("work order completed",
		"work_order_id", resp.WorkOrder.ID(),
		"position_id", resp.Position.ID(),
		"coordinate", resp.Position.Coordinate().String(),
	)
	events.Flush(ctx, h.publisher)
	return resp, nil
}
