package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/adapters/metrics"
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/logging"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
)

// CancelWorkOrderCommand cancels a non-terminal work order. No position is touched.
type CancelWorkOrderCommand struct {
	WorkOrderID string
	Reason      string
}

type CancelWorkOrderResponse struct {
	WorkOrder *workorder.WorkOrder
}

type CancelWorkOrderHandler struct {
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewCancelWorkOrderHandler(uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *CancelWorkOrderHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &CancelWorkOrderHandler{uow: uow, clock: clock, publisher: publisher}
}

func (h *CancelWorkOrderHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*CancelWorkOrderCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CancelWorkOrderCommand")
	}

	var order *workorder.WorkOrder
	err := h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		var err error
		order, err = lockOrder(ctx, repos, cmd.WorkOrderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(cmd.Reason); err != nil {
			return err
		}
		if err := repos.WorkOrders.Update(ctx, order); err != nil {
			return fmt.Errorf("failed to save work order %s: %w", order.ID(), err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkOrderTransition(string(workorder.StatusCancelled))
	logging.LoggerFromContext(ctx).Info("work order cancelled",
		"work_order_id", order.ID(),
		"reason", cmd.Reason,
	)
	common.PublishBestEffort(ctx, h.publisher, workorder.NewEvent(workorder.EventWorkOrderCancelled, order, h.clock.Now()))
	return &CancelWorkOrderResponse{WorkOrder: order}, nil
}
