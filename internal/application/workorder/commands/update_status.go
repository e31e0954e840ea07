package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/adapters/metrics"
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
)

// UpdateWorkOrderStatusCommand sets one of the workflow states
// (ASSIGNED, ACCEPTED, IN_PROGRESS) on an active order
type UpdateWorkOrderStatusCommand struct {
	WorkOrderID string
	Status      string
}

type UpdateWorkOrderStatusResponse struct {
	WorkOrder *workorder.WorkOrder
	Previous  workorder.Status
}

type UpdateWorkOrderStatusHandler struct {
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewUpdateWorkOrderStatusHandler(uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *UpdateWorkOrderStatusHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &UpdateWorkOrderStatusHandler{uow: uow, clock: clock, publisher: publisher}
}

func (h *UpdateWorkOrderStatusHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateWorkOrderStatusCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateWorkOrderStatusCommand")
	}

	target, err := workorder.ParseStatus(cmd.Status)
	if err != nil {
		return nil, err
	}

	resp := &UpdateWorkOrderStatusResponse{}
	err = h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		order, err := lockOrder(ctx, repos, cmd.WorkOrderID)
		if err != nil {
			return err
		}
		resp.Previous = order.Status()
		if err := order.UpdateStatus(target); err != nil {
			return err
		}
		if err := repos.WorkOrders.Update(ctx, order); err != nil {
			return fmt.Errorf("failed to save work order %s: %w", order.ID(), err)
		}
		resp.WorkOrder = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordWorkOrderTransition(string(target))
	common.PublishBestEffort(ctx, h.publisher, workorder.NewEvent(workorder.EventWorkOrderStatus, resp.WorkOrder, h.clock.Now()))
	return resp, nil
}
