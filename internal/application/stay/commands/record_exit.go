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

const exitCancelReason = "container exited the yard"

// RecordExitCommand gates a container out: its position is released, any
// active work order is cancelled and the stay is marked exited, atomically.
type RecordExitCommand struct {
	StayID string
}

type RecordExitResponse struct {
	Stay               *yard.ContainerStay
	ReleasedPosition   *yard.Position
	CancelledWorkOrder *workorder.WorkOrder
}

type RecordExitHandler struct {
	engine    *placement.Engine
	uow       common.UnitOfWork
	clock     shared.Clock
	publisher common.EventPublisher
}

func NewRecordExitHandler(engine *placement.Engine, uow common.UnitOfWork, clock shared.Clock, publisher common.EventPublisher) *RecordExitHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RecordExitHandler{engine: engine, uow: uow, clock: clock, publisher: publisher}
}

func (h *RecordExitHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordExitCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordExitCommand")
	}

	resp := &RecordExitResponse{}
	var events common.EventBuffer

	err := h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		stay, err := repos.Stays.LockByID(ctx, cmd.StayID)
		if err != nil {
			return fmt.Errorf("failed to load container stay %s: %w", cmd.StayID, err)
		}
		if stay == nil {
			return yard.NewContainerStayNotFoundError(cmd.StayID)
		}
		if stay.HasExited() {
			return yard.NewContainerExitedError(cmd.StayID)
		}

		position, err := repos.Positions.FindByStay(ctx, stay.ID)
		if err != nil {
			return fmt.Errorf("failed to load position of stay %s: %w", stay.ID, err)
		}
		if position != nil {
			released, err := h.engine.RemoveWith(ctx, repos, &events, position.ID())
			if err != nil {
				return err
			}
			resp.ReleasedPosition = released
		}

		order, err := repos.WorkOrders.FindActiveByStay(ctx, stay.ID)
		if err != nil {
			return fmt.Errorf("failed to load active work order of stay %s: %w", stay.ID, err)
		}
		if order != nil {
			if err := order.Cancel(exitCancelReason); err != nil {
				return err
			}
			if err := repos.WorkOrders.Update(ctx, order); err != nil {
				return fmt.Errorf("failed to cancel work order %s: %w", order.ID(), err)
			}
			events.Record(workorder.NewEvent(workorder.EventWorkOrderCancelled, order, h.clock.Now()))
			resp.CancelledWorkOrder = order
		}

		now := h.clock.Now()
		if err := repos.Stays.MarkExited(ctx, stay.ID, now); err != nil {
			return fmt.Errorf("failed to mark stay %s exited: %w", stay.ID, err)
		}
		stay.ExitedAt = &now
		stay.CurrentLocation = ""
		events.Record(yard.NewContainerExited(stay, now))
		resp.Stay = stay
		return nil
	})
	placement.RecordOutcome("exit", err)
	if err != nil {
		return nil, err
	}

	if resp.CancelledWorkOrder != nil {
		metrics.RecordWorkOrderTransition(string(workorder.StatusCancelled))
	}
	logging.LoggerFromContext(ctx).Info("container exited",
		"container_stay_id", resp.Stay.ID,
		"released_position", resp.ReleasedPosition != nil,
		"cancelled_work_order", resp.CancelledWorkOrder != nil,
	)
	events.Flush(ctx, h.publisher)
	return resp, nil
}
