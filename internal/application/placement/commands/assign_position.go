package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// AssignPositionCommand places a container stay at a coordinate.
// When Coordinate is nil the engine's suggestion is used and the position is
// marked auto-assigned; suggestion and insert share one transaction.
type AssignPositionCommand struct {
	ContainerStayID string
	Coordinate      *yard.Coordinate
	ZonePreference  string
}

type AssignPositionResponse struct {
	Position *yard.Position
}

type AssignPositionHandler struct {
	engine    *placement.Engine
	uow       common.UnitOfWork
	publisher common.EventPublisher
}

func NewAssignPositionHandler(engine *placement.Engine, uow common.UnitOfWork, publisher common.EventPublisher) *AssignPositionHandler {
	return &AssignPositionHandler{engine: engine, uow: uow, publisher: publisher}
}

func (h *AssignPositionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AssignPositionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *AssignPositionCommand")
	}

	if cmd.Coordinate != nil {
		position, err := h.engine.Assign(ctx, cmd.ContainerStayID, *cmd.Coordinate, false)
		if err != nil {
			return nil, err
		}
		return &AssignPositionResponse{Position: position}, nil
	}

	var position *yard.Position
	var events common.EventBuffer
	err := h.uow.Do(ctx, func(ctx context.Context, repos common.Repositories) error {
		suggestion, err := h.engine.SuggestWith(ctx, repos, cmd.ContainerStayID, cmd.ZonePreference)
		if err != nil {
			return err
		}
		position, err = h.engine.AssignWith(ctx, repos, &events, cmd.ContainerStayID, suggestion.Coordinate, true)
		return err
	})
	placement.RecordOutcome("assign", err)
	if err != nil {
		return nil, err
	}

	events.Flush(ctx, h.publisher)
	return &AssignPositionResponse{Position: position}, nil
}
