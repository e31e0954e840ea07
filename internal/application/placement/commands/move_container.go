package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// MoveContainerCommand relocates an existing position
type MoveContainerCommand struct {
	PositionID int64
	To         yard.Coordinate
}

type MoveContainerResponse struct {
	Position *yard.Position
}

type MoveContainerHandler struct {
	engine *placement.Engine
}

func NewMoveContainerHandler(engine *placement.Engine) *MoveContainerHandler {
	return &MoveContainerHandler{engine: engine}
}

func (h *MoveContainerHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*MoveContainerCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *MoveContainerCommand")
	}

	position, err := h.engine.Move(ctx, cmd.PositionID, cmd.To)
	if err != nil {
		return nil, err
	}
	return &MoveContainerResponse{Position: position}, nil
}
