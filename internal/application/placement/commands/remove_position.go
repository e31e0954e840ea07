package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
)

// RemovePositionCommand un-places a container and frees its coordinate
type RemovePositionCommand struct {
	PositionID int64
}

type RemovePositionResponse struct {
	PositionID int64
}

type RemovePositionHandler struct {
	engine *placement.Engine
}

func NewRemovePositionHandler(engine *placement.Engine) *RemovePositionHandler {
	return &RemovePositionHandler{engine: engine}
}

func (h *RemovePositionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemovePositionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemovePositionCommand")
	}

	if err := h.engine.Remove(ctx, cmd.PositionID); err != nil {
		return nil, err
	}
	return &RemovePositionResponse{PositionID: cmd.PositionID}, nil
}
