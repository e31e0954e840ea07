package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// SuggestPositionQuery asks for the best coordinate for a stay
type SuggestPositionQuery struct {
	ContainerStayID string
	ZonePreference  string
}

type SuggestPositionResponse struct {
	Suggestion yard.Suggestion
}

type SuggestPositionHandler struct {
	engine *placement.Engine
}

func NewSuggestPositionHandler(engine *placement.Engine) *SuggestPositionHandler {
	return &SuggestPositionHandler{engine: engine}
}

func (h *SuggestPositionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*SuggestPositionQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *SuggestPositionQuery")
	}

	suggestion, err := h.engine.Suggest(ctx, query.ContainerStayID, query.ZonePreference)
	if err != nil {
		return nil, err
	}
	return &SuggestPositionResponse{Suggestion: suggestion}, nil
}
