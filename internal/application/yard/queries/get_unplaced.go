package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// GetUnplacedContainersQuery lists stays on the yard with no position and no
// active work order. Stays awaiting a work order are reported by the layout instead.
type GetUnplacedContainersQuery struct {
	Limit int
}

type GetUnplacedContainersResponse struct {
	Stays []*yard.ContainerStay
}

type GetUnplacedContainersHandler struct {
	uow common.UnitOfWork
}

func NewGetUnplacedContainersHandler(uow common.UnitOfWork) *GetUnplacedContainersHandler {
	return &GetUnplacedContainersHandler{uow: uow}
}

func (h *GetUnplacedContainersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetUnplacedContainersQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetUnplacedContainersQuery")
	}

	stays, err := h.uow.Repositories().Stays.ListUnplaced(ctx, query.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list unplaced containers: %w", err)
	}
	return &GetUnplacedContainersResponse{Stays: stays}, nil
}
