package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/adapters/metrics"
	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// GetStatisticsQuery aggregates occupancy for the whole yard
type GetStatisticsQuery struct{}

type GetStatisticsResponse struct {
	Zones              []ZoneStats
	Capacity           int
	Occupied           int
	Available          int
	PendingWorkOrders  int
	UnplacedContainers int
}

type GetStatisticsHandler struct {
	uow    common.UnitOfWork
	layout yard.Layout
}

func NewGetStatisticsHandler(uow common.UnitOfWork, layout yard.Layout) *GetStatisticsHandler {
	return &GetStatisticsHandler{uow: uow, layout: layout}
}

func (h *GetStatisticsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetStatisticsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetStatisticsQuery")
	}

	repos := h.uow.Repositories()
	zones, err := zoneStats(ctx, repos, h.layout)
	if err != nil {
		return nil, err
	}

	unplaced, err := repos.Stays.ListUnplaced(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list unplaced containers: %w", err)
	}

	resp := &GetStatisticsResponse{Zones: zones, UnplacedContainers: len(unplaced)}
	for _, z := range zones {
		resp.Capacity += z.Capacity
		resp.Occupied += z.Occupied
		resp.Available += z.Available
		resp.PendingWorkOrders += z.Pending
		metrics.SetZoneOccupancy(z.Zone, z.Occupied, z.Capacity)
	}
	return resp, nil
}
