package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
)

// ListByEquipmentQuery lists the orders assigned to one vehicle.
// Active orders only unless IncludeCompleted is set.
type ListByEquipmentQuery struct {
	EquipmentID      string
	IncludeCompleted bool
	Limit            int
}

// ListUnassignedQuery lists PENDING orders with no equipment recorded
type ListUnassignedQuery struct {
	Limit int
}

// ListActiveQuery lists every non-terminal order
type ListActiveQuery struct {
	Zone  string
	Limit int
}

// GetWorkOrderQuery loads a single order
type GetWorkOrderQuery struct {
	WorkOrderID string
}

type ListWorkOrdersResponse struct {
	WorkOrders []*workorder.WorkOrder
}

type GetWorkOrderResponse struct {
	WorkOrder *workorder.WorkOrder
}

// WorkOrderQueryHandler serves every work order read. One instance is
// registered per query type.
type WorkOrderQueryHandler struct {
	uow common.UnitOfWork
}

func NewWorkOrderQueryHandler(uow common.UnitOfWork) *WorkOrderQueryHandler {
	return &WorkOrderQueryHandler{uow: uow}
}

func (h *WorkOrderQueryHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	repo := h.uow.Repositories().WorkOrders

	var filter workorder.ListFilter
	switch q := request.(type) {
	case *ListByEquipmentQuery:
		if q.EquipmentID == "" {
			return nil, shared.NewValidationError("equipmentId", "equipment id is required")
		}
		filter = workorder.ListFilter{
			EquipmentID:      q.EquipmentID,
			IncludeCompleted: q.IncludeCompleted,
			ActiveOnly:       !q.IncludeCompleted,
			Limit:            q.Limit,
		}
	case *ListUnassignedQuery:
		filter = workorder.ListFilter{UnassignedOnly: true, Limit: q.Limit}
	case *ListActiveQuery:
		filter = workorder.ListFilter{ActiveOnly: true, Zone: q.Zone, Limit: q.Limit}
	case *GetWorkOrderQuery:
		order, err := repo.FindByID(ctx, q.WorkOrderID)
		if err != nil {
			return nil, fmt.Errorf("failed to load work order %s: %w", q.WorkOrderID, err)
		}
		if order == nil {
			return nil, workorder.NewWorkOrderNotFoundError(q.WorkOrderID)
		}
		return &GetWorkOrderResponse{WorkOrder: order}, nil
	default:
		return nil, fmt.Errorf("invalid request type: %T", request)
	}

	orders, err := repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}
	return &ListWorkOrdersResponse{WorkOrders: orders}, nil
}
