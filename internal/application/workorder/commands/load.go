package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/containeryard-go/internal/application/common"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
)

// lockOrder loads a work order with a row lock, mapping a miss to WorkOrderNotFound
func lockOrder(ctx context.Context, repos common.Repositories, id string) (*workorder.WorkOrder, error) {
	order, err := repos.WorkOrders.LockByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load work order %s: %w", id, err)
	}
	if order == nil {
		return nil, workorder.NewWorkOrderNotFoundError(id)
	}
	return order, nil
}
