package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// GormWorkOrderRepository implements workorder.Repository using GORM
type GormWorkOrderRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormWorkOrderRepository creates a new GORM work order repository
func NewGormWorkOrderRepository(db *gorm.DB, clock shared.Clock) *GormWorkOrderRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormWorkOrderRepository{db: db, clock: clock}
}

// Create inserts a work order. The partial unique index on active orders
// turns a concurrent duplicate into WorkOrderAlreadyExists.
func (r *GormWorkOrderRepository) Create(ctx context.Context, order *workorder.WorkOrder) error {
	model := workOrderToModel(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return workorder.NewWorkOrderAlreadyExistsError(order.StayID(), "")
		}
		return fmt.Errorf("failed to insert work order: %w", err)
	}
	return nil
}

// Update persists the full state of an existing order
func (r *GormWorkOrderRepository) Update(ctx context.Context, order *workorder.WorkOrder) error {
	model := workOrderToModel(order)
	result := r.db.WithContext(ctx).
		Model(&WorkOrderModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at", "Stay").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update work order: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return workorder.NewWorkOrderNotFoundError(order.ID())
	}
	return nil
}

// FindByID retrieves an order by id
func (r *GormWorkOrderRepository) FindByID(ctx context.Context, id string) (*workorder.WorkOrder, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// LockByID retrieves an order with SELECT ... FOR UPDATE
func (r *GormWorkOrderRepository) LockByID(ctx context.Context, id string) (*workorder.WorkOrder, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

// FindActiveByStay retrieves the non-terminal order of a stay, if any
func (r *GormWorkOrderRepository) FindActiveByStay(ctx context.Context, stayID string) (*workorder.WorkOrder, error) {
	return r.first(r.db.WithContext(ctx).
		Where("container_stay_id = ? AND status IN ?", stayID, statusStrings(workorder.ActiveStatuses())))
}

func (r *GormWorkOrderRepository) first(query *gorm.DB) (*workorder.WorkOrder, error) {
	var model WorkOrderModel
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}
	return r.modelToDomain(&model), nil
}

// List returns orders matching the filter, most urgent first then oldest first
func (r *GormWorkOrderRepository) List(ctx context.Context, filter workorder.ListFilter) ([]*workorder.WorkOrder, error) {
	query := r.db.WithContext(ctx).Model(&WorkOrderModel{})

	switch {
	case filter.UnassignedOnly:
		query = query.Where("status = ? AND equipment_id IS NULL", string(workorder.StatusPending))
	case filter.IncludeCompleted:
		statuses := append(workorder.ActiveStatuses(), workorder.StatusCompleted)
		query = query.Where("status IN ?", statusStrings(statuses))
	case filter.ActiveOnly:
		query = query.Where("status IN ?", statusStrings(workorder.ActiveStatuses()))
	}
	if filter.EquipmentID != "" {
		query = query.Where("equipment_id = ?", filter.EquipmentID)
	}
	if filter.Zone != "" {
		query = query.Where("target_zone = ?", filter.Zone)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var models []WorkOrderModel
	if err := query.Order("priority_rank, created_at, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list work orders: %w", err)
	}

	orders := make([]*workorder.WorkOrder, 0, len(models))
	for i := range models {
		orders = append(orders, r.modelToDomain(&models[i]))
	}
	return orders, nil
}

func (r *GormWorkOrderRepository) modelToDomain(model *WorkOrderModel) *workorder.WorkOrder {
	return workorder.Reconstruct(workorder.Snapshot{
		ID:     model.ID,
		StayID: model.ContainerStayID,
		Target: yard.Coordinate{
			Zone:    model.TargetZone,
			Row:     model.TargetRow,
			Bay:     model.TargetBay,
			Tier:    model.TargetTier,
			SubSlot: model.TargetSubSlot,
		},
		Priority:     workorder.Priority(model.Priority),
		EquipmentID:  model.EquipmentID,
		Status:       workorder.Status(model.Status),
		Notes:        model.Notes,
		Operator:     model.Operator,
		CancelReason: model.CancelReason,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		AssignedAt:   model.AssignedAt,
		CompletedAt:  model.CompletedAt,
		CancelledAt:  model.CancelledAt,
	}, r.clock)
}

func workOrderToModel(order *workorder.WorkOrder) *WorkOrderModel {
	s := order.Snapshot()
	return &WorkOrderModel{
		ID:              s.ID,
		ContainerStayID: s.StayID,
		TargetZone:      s.Target.Zone,
		TargetRow:       s.Target.Row,
		TargetBay:       s.Target.Bay,
		TargetTier:      s.Target.Tier,
		TargetSubSlot:   s.Target.SubSlot,
		Priority:        string(s.Priority),
		PriorityRank:    s.Priority.Rank(),
		EquipmentID:     s.EquipmentID,
		Status:          string(s.Status),
		Notes:           s.Notes,
		Operator:        s.Operator,
		CancelReason:    s.CancelReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		AssignedAt:      s.AssignedAt,
		CompletedAt:     s.CompletedAt,
		CancelledAt:     s.CancelledAt,
	}
}
