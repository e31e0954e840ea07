package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// GormContainerStayRepository implements yard.ContainerStayRepository using GORM
type GormContainerStayRepository struct {
	db *gorm.DB
}

// NewGormContainerStayRepository creates a new GORM container stay repository
func NewGormContainerStayRepository(db *gorm.DB) *GormContainerStayRepository {
	return &GormContainerStayRepository{db: db}
}

// FindByID retrieves a stay by id
func (r *GormContainerStayRepository) FindByID(ctx context.Context, id string) (*yard.ContainerStay, error) {
	return r.find(r.db.WithContext(ctx), id)
}

// LockByID retrieves a stay with SELECT ... FOR UPDATE
func (r *GormContainerStayRepository) LockByID(ctx context.Context, id string) (*yard.ContainerStay, error) {
	return r.find(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormContainerStayRepository) find(db *gorm.DB, id string) (*yard.ContainerStay, error) {
	var model ContainerStayModel
	if err := db.Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find container stay: %w", err)
	}
	return stayModelToDomain(&model), nil
}

// FindByIDs retrieves stays keyed by id; unknown ids are absent from the map
func (r *GormContainerStayRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*yard.ContainerStay, error) {
	stays := make(map[string]*yard.ContainerStay, len(ids))
	if len(ids) == 0 {
		return stays, nil
	}

	var models []ContainerStayModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find container stays: %w", err)
	}
	for i := range models {
		stays[models[i].ID] = stayModelToDomain(&models[i])
	}
	return stays, nil
}

// Create inserts a stay
func (r *GormContainerStayRepository) Create(ctx context.Context, stay *yard.ContainerStay) error {
	model := &ContainerStayModel{
		ID:              stay.ID,
		ContainerNumber: stay.ContainerNumber,
		ISOType:         stay.ISOType,
		SizeClass:       int(stay.Size),
		CargoStatus:     string(stay.Cargo),
		ArrivedAt:       stay.ArrivedAt,
		ExitedAt:        stay.ExitedAt,
		CurrentLocation: stay.CurrentLocation,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("container stay %s already registered: %w", stay.ID, err)
		}
		return fmt.Errorf("failed to insert container stay: %w", err)
	}
	return nil
}

// UpdateCurrentLocation sets the display location; an empty string clears it
func (r *GormContainerStayRepository) UpdateCurrentLocation(ctx context.Context, id string, location string) error {
	result := r.db.WithContext(ctx).
		Model(&ContainerStayModel{}).
		Where("id = ?", id).
		Update("current_location", location)
	if result.Error != nil {
		return fmt.Errorf("failed to update current location: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return yard.NewContainerStayNotFoundError(id)
	}
	return nil
}

// MarkExited records the gate-out time
func (r *GormContainerStayRepository) MarkExited(ctx context.Context, id string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&ContainerStayModel{}).
		Where("id = ? AND exited_at IS NULL", id).
		Update("exited_at", at)
	if result.Error != nil {
		return fmt.Errorf("failed to mark container stay exited: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return yard.NewContainerExitedError(id)
	}
	return nil
}

// ListUnplaced returns stays on the yard with no position and no active work order, oldest first
func (r *GormContainerStayRepository) ListUnplaced(ctx context.Context, limit int) ([]*yard.ContainerStay, error) {
	query := r.db.WithContext(ctx).
		Where("exited_at IS NULL").
		Where("NOT EXISTS (SELECT 1 FROM positions p WHERE p.container_stay_id = container_stays.id)").
		Where("NOT EXISTS (SELECT 1 FROM work_orders w WHERE w.container_stay_id = container_stays.id AND w.status IN ?)",
			statusStrings(workorder.ActiveStatuses())).
		Order("arrived_at, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []ContainerStayModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list unplaced containers: %w", err)
	}

	stays := make([]*yard.ContainerStay, 0, len(models))
	for i := range models {
		stays = append(stays, stayModelToDomain(&models[i]))
	}
	return stays, nil
}

func stayModelToDomain(model *ContainerStayModel) *yard.ContainerStay {
	return &yard.ContainerStay{
		ID:              model.ID,
		ContainerNumber: model.ContainerNumber,
		ISOType:         model.ISOType,
		Size:            yard.SizeClass(model.SizeClass),
		Cargo:           yard.CargoStatus(model.CargoStatus),
		ArrivedAt:       model.ArrivedAt,
		ExitedAt:        model.ExitedAt,
		CurrentLocation: model.CurrentLocation,
	}
}

func statusStrings(statuses []workorder.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
