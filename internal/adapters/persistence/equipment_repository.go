package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
)

// GormEquipmentRepository implements workorder.EquipmentRepository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GORM equipment repository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByID retrieves equipment by id
func (r *GormEquipmentRepository) FindByID(ctx context.Context, id string) (*workorder.Equipment, error) {
	var model EquipmentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find equipment: %w", err)
	}
	return equipmentModelToDomain(&model), nil
}

// Upsert inserts or replaces an equipment record. Names are unique across
// equipment; a name held by another id is a validation error.
func (r *GormEquipmentRepository) Upsert(ctx context.Context, eq *workorder.Equipment) error {
	model := &EquipmentModel{
		ID:         eq.ID,
		Name:       eq.Name,
		Type:       string(eq.Type),
		Active:     eq.Active,
		OperatorID: eq.OperatorID,
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "equipment_type", "active", "operator_id"}),
		}).
		Create(model).Error
	if err != nil {
		if isUniqueViolation(err) {
			return shared.NewValidationError("name", fmt.Sprintf("equipment name %q is already in use", eq.Name))
		}
		return fmt.Errorf("failed to upsert equipment: %w", err)
	}
	return nil
}

// List returns all equipment ordered by id
func (r *GormEquipmentRepository) List(ctx context.Context) ([]*workorder.Equipment, error) {
	var models []EquipmentModel
	if err := r.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	out := make([]*workorder.Equipment, 0, len(models))
	for i := range models {
		out = append(out, equipmentModelToDomain(&models[i]))
	}
	return out, nil
}

func equipmentModelToDomain(model *EquipmentModel) *workorder.Equipment {
	return &workorder.Equipment{
		ID:         model.ID,
		Name:       model.Name,
		Type:       workorder.EquipmentType(model.Type),
		Active:     model.Active,
		OperatorID: model.OperatorID,
	}
}
