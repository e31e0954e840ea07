package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// GormPositionRepository implements yard.PositionRepository using GORM
type GormPositionRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormPositionRepository creates a new GORM position repository
func NewGormPositionRepository(db *gorm.DB, clock shared.Clock) *GormPositionRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormPositionRepository{db: db, clock: clock}
}

// slotRow is a position joined with its stay
type slotRow struct {
	PositionID      int64  `gorm:"column:position_id"`
	ContainerStayID string `gorm:"column:container_stay_id"`
	ContainerNumber string `gorm:"column:container_number"`
	SizeClass       int    `gorm:"column:size_class"`
	CargoStatus     string `gorm:"column:cargo_status"`
	Zone            string `gorm:"column:zone"`
	Row             int    `gorm:"column:yard_row"`
	Bay             int    `gorm:"column:bay"`
	Tier            int    `gorm:"column:tier"`
	SubSlot         string `gorm:"column:sub_slot"`
	AutoAssigned    bool   `gorm:"column:auto_assigned"`
}

const slotColumns = "p.id AS position_id, p.container_stay_id, s.container_number, s.size_class, s.cargo_status, " +
	"p.zone, p.yard_row, p.bay, p.tier, p.sub_slot, p.auto_assigned"

func (r *GormPositionRepository) slots(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("positions AS p").
		Select(slotColumns).
		Joins("JOIN container_stays s ON s.id = p.container_stay_id")
}

// FindByID retrieves a position by id
func (r *GormPositionRepository) FindByID(ctx context.Context, id int64) (*yard.Position, error) {
	var model PositionModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find position: %w", err)
	}
	return r.modelToDomain(&model), nil
}

// FindByStay retrieves the position held by a container stay
func (r *GormPositionRepository) FindByStay(ctx context.Context, stayID string) (*yard.Position, error) {
	var model PositionModel
	if err := r.db.WithContext(ctx).Where("container_stay_id = ?", stayID).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find position for stay: %w", err)
	}
	return r.modelToDomain(&model), nil
}

// Create inserts a position. The coordinate unique index reports a lost race as PositionOccupied.
func (r *GormPositionRepository) Create(ctx context.Context, position *yard.Position) error {
	model := r.domainToModel(position)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return yard.NewPositionOccupiedError(position.Coordinate())
		}
		return fmt.Errorf("failed to insert position: %w", err)
	}
	position.SetID(model.ID)
	return nil
}

// Update writes the coordinate and assignment flag of an existing position
func (r *GormPositionRepository) Update(ctx context.Context, position *yard.Position) error {
	c := position.Coordinate()
	result := r.db.WithContext(ctx).
		Model(&PositionModel{}).
		Where("id = ?", position.ID()).
		Updates(map[string]interface{}{
			"zone":          c.Zone,
			"yard_row":      c.Row,
			"bay":           c.Bay,
			"tier":          c.Tier,
			"sub_slot":      c.SubSlot,
			"auto_assigned": position.AutoAssigned(),
			"updated_at":    position.UpdatedAt(),
		})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return yard.NewPositionOccupiedError(c)
		}
		return fmt.Errorf("failed to update position: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return yard.NewPositionNotFoundError(position.ID())
	}
	return nil
}

// Delete removes a position
func (r *GormPositionRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PositionModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete position: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return yard.NewPositionNotFoundError(id)
	}
	return nil
}

// LockStack reads every tier of one stack with SELECT ... FOR UPDATE.
// SQLite has no row locks; its single connection serializes writers instead.
func (r *GormPositionRepository) LockStack(ctx context.Context, stack yard.StackKey) ([]yard.OccupiedSlot, error) {
	var rows []slotRow
	err := r.slots(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "p"}}).
		Where("p.zone = ? AND p.yard_row = ? AND p.bay = ? AND p.sub_slot = ?", stack.Zone, stack.Row, stack.Bay, stack.SubSlot).
		Order("p.tier").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to lock stack %s-R%02d-B%02d-%s: %w", stack.Zone, stack.Row, stack.Bay, stack.SubSlot, err)
	}
	return rowsToSlots(rows), nil
}

// ListSlots returns occupied slots ordered by coordinate
func (r *GormPositionRepository) ListSlots(ctx context.Context, filter yard.SlotFilter) ([]yard.OccupiedSlot, error) {
	query := r.slots(ctx)
	if filter.Zone != "" {
		query = query.Where("p.zone = ?", filter.Zone)
	}
	if filter.Tier > 0 {
		query = query.Where("p.tier = ?", filter.Tier)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []slotRow
	if err := query.Order("p.zone, p.yard_row, p.bay, p.tier, p.sub_slot").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	return rowsToSlots(rows), nil
}

// CountByZone returns occupied slot counts keyed by zone
func (r *GormPositionRepository) CountByZone(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		Zone  string
		Count int
	}
	err := r.db.WithContext(ctx).
		Model(&PositionModel{}).
		Select("zone, COUNT(*) AS count").
		Group("zone").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count positions: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Zone] = row.Count
	}
	return counts, nil
}

func rowsToSlots(rows []slotRow) []yard.OccupiedSlot {
	slots := make([]yard.OccupiedSlot, 0, len(rows))
	for _, row := range rows {
		slots = append(slots, yard.OccupiedSlot{
			PositionID:      row.PositionID,
			StayID:          row.ContainerStayID,
			ContainerNumber: row.ContainerNumber,
			Size:            yard.SizeClass(row.SizeClass),
			Cargo:           yard.CargoStatus(row.CargoStatus),
			Coordinate: yard.Coordinate{
				Zone:    row.Zone,
				Row:     row.Row,
				Bay:     row.Bay,
				Tier:    row.Tier,
				SubSlot: row.SubSlot,
			},
			AutoAssigned: row.AutoAssigned,
		})
	}
	return slots
}

func (r *GormPositionRepository) modelToDomain(model *PositionModel) *yard.Position {
	at := yard.Coordinate{
		Zone:    model.Zone,
		Row:     model.Row,
		Bay:     model.Bay,
		Tier:    model.Tier,
		SubSlot: model.SubSlot,
	}
	return yard.ReconstructPosition(model.ID, model.ContainerStayID, at, model.AutoAssigned, model.PlacedAt, model.UpdatedAt, r.clock)
}

func (r *GormPositionRepository) domainToModel(position *yard.Position) *PositionModel {
	c := position.Coordinate()
	return &PositionModel{
		ID:              position.ID(),
		ContainerStayID: position.StayID(),
		Zone:            c.Zone,
		Row:             c.Row,
		Bay:             c.Bay,
		Tier:            c.Tier,
		SubSlot:         c.SubSlot,
		AutoAssigned:    position.AutoAssigned(),
		PlacedAt:        position.PlacedAt(),
		UpdatedAt:       position.UpdatedAt(),
	}
}
