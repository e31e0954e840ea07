package persistence

import (
	"time"
)

// ContainerStayModel represents the container_stays table.
// The stay registry owns this table; placement reads it and writes current_location.
type ContainerStayModel struct {
	ID              string     `gorm:"column:id;primaryKey"`
	ContainerNumber string     `gorm:"column:container_number;not null;index"`
	ISOType         string     `gorm:"column:iso_type;not null"`
	SizeClass       int        `gorm:"column:size_class;not null"`
	CargoStatus     string     `gorm:"column:cargo_status;not null"`
	ArrivedAt       time.Time  `gorm:"column:arrived_at;not null"`
	ExitedAt        *time.Time `gorm:"column:exited_at;index"`
	CurrentLocation string     `gorm:"column:current_location"`
}

func (ContainerStayModel) TableName() string {
	return "container_stays"
}

// PositionModel represents the positions table.
// The composite unique index is what serializes two writers racing for one coordinate.
type PositionModel struct {
	ID              int64               `gorm:"column:id;primaryKey;autoIncrement"`
	ContainerStayID string              `gorm:"column:container_stay_id;not null;uniqueIndex:idx_positions_stay"`
	Stay            *ContainerStayModel `gorm:"foreignKey:ContainerStayID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Zone            string              `gorm:"column:zone;not null;uniqueIndex:idx_positions_coordinate,priority:1"`
	Row             int                 `gorm:"column:yard_row;not null;uniqueIndex:idx_positions_coordinate,priority:2"`
	Bay             int                 `gorm:"column:bay;not null;uniqueIndex:idx_positions_coordinate,priority:3"`
	Tier            int                 `gorm:"column:tier;not null;uniqueIndex:idx_positions_coordinate,priority:4"`
	SubSlot         string              `gorm:"column:sub_slot;not null;uniqueIndex:idx_positions_coordinate,priority:5"`
	AutoAssigned    bool                `gorm:"column:auto_assigned;not null;default:false"`
	PlacedAt        time.Time           `gorm:"column:placed_at;not null"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

func (PositionModel) TableName() string {
	return "positions"
}

// WorkOrderModel represents the work_orders table.
// At most one active row per stay is enforced by a partial unique index created in migration.
type WorkOrderModel struct {
	ID              string              `gorm:"column:id;primaryKey"`
	ContainerStayID string              `gorm:"column:container_stay_id;not null;index"`
	Stay            *ContainerStayModel `gorm:"foreignKey:ContainerStayID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	TargetZone      string              `gorm:"column:target_zone;not null;index"`
	TargetRow       int                 `gorm:"column:target_row;not null"`
	TargetBay       int                 `gorm:"column:target_bay;not null"`
	TargetTier      int                 `gorm:"column:target_tier;not null"`
	TargetSubSlot   string              `gorm:"column:target_sub_slot;not null"`
	Priority        string              `gorm:"column:priority;not null"`
	PriorityRank    int                 `gorm:"column:priority_rank;not null"`
	EquipmentID     *string             `gorm:"column:equipment_id;index"`
	Status          string              `gorm:"column:status;not null;index"`
	Notes           string              `gorm:"column:notes;type:text"`
	Operator        string              `gorm:"column:operator"`
	CancelReason    string              `gorm:"column:cancel_reason"`
	CreatedAt       time.Time           `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;not null;autoUpdateTime:false"`
	AssignedAt      *time.Time          `gorm:"column:assigned_at"`
	CompletedAt     *time.Time          `gorm:"column:completed_at"`
	CancelledAt     *time.Time          `gorm:"column:cancelled_at"`
}

func (WorkOrderModel) TableName() string {
	return "work_orders"
}

// EquipmentModel represents the equipment table (read model of the fleet system)
type EquipmentModel struct {
	ID         string  `gorm:"column:id;primaryKey"`
	Name       string  `gorm:"column:name;not null;uniqueIndex:idx_equipment_name"`
	Type       string  `gorm:"column:equipment_type;not null"`
	Active     bool    `gorm:"column:active;not null"`
	OperatorID *string `gorm:"column:operator_id"`
}

func (EquipmentModel) TableName() string {
	return "equipment"
}

// AllModels lists every table for migration
func AllModels() []interface{} {
	return []interface{}{
		&ContainerStayModel{},
		&PositionModel{},
		&WorkOrderModel{},
		&EquipmentModel{},
	}
}
