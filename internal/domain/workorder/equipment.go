package workorder

import "context"

type EquipmentType string

const (
	EquipmentReachStacker    EquipmentType = "REACH_STACKER"
	EquipmentStraddleCarrier EquipmentType = "STRADDLE_CARRIER"
	EquipmentRTGCrane        EquipmentType = "RTG_CRANE"
	EquipmentForklift        EquipmentType = "FORKLIFT"
	EquipmentTerminalTractor EquipmentType = "TERMINAL_TRACTOR"
)

func (t EquipmentType) IsValid() bool {
	switch t {
	case EquipmentReachStacker, EquipmentStraddleCarrier, EquipmentRTGCrane, EquipmentForklift, EquipmentTerminalTractor:
		return true
	}
	return false
}

// Equipment is the read model of a yard vehicle.
// Its lifecycle is managed elsewhere; work orders only check it is active.
type Equipment struct {
	ID         string
	Name       string
	Type       EquipmentType
	Active     bool
	OperatorID *string
}

// EquipmentDirectory resolves equipment by id. Returns (nil, nil) when unknown.
type EquipmentDirectory interface {
	FindByID(ctx context.Context, id string) (*Equipment, error)
}

// RequireActiveEquipment returns VehicleNotFound when the equipment is unknown or inactive
func RequireActiveEquipment(ctx context.Context, dir EquipmentDirectory, id string) (*Equipment, error) {
	eq, err := dir.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil || !eq.Active {
		return nil, NewVehicleNotFoundError(id)
	}
	return eq, nil
}
