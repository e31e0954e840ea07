package yard

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// Error codes
const (
	CodeInvalidZone                 = "INVALID_ZONE"
	CodeInvalidRow                  = "INVALID_ROW"
	CodeInvalidBay                  = "INVALID_BAY"
	CodeInvalidTier                 = "INVALID_TIER"
	CodeInvalidSubSlot              = "INVALID_SUB_SLOT"
	CodeInvalidCoordinate           = "INVALID_COORDINATE"
	CodeUnknownSizeClass            = "UNKNOWN_SIZE_CLASS"
	CodeInvalidCargoStatus          = "INVALID_CARGO_STATUS"
	CodeContainerStayNotFound       = "CONTAINER_STAY_NOT_FOUND"
	CodeContainerAlreadyPlaced      = "CONTAINER_ALREADY_PLACED"
	CodeContainerExited             = "CONTAINER_EXITED"
	CodeContainerBlocked            = "CONTAINER_BLOCKED"
	CodePositionNotFound            = "POSITION_NOT_FOUND"
	CodePositionOccupied            = "POSITION_OCCUPIED"
	CodeSubSlotNotAllowed           = "SUB_SLOT_NOT_ALLOWED"
	CodeNoSupport                   = "NO_SUPPORT"
	CodeRowSegregationViolation     = "ROW_SEGREGATION_VIOLATION"
	CodeSizeIncompatible            = "SIZE_INCOMPATIBLE"
	CodeWeightDistributionViolation = "WEIGHT_DISTRIBUTION_VIOLATION"
	CodeNoAvailablePositions        = "NO_AVAILABLE_POSITIONS"
)

// Bounds errors

type CoordinateBoundsError struct {
	*shared.DomainError
	Axis string
}

func newBoundsError(code, axis, message string, value interface{}) *CoordinateBoundsError {
	return &CoordinateBoundsError{
		DomainError: shared.NewDomainError(code, message).WithDetail(axis, value),
		Axis:        axis,
	}
}

func NewInvalidZoneError(zone string, allowed []string) *CoordinateBoundsError {
	return newBoundsError(CodeInvalidZone, "zone",
		fmt.Sprintf("invalid zone %q: must be one of %s", zone, strings.Join(allowed, ",")), zone)
}

func NewInvalidRowError(row, max int) *CoordinateBoundsError {
	return newBoundsError(CodeInvalidRow, "row", fmt.Sprintf("invalid row %d: must be within 1..%d", row, max), row)
}

func NewInvalidBayError(bay, max int) *CoordinateBoundsError {
	return newBoundsError(CodeInvalidBay, "bay", fmt.Sprintf("invalid bay %d: must be within 1..%d", bay, max), bay)
}

func NewInvalidTierError(tier, max int) *CoordinateBoundsError {
	return newBoundsError(CodeInvalidTier, "tier", fmt.Sprintf("invalid tier %d: must be within 1..%d", tier, max), tier)
}

func NewInvalidSubSlotError(sub string, allowed []string) *CoordinateBoundsError {
	return newBoundsError(CodeInvalidSubSlot, "subSlot",
		fmt.Sprintf("invalid sub-slot %q: must be one of %s", sub, strings.Join(allowed, ",")), sub)
}

type InvalidCoordinateError struct {
	*shared.DomainError
	Raw string
}

func NewInvalidCoordinateError(raw string) *InvalidCoordinateError {
	return &InvalidCoordinateError{
		DomainError: shared.NewDomainErrorf(CodeInvalidCoordinate,
			"cannot parse coordinate %q: expected format like A-R03-B05-T2-A", raw).WithDetail("coordinate", raw),
		Raw: raw,
	}
}

type UnknownSizeClassError struct {
	*shared.DomainError
	Value string
}

func NewUnknownSizeClassError(value string) *UnknownSizeClassError {
	return &UnknownSizeClassError{
		DomainError: shared.NewDomainErrorf(CodeUnknownSizeClass, "cannot determine size class from %q", value).
			WithDetail("value", value),
		Value: value,
	}
}

type InvalidCargoStatusError struct {
	*shared.DomainError
}

func NewInvalidCargoStatusError(value string) *InvalidCargoStatusError {
	return &InvalidCargoStatusError{
		DomainError: shared.NewDomainErrorf(CodeInvalidCargoStatus, "invalid cargo status %q: must be LADEN or EMPTY", value),
	}
}

// Container stay errors

type ContainerStayError struct {
	*shared.DomainError
	StayID string
}

func newStayError(code, stayID, message string) *ContainerStayError {
	return &ContainerStayError{
		DomainError: shared.NewDomainError(code, message).WithDetail("containerStayId", stayID),
		StayID:      stayID,
	}
}

func NewContainerStayNotFoundError(stayID string) *ContainerStayError {
	return newStayError(CodeContainerStayNotFound, stayID, fmt.Sprintf("container stay %s not found", stayID))
}

func NewContainerExitedError(stayID string) *ContainerStayError {
	return newStayError(CodeContainerExited, stayID, fmt.Sprintf("container stay %s has already exited the yard", stayID))
}

type ContainerAlreadyPlacedError struct {
	*ContainerStayError
	Coordinate Coordinate
}

func NewContainerAlreadyPlacedError(stayID string, at Coordinate) *ContainerAlreadyPlacedError {
	err := &ContainerAlreadyPlacedError{
		ContainerStayError: newStayError(CodeContainerAlreadyPlaced, stayID,
			fmt.Sprintf("container stay %s is already placed at %s", stayID, at)),
		Coordinate: at,
	}
	err.WithDetail("coordinate", at.String())
	return err
}

// Position errors

type PositionError struct {
	*shared.DomainError
	Coordinate Coordinate
}

func newPositionError(code string, at Coordinate, message string) *PositionError {
	return &PositionError{
		DomainError: shared.NewDomainError(code, message).WithDetail("coordinate", at.String()),
		Coordinate:  at,
	}
}

type PositionNotFoundError struct {
	*shared.DomainError
	PositionID int64
}

func NewPositionNotFoundError(id int64) *PositionNotFoundError {
	return &PositionNotFoundError{
		DomainError: shared.NewDomainErrorf(CodePositionNotFound, "position %d not found", id).WithDetail("positionId", id),
		PositionID:  id,
	}
}

func NewPositionOccupiedError(at Coordinate) *PositionError {
	return newPositionError(CodePositionOccupied, at, fmt.Sprintf("position %s is already occupied", at))
}

func NewNoSupportError(at Coordinate) *PositionError {
	return newPositionError(CodeNoSupport, at,
		fmt.Sprintf("position %s has no supporting container at tier %d", at, at.Tier-1))
}

func NewContainerBlockedError(at Coordinate) *PositionError {
	return newPositionError(CodeContainerBlocked, at,
		fmt.Sprintf("container at %s is blocked by a container at tier %d", at, at.Tier+1))
}

type SubSlotNotAllowedError struct {
	*PositionError
	Size SizeClass
}

func NewSubSlotNotAllowedError(at Coordinate, size SizeClass, allowed []string) *SubSlotNotAllowedError {
	err := &SubSlotNotAllowedError{
		PositionError: newPositionError(CodeSubSlotNotAllowed, at,
			fmt.Sprintf("%s containers must use sub-slot %s, got %s", size, strings.Join(allowed, ","), at.SubSlot)),
		Size: size,
	}
	err.WithDetail("size", int(size))
	return err
}

type RowSegregationError struct {
	*PositionError
	Size        SizeClass
	AllowedRows []int
}

func NewRowSegregationError(at Coordinate, size SizeClass, allowedRows []int) *RowSegregationError {
	err := &RowSegregationError{
		PositionError: newPositionError(CodeRowSegregationViolation, at,
			fmt.Sprintf("row %d is not reserved for %s containers (allowed rows %v)", at.Row, size, allowedRows)),
		Size:        size,
		AllowedRows: allowedRows,
	}
	err.WithDetail("size", int(size)).WithDetail("allowedRows", allowedRows)
	return err
}

type SizeIncompatibleError struct {
	*PositionError
	Size      SizeClass
	BelowSize SizeClass
}

func NewSizeIncompatibleError(at Coordinate, size, below SizeClass) *SizeIncompatibleError {
	err := &SizeIncompatibleError{
		PositionError: newPositionError(CodeSizeIncompatible, at,
			fmt.Sprintf("cannot stack a %s container on a %s container at %s", size, below, at)),
		Size:      size,
		BelowSize: below,
	}
	err.WithDetail("size", int(size)).WithDetail("belowSize", int(below))
	return err
}

type WeightDistributionError struct {
	*PositionError
}

func NewWeightDistributionError(at Coordinate) *WeightDistributionError {
	err := &WeightDistributionError{
		PositionError: newPositionError(CodeWeightDistributionViolation, at,
			fmt.Sprintf("cannot stack a LADEN container on an EMPTY container at %s", at)),
	}
	err.WithDetail("cargo", string(CargoLaden)).WithDetail("belowCargo", string(CargoEmpty))
	return err
}

type NoAvailablePositionsError struct {
	*shared.DomainError
	Zone string
	Size SizeClass
}

func NewNoAvailablePositionsError(zone string, size SizeClass) *NoAvailablePositionsError {
	msg := fmt.Sprintf("no available positions for %s container", size)
	if zone != "" {
		msg = fmt.Sprintf("%s in zone %s", msg, zone)
	}
	err := &NoAvailablePositionsError{
		DomainError: shared.NewDomainError(CodeNoAvailablePositions, msg).WithDetail("size", int(size)),
		Zone:        zone,
		Size:        size,
	}
	if zone != "" {
		err.WithDetail("zone", zone)
	}
	return err
}
