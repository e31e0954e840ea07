package yard

import "time"

// ContainerStay is one physical dwell of a container on the yard.
// It is owned by the stay registry; placement only reads it and writes back
// the display-only CurrentLocation.
type ContainerStay struct {
	ID              string
	ContainerNumber string
	ISOType         string
	Size            SizeClass
	Cargo           CargoStatus
	ArrivedAt       time.Time
	ExitedAt        *time.Time
	CurrentLocation string
}

// NewContainerStay builds a stay for a container arriving now, deriving its size from the ISO type
func NewContainerStay(id, containerNumber, isoType string, cargo CargoStatus, arrivedAt time.Time) (*ContainerStay, error) {
	size, err := SizeClassFromISOType(isoType)
	if err != nil {
		return nil, err
	}
	if _, err := ParseCargoStatus(string(cargo)); err != nil {
		return nil, err
	}

	return &ContainerStay{
		ID:              id,
		ContainerNumber: containerNumber,
		ISOType:         isoType,
		Size:            size,
		Cargo:           cargo,
		ArrivedAt:       arrivedAt,
	}, nil
}

func (s *ContainerStay) HasExited() bool {
	return s.ExitedAt != nil
}
