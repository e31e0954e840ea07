package yard

import (
	"fmt"
	"time"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

const (
	EventPositionAssigned = "yard.position.assigned"
	EventContainerMoved   = "yard.container.moved"
	EventPositionReleased = "yard.position.released"
	EventContainerArrived = "yard.stay.arrived"
	EventContainerExited  = "yard.stay.exited"
)

type PositionAssigned struct {
	shared.BaseEvent
	PositionID   int64  `json:"positionId"`
	StayID       string `json:"containerStayId"`
	Coordinate   string `json:"coordinate"`
	AutoAssigned bool   `json:"autoAssigned"`
}

func NewPositionAssigned(p *Position, at time.Time) PositionAssigned {
	return PositionAssigned{
		BaseEvent:    shared.NewBaseEvent(EventPositionAssigned, positionAggregate(p.ID()), at),
		PositionID:   p.ID(),
		StayID:       p.StayID(),
		Coordinate:   p.Coordinate().String(),
		AutoAssigned: p.AutoAssigned(),
	}
}

type ContainerMoved struct {
	shared.BaseEvent
	PositionID int64  `json:"positionId"`
	StayID     string `json:"containerStayId"`
	From       string `json:"from"`
	To         string `json:"to"`
}

func NewContainerMoved(p *Position, from Coordinate, at time.Time) ContainerMoved {
	return ContainerMoved{
		BaseEvent:  shared.NewBaseEvent(EventContainerMoved, positionAggregate(p.ID()), at),
		PositionID: p.ID(),
		StayID:     p.StayID(),
		From:       from.String(),
		To:         p.Coordinate().String(),
	}
}

type PositionReleased struct {
	shared.BaseEvent
	PositionID int64  `json:"positionId"`
	StayID     string `json:"containerStayId"`
	Coordinate string `json:"coordinate"`
}

func NewPositionReleased(p *Position, at time.Time) PositionReleased {
	return PositionReleased{
		BaseEvent:  shared.NewBaseEvent(EventPositionReleased, positionAggregate(p.ID()), at),
		PositionID: p.ID(),
		StayID:     p.StayID(),
		Coordinate: p.Coordinate().String(),
	}
}

type StayEvent struct {
	shared.BaseEvent
	ContainerNumber string `json:"containerNumber"`
	Size            int    `json:"size"`
	Cargo           string `json:"cargo"`
}

func NewContainerArrived(s *ContainerStay, at time.Time) StayEvent {
	return newStayEvent(EventContainerArrived, s, at)
}

func NewContainerExited(s *ContainerStay, at time.Time) StayEvent {
	return newStayEvent(EventContainerExited, s, at)
}

func newStayEvent(eventType string, s *ContainerStay, at time.Time) StayEvent {
	return StayEvent{
		BaseEvent:       shared.NewBaseEvent(eventType, s.ID, at),
		ContainerNumber: s.ContainerNumber,
		Size:            int(s.Size),
		Cargo:           string(s.Cargo),
	}
}

func positionAggregate(id int64) string {
	return fmt.Sprintf("position-%d", id)
}
