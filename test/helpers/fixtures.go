package helpers

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/containeryard-go/internal/adapters/persistence"
	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/placement"
	"github.com/andrescamacho/containeryard-go/internal/application/setup"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

// FixtureStart is the mock clock's initial time in every fixture
var FixtureStart = time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC)

// YardFixture wires a complete application stack over a SQLite database
type YardFixture struct {
	DB        *gorm.DB
	UoW       *persistence.GormUnitOfWork
	Clock     *shared.MockClock
	Publisher *RecordingPublisher
	Layout    yard.Layout
	Engine    *placement.Engine
	Mediator  mediator.Mediator
}

// NewYardFixture builds a fixture over a fresh in-memory database with the default layout
func NewYardFixture(t testing.TB) *YardFixture {
	t.Helper()
	f, err := NewYardFixtureWithDB(NewTestDB(t), yard.DefaultLayout())
	if err != nil {
		t.Fatalf("failed to build yard fixture: %v", err)
	}
	return f
}

// NewYardFixtureWithDB builds a fixture over an existing migrated database
func NewYardFixtureWithDB(db *gorm.DB, layout yard.Layout) (*YardFixture, error) {
	clock := shared.NewMockClock(FixtureStart)
	publisher := NewRecordingPublisher()
	uow := persistence.NewGormUnitOfWork(db, clock)

	registry := setup.NewHandlerRegistry(uow, layout, clock, publisher)
	m, err := registry.CreateConfiguredMediator()
	if err != nil {
		return nil, err
	}

	return &YardFixture{
		DB:        db,
		UoW:       uow,
		Clock:     clock,
		Publisher: publisher,
		Layout:    layout,
		Engine:    registry.Engine(),
		Mediator:  m,
	}, nil
}

// Arrive registers a stay directly in the store. ISO types starting with 2
// are 20ft, 4 are 40ft, L are 45ft.
func (f *YardFixture) Arrive(ctx context.Context, stayID, containerNumber, isoType string, cargo yard.CargoStatus) (*yard.ContainerStay, error) {
	stay, err := yard.NewContainerStay(stayID, containerNumber, isoType, cargo, f.Clock.Now())
	if err != nil {
		return nil, err
	}
	if err := f.UoW.Repositories().Stays.Create(ctx, stay); err != nil {
		return nil, err
	}
	return stay, nil
}

// Place assigns a stay to a coordinate given as A-R06-B01-T1-A
func (f *YardFixture) Place(ctx context.Context, stayID, coordinate string) (*yard.Position, error) {
	at, err := yard.ParseCoordinate(coordinate)
	if err != nil {
		return nil, err
	}
	return f.Engine.Assign(ctx, stayID, at, false)
}

// AddEquipment upserts a vehicle into the equipment read model
func (f *YardFixture) AddEquipment(ctx context.Context, id string, equipmentType workorder.EquipmentType, active bool) error {
	return f.UoW.Repositories().Equipment.Upsert(ctx, &workorder.Equipment{
		ID:     id,
		Name:   id,
		Type:   equipmentType,
		Active: active,
	})
}

// MustCoordinate parses a coordinate or panics
func MustCoordinate(s string) yard.Coordinate {
	c, err := yard.ParseCoordinate(s)
	if err != nil {
		panic(err)
	}
	return c
}
