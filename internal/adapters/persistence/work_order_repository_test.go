package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/adapters/persistence"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

func newOrder(t *testing.T, id, stayID, target string, priority workorder.Priority, equipmentID *string, clock shared.Clock) *workorder.WorkOrder {
	t.Helper()
	order, err := workorder.NewWorkOrder(id, stayID, helpers.MustCoordinate(target), priority, equipmentID, "", clock)
	require.NoError(t, err)
	return order
}

func TestWorkOrderRepository_RoundTrip(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(repoStart)
	createStay(t, persistence.NewGormContainerStayRepository(db), "stay-1", "22G1", yard.CargoLaden, repoStart)
	repo := persistence.NewGormWorkOrderRepository(db, clock)

	order, err := workorder.NewWorkOrder("wo-1", "stay-1", helpers.MustCoordinate("D-R08-B03-T2-B"), workorder.PriorityHigh, nil, "reefer plug", clock)
	require.NoError(t, err)

	// Act
	require.NoError(t, repo.Create(ctx, order))
	clock.Advance(5 * time.Minute)
	require.NoError(t, order.AssignTo("RS-01"))
	require.NoError(t, repo.Update(ctx, order))

	// Assert
	found, err := repo.FindByID(ctx, "wo-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "D-R08-B03-T2-B", found.Target().String())
	assert.Equal(t, workorder.PriorityHigh, found.Priority())
	assert.Equal(t, workorder.StatusPending, found.Status())
	assert.True(t, found.IsAssignedTo("RS-01"))
	assert.Equal(t, "reefer plug", found.Notes())
	require.NotNil(t, found.AssignedAt())
	assert.True(t, found.AssignedAt().Equal(repoStart.Add(5*time.Minute)))

	active, err := repo.FindActiveByStay(ctx, "stay-1")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, "wo-1", active.ID())

	missing, err := repo.FindByID(ctx, "wo-unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWorkOrderRepository_OneActiveOrderPerStay(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(repoStart)
	createStay(t, persistence.NewGormContainerStayRepository(db), "stay-1", "22G1", yard.CargoLaden, repoStart)
	repo := persistence.NewGormWorkOrderRepository(db, clock)

	first := newOrder(t, "wo-1", "stay-1", "A-R06-B01-T1-A", workorder.PriorityMedium, nil, clock)
	require.NoError(t, repo.Create(ctx, first))

	// Act
	err := repo.Create(ctx, newOrder(t, "wo-2", "stay-1", "A-R06-B02-T1-A", workorder.PriorityMedium, nil, clock))

	// Assert
	assert.Equal(t, workorder.CodeWorkOrderAlreadyExists, shared.CodeOf(err))

	// a terminal order frees the stay for a new one
	require.NoError(t, first.Cancel("replanned"))
	require.NoError(t, repo.Update(ctx, first))
	require.NoError(t, repo.Create(ctx, newOrder(t, "wo-3", "stay-1", "A-R06-B02-T1-A", workorder.PriorityMedium, nil, clock)))
}

func TestWorkOrderRepository_ListFilters(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(repoStart)
	stays := persistence.NewGormContainerStayRepository(db)
	repo := persistence.NewGormWorkOrderRepository(db, clock)
	for _, id := range []string{"stay-1", "stay-2", "stay-3", "stay-4"} {
		createStay(t, stays, id, "22G1", yard.CargoLaden, repoStart)
	}

	rs01 := "RS-01"
	low := newOrder(t, "wo-low", "stay-1", "A-R06-B01-T1-A", workorder.PriorityLow, nil, clock)
	clock.Advance(time.Minute)
	urgent := newOrder(t, "wo-urgent", "stay-2", "B-R06-B01-T1-A", workorder.PriorityUrgent, nil, clock)
	clock.Advance(time.Minute)
	assigned := newOrder(t, "wo-assigned", "stay-3", "A-R07-B01-T1-A", workorder.PriorityMedium, nil, clock)
	require.NoError(t, assigned.AssignTo(rs01))
	clock.Advance(time.Minute)
	done := newOrder(t, "wo-done", "stay-4", "A-R08-B01-T1-A", workorder.PriorityMedium, &rs01, clock)
	require.NoError(t, done.Complete(&rs01, "op-1"))
	for _, o := range []*workorder.WorkOrder{low, urgent, assigned, done} {
		require.NoError(t, repo.Create(ctx, o))
	}

	ids := func(orders []*workorder.WorkOrder) []string {
		out := make([]string, len(orders))
		for i, o := range orders {
			out[i] = o.ID()
		}
		return out
	}

	// Act + Assert
	active, err := repo.List(ctx, workorder.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"wo-urgent", "wo-assigned", "wo-low"}, ids(active))

	inZoneA, err := repo.List(ctx, workorder.ListFilter{ActiveOnly: true, Zone: "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wo-assigned", "wo-low"}, ids(inZoneA))

	unassigned, err := repo.List(ctx, workorder.ListFilter{UnassignedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"wo-urgent", "wo-low"}, ids(unassigned))

	byEquipment, err := repo.List(ctx, workorder.ListFilter{EquipmentID: rs01, ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"wo-assigned"}, ids(byEquipment))

	withCompleted, err := repo.List(ctx, workorder.ListFilter{EquipmentID: rs01, IncludeCompleted: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"wo-assigned", "wo-done"}, ids(withCompleted))

	limited, err := repo.List(ctx, workorder.ListFilter{ActiveOnly: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"wo-urgent"}, ids(limited))
}

func TestContainerStayRepository_ListUnplaced(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(repoStart)
	stays := persistence.NewGormContainerStayRepository(db)
	positions := persistence.NewGormPositionRepository(db, clock)
	orders := persistence.NewGormWorkOrderRepository(db, clock)

	createStay(t, stays, "stay-late", "22G1", yard.CargoLaden, repoStart.Add(2*time.Hour))
	createStay(t, stays, "stay-early", "42G1", yard.CargoEmpty, repoStart)
	createStay(t, stays, "stay-placed", "22G1", yard.CargoLaden, repoStart)
	createStay(t, stays, "stay-ordered", "22G1", yard.CargoLaden, repoStart)
	createStay(t, stays, "stay-gone", "22G1", yard.CargoLaden, repoStart)

	require.NoError(t, positions.Create(ctx, yard.NewPosition("stay-placed", helpers.MustCoordinate("A-R06-B01-T1-A"), false, clock)))
	require.NoError(t, orders.Create(ctx, newOrder(t, "wo-1", "stay-ordered", "A-R07-B01-T1-A", workorder.PriorityMedium, nil, clock)))
	require.NoError(t, stays.MarkExited(ctx, "stay-gone", repoStart.Add(time.Hour)))

	// Act
	unplaced, err := stays.ListUnplaced(ctx, 0)
	require.NoError(t, err)
	first, err := stays.ListUnplaced(ctx, 1)
	require.NoError(t, err)

	// Assert
	require.Len(t, unplaced, 2)
	assert.Equal(t, "stay-early", unplaced[0].ID)
	assert.Equal(t, yard.Size40, unplaced[0].Size)
	assert.Equal(t, "stay-late", unplaced[1].ID)
	require.Len(t, first, 1)
	assert.Equal(t, "stay-early", first[0].ID)

	err = stays.MarkExited(ctx, "stay-gone", repoStart.Add(3*time.Hour))
	assert.Equal(t, yard.CodeContainerExited, shared.CodeOf(err))
}

func TestEquipmentRepository_UpsertReplaces(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormEquipmentRepository(db)

	// Act
	require.NoError(t, repo.Upsert(ctx, &workorder.Equipment{ID: "RS-01", Name: "Stacker 1", Type: workorder.EquipmentReachStacker, Active: true}))
	require.NoError(t, repo.Upsert(ctx, &workorder.Equipment{ID: "RS-01", Name: "Stacker 1", Type: workorder.EquipmentReachStacker, Active: false}))

	// Assert
	found, err := repo.FindByID(ctx, "RS-01")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Active)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestEquipmentRepository_NameIsUnique(t *testing.T) {
	// Arrange
	ctx := context.Background()
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormEquipmentRepository(db)
	require.NoError(t, repo.Upsert(ctx, &workorder.Equipment{ID: "RS-01", Name: "Stacker 1", Type: workorder.EquipmentReachStacker, Active: true}))

	// Act
	err := repo.Upsert(ctx, &workorder.Equipment{ID: "RS-02", Name: "Stacker 1", Type: workorder.EquipmentReachStacker, Active: true})

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	missing, err := repo.FindByID(ctx, "RS-02")
	require.NoError(t, err)
	assert.Nil(t, missing)

	// renaming the existing record is still an upsert on id
	require.NoError(t, repo.Upsert(ctx, &workorder.Equipment{ID: "RS-01", Name: "Stacker One", Type: workorder.EquipmentReachStacker, Active: true}))
	require.NoError(t, repo.Upsert(ctx, &workorder.Equipment{ID: "RS-02", Name: "Stacker 1", Type: workorder.EquipmentReachStacker, Active: true}))
}
