package placement_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

func TestEngine_SuggestOnEmptyYard(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU1234565", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	suggestion, err := f.Engine.Suggest(ctx, "stay-1", "")
	require.NoError(t, err)
	assert.Equal(t, "A-R06-B01-T1-A", suggestion.Coordinate.String())
}

func TestEngine_LongBoxBelowRejectsTwentyFoot(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-40", "MSCU0000040", "42G1", yard.CargoLaden)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-20", "MSCU0000020", "22G1", yard.CargoLaden)
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-40", "A-R01-B01-T1-A")
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-20", "A-R01-B01-T2-A")
	require.Error(t, err)
	assert.Equal(t, yard.CodeSizeIncompatible, shared.CodeOf(err))
}

func TestEngine_LadenOverEmptyRejected(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-empty", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-laden", "MSCU0000002", "22G1", yard.CargoLaden)
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-empty", "A-R06-B01-T1-A")
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-laden", "A-R06-B01-T2-A")
	require.Error(t, err)
	assert.Equal(t, yard.CodeWeightDistributionViolation, shared.CodeOf(err))
}

func TestEngine_AssignRecordsLocationAndEvent(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	position, err := f.Place(ctx, "stay-1", "B-R07-B03-T1-B")
	require.NoError(t, err)
	assert.NotZero(t, position.ID())
	assert.False(t, position.AutoAssigned())

	stay, err := f.UoW.Repositories().Stays.FindByID(ctx, "stay-1")
	require.NoError(t, err)
	assert.Equal(t, "B-R07-B03-T1-B", stay.CurrentLocation)
	assert.Equal(t, []string{yard.EventPositionAssigned}, f.Publisher.Types())
}

func TestEngine_AssignRejectsSecondPositionForStay(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Place(ctx, "stay-1", "A-R06-B01-T1-A")
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-1", "A-R06-B02-T1-A")
	assert.Equal(t, yard.CodeContainerAlreadyPlaced, shared.CodeOf(err))
}

func TestEngine_AssignValidatesBoundsAndSupport(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	tests := []struct {
		name string
		at   yard.Coordinate
		code string
	}{
		{"unknown zone", yard.Coordinate{Zone: "Z", Row: 6, Bay: 1, Tier: 1, SubSlot: "A"}, yard.CodeInvalidZone},
		{"row out of range", yard.Coordinate{Zone: "A", Row: 11, Bay: 1, Tier: 1, SubSlot: "A"}, yard.CodeInvalidRow},
		{"floating box", yard.Coordinate{Zone: "A", Row: 6, Bay: 1, Tier: 2, SubSlot: "A"}, yard.CodeNoSupport},
		{"long rows reserved", yard.Coordinate{Zone: "A", Row: 2, Bay: 1, Tier: 1, SubSlot: "A"}, yard.CodeRowSegregationViolation},
		{"unknown stay", yard.Coordinate{Zone: "A", Row: 6, Bay: 1, Tier: 1, SubSlot: "A"}, yard.CodeContainerStayNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stayID := "stay-1"
			if tt.code == yard.CodeContainerStayNotFound {
				stayID = "missing"
			}
			_, err := f.Engine.Assign(ctx, stayID, tt.at, false)
			require.Error(t, err)
			assert.Equal(t, tt.code, shared.CodeOf(err))
		})
	}
}

func TestEngine_AssignThenRemoveRestoresCapacity(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	repos := f.UoW.Repositories()
	before, err := repos.Positions.CountByZone(ctx)
	require.NoError(t, err)

	position, err := f.Place(ctx, "stay-1", "C-R08-B05-T1-A")
	require.NoError(t, err)
	during, err := repos.Positions.CountByZone(ctx)
	require.NoError(t, err)
	assert.Equal(t, before["C"]+1, during["C"])

	require.NoError(t, f.Engine.Remove(ctx, position.ID()))
	after, err := repos.Positions.CountByZone(ctx)
	require.NoError(t, err)
	assert.Equal(t, before["C"], after["C"])

	stay, err := repos.Stays.FindByID(ctx, "stay-1")
	require.NoError(t, err)
	assert.Empty(t, stay.CurrentLocation)

	// The freed coordinate is assignable again
	_, err = f.Place(ctx, "stay-1", "C-R08-B05-T1-A")
	assert.NoError(t, err)
}

func TestEngine_RemoveAndMoveBlockedByContainerAbove(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-low", "MSCU0000001", "22G1", yard.CargoLaden)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-high", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	low, err := f.Place(ctx, "stay-low", "A-R06-B01-T1-A")
	require.NoError(t, err)
	_, err = f.Place(ctx, "stay-high", "A-R06-B01-T2-A")
	require.NoError(t, err)

	err = f.Engine.Remove(ctx, low.ID())
	assert.Equal(t, yard.CodeContainerBlocked, shared.CodeOf(err))

	_, err = f.Engine.Move(ctx, low.ID(), helpers.MustCoordinate("A-R06-B02-T1-A"))
	assert.Equal(t, yard.CodeContainerBlocked, shared.CodeOf(err))
}

func TestEngine_MoveRevalidatesAndClearsAutoFlag(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoLaden)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-2", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	first, err := f.Engine.Assign(ctx, "stay-1", helpers.MustCoordinate("A-R06-B01-T1-A"), true)
	require.NoError(t, err)
	_, err = f.Place(ctx, "stay-2", "A-R06-B02-T1-A")
	require.NoError(t, err)

	// Target occupied
	_, err = f.Engine.Move(ctx, first.ID(), helpers.MustCoordinate("A-R06-B02-T1-A"))
	assert.Equal(t, yard.CodePositionOccupied, shared.CodeOf(err))

	// Laden onto empty
	_, err = f.Engine.Move(ctx, first.ID(), helpers.MustCoordinate("A-R06-B02-T2-A"))
	assert.Equal(t, yard.CodeWeightDistributionViolation, shared.CodeOf(err))

	moved, err := f.Engine.Move(ctx, first.ID(), helpers.MustCoordinate("A-R07-B01-T1-A"))
	require.NoError(t, err)
	assert.Equal(t, "A-R07-B01-T1-A", moved.Coordinate().String())
	assert.False(t, moved.AutoAssigned())

	reloaded, err := f.UoW.Repositories().Positions.FindByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, moved.Coordinate(), reloaded.Coordinate())
	assert.Contains(t, f.Publisher.Types(), yard.EventContainerMoved)
}

func TestEngine_MoveWithinOwnStackExcludesItself(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-2", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-1", "A-R06-B01-T1-A")
	require.NoError(t, err)
	top, err := f.Place(ctx, "stay-2", "A-R06-B01-T2-A")
	require.NoError(t, err)

	// Moving the top box up one tier would leave it floating over its own old slot
	_, err = f.Engine.Move(ctx, top.ID(), helpers.MustCoordinate("A-R06-B01-T3-A"))
	assert.Equal(t, yard.CodeNoSupport, shared.CodeOf(err))
}

func TestEngine_ConcurrentAssignsToOneSlot(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)

	const contenders = 4
	ids := []string{"stay-a", "stay-b", "stay-c", "stay-d"}
	for i, id := range ids {
		_, err := f.Arrive(ctx, id, "MSCU000000"+string(rune('1'+i)), "22G1", yard.CargoEmpty)
		require.NoError(t, err)
	}

	target := helpers.MustCoordinate("D-R09-B09-T1-B")
	errs := make([]error, contenders)
	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.Engine.Assign(ctx, ids[i], target, false)
		}(i)
	}
	wg.Wait()

	var winners, occupied int
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case shared.CodeOf(err) == yard.CodePositionOccupied:
			occupied++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, contenders-1, occupied)

	slots, err := f.UoW.Repositories().Positions.ListSlots(ctx, yard.SlotFilter{Zone: "D"})
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestEngine_SuggestionsAreAlwaysAssignable(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)

	isoTypes := []string{"22G1", "42G1", "22G1", "L5G1"}
	cargo := []yard.CargoStatus{yard.CargoLaden, yard.CargoEmpty}
	for i := 0; i < 40; i++ {
		id := "stay-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		_, err := f.Arrive(ctx, id, "MSCU"+id, isoTypes[i%len(isoTypes)], cargo[i%len(cargo)])
		require.NoError(t, err)

		suggestion, err := f.Engine.Suggest(ctx, id, "")
		require.NoError(t, err)
		_, err = f.Engine.Assign(ctx, id, suggestion.Coordinate, true)
		require.NoError(t, err, "suggestion %s for %s", suggestion.Coordinate, id)
	}
}
