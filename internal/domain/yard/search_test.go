package yard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

func TestPlanner_EmptyYardSuggestsFirstShortRow(t *testing.T) {
	// Arrange
	planner := yard.NewPlanner(yard.DefaultLayout())

	// Act
	s, err := planner.Suggest(stay("1", yard.Size20, yard.CargoEmpty), yard.NewOccupancy(nil), "")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, at("A", 6, 1, 1, "A"), s.Coordinate)
	assert.Equal(t, []yard.Coordinate{
		at("A", 6, 1, 1, "B"),
		at("A", 6, 2, 1, "A"),
		at("A", 6, 2, 1, "B"),
	}, s.Alternatives)
	assert.Contains(t, s.Reason, "zone A")
}

func TestPlanner_LongContainersUseSubSlotAOfLongRows(t *testing.T) {
	planner := yard.NewPlanner(yard.DefaultLayout())

	s, err := planner.Suggest(stay("1", yard.Size45, yard.CargoLaden), yard.NewOccupancy(nil), "")

	require.NoError(t, err)
	assert.Equal(t, at("A", 1, 1, 1, "A"), s.Coordinate)
	for _, alt := range s.Alternatives {
		assert.Equal(t, "A", alt.SubSlot)
		assert.LessOrEqual(t, alt.Row, 5)
	}
}

func TestPlanner_BalancesZonesByGroundOccupancy(t *testing.T) {
	occ := yard.NewOccupancy([]yard.OccupiedSlot{
		slot(1, at("A", 6, 1, 1, "A"), yard.Size20, yard.CargoEmpty),
		slot(2, at("B", 6, 1, 1, "A"), yard.Size20, yard.CargoEmpty),
		slot(3, at("B", 6, 1, 2, "A"), yard.Size20, yard.CargoEmpty),
	})
	planner := yard.NewPlanner(yard.DefaultLayout())

	s, err := planner.Suggest(stay("1", yard.Size20, yard.CargoEmpty), occ, "")

	require.NoError(t, err)
	assert.Equal(t, "C", s.Coordinate.Zone)
}

func TestPlanner_ConsolidatesWithinPreferredZone(t *testing.T) {
	occ := yard.NewOccupancy([]yard.OccupiedSlot{
		slot(1, at("B", 6, 1, 1, "A"), yard.Size20, yard.CargoLaden),
	})
	planner := yard.NewPlanner(yard.DefaultLayout())

	s, err := planner.Suggest(stay("1", yard.Size20, yard.CargoLaden), occ, "B")

	require.NoError(t, err)
	assert.Equal(t, at("B", 6, 1, 2, "A"), s.Coordinate)
	assert.Contains(t, s.Reason, "consolidates")
}

func TestPlanner_SkipsStacksViolatingRules(t *testing.T) {
	// LADEN cannot go on the EMPTY box in A-R06-B01-T1-A, so that stack is skipped
	occ := yard.NewOccupancy([]yard.OccupiedSlot{
		slot(1, at("A", 6, 1, 1, "A"), yard.Size20, yard.CargoEmpty),
	})
	planner := yard.NewPlanner(yard.DefaultLayout())

	s, err := planner.Suggest(stay("1", yard.Size20, yard.CargoLaden), occ, "A")

	require.NoError(t, err)
	assert.Equal(t, at("A", 6, 1, 1, "B"), s.Coordinate)
}

func TestPlanner_SecondPassAbovePreferredHeight(t *testing.T) {
	// Single-stack zone filled to the preferred height
	layout := yard.Layout{
		Zones:                []string{"A"},
		Rows:                 1,
		Bays:                 1,
		Tiers:                4,
		SubSlots:             []string{"A"},
		PreferredStackHeight: 3,
		SizeRules: []yard.SizeRule{
			{Size: yard.Size20, Rows: []int{1}, SubSlots: []string{"A"}},
			{Size: yard.Size40, Rows: []int{1}, SubSlots: []string{"A"}},
			{Size: yard.Size45, Rows: []int{1}, SubSlots: []string{"A"}},
		},
	}
	require.NoError(t, layout.Validate())
	occ := yard.NewOccupancy([]yard.OccupiedSlot{
		slot(1, at("A", 1, 1, 1, "A"), yard.Size20, yard.CargoLaden),
		slot(2, at("A", 1, 1, 2, "A"), yard.Size20, yard.CargoLaden),
		slot(3, at("A", 1, 1, 3, "A"), yard.Size20, yard.CargoLaden),
	})

	s, err := yard.NewPlanner(layout).Suggest(stay("1", yard.Size20, yard.CargoEmpty), occ, "")

	require.NoError(t, err)
	assert.Equal(t, 4, s.Coordinate.Tier)
	assert.Empty(t, s.Alternatives)
	assert.Contains(t, s.Reason, "preferred height")
}

func TestPlanner_NoAvailablePositions(t *testing.T) {
	layout := yard.Layout{
		Zones:                []string{"A"},
		Rows:                 1,
		Bays:                 1,
		Tiers:                1,
		SubSlots:             []string{"A"},
		PreferredStackHeight: 1,
		SizeRules: []yard.SizeRule{
			{Size: yard.Size20, Rows: []int{1}, SubSlots: []string{"A"}},
			{Size: yard.Size40, Rows: []int{1}, SubSlots: []string{"A"}},
			{Size: yard.Size45, Rows: []int{1}, SubSlots: []string{"A"}},
		},
	}
	occ := yard.NewOccupancy([]yard.OccupiedSlot{slot(1, at("A", 1, 1, 1, "A"), yard.Size20, yard.CargoLaden)})

	_, err := yard.NewPlanner(layout).Suggest(stay("1", yard.Size20, yard.CargoEmpty), occ, "A")

	var noneErr *yard.NoAvailablePositionsError
	require.ErrorAs(t, err, &noneErr)
	assert.Equal(t, "A", noneErr.Zone)
}

func TestPlanner_SuggestAvoidingSkipsExcludedSlots(t *testing.T) {
	// Arrange
	planner := yard.NewPlanner(yard.DefaultLayout())
	s := stay("1", yard.Size20, yard.CargoEmpty)
	avoid := []yard.Coordinate{at("A", 6, 1, 1, "A"), at("A", 6, 2, 1, "A")}

	// Act
	got, err := planner.SuggestAvoiding(s, yard.NewOccupancy(nil), "", avoid)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, at("A", 6, 1, 1, "B"), got.Coordinate)
	assert.Equal(t, []yard.Coordinate{
		at("A", 6, 2, 1, "B"),
		at("A", 6, 3, 1, "A"),
		at("A", 6, 3, 1, "B"),
	}, got.Alternatives)

	plain, err := planner.Suggest(s, yard.NewOccupancy(nil), "")
	require.NoError(t, err)
	assert.Equal(t, at("A", 6, 1, 1, "A"), plain.Coordinate, "plain suggestions ignore exclusions")
}

func TestPlanner_SuggestAvoidingFallsBackWhenEverythingIsExcluded(t *testing.T) {
	// Arrange
	layout := yard.Layout{
		Zones:                []string{"A"},
		Rows:                 1,
		Bays:                 1,
		Tiers:                2,
		SubSlots:             []string{"A"},
		PreferredStackHeight: 2,
		SizeRules: []yard.SizeRule{
			{Size: yard.Size20, Rows: []int{1}, SubSlots: []string{"A"}},
			{Size: yard.Size40, Rows: []int{1}, SubSlots: []string{"A"}},
			{Size: yard.Size45, Rows: []int{1}, SubSlots: []string{"A"}},
		},
	}
	require.NoError(t, layout.Validate())

	// Act
	got, err := yard.NewPlanner(layout).SuggestAvoiding(stay("1", yard.Size20, yard.CargoEmpty), yard.NewOccupancy(nil), "A", []yard.Coordinate{at("A", 1, 1, 1, "A")})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, at("A", 1, 1, 1, "A"), got.Coordinate)
}

func TestPlanner_UnknownPreferredZone(t *testing.T) {
	_, err := yard.NewPlanner(yard.DefaultLayout()).Suggest(stay("1", yard.Size20, yard.CargoEmpty), yard.NewOccupancy(nil), "Q")
	assert.True(t, shared.HasCode(err, yard.CodeInvalidZone))
}

func TestPlanner_Deterministic(t *testing.T) {
	occ := yard.NewOccupancy([]yard.OccupiedSlot{
		slot(1, at("A", 6, 1, 1, "A"), yard.Size20, yard.CargoLaden),
		slot(2, at("B", 6, 3, 1, "B"), yard.Size20, yard.CargoEmpty),
		slot(3, at("C", 1, 1, 1, "A"), yard.Size40, yard.CargoLaden),
		slot(4, at("D", 7, 2, 1, "A"), yard.Size20, yard.CargoEmpty),
	})
	planner := yard.NewPlanner(yard.DefaultLayout())
	s := stay("1", yard.Size20, yard.CargoEmpty)

	first, err := planner.Suggest(s, occ, "")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := planner.Suggest(s, occ, "")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestPlanner_SuggestionIsAlwaysAssignable(t *testing.T) {
	layout := yard.DefaultLayout()
	planner := yard.NewPlanner(layout)
	occ := yard.NewOccupancy(nil)
	cargo := []yard.CargoStatus{yard.CargoLaden, yard.CargoEmpty}

	// Fill a zone container by container; every suggestion must pass the rules
	for i := 0; i < 60; i++ {
		s := stay("x", yard.Size20, cargo[i%2])
		got, err := planner.Suggest(s, occ, "A")
		require.NoError(t, err)
		require.NoError(t, layout.CheckPlacement(s, got.Coordinate, occ))
		occ.Place(yard.OccupiedSlot{PositionID: int64(i + 1), Size: s.Size, Cargo: s.Cargo, Coordinate: got.Coordinate})
	}
}
