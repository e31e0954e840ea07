package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

func newGolden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func placed(coord string, size yard.SizeClass, cargo yard.CargoStatus) queries.LayoutEntry {
	return queries.LayoutEntry{
		Coordinate: helpers.MustCoordinate(coord),
		Status:     queries.EntryPlaced,
		Size:       size,
		Cargo:      cargo,
	}
}

func TestLayoutFormatter_FormatTier(t *testing.T) {
	layout := yard.Layout{Zones: []string{"A", "B"}, Rows: 4, Bays: 5, Tiers: 4, SubSlots: []string{"A", "B"}}
	entries := []queries.LayoutEntry{
		placed("A-R01-B01-T1-A", yard.Size40, yard.CargoLaden),
		{Coordinate: helpers.MustCoordinate("A-R01-B02-T1-A"), Status: queries.EntryPending, WorkOrderID: "wo-1"},
		placed("A-R03-B01-T1-A", yard.Size20, yard.CargoEmpty),
		placed("A-R03-B01-T1-B", yard.Size20, yard.CargoLaden),
		placed("A-R04-B05-T1-B", yard.Size20, yard.CargoLaden),
		placed("A-R02-B02-T2-A", yard.Size20, yard.CargoLaden),
		placed("B-R01-B01-T1-A", yard.Size45, yard.CargoEmpty),
	}

	out := NewLayoutFormatter(false).FormatTier(layout, "A", 1, entries)

	newGolden(t).Assert(t, "layout_tier", []byte(out))
}

func TestLayoutFormatter_FormatZoneSummary(t *testing.T) {
	zones := []queries.ZoneStats{
		{Zone: "A", Capacity: 400, Occupied: 120, Pending: 2, Available: 278},
		{Zone: "B", Capacity: 400, Occupied: 0, Pending: 0, Available: 400},
		{Zone: "C", Capacity: 400, Occupied: 400, Pending: 0, Available: 0},
	}

	out := NewLayoutFormatter(false).FormatZoneSummary(zones)

	newGolden(t).Assert(t, "zone_summary", []byte(out))
}

func TestLayoutFormatter_Colors(t *testing.T) {
	layout := yard.Layout{Zones: []string{"A"}, Rows: 1, Bays: 1, Tiers: 1, SubSlots: []string{"A", "B"}}

	out := NewLayoutFormatter(true).FormatTier(layout, "A", 1, []queries.LayoutEntry{
		placed("A-R01-B01-T1-A", yard.Size20, yard.CargoLaden),
	})

	assert.Contains(t, out, "\033[32mL\033[0m.")
}
