package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

const layoutLegend = "L laden  E empty  = long box  + pending  . free"

// LayoutFormatter renders yard layouts as text grids, one tier of one zone at a time.
// Each bay cell holds two characters, sub-slot A then sub-slot B.
type LayoutFormatter struct {
	useColors bool
}

// NewLayoutFormatter creates a new layout formatter
func NewLayoutFormatter(useColors bool) *LayoutFormatter {
	return &LayoutFormatter{useColors: useColors}
}

type slotKey struct {
	row, bay int
	subSlot  string
}

// FormatTier renders the rows x bays grid of zone at tier
func (f *LayoutFormatter) FormatTier(layout yard.Layout, zone string, tier int, entries []queries.LayoutEntry) string {
	slots := make(map[slotKey]queries.LayoutEntry)
	placed, pending := 0, 0
	for _, e := range entries {
		c := e.Coordinate
		if c.Zone != zone || c.Tier != tier {
			continue
		}
		slots[slotKey{c.Row, c.Bay, c.SubSlot}] = e
		if e.Status == queries.EntryPending {
			pending++
		} else {
			placed++
		}
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Zone %s, tier %d (%d placed, %d pending)\n", zone, tier, placed, pending))

	header := make([]string, layout.Bays)
	for bay := 1; bay <= layout.Bays; bay++ {
		header[bay-1] = fmt.Sprintf("B%02d", bay)
	}
	builder.WriteString("      " + strings.Join(header, " ") + "\n")

	for row := 1; row <= layout.Rows; row++ {
		cells := make([]string, layout.Bays)
		for bay := 1; bay <= layout.Bays; bay++ {
			a, hasA := slots[slotKey{row, bay, "A"}]
			b, hasB := slots[slotKey{row, bay, "B"}]
			cells[bay-1] = f.symbol(a, hasA, false) + f.symbol(b, hasB, hasA && spansBoth(a))
		}
		builder.WriteString(fmt.Sprintf("R%02d   %s\n", row, strings.Join(cells, "  ")))
	}

	builder.WriteString(layoutLegend + "\n")
	return builder.String()
}

// spansBoth reports whether a box placed on sub-slot A covers the whole bay
func spansBoth(e queries.LayoutEntry) bool {
	return e.Status == queries.EntryPlaced && e.Size.IsLong()
}

func (f *LayoutFormatter) symbol(e queries.LayoutEntry, present, covered bool) string {
	switch {
	case !present && covered:
		return "="
	case !present:
		return "."
	case e.Status == queries.EntryPending:
		return f.colorize("+", "\033[36m") // Cyan
	case e.Cargo == yard.CargoLaden:
		return f.colorize("L", "\033[32m") // Green
	default:
		return f.colorize("E", "\033[33m") // Yellow
	}
}

func (f *LayoutFormatter) colorize(s, color string) string {
	if !f.useColors {
		return s
	}
	return color + s + "\033[0m"
}

// FormatZoneSummary renders per-zone occupancy with a ten-step usage bar
func (f *LayoutFormatter) FormatZoneSummary(zones []queries.ZoneStats) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("%-5s %9s %8s %10s %9s  %s\n", "ZONE", "OCCUPIED", "PENDING", "AVAILABLE", "CAPACITY", "USE"))

	totalOccupied, totalCapacity := 0, 0
	for _, z := range zones {
		builder.WriteString(fmt.Sprintf("%-5s %9d %8d %10d %9d  %s\n",
			z.Zone, z.Occupied, z.Pending, z.Available, z.Capacity, usageBar(z.Occupied, z.Capacity)))
		totalOccupied += z.Occupied
		totalCapacity += z.Capacity
	}

	builder.WriteString(fmt.Sprintf("Total: %d/%d slots occupied (%d%%)\n", totalOccupied, totalCapacity, percent(totalOccupied, totalCapacity)))
	return builder.String()
}

func usageBar(occupied, capacity int) string {
	filled := 0
	if capacity > 0 {
		filled = occupied * 10 / capacity
	}
	return fmt.Sprintf("[%s%s] %3d%%", strings.Repeat("#", filled), strings.Repeat(".", 10-filled), percent(occupied, capacity))
}

func percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return part * 100 / whole
}
