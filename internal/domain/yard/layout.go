package yard

import (
	"fmt"
	"sort"
)

// DefaultPreferredStackHeight is the tier up to which the planner consolidates
// stacks before it considers higher tiers.
const DefaultPreferredStackHeight = 3

// SizeRule maps a size class to the rows and sub-slots reserved for it
type SizeRule struct {
	Size     SizeClass
	Rows     []int
	SubSlots []string
}

func (r SizeRule) AllowsRow(row int) bool {
	for _, allowed := range r.Rows {
		if allowed == row {
			return true
		}
	}
	return false
}

func (r SizeRule) AllowsSubSlot(subSlot string) bool {
	for _, allowed := range r.SubSlots {
		if allowed == subSlot {
			return true
		}
	}
	return false
}

// Layout describes the addressable space of the yard and its segregation table.
//
// Invariants:
// - Zones are searched (and tie-broken) in the order they are listed
// - Every size class has exactly one rule
type Layout struct {
	Zones                []string
	Rows                 int
	Bays                 int
	Tiers                int
	SubSlots             []string
	PreferredStackHeight int
	SizeRules            []SizeRule
}

// DefaultLayout is the reference configuration: four zones of 10x10x4 slots,
// rows 1-5 reserved for 40/45ft boxes on sub-slot A, rows 6-10 for 20ft boxes.
func DefaultLayout() Layout {
	longRows := []int{1, 2, 3, 4, 5}
	return Layout{
		Zones:                []string{"A", "B", "C", "D"},
		Rows:                 10,
		Bays:                 10,
		Tiers:                4,
		SubSlots:             []string{SubSlotA, SubSlotB},
		PreferredStackHeight: DefaultPreferredStackHeight,
		SizeRules: []SizeRule{
			{Size: Size20, Rows: []int{6, 7, 8, 9, 10}, SubSlots: []string{SubSlotA, SubSlotB}},
			{Size: Size40, Rows: longRows, SubSlots: []string{SubSlotA}},
			{Size: Size45, Rows: longRows, SubSlots: []string{SubSlotA}},
		},
	}
}

// Validate checks the layout itself is coherent
func (l Layout) Validate() error {
	if len(l.Zones) == 0 {
		return fmt.Errorf("layout must define at least one zone")
	}
	if l.Rows < 1 || l.Bays < 1 || l.Tiers < 1 {
		return fmt.Errorf("layout dimensions must be positive: rows=%d bays=%d tiers=%d", l.Rows, l.Bays, l.Tiers)
	}
	if l.PreferredStackHeight < 1 || l.PreferredStackHeight > l.Tiers {
		return fmt.Errorf("preferred stack height %d must be within 1..%d", l.PreferredStackHeight, l.Tiers)
	}
	if len(l.SubSlots) == 0 {
		return fmt.Errorf("layout must define at least one sub-slot")
	}

	seen := make(map[SizeClass]bool)
	for _, rule := range l.SizeRules {
		if !rule.Size.IsValid() {
			return fmt.Errorf("size rule has unknown size class %d", int(rule.Size))
		}
		if seen[rule.Size] {
			return fmt.Errorf("duplicate size rule for %s", rule.Size)
		}
		seen[rule.Size] = true

		if len(rule.Rows) == 0 || len(rule.SubSlots) == 0 {
			return fmt.Errorf("size rule for %s must list rows and sub-slots", rule.Size)
		}
		for _, row := range rule.Rows {
			if row < 1 || row > l.Rows {
				return fmt.Errorf("size rule for %s references row %d outside 1..%d", rule.Size, row, l.Rows)
			}
		}
		for _, sub := range rule.SubSlots {
			if !l.hasSubSlot(sub) {
				return fmt.Errorf("size rule for %s references unknown sub-slot %q", rule.Size, sub)
			}
		}
	}
	for _, size := range []SizeClass{Size20, Size40, Size45} {
		if !seen[size] {
			return fmt.Errorf("missing size rule for %s", size)
		}
	}
	return nil
}

// ValidateCoordinate checks the coordinate lies inside the yard bounds.
// Axes are checked in zone, row, bay, tier, sub-slot order.
func (l Layout) ValidateCoordinate(c Coordinate) error {
	if !l.HasZone(c.Zone) {
		return NewInvalidZoneError(c.Zone, l.Zones)
	}
	if c.Row < 1 || c.Row > l.Rows {
		return NewInvalidRowError(c.Row, l.Rows)
	}
	if c.Bay < 1 || c.Bay > l.Bays {
		return NewInvalidBayError(c.Bay, l.Bays)
	}
	if c.Tier < 1 || c.Tier > l.Tiers {
		return NewInvalidTierError(c.Tier, l.Tiers)
	}
	if !l.hasSubSlot(c.SubSlot) {
		return NewInvalidSubSlotError(c.SubSlot, l.SubSlots)
	}
	return nil
}

func (l Layout) HasZone(zone string) bool {
	for _, z := range l.Zones {
		if z == zone {
			return true
		}
	}
	return false
}

func (l Layout) hasSubSlot(sub string) bool {
	for _, s := range l.SubSlots {
		if s == sub {
			return true
		}
	}
	return false
}

// RuleFor returns the segregation rule for a size class
func (l Layout) RuleFor(size SizeClass) (SizeRule, bool) {
	for _, rule := range l.SizeRules {
		if rule.Size == size {
			return rule, true
		}
	}
	return SizeRule{}, false
}

// ZoneCapacity is the fixed per-zone capacity, rows x bays x tiers
func (l Layout) ZoneCapacity() int {
	return l.Rows * l.Bays * l.Tiers
}

// sortedRows returns the rule's rows in ascending order without mutating the rule
func (r SizeRule) sortedRows() []int {
	rows := append([]int(nil), r.Rows...)
	sort.Ints(rows)
	return rows
}
