package yard

import (
	"fmt"
	"sort"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
)

// MaxAlternatives caps the alternatives returned with a suggestion
const MaxAlternatives = 3

// Suggestion is the planner's answer for one container stay
type Suggestion struct {
	Coordinate   Coordinate
	Reason       string
	Alternatives []Coordinate
}

// Planner runs the consolidation-first search over an occupancy snapshot.
//
// The iteration order is part of the contract and makes the result
// reproducible for a given snapshot:
//
//	zone (fewest occupied ground slots first, ties by layout order)
//	  -> row (ascending, restricted to the size's segregated rows)
//	    -> bay (1..Bays)
//	      -> sub-slot (restricted to the size's sub-slots)
//	        -> tier (first free tier of the stack)
//
// Pass 1 accepts tiers 1..PreferredStackHeight. Pass 2, tiers above the preferred
// height, runs for a zone only when pass 1 found nothing in that zone.
type Planner struct {
	layout Layout
}

func NewPlanner(layout Layout) *Planner {
	return &Planner{layout: layout}
}

func (p *Planner) Layout() Layout {
	return p.layout
}

type candidate struct {
	coord       Coordinate
	groundCount int
}

// Suggest returns the primary candidate for stay plus up to MaxAlternatives more.
// zonePreference restricts the search to one zone when non-empty.
func (p *Planner) Suggest(stay *ContainerStay, occ Occupancy, zonePreference string) (Suggestion, error) {
	return p.suggest(stay, occ, zonePreference, nil)
}

// SuggestAvoiding is Suggest with soft exclusions: stacks whose next free slot
// is in avoid are skipped. When every candidate is excluded the plain
// suggestion is returned.
func (p *Planner) SuggestAvoiding(stay *ContainerStay, occ Occupancy, zonePreference string, avoid []Coordinate) (Suggestion, error) {
	if len(avoid) == 0 {
		return p.suggest(stay, occ, zonePreference, nil)
	}
	skip := make(map[Coordinate]bool, len(avoid))
	for _, c := range avoid {
		skip[c] = true
	}

	suggestion, err := p.suggest(stay, occ, zonePreference, skip)
	if shared.HasCode(err, CodeNoAvailablePositions) {
		return p.suggest(stay, occ, zonePreference, nil)
	}
	return suggestion, err
}

func (p *Planner) suggest(stay *ContainerStay, occ Occupancy, zonePreference string, skip map[Coordinate]bool) (Suggestion, error) {
	rule, ok := p.layout.RuleFor(stay.Size)
	if !ok {
		return Suggestion{}, NewUnknownSizeClassError(stay.Size.String())
	}

	zones, err := p.zoneOrder(occ, zonePreference)
	if err != nil {
		return Suggestion{}, err
	}

	want := MaxAlternatives + 1
	var found []candidate
	for _, zone := range zones {
		ground := occ.GroundCount(zone)
		inZone := p.scanZone(stay, rule, occ, skip, zone, 1, p.layout.PreferredStackHeight, want-len(found))
		if len(inZone) == 0 {
			inZone = p.scanZone(stay, rule, occ, skip, zone, p.layout.PreferredStackHeight+1, p.layout.Tiers, want-len(found))
		}
		for _, c := range inZone {
			found = append(found, candidate{coord: c, groundCount: ground})
		}
		if len(found) >= want {
			break
		}
	}

	if len(found) == 0 {
		return Suggestion{}, NewNoAvailablePositionsError(zonePreference, stay.Size)
	}

	primary := found[0]
	alternatives := make([]Coordinate, 0, len(found)-1)
	for _, c := range found[1:] {
		alternatives = append(alternatives, c.coord)
	}

	return Suggestion{
		Coordinate:   primary.coord,
		Reason:       p.reason(primary),
		Alternatives: alternatives,
	}, nil
}

// zoneOrder sorts zones by occupied ground slots, stable on layout order
func (p *Planner) zoneOrder(occ Occupancy, preference string) ([]string, error) {
	if preference != "" {
		if !p.layout.HasZone(preference) {
			return nil, NewInvalidZoneError(preference, p.layout.Zones)
		}
		return []string{preference}, nil
	}

	zones := append([]string(nil), p.layout.Zones...)
	ground := make(map[string]int, len(zones))
	for _, z := range zones {
		ground[z] = occ.GroundCount(z)
	}
	sort.SliceStable(zones, func(i, j int) bool {
		return ground[zones[i]] < ground[zones[j]]
	})
	return zones, nil
}

// scanZone yields at most one candidate per stack: the first free tier,
// provided it lies within [minTier, maxTier], is not in skip and passes every
// placement rule.
func (p *Planner) scanZone(stay *ContainerStay, rule SizeRule, occ Occupancy, skip map[Coordinate]bool, zone string, minTier, maxTier, limit int) []Coordinate {
	if minTier > maxTier || limit <= 0 {
		return nil
	}

	var out []Coordinate
	for _, row := range rule.sortedRows() {
		for bay := 1; bay <= p.layout.Bays; bay++ {
			for _, sub := range rule.SubSlots {
				stack := StackKey{Zone: zone, Row: row, Bay: bay, SubSlot: sub}
				c, ok := p.firstFreeTier(stack, occ)
				if !ok || c.Tier < minTier || c.Tier > maxTier || skip[c] {
					continue
				}
				if p.layout.CheckPlacement(stay, c, occ) != nil {
					continue
				}
				out = append(out, c)
				if len(out) >= limit {
					return out
				}
			}
		}
	}
	return out
}

func (p *Planner) firstFreeTier(stack StackKey, occ Occupancy) (Coordinate, bool) {
	for tier := 1; tier <= p.layout.Tiers; tier++ {
		c := stack.At(tier)
		if !occ.IsOccupied(c) {
			return c, true
		}
	}
	return Coordinate{}, false
}

func (p *Planner) reason(c candidate) string {
	switch {
	case c.coord.Tier == 1:
		return fmt.Sprintf("ground slot in zone %s (%d ground slots occupied)", c.coord.Zone, c.groundCount)
	case c.coord.Tier <= p.layout.PreferredStackHeight:
		return fmt.Sprintf("consolidates existing stack in zone %s at tier %d", c.coord.Zone, c.coord.Tier)
	default:
		return fmt.Sprintf("zone %s stacks are at preferred height %d, placing at tier %d",
			c.coord.Zone, p.layout.PreferredStackHeight, c.coord.Tier)
	}
}
