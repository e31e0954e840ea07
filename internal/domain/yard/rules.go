package yard

// CheckPlacement validates placing stay at c against an occupancy snapshot.
// Bounds are not checked here (see ValidateCoordinate). Rules run in a fixed order
// so the same violation is always reported first:
//
//  1. sub-slot allowed for the size class
//  2. coordinate free
//  3. stacking support
//  4. size compatibility with the container below
//  5. weight distribution against the container below
//  6. row segregation
func (l Layout) CheckPlacement(stay *ContainerStay, c Coordinate, occ Occupancy) error {
	rule, ok := l.RuleFor(stay.Size)
	if !ok {
		return NewUnknownSizeClassError(stay.Size.String())
	}

	if !rule.AllowsSubSlot(c.SubSlot) {
		return NewSubSlotNotAllowedError(c, stay.Size, rule.SubSlots)
	}

	if occ.IsOccupied(c) {
		return NewPositionOccupiedError(c)
	}

	if !occ.SupportBelow(c) {
		return NewNoSupportError(c)
	}

	if c.Tier > 1 {
		below, _ := occ.At(c.Below())
		if err := checkStacking(stay, below, c); err != nil {
			return err
		}
	}

	if !rule.AllowsRow(c.Row) {
		return NewRowSegregationError(c, stay.Size, rule.sortedRows())
	}

	return nil
}

// checkStacking applies the physics rules between a container and the one it sits on.
// Mixed 20ft and 40/45ft stacks are rejected in both directions.
func checkStacking(upper *ContainerStay, lower OccupiedSlot, at Coordinate) error {
	if upper.Size.IsLong() != lower.Size.IsLong() {
		return NewSizeIncompatibleError(at, upper.Size, lower.Size)
	}
	if upper.Cargo == CargoLaden && lower.Cargo == CargoEmpty {
		return NewWeightDistributionError(at)
	}
	return nil
}
