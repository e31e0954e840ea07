package yard

// OccupiedSlot is a placed container as seen by the placement rules
type OccupiedSlot struct {
	PositionID      int64
	StayID          string
	ContainerNumber string
	Size            SizeClass
	Cargo           CargoStatus
	Coordinate      Coordinate
	AutoAssigned    bool
}

// Occupancy is an in-memory snapshot of occupied coordinates.
// It is built from the store inside a transaction and is not safe for concurrent mutation.
type Occupancy struct {
	slots map[Coordinate]OccupiedSlot
}

func NewOccupancy(slots []OccupiedSlot) Occupancy {
	occ := Occupancy{slots: make(map[Coordinate]OccupiedSlot, len(slots))}
	for _, s := range slots {
		occ.slots[s.Coordinate] = s
	}
	return occ
}

func (o Occupancy) IsOccupied(c Coordinate) bool {
	_, ok := o.slots[c]
	return ok
}

// At returns the slot at c, if any
func (o Occupancy) At(c Coordinate) (OccupiedSlot, bool) {
	s, ok := o.slots[c]
	return s, ok
}

// SupportBelow is true on the ground tier or when the slot one tier down is occupied
func (o Occupancy) SupportBelow(c Coordinate) bool {
	if c.Tier <= 1 {
		return true
	}
	return o.IsOccupied(c.Below())
}

// HasAbove reports whether something is stacked directly on c
func (o Occupancy) HasAbove(c Coordinate) bool {
	return o.IsOccupied(c.Above())
}

// Place adds a slot to the snapshot
func (o Occupancy) Place(s OccupiedSlot) {
	o.slots[s.Coordinate] = s
}

// Excluding returns a copy without the given position
func (o Occupancy) Excluding(positionID int64) Occupancy {
	out := Occupancy{slots: make(map[Coordinate]OccupiedSlot, len(o.slots))}
	for c, s := range o.slots {
		if s.PositionID != positionID {
			out.slots[c] = s
		}
	}
	return out
}

// GroundCount counts occupied tier-1 slots in a zone
func (o Occupancy) GroundCount(zone string) int {
	n := 0
	for c := range o.slots {
		if c.Zone == zone && c.Tier == 1 {
			n++
		}
	}
	return n
}

// Count counts occupied slots in a zone
func (o Occupancy) Count(zone string) int {
	n := 0
	for c := range o.slots {
		if c.Zone == zone {
			n++
		}
	}
	return n
}

func (o Occupancy) Len() int {
	return len(o.slots)
}
