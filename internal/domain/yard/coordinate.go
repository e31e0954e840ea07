package yard

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	SubSlotA = "A"
	SubSlotB = "B"
)

// Coordinate addresses a single slot in the yard.
// It is a value type; two coordinates are equal when all five axes match.
type Coordinate struct {
	Zone    string
	Row     int
	Bay     int
	Tier    int
	SubSlot string
}

// String formats the coordinate as <zone>-R<row>-B<bay>-T<tier>-<sub-slot>, e.g. A-R03-B05-T2-A
func (c Coordinate) String() string {
	return fmt.Sprintf("%s-R%02d-B%02d-T%d-%s", c.Zone, c.Row, c.Bay, c.Tier, c.SubSlot)
}

// Below returns the coordinate directly underneath. Callers must check Tier > 1.
func (c Coordinate) Below() Coordinate {
	c.Tier--
	return c
}

// Above returns the coordinate directly on top
func (c Coordinate) Above() Coordinate {
	c.Tier++
	return c
}

// Stack identifies the vertical column this coordinate belongs to
func (c Coordinate) Stack() StackKey {
	return StackKey{Zone: c.Zone, Row: c.Row, Bay: c.Bay, SubSlot: c.SubSlot}
}

// StackKey is a lateral position; every tier with the same key forms one stack
type StackKey struct {
	Zone    string
	Row     int
	Bay     int
	SubSlot string
}

func (k StackKey) At(tier int) Coordinate {
	return Coordinate{Zone: k.Zone, Row: k.Row, Bay: k.Bay, Tier: tier, SubSlot: k.SubSlot}
}

var coordinatePattern = regexp.MustCompile(`^([A-Z][A-Z0-9]*)-R(\d{1,2})-B(\d{1,2})-T(\d{1,2})-([A-Z])$`)

// ParseCoordinate parses the display format produced by String.
// Only the shape is checked here; bounds are checked by Layout.ValidateCoordinate.
func ParseCoordinate(s string) (Coordinate, error) {
	m := coordinatePattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return Coordinate{}, NewInvalidCoordinateError(s)
	}

	row, _ := strconv.Atoi(m[2])
	bay, _ := strconv.Atoi(m[3])
	tier, _ := strconv.Atoi(m[4])

	return Coordinate{Zone: m[1], Row: row, Bay: bay, Tier: tier, SubSlot: m[5]}, nil
}
