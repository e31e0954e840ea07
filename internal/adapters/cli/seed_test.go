package cli

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

const seedYAML = `
equipment:
  - {id: RS-01, name: Reach Stacker 1, type: REACH_STACKER}
  - {id: FL-02, type: FORKLIFT, active: false}
stays:
  - {id: stay-1, container: MSCU1234565, iso_type: 22G1, cargo: LADEN, position: A-R06-B01-T1-A}
  - {id: stay-2, container: TGHU7654321, iso_type: 45G1, cargo: EMPTY, position: auto}
  - {id: stay-3, container: CSQU3054383, iso_type: 22G1, cargo: EMPTY}
work_orders:
  - {stay: stay-3, target: C-R07-B02-T1-B, priority: HIGH, equipment: RS-01}
`

func TestApplySeed_LoadsFixture(t *testing.T) {
	// Arrange
	f := helpers.NewYardFixture(t)
	ctx := context.Background()
	seed, err := ParseSeed(strings.NewReader(seedYAML))
	require.NoError(t, err)

	// Act
	result, err := ApplySeed(ctx, f.Mediator, f.UoW, seed)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Equipment: 2, Stays: 3, Positions: 2, WorkOrders: 1}, result)

	repos := f.UoW.Repositories()
	p1, err := repos.Positions.FindByStay(ctx, "stay-1")
	require.NoError(t, err)
	require.NotNil(t, p1)
	assert.Equal(t, "A-R06-B01-T1-A", p1.Coordinate().String())
	assert.False(t, p1.AutoAssigned())

	p2, err := repos.Positions.FindByStay(ctx, "stay-2")
	require.NoError(t, err)
	require.NotNil(t, p2)
	assert.True(t, p2.AutoAssigned())
	assert.Equal(t, "A", p2.Coordinate().SubSlot)

	order, err := repos.WorkOrders.FindActiveByStay(ctx, "stay-3")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, workorder.PriorityHigh, order.Priority())
	assert.Equal(t, "C-R07-B02-T1-B", order.Target().String())

	inactive, err := repos.Equipment.FindByID(ctx, "FL-02")
	require.NoError(t, err)
	require.NotNil(t, inactive)
	assert.False(t, inactive.Active)
}

func TestApplySeed_StopsAtFirstRuleViolation(t *testing.T) {
	f := helpers.NewYardFixture(t)
	seed, err := ParseSeed(strings.NewReader(`
stays:
  - {id: stay-1, container: MSCU1234565, iso_type: 22G1, cargo: LADEN, position: A-R06-B01-T2-A}
  - {id: stay-2, container: TGHU7654321, iso_type: 22G1, cargo: LADEN}
`))
	require.NoError(t, err)

	result, err := ApplySeed(context.Background(), f.Mediator, f.UoW, seed)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "stay-1")
	assert.Equal(t, 1, result.Stays)
	assert.Equal(t, 0, result.Positions)
}

func TestParseSeed_RejectsUnknownKeys(t *testing.T) {
	_, err := ParseSeed(strings.NewReader("vehicles:\n  - {id: RS-01}\n"))
	assert.Error(t, err)
}

func TestApplySeed_RejectsUnknownEquipmentType(t *testing.T) {
	f := helpers.NewYardFixture(t)
	seed := &SeedFile{Equipment: []SeedEquipment{{ID: "X-1", Type: "CRANE"}}}

	_, err := ApplySeed(context.Background(), f.Mediator, f.UoW, seed)

	assert.Error(t, err)
}
