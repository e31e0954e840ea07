package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	placementCommands "github.com/andrescamacho/containeryard-go/internal/application/placement/commands"
	placementQueries "github.com/andrescamacho/containeryard-go/internal/application/placement/queries"
	stayCommands "github.com/andrescamacho/containeryard-go/internal/application/stay/commands"
	yardQueries "github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

// yardContext holds state for placement, work order and yard query scenarios
type yardContext struct {
	fixture    *helpers.YardFixture
	ctx        context.Context
	err        error
	suggestion *yard.Suggestion
	order      *workorder.WorkOrder
	stats      *yardQueries.GetStatisticsResponse
}

func (yc *yardContext) reset() error {
	if err := helpers.TruncateAllTables(); err != nil {
		return err
	}
	fixture, err := helpers.NewYardFixtureWithDB(helpers.SharedTestDB, yard.DefaultLayout())
	if err != nil {
		return err
	}
	yc.fixture = fixture
	yc.ctx = context.Background()
	yc.err = nil
	yc.suggestion = nil
	yc.order = nil
	yc.stats = nil
	return nil
}

// isoTypeFor returns a representative ISO type code for a size in feet
func isoTypeFor(size int) (string, error) {
	switch size {
	case 20:
		return "22G1", nil
	case 40:
		return "42G1", nil
	case 45:
		return "L5G1", nil
	}
	return "", fmt.Errorf("unsupported size %d", size)
}

func (yc *yardContext) positionOf(stayID string) (*yard.Position, error) {
	position, err := yc.fixture.UoW.Repositories().Positions.FindByStay(yc.ctx, stayID)
	if err != nil {
		return nil, err
	}
	if position == nil {
		return nil, fmt.Errorf("stay %s has no position", stayID)
	}
	return position, nil
}

// ============================================================================
// Yard Setup Steps
// ============================================================================

func (yc *yardContext) anEmptyYard() error {
	count, err := yc.fixture.UoW.Repositories().Positions.CountByZone(yc.ctx)
	if err != nil {
		return err
	}
	if len(count) != 0 {
		return fmt.Errorf("expected an empty yard, found %v", count)
	}
	return nil
}

func (yc *yardContext) aContainerStay(size int, cargo, stayID string) error {
	iso, err := isoTypeFor(size)
	if err != nil {
		return err
	}
	if _, err = yc.fixture.Arrive(yc.ctx, stayID, "CONT-"+stayID, iso, yard.CargoStatus(cargo)); err != nil {
		return err
	}
	// arrivals in a scenario are a minute apart
	yc.fixture.Clock.Advance(time.Minute)
	return nil
}

func (yc *yardContext) stayIsPlacedAt(stayID, coordinate string) error {
	_, err := yc.fixture.Place(yc.ctx, stayID, coordinate)
	return err
}

func (yc *yardContext) theFollowingContainersArePlaced(table *godog.Table) error {
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		if len(row.Cells) != 4 {
			return fmt.Errorf("expected columns stay, size, cargo, coordinate")
		}
		var size int
		if _, err := fmt.Sscanf(row.Cells[1].Value, "%d", &size); err != nil {
			return fmt.Errorf("invalid size %q", row.Cells[1].Value)
		}
		stayID := row.Cells[0].Value
		if err := yc.aContainerStay(size, row.Cells[2].Value, stayID); err != nil {
			return err
		}
		if err := yc.stayIsPlacedAt(stayID, row.Cells[3].Value); err != nil {
			return fmt.Errorf("placing %s: %w", stayID, err)
		}
	}
	return nil
}

// ============================================================================
// Placement Steps
// ============================================================================

func (yc *yardContext) iRequestASuggestionFor(stayID string) error {
	return yc.iRequestASuggestionInZone(stayID, "")
}

func (yc *yardContext) iRequestASuggestionInZone(stayID, zone string) error {
	resp, err := mediator.SendTyped[*placementQueries.SuggestPositionResponse](yc.ctx, yc.fixture.Mediator, &placementQueries.SuggestPositionQuery{
		ContainerStayID: stayID,
		ZonePreference:  zone,
	})
	yc.err = err
	if err == nil {
		s := resp.Suggestion
		yc.suggestion = &s
	}
	return nil
}

func (yc *yardContext) iAssignStayTo(stayID, coordinate string) error {
	at, err := yard.ParseCoordinate(coordinate)
	if err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &placementCommands.AssignPositionCommand{
		ContainerStayID: stayID,
		Coordinate:      &at,
	})
	return nil
}

func (yc *yardContext) iAssignStayAutomatically(stayID string) error {
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &placementCommands.AssignPositionCommand{ContainerStayID: stayID})
	return nil
}

func (yc *yardContext) iMoveStayTo(stayID, coordinate string) error {
	position, err := yc.positionOf(stayID)
	if err != nil {
		return err
	}
	to, err := yard.ParseCoordinate(coordinate)
	if err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &placementCommands.MoveContainerCommand{
		PositionID: position.ID(),
		To:         to,
	})
	return nil
}

func (yc *yardContext) iRemoveThePositionOf(stayID string) error {
	position, err := yc.positionOf(stayID)
	if err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &placementCommands.RemovePositionCommand{PositionID: position.ID()})
	return nil
}

func (yc *yardContext) stayExits(stayID string) error {
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &stayCommands.RecordExitCommand{StayID: stayID})
	return nil
}

// ============================================================================
// Assertion Steps
// ============================================================================

func (yc *yardContext) theOperationShouldSucceed() error {
	if yc.err != nil {
		return fmt.Errorf("expected success, got %v", yc.err)
	}
	return nil
}

func (yc *yardContext) theOperationShouldFailWith(code string) error {
	if yc.err == nil {
		return fmt.Errorf("expected %s, operation succeeded", code)
	}
	if got := shared.CodeOf(yc.err); got != code {
		return fmt.Errorf("expected %s, got %s (%v)", code, got, yc.err)
	}
	return nil
}

func (yc *yardContext) theSuggestedPositionShouldBe(coordinate string) error {
	if yc.suggestion == nil {
		return fmt.Errorf("no suggestion (error: %v)", yc.err)
	}
	if got := yc.suggestion.Coordinate.String(); got != coordinate {
		return fmt.Errorf("expected suggestion %s, got %s", coordinate, got)
	}
	return nil
}

func (yc *yardContext) theSuggestionShouldHaveAlternatives(n int) error {
	if yc.suggestion == nil {
		return fmt.Errorf("no suggestion (error: %v)", yc.err)
	}
	if len(yc.suggestion.Alternatives) != n {
		return fmt.Errorf("expected %d alternatives, got %d", n, len(yc.suggestion.Alternatives))
	}
	return nil
}

func (yc *yardContext) stayShouldBePlacedAt(stayID, coordinate string) error {
	position, err := yc.positionOf(stayID)
	if err != nil {
		return err
	}
	if got := position.Coordinate().String(); got != coordinate {
		return fmt.Errorf("expected %s at %s, found %s", stayID, coordinate, got)
	}
	return nil
}

func (yc *yardContext) stayShouldHaveNoPosition(stayID string) error {
	position, err := yc.fixture.UoW.Repositories().Positions.FindByStay(yc.ctx, stayID)
	if err != nil {
		return err
	}
	if position != nil {
		return fmt.Errorf("expected no position for %s, found %s", stayID, position.Coordinate())
	}
	return nil
}

func (yc *yardContext) theEventShouldHaveBeenPublished(eventType string) error {
	for _, t := range yc.fixture.Publisher.Types() {
		if t == eventType {
			return nil
		}
	}
	return fmt.Errorf("event %s not published, got %v", eventType, yc.fixture.Publisher.Types())
}

// InitializeYardScenario registers every step of the yard features
func InitializeYardScenario(ctx *godog.ScenarioContext) {
	yc := &yardContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, yc.reset()
	})

	// Setup steps
	ctx.Step(`^an empty yard$`, yc.anEmptyYard)
	ctx.Step(`^a (\d+)ft (LADEN|EMPTY) container stay "([^"]*)"$`, yc.aContainerStay)
	ctx.Step(`^stay "([^"]*)" is placed at "([^"]*)"$`, yc.stayIsPlacedAt)
	ctx.Step(`^the following containers are placed:$`, yc.theFollowingContainersArePlaced)

	// Placement steps
	ctx.Step(`^I request a suggestion for stay "([^"]*)"$`, yc.iRequestASuggestionFor)
	ctx.Step(`^I request a suggestion for stay "([^"]*)" in zone "([^"]*)"$`, yc.iRequestASuggestionInZone)
	ctx.Step(`^I assign stay "([^"]*)" to "([^"]*)"$`, yc.iAssignStayTo)
	ctx.Step(`^I assign stay "([^"]*)" automatically$`, yc.iAssignStayAutomatically)
	ctx.Step(`^I move stay "([^"]*)" to "([^"]*)"$`, yc.iMoveStayTo)
	ctx.Step(`^I remove the position of stay "([^"]*)"$`, yc.iRemoveThePositionOf)
	ctx.Step(`^stay "([^"]*)" exits the yard$`, yc.stayExits)

	// Assertions
	ctx.Step(`^the operation should succeed$`, yc.theOperationShouldSucceed)
	ctx.Step(`^the operation should fail with "([^"]*)"$`, yc.theOperationShouldFailWith)
	ctx.Step(`^the suggested position should be "([^"]*)"$`, yc.theSuggestedPositionShouldBe)
	ctx.Step(`^the suggestion should have (\d+) alternatives$`, yc.theSuggestionShouldHaveAlternatives)
	ctx.Step(`^stay "([^"]*)" should be placed at "([^"]*)"$`, yc.stayShouldBePlacedAt)
	ctx.Step(`^stay "([^"]*)" should have no position$`, yc.stayShouldHaveNoPosition)
	ctx.Step(`^the event "([^"]*)" should have been published$`, yc.theEventShouldHaveBeenPublished)

	registerWorkOrderSteps(ctx, yc)
	registerYardQuerySteps(ctx, yc)
}
