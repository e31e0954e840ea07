package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	yardQueries "github.com/andrescamacho/containeryard-go/internal/application/yard/queries"
)

func (yc *yardContext) iRequestTheYardStatistics() error {
	resp, err := mediator.SendTyped[*yardQueries.GetStatisticsResponse](yc.ctx, yc.fixture.Mediator, &yardQueries.GetStatisticsQuery{})
	if err != nil {
		return err
	}
	yc.stats = resp
	return nil
}

func (yc *yardContext) zoneShouldHave(zone string, occupied, pending int) error {
	if yc.stats == nil {
		if err := yc.iRequestTheYardStatistics(); err != nil {
			return err
		}
	}
	for _, z := range yc.stats.Zones {
		if z.Zone != zone {
			continue
		}
		if z.Occupied != occupied || z.Pending != pending {
			return fmt.Errorf("zone %s: expected %d occupied/%d pending, got %d/%d", zone, occupied, pending, z.Occupied, z.Pending)
		}
		return nil
	}
	return fmt.Errorf("zone %s not in statistics", zone)
}

func (yc *yardContext) theYardShouldHaveAvailableSlots(available int) error {
	if yc.stats == nil {
		return fmt.Errorf("statistics were not requested")
	}
	if yc.stats.Available != available {
		return fmt.Errorf("expected %d available slots, got %d", available, yc.stats.Available)
	}
	return nil
}

func (yc *yardContext) theUnplacedContainersShouldBe(table *godog.Table) error {
	resp, err := mediator.SendTyped[*yardQueries.GetUnplacedContainersResponse](yc.ctx, yc.fixture.Mediator, &yardQueries.GetUnplacedContainersQuery{})
	if err != nil {
		return err
	}
	var want []string
	for i, row := range table.Rows {
		if i == 0 {
			continue
		}
		want = append(want, row.Cells[0].Value)
	}
	if len(resp.Stays) != len(want) {
		return fmt.Errorf("expected %d unplaced containers, got %d", len(want), len(resp.Stays))
	}
	for i, s := range resp.Stays {
		if s.ID != want[i] {
			return fmt.Errorf("unplaced #%d: expected %s, got %s", i+1, want[i], s.ID)
		}
	}
	return nil
}

func (yc *yardContext) theLayoutOfZoneTierShouldShow(zone string, tier int, table *godog.Table) error {
	resp, err := mediator.SendTyped[*yardQueries.GetLayoutResponse](yc.ctx, yc.fixture.Mediator, &yardQueries.GetLayoutQuery{Zone: zone, Tier: tier})
	if err != nil {
		return err
	}
	got := make(map[string]string, len(resp.Entries))
	for _, e := range resp.Entries {
		got[e.Coordinate.String()] = e.Status + ":" + e.StayID
	}
	rows := table.Rows[1:]
	if len(got) != len(rows) {
		return fmt.Errorf("expected %d layout entries, got %d (%v)", len(rows), len(got), got)
	}
	for _, row := range rows {
		coord, status, stay := row.Cells[0].Value, row.Cells[1].Value, row.Cells[2].Value
		if got[coord] != status+":"+stay {
			return fmt.Errorf("at %s: expected %s:%s, got %q", coord, status, stay, got[coord])
		}
	}
	return nil
}

func registerYardQuerySteps(ctx *godog.ScenarioContext, yc *yardContext) {
	ctx.Step(`^I request the yard statistics$`, yc.iRequestTheYardStatistics)
	ctx.Step(`^zone "([^"]*)" should have (\d+) occupied and (\d+) pending slots?$`, yc.zoneShouldHave)
	ctx.Step(`^the yard should have (\d+) available slots$`, yc.theYardShouldHaveAvailableSlots)
	ctx.Step(`^the unplaced containers should be:$`, yc.theUnplacedContainersShouldBe)
	ctx.Step(`^the layout of zone "([^"]*)" tier (\d+) should show:$`, yc.theLayoutOfZoneTierShouldShow)
}
