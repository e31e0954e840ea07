package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	workOrderCommands "github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

func (yc *yardContext) equipmentIsActive(id, equipmentType string) error {
	return yc.fixture.AddEquipment(yc.ctx, id, workorder.EquipmentType(equipmentType), true)
}

func (yc *yardContext) equipmentIsInactive(id, equipmentType string) error {
	return yc.fixture.AddEquipment(yc.ctx, id, workorder.EquipmentType(equipmentType), false)
}

func (yc *yardContext) createWorkOrder(cmd *workOrderCommands.CreateWorkOrderCommand) error {
	resp, err := mediator.SendTyped[*workOrderCommands.CreateWorkOrderResponse](yc.ctx, yc.fixture.Mediator, cmd)
	yc.err = err
	if err == nil {
		yc.order = resp.WorkOrder
	}
	return nil
}

func (yc *yardContext) iCreateAWorkOrderFor(stayID string) error {
	return yc.createWorkOrder(&workOrderCommands.CreateWorkOrderCommand{ContainerStayID: stayID})
}

func (yc *yardContext) iCreateAWorkOrderWithPriority(stayID, priority string) error {
	return yc.createWorkOrder(&workOrderCommands.CreateWorkOrderCommand{ContainerStayID: stayID, Priority: priority})
}

func (yc *yardContext) iCreateAWorkOrderTargeting(stayID, coordinate string) error {
	target, err := yard.ParseCoordinate(coordinate)
	if err != nil {
		return err
	}
	return yc.createWorkOrder(&workOrderCommands.CreateWorkOrderCommand{ContainerStayID: stayID, Target: &target})
}

func (yc *yardContext) iCreateAWorkOrderWithEquipment(stayID, equipmentID string) error {
	return yc.createWorkOrder(&workOrderCommands.CreateWorkOrderCommand{ContainerStayID: stayID, EquipmentID: &equipmentID})
}

func (yc *yardContext) requireOrder() error {
	if yc.order == nil {
		return fmt.Errorf("no work order was created (error: %v)", yc.err)
	}
	return nil
}

func (yc *yardContext) iAssignTheWorkOrderTo(equipmentID string) error {
	if err := yc.requireOrder(); err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &workOrderCommands.AssignToVehicleCommand{
		WorkOrderID: yc.order.ID(),
		EquipmentID: equipmentID,
	})
	return nil
}

func (yc *yardContext) iCompleteTheWorkOrder() error {
	if err := yc.requireOrder(); err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &workOrderCommands.CompleteWorkOrderCommand{WorkOrderID: yc.order.ID()})
	return nil
}

func (yc *yardContext) iCompleteTheWorkOrderWith(equipmentID string) error {
	if err := yc.requireOrder(); err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &workOrderCommands.CompleteWorkOrderCommand{
		WorkOrderID: yc.order.ID(),
		EquipmentID: &equipmentID,
		Operator:    "bdd",
	})
	return nil
}

func (yc *yardContext) iCancelTheWorkOrder(reason string) error {
	if err := yc.requireOrder(); err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &workOrderCommands.CancelWorkOrderCommand{
		WorkOrderID: yc.order.ID(),
		Reason:      reason,
	})
	return nil
}

func (yc *yardContext) iSetTheWorkOrderStatusTo(status string) error {
	if err := yc.requireOrder(); err != nil {
		return err
	}
	_, yc.err = yc.fixture.Mediator.Send(yc.ctx, &workOrderCommands.UpdateWorkOrderStatusCommand{
		WorkOrderID: yc.order.ID(),
		Status:      status,
	})
	return nil
}

// anotherProcessOccupiesTheTarget places a different stay at the order's
// target outside the work order flow
func (yc *yardContext) anotherProcessOccupiesTheTarget(stayID string) error {
	if err := yc.requireOrder(); err != nil {
		return err
	}
	_, err := yc.fixture.Engine.Assign(yc.ctx, stayID, yc.order.Target(), false)
	return err
}

func (yc *yardContext) reloadOrder() (*workorder.WorkOrder, error) {
	if err := yc.requireOrder(); err != nil {
		return nil, err
	}
	order, err := yc.fixture.UoW.Repositories().WorkOrders.FindByID(yc.ctx, yc.order.ID())
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("work order %s not found", yc.order.ID())
	}
	return order, nil
}

func (yc *yardContext) theWorkOrderStatusShouldBe(status string) error {
	order, err := yc.reloadOrder()
	if err != nil {
		return err
	}
	if string(order.Status()) != status {
		return fmt.Errorf("expected status %s, got %s", status, order.Status())
	}
	return nil
}

func (yc *yardContext) theWorkOrderPriorityShouldBe(priority string) error {
	order, err := yc.reloadOrder()
	if err != nil {
		return err
	}
	if string(order.Priority()) != priority {
		return fmt.Errorf("expected priority %s, got %s", priority, order.Priority())
	}
	return nil
}

func (yc *yardContext) theWorkOrderTargetShouldBeTheSuggestion() error {
	if yc.suggestion == nil {
		return fmt.Errorf("no suggestion was requested")
	}
	order, err := yc.reloadOrder()
	if err != nil {
		return err
	}
	if order.Target() != yc.suggestion.Coordinate {
		return fmt.Errorf("expected target %s, got %s", yc.suggestion.Coordinate, order.Target())
	}
	return nil
}

func (yc *yardContext) theWorkOrderTargetShouldBe(coordinate string) error {
	order, err := yc.reloadOrder()
	if err != nil {
		return err
	}
	if got := order.Target().String(); got != coordinate {
		return fmt.Errorf("expected target %s, got %s", coordinate, got)
	}
	return nil
}

func (yc *yardContext) stayShouldBeAutoAssigned(stayID string) error {
	position, err := yc.positionOf(stayID)
	if err != nil {
		return err
	}
	if !position.AutoAssigned() {
		return fmt.Errorf("expected %s to be auto-assigned", stayID)
	}
	return nil
}

func registerWorkOrderSteps(ctx *godog.ScenarioContext, yc *yardContext) {
	ctx.Step(`^equipment "([^"]*)" of type "([^"]*)" is active$`, yc.equipmentIsActive)
	ctx.Step(`^equipment "([^"]*)" of type "([^"]*)" is inactive$`, yc.equipmentIsInactive)

	ctx.Step(`^I create a work order for stay "([^"]*)"$`, yc.iCreateAWorkOrderFor)
	ctx.Step(`^I create a work order for stay "([^"]*)" with priority "([^"]*)"$`, yc.iCreateAWorkOrderWithPriority)
	ctx.Step(`^I create a work order for stay "([^"]*)" targeting "([^"]*)"$`, yc.iCreateAWorkOrderTargeting)
	ctx.Step(`^I create a work order for stay "([^"]*)" with equipment "([^"]*)"$`, yc.iCreateAWorkOrderWithEquipment)
	ctx.Step(`^I assign the work order to equipment "([^"]*)"$`, yc.iAssignTheWorkOrderTo)
	ctx.Step(`^I complete the work order$`, yc.iCompleteTheWorkOrder)
	ctx.Step(`^I complete the work order with equipment "([^"]*)"$`, yc.iCompleteTheWorkOrderWith)
	ctx.Step(`^I cancel the work order because "([^"]*)"$`, yc.iCancelTheWorkOrder)
	ctx.Step(`^I set the work order status to "([^"]*)"$`, yc.iSetTheWorkOrderStatusTo)
	ctx.Step(`^another process places stay "([^"]*)" at the work order target$`, yc.anotherProcessOccupiesTheTarget)

	ctx.Step(`^the work order status should be "([^"]*)"$`, yc.theWorkOrderStatusShouldBe)
	ctx.Step(`^the work order priority should be "([^"]*)"$`, yc.theWorkOrderPriorityShouldBe)
	ctx.Step(`^the work order target should be the suggested position$`, yc.theWorkOrderTargetShouldBeTheSuggestion)
	ctx.Step(`^the work order target should be "([^"]*)"$`, yc.theWorkOrderTargetShouldBe)
	ctx.Step(`^stay "([^"]*)" should be auto-assigned$`, yc.stayShouldBeAutoAssigned)
}
