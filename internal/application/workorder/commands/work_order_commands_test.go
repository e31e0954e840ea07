package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

func createOrder(t *testing.T, f *helpers.YardFixture, stayID string, target *yard.Coordinate) *commands.CreateWorkOrderResponse {
	t.Helper()
	resp, err := mediator.SendTyped[*commands.CreateWorkOrderResponse](context.Background(), f.Mediator, &commands.CreateWorkOrderCommand{
		ContainerStayID: stayID,
		Target:          target,
	})
	require.NoError(t, err)
	return resp
}

func TestCreateWorkOrder_UsesSuggestionAndRejectsDuplicate(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU1234565", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	resp := createOrder(t, f, "stay-1", nil)
	require.NotNil(t, resp.Suggestion)
	assert.Equal(t, "A-R06-B01-T1-A", resp.WorkOrder.Target().String())
	assert.Equal(t, workorder.StatusPending, resp.WorkOrder.Status())
	assert.Equal(t, workorder.PriorityMedium, resp.WorkOrder.Priority())
	assert.Contains(t, resp.WorkOrder.ID(), "MSCU1234565")

	_, err = mediator.SendTyped[*commands.CreateWorkOrderResponse](ctx, f.Mediator, &commands.CreateWorkOrderCommand{
		ContainerStayID: "stay-1",
	})
	require.Error(t, err)
	assert.Equal(t, workorder.CodeWorkOrderAlreadyExists, shared.CodeOf(err))

	var exists *workorder.WorkOrderAlreadyExistsError
	require.True(t, errors.As(err, &exists))
	assert.Equal(t, []string{workorder.EventWorkOrderCreated}, f.Publisher.Types())
}

func TestCreateWorkOrder_SuggestionAvoidsActiveTargets(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-2", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	// Act
	first := createOrder(t, f, "stay-1", nil)
	second := createOrder(t, f, "stay-2", nil)

	// Assert
	assert.Equal(t, "A-R06-B01-T1-A", first.WorkOrder.Target().String())
	assert.Equal(t, "A-R06-B01-T1-B", second.WorkOrder.Target().String())
	assert.NotContains(t, second.Suggestion.Alternatives, first.WorkOrder.Target())

	// a direct suggestion still reflects physical occupancy only
	direct, err := f.Engine.Suggest(ctx, "stay-2", "")
	require.NoError(t, err)
	assert.Equal(t, first.WorkOrder.Target(), direct.Coordinate)

	for _, order := range []*workorder.WorkOrder{first.WorkOrder, second.WorkOrder} {
		_, err := f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: order.ID()})
		require.NoError(t, err)
	}
}

func TestCreateWorkOrder_ValidatesInput(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-placed", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Place(ctx, "stay-placed", "B-R06-B01-T1-A")
	require.NoError(t, err)

	badZone := yard.Coordinate{Zone: "Q", Row: 6, Bay: 1, Tier: 1, SubSlot: "A"}
	missingVehicle := "rs-404"
	target := helpers.MustCoordinate("A-R06-B01-T1-A")

	tests := []struct {
		name string
		cmd  *commands.CreateWorkOrderCommand
		code string
	}{
		{"unknown stay", &commands.CreateWorkOrderCommand{ContainerStayID: "missing"}, yard.CodeContainerStayNotFound},
		{"target outside layout", &commands.CreateWorkOrderCommand{ContainerStayID: "stay-1", Target: &badZone}, yard.CodeInvalidZone},
		{"bad priority", &commands.CreateWorkOrderCommand{ContainerStayID: "stay-1", Priority: "ASAP"}, workorder.CodeInvalidPriority},
		{"unknown equipment", &commands.CreateWorkOrderCommand{ContainerStayID: "stay-1", EquipmentID: &missingVehicle}, workorder.CodeVehicleNotFound},
		{"stay already placed", &commands.CreateWorkOrderCommand{ContainerStayID: "stay-placed", Target: &target}, yard.CodeContainerAlreadyPlaced},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Mediator.Send(ctx, tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.code, shared.CodeOf(err))
		})
	}

	orders, err := f.UoW.Repositories().WorkOrders.List(ctx, workorder.ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCompleteWorkOrder_CreatesAutoAssignedPosition(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoLaden)
	require.NoError(t, err)
	created := createOrder(t, f, "stay-1", nil)

	f.Clock.Advance(10 * time.Minute)
	resp, err := mediator.SendTyped[*commands.CompleteWorkOrderResponse](ctx, f.Mediator, &commands.CompleteWorkOrderCommand{
		WorkOrderID: created.WorkOrder.ID(),
		Operator:    "op-7",
	})
	require.NoError(t, err)

	assert.Equal(t, workorder.StatusCompleted, resp.WorkOrder.Status())
	assert.Equal(t, "op-7", resp.WorkOrder.Operator())
	require.NotNil(t, resp.WorkOrder.CompletedAt())
	assert.Equal(t, helpers.FixtureStart.Add(10*time.Minute), *resp.WorkOrder.CompletedAt())

	assert.True(t, resp.Position.AutoAssigned())
	assert.Equal(t, created.WorkOrder.Target(), resp.Position.Coordinate())

	stored, err := f.UoW.Repositories().WorkOrders.FindByID(ctx, created.WorkOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusCompleted, stored.Status())

	assert.Equal(t, []string{
		workorder.EventWorkOrderCreated,
		yard.EventPositionAssigned,
		workorder.EventWorkOrderCompleted,
	}, f.Publisher.Types())
}

func TestCompleteWorkOrder_TargetTakenLeavesOrderPending(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-other", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	target := helpers.MustCoordinate("C-R07-B04-T1-B")
	created := createOrder(t, f, "stay-1", &target)

	// Another process places a different container at the target first
	_, err = f.Place(ctx, "stay-other", target.String())
	require.NoError(t, err)

	_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: created.WorkOrder.ID()})
	require.Error(t, err)
	assert.Equal(t, yard.CodePositionOccupied, shared.CodeOf(err))

	repos := f.UoW.Repositories()
	stored, err := repos.WorkOrders.FindByID(ctx, created.WorkOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusPending, stored.Status())
	assert.Nil(t, stored.CompletedAt())

	position, err := repos.Positions.FindByStay(ctx, "stay-1")
	require.NoError(t, err)
	assert.Nil(t, position)
}

func TestCompleteWorkOrder_ChecksVehicleAndStatus(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	require.NoError(t, f.AddEquipment(ctx, "rs-1", workorder.EquipmentReachStacker, true))
	require.NoError(t, f.AddEquipment(ctx, "rs-2", workorder.EquipmentReachStacker, true))
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	created := createOrder(t, f, "stay-1", nil)

	_, err = f.Mediator.Send(ctx, &commands.AssignToVehicleCommand{WorkOrderID: created.WorkOrder.ID(), EquipmentID: "rs-1"})
	require.NoError(t, err)

	other := "rs-2"
	_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: created.WorkOrder.ID(), EquipmentID: &other})
	assert.Equal(t, workorder.CodeNotAssignedToVehicle, shared.CodeOf(err))

	assigned := "rs-1"
	_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: created.WorkOrder.ID(), EquipmentID: &assigned})
	require.NoError(t, err)

	_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: created.WorkOrder.ID()})
	assert.Equal(t, workorder.CodeInvalidStatus, shared.CodeOf(err))

	_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: "wo-missing"})
	assert.Equal(t, workorder.CodeWorkOrderNotFound, shared.CodeOf(err))
}

func TestAssignToVehicle(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	require.NoError(t, f.AddEquipment(ctx, "rs-1", workorder.EquipmentReachStacker, true))
	require.NoError(t, f.AddEquipment(ctx, "sc-9", workorder.EquipmentStraddleCarrier, false))
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	created := createOrder(t, f, "stay-1", nil)

	_, err = f.Mediator.Send(ctx, &commands.AssignToVehicleCommand{WorkOrderID: created.WorkOrder.ID(), EquipmentID: "sc-9"})
	assert.Equal(t, workorder.CodeVehicleNotFound, shared.CodeOf(err), "inactive equipment")

	resp, err := mediator.SendTyped[*commands.AssignToVehicleResponse](ctx, f.Mediator, &commands.AssignToVehicleCommand{
		WorkOrderID: created.WorkOrder.ID(),
		EquipmentID: "rs-1",
	})
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusPending, resp.WorkOrder.Status())
	assert.True(t, resp.WorkOrder.IsAssignedTo("rs-1"))
	require.NotNil(t, resp.WorkOrder.AssignedAt())

	stored, err := f.UoW.Repositories().WorkOrders.FindByID(ctx, created.WorkOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusPending, stored.Status())
	assert.True(t, stored.IsAssignedTo("rs-1"))

	_, err = f.Mediator.Send(ctx, &commands.UpdateWorkOrderStatusCommand{WorkOrderID: created.WorkOrder.ID(), Status: "ACCEPTED"})
	require.NoError(t, err)
	_, err = f.Mediator.Send(ctx, &commands.AssignToVehicleCommand{WorkOrderID: created.WorkOrder.ID(), EquipmentID: "rs-1"})
	assert.Equal(t, workorder.CodeInvalidStatus, shared.CodeOf(err))
}

func TestCompleteWorkOrder_AfterAssignment(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	require.NoError(t, f.AddEquipment(ctx, "rs-1", workorder.EquipmentReachStacker, true))
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	created := createOrder(t, f, "stay-1", nil)
	_, err = f.Mediator.Send(ctx, &commands.AssignToVehicleCommand{WorkOrderID: created.WorkOrder.ID(), EquipmentID: "rs-1"})
	require.NoError(t, err)

	// Act
	vehicle := "rs-1"
	resp, err := mediator.SendTyped[*commands.CompleteWorkOrderResponse](ctx, f.Mediator, &commands.CompleteWorkOrderCommand{
		WorkOrderID: created.WorkOrder.ID(),
		EquipmentID: &vehicle,
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusCompleted, resp.WorkOrder.Status())
	assert.Equal(t, created.WorkOrder.Target(), resp.Position.Coordinate())
}

func TestCompleteWorkOrder_OnlyFromPending(t *testing.T) {
	for _, status := range []string{"ASSIGNED", "ACCEPTED", "IN_PROGRESS"} {
		t.Run(status, func(t *testing.T) {
			// Arrange
			ctx := context.Background()
			f := helpers.NewYardFixture(t)
			_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
			require.NoError(t, err)
			created := createOrder(t, f, "stay-1", nil)
			_, err = f.Mediator.Send(ctx, &commands.UpdateWorkOrderStatusCommand{WorkOrderID: created.WorkOrder.ID(), Status: status})
			require.NoError(t, err)

			// Act
			_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: created.WorkOrder.ID()})

			// Assert
			require.Error(t, err)
			assert.Equal(t, workorder.CodeInvalidStatus, shared.CodeOf(err))

			repos := f.UoW.Repositories()
			stored, err := repos.WorkOrders.FindByID(ctx, created.WorkOrder.ID())
			require.NoError(t, err)
			assert.Equal(t, workorder.Status(status), stored.Status())
			assert.Nil(t, stored.CompletedAt())

			position, err := repos.Positions.FindByStay(ctx, "stay-1")
			require.NoError(t, err)
			assert.Nil(t, position)
		})
	}
}

func TestUpdateStatusAndCancel(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	created := createOrder(t, f, "stay-1", nil)
	id := created.WorkOrder.ID()

	resp, err := mediator.SendTyped[*commands.UpdateWorkOrderStatusResponse](ctx, f.Mediator, &commands.UpdateWorkOrderStatusCommand{
		WorkOrderID: id,
		Status:      "in_progress",
	})
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusPending, resp.Previous)
	assert.Equal(t, workorder.StatusInProgress, resp.WorkOrder.Status())

	_, err = f.Mediator.Send(ctx, &commands.UpdateWorkOrderStatusCommand{WorkOrderID: id, Status: "ACCEPTED"})
	assert.Equal(t, workorder.CodeInvalidStatus, shared.CodeOf(err), "no way back from IN_PROGRESS")

	_, err = f.Mediator.Send(ctx, &commands.UpdateWorkOrderStatusCommand{WorkOrderID: id, Status: "COMPLETED"})
	assert.Equal(t, workorder.CodeInvalidStatus, shared.CodeOf(err), "completion has its own command")

	cancelled, err := mediator.SendTyped[*commands.CancelWorkOrderResponse](ctx, f.Mediator, &commands.CancelWorkOrderCommand{
		WorkOrderID: id,
		Reason:      "vessel delayed",
	})
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusCancelled, cancelled.WorkOrder.Status())
	assert.Equal(t, "vessel delayed", cancelled.WorkOrder.CancelReason())

	_, err = f.Mediator.Send(ctx, &commands.CancelWorkOrderCommand{WorkOrderID: id})
	assert.Equal(t, workorder.CodeInvalidStatus, shared.CodeOf(err))

	// A cancelled order frees the stay for a new one
	again := createOrder(t, f, "stay-1", nil)
	assert.NotEqual(t, id, again.WorkOrder.ID())
}

func TestCompleteWorkOrder_PublishFailureDoesNotUndoCommit(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-1", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	created := createOrder(t, f, "stay-1", nil)

	f.Publisher.FailWith(errors.New("broker down"))
	_, err = f.Mediator.Send(ctx, &commands.CompleteWorkOrderCommand{WorkOrderID: created.WorkOrder.ID()})
	require.NoError(t, err)

	position, err := f.UoW.Repositories().Positions.FindByStay(ctx, "stay-1")
	require.NoError(t, err)
	require.NotNil(t, position)
}
