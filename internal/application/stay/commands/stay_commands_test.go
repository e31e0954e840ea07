package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/application/mediator"
	"github.com/andrescamacho/containeryard-go/internal/application/stay/commands"
	workOrderCommands "github.com/andrescamacho/containeryard-go/internal/application/workorder/commands"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

func TestRegisterArrival(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)

	resp, err := mediator.SendTyped[*commands.RegisterArrivalResponse](ctx, f.Mediator, &commands.RegisterArrivalCommand{
		ContainerNumber: " mscu1234565 ",
		ISOType:         "45g1",
		Cargo:           "laden",
	})
	require.NoError(t, err)

	assert.Equal(t, "MSCU1234565", resp.Stay.ContainerNumber)
	assert.Equal(t, yard.Size40, resp.Stay.Size)
	assert.Equal(t, yard.CargoLaden, resp.Stay.Cargo)
	assert.Contains(t, resp.Stay.ID, "stay-MSCU1234565-")
	assert.Equal(t, helpers.FixtureStart, resp.Stay.ArrivedAt)

	stored, err := f.UoW.Repositories().Stays.FindByID(ctx, resp.Stay.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, yard.Size40, stored.Size)
	assert.Equal(t, []string{yard.EventContainerArrived}, f.Publisher.Types())
}

func TestRegisterArrival_RejectsBadInput(t *testing.T) {
	f := helpers.NewYardFixture(t)

	tests := []struct {
		name string
		cmd  *commands.RegisterArrivalCommand
		code string
	}{
		{"missing number", &commands.RegisterArrivalCommand{ISOType: "22G1", Cargo: "EMPTY"}, shared.CodeValidation},
		{"unknown size", &commands.RegisterArrivalCommand{ContainerNumber: "X", ISOType: "99G1", Cargo: "EMPTY"}, yard.CodeUnknownSizeClass},
		{"unknown cargo", &commands.RegisterArrivalCommand{ContainerNumber: "X", ISOType: "22G1", Cargo: "HALF"}, yard.CodeInvalidCargoStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Mediator.Send(context.Background(), tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.code, shared.CodeOf(err))
		})
	}
}

func TestRecordExit_ReleasesPositionAndCancelsOrder(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-placed", "MSCU0000001", "22G1", yard.CargoEmpty)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-ordered", "MSCU0000002", "22G1", yard.CargoEmpty)
	require.NoError(t, err)

	_, err = f.Place(ctx, "stay-placed", "A-R06-B01-T1-A")
	require.NoError(t, err)
	created, err := mediator.SendTyped[*workOrderCommands.CreateWorkOrderResponse](ctx, f.Mediator, &workOrderCommands.CreateWorkOrderCommand{
		ContainerStayID: "stay-ordered",
	})
	require.NoError(t, err)

	f.Clock.Advance(2 * time.Hour)
	f.Publisher.Reset()

	placed, err := mediator.SendTyped[*commands.RecordExitResponse](ctx, f.Mediator, &commands.RecordExitCommand{StayID: "stay-placed"})
	require.NoError(t, err)
	require.NotNil(t, placed.ReleasedPosition)
	assert.Nil(t, placed.CancelledWorkOrder)
	require.NotNil(t, placed.Stay.ExitedAt)
	assert.Equal(t, helpers.FixtureStart.Add(2*time.Hour), *placed.Stay.ExitedAt)

	ordered, err := mediator.SendTyped[*commands.RecordExitResponse](ctx, f.Mediator, &commands.RecordExitCommand{StayID: "stay-ordered"})
	require.NoError(t, err)
	assert.Nil(t, ordered.ReleasedPosition)
	require.NotNil(t, ordered.CancelledWorkOrder)
	assert.Equal(t, workorder.StatusCancelled, ordered.CancelledWorkOrder.Status())

	repos := f.UoW.Repositories()
	position, err := repos.Positions.FindByStay(ctx, "stay-placed")
	require.NoError(t, err)
	assert.Nil(t, position)

	order, err := repos.WorkOrders.FindByID(ctx, created.WorkOrder.ID())
	require.NoError(t, err)
	assert.Equal(t, workorder.StatusCancelled, order.Status())

	assert.Equal(t, []string{
		yard.EventPositionReleased,
		yard.EventContainerExited,
		workorder.EventWorkOrderCancelled,
		yard.EventContainerExited,
	}, f.Publisher.Types())
}

func TestRecordExit_Guards(t *testing.T) {
	ctx := context.Background()
	f := helpers.NewYardFixture(t)
	_, err := f.Arrive(ctx, "stay-low", "MSCU0000001", "22G1", yard.CargoLaden)
	require.NoError(t, err)
	_, err = f.Arrive(ctx, "stay-high", "MSCU0000002", "22G1", yard.CargoLaden)
	require.NoError(t, err)
	_, err = f.Place(ctx, "stay-low", "A-R06-B01-T1-A")
	require.NoError(t, err)
	_, err = f.Place(ctx, "stay-high", "A-R06-B01-T2-A")
	require.NoError(t, err)

	_, err = f.Mediator.Send(ctx, &commands.RecordExitCommand{StayID: "stay-low"})
	assert.Equal(t, yard.CodeContainerBlocked, shared.CodeOf(err))

	stay, err := f.UoW.Repositories().Stays.FindByID(ctx, "stay-low")
	require.NoError(t, err)
	assert.False(t, stay.HasExited(), "blocked exit rolls back")

	_, err = f.Mediator.Send(ctx, &commands.RecordExitCommand{StayID: "stay-high"})
	require.NoError(t, err)
	_, err = f.Mediator.Send(ctx, &commands.RecordExitCommand{StayID: "stay-high"})
	assert.Equal(t, yard.CodeContainerExited, shared.CodeOf(err))

	_, err = f.Mediator.Send(ctx, &commands.RecordExitCommand{StayID: "nope"})
	assert.Equal(t, yard.CodeContainerStayNotFound, shared.CodeOf(err))

	// Exited stays cannot be placed or ordered
	_, err = f.Engine.Suggest(ctx, "stay-high", "")
	assert.Equal(t, yard.CodeContainerExited, shared.CodeOf(err))
	_, err = f.Mediator.Send(ctx, &workOrderCommands.CreateWorkOrderCommand{ContainerStayID: "stay-high"})
	assert.Equal(t, yard.CodeContainerExited, shared.CodeOf(err))
}
