package workorder_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/internal/domain/workorder"
	"github.com/andrescamacho/containeryard-go/internal/domain/yard"
)

var target = yard.Coordinate{Zone: "A", Row: 6, Bay: 1, Tier: 1, SubSlot: "A"}

func newOrder(t *testing.T, clock shared.Clock) *workorder.WorkOrder {
	t.Helper()
	wo, err := workorder.NewWorkOrder("wo-1", "stay-1", target, workorder.PriorityHigh, nil, "gate 3", clock)
	require.NoError(t, err)
	return wo
}

func ptr(s string) *string { return &s }

func TestNewWorkOrder_StartsPending(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))

	wo, err := workorder.NewWorkOrder("wo-1", "stay-1", target, workorder.PriorityLow, ptr("rs-1"), "", clock)

	require.NoError(t, err)
	assert.Equal(t, workorder.StatusPending, wo.Status())
	assert.Equal(t, clock.Now(), wo.CreatedAt())
	assert.True(t, wo.IsAssignedTo("rs-1"))
	assert.Nil(t, wo.CompletedAt())
}

func TestNewWorkOrder_Validation(t *testing.T) {
	_, err := workorder.NewWorkOrder("", "stay-1", target, workorder.PriorityLow, nil, "", nil)
	assert.True(t, shared.HasCode(err, shared.CodeValidation))

	_, err = workorder.NewWorkOrder("wo-1", "stay-1", target, workorder.Priority("SOON"), nil, "", nil)
	assert.True(t, shared.HasCode(err, workorder.CodeInvalidPriority))
}

func TestParsePriority(t *testing.T) {
	p, err := workorder.ParsePriority("urgent")
	require.NoError(t, err)
	assert.Equal(t, workorder.PriorityUrgent, p)

	p, err = workorder.ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, workorder.PriorityMedium, p)

	_, err = workorder.ParsePriority("CRITICAL")
	assert.True(t, shared.HasCode(err, workorder.CodeInvalidPriority))

	assert.Less(t, workorder.PriorityUrgent.Rank(), workorder.PriorityLow.Rank())
}

func TestWorkOrder_AssignOnlyFromPending(t *testing.T) {
	clock := shared.NewMockClock(time.Time{})
	wo := newOrder(t, clock)

	require.NoError(t, wo.AssignTo("rs-1"))
	assert.Equal(t, workorder.StatusPending, wo.Status())
	assert.NotNil(t, wo.AssignedAt())

	// reassigning a PENDING order replaces the vehicle
	require.NoError(t, wo.AssignTo("rs-2"))
	assert.True(t, wo.IsAssignedTo("rs-2"))

	require.NoError(t, wo.UpdateStatus(workorder.StatusAccepted))
	err := wo.AssignTo("rs-3")
	assert.True(t, shared.HasCode(err, workorder.CodeInvalidStatus))
	assert.True(t, wo.IsAssignedTo("rs-2"))
}

func TestWorkOrder_Complete(t *testing.T) {
	clock := shared.NewMockClock(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC))
	wo := newOrder(t, clock)
	require.NoError(t, wo.AssignTo("rs-1"))
	clock.Advance(15 * time.Minute)

	require.NoError(t, wo.Complete(ptr("rs-1"), "op-7"))

	assert.Equal(t, workorder.StatusCompleted, wo.Status())
	require.NotNil(t, wo.CompletedAt())
	assert.Equal(t, clock.Now(), *wo.CompletedAt())
	assert.Equal(t, "op-7", wo.Operator())
	assert.False(t, wo.IsActive())
}

func TestWorkOrder_CompleteWrongVehicle(t *testing.T) {
	wo := newOrder(t, nil)
	require.NoError(t, wo.AssignTo("rs-1"))

	err := wo.Complete(ptr("rs-2"), "")

	var notAssigned *workorder.NotAssignedToVehicleError
	require.ErrorAs(t, err, &notAssigned)
	assert.Equal(t, "rs-1", notAssigned.AssignedID)
	assert.Equal(t, workorder.StatusPending, wo.Status())
}

func TestWorkOrder_CompleteWithVehicleOnUnassignedOrder(t *testing.T) {
	wo := newOrder(t, nil)

	err := wo.Complete(ptr("rs-1"), "")

	assert.True(t, shared.HasCode(err, workorder.CodeNotAssignedToVehicle))
	assert.Equal(t, workorder.StatusPending, wo.Status())
}

func TestWorkOrder_CompleteOnlyFromPending(t *testing.T) {
	for _, status := range []workorder.Status{workorder.StatusAssigned, workorder.StatusAccepted, workorder.StatusInProgress} {
		t.Run(string(status), func(t *testing.T) {
			// Arrange
			wo := newOrder(t, nil)
			require.NoError(t, wo.UpdateStatus(status))

			// Act
			err := wo.Complete(nil, "op-1")

			// Assert
			assert.True(t, shared.HasCode(err, workorder.CodeInvalidStatus))
			assert.Equal(t, status, wo.Status())
			assert.Nil(t, wo.CompletedAt())
			assert.True(t, wo.IsActive())
			require.NoError(t, wo.Cancel("replanned"))
		})
	}
}

func TestWorkOrder_TerminalStatesAreFinal(t *testing.T) {
	done := newOrder(t, nil)
	require.NoError(t, done.Complete(nil, ""))

	cancelled := newOrder(t, nil)
	require.NoError(t, cancelled.Cancel("customer request"))
	assert.Equal(t, "customer request", cancelled.CancelReason())

	for _, wo := range []*workorder.WorkOrder{done, cancelled} {
		assert.True(t, shared.HasCode(wo.Complete(nil, ""), workorder.CodeInvalidStatus))
		assert.True(t, shared.HasCode(wo.Cancel(""), workorder.CodeInvalidStatus))
		assert.True(t, shared.HasCode(wo.AssignTo("rs-1"), workorder.CodeInvalidStatus))
		assert.True(t, shared.HasCode(wo.UpdateStatus(workorder.StatusInProgress), workorder.CodeInvalidStatus))
	}
}

func TestWorkOrder_UpdateStatusPassThrough(t *testing.T) {
	wo := newOrder(t, nil)
	require.NoError(t, wo.AssignTo("rs-1"))

	require.NoError(t, wo.UpdateStatus(workorder.StatusAccepted))
	require.NoError(t, wo.UpdateStatus(workorder.StatusInProgress))
	assert.Equal(t, workorder.StatusInProgress, wo.Status())

	// backwards and non-workflow targets are rejected
	assert.True(t, shared.HasCode(wo.UpdateStatus(workorder.StatusAccepted), workorder.CodeInvalidStatus))
	assert.True(t, shared.HasCode(wo.UpdateStatus(workorder.StatusCompleted), workorder.CodeInvalidStatus))

	require.NoError(t, wo.Cancel("vehicle breakdown"))
}

func TestStatus_Table(t *testing.T) {
	for _, s := range workorder.ActiveStatuses() {
		assert.True(t, s.IsActive(), s)
		assert.True(t, s.CanTransitionTo(workorder.StatusCancelled), s)
		assert.Equal(t, s == workorder.StatusPending, s.CanTransitionTo(workorder.StatusCompleted), s)
	}
	assert.False(t, workorder.StatusCompleted.IsActive())
	assert.False(t, workorder.StatusCancelled.CanTransitionTo(workorder.StatusPending))

	_, err := workorder.ParseStatus("DONE")
	assert.Error(t, err)
}

func TestWorkOrder_SnapshotRoundTrip(t *testing.T) {
	wo := newOrder(t, shared.NewMockClock(time.Time{}))
	require.NoError(t, wo.AssignTo("rs-9"))

	again := workorder.Reconstruct(wo.Snapshot(), nil)

	assert.Equal(t, wo.Snapshot(), again.Snapshot())
}
