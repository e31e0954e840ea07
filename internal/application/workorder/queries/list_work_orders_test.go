package queries_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/containeryard-go/internal/application/workorder/queries"
	"github.com/andrescamacho/containeryard-go/internal/domain/shared"
	"github.com/andrescamacho/containeryard-go/test/helpers"
)

func TestListByEquipment_RequiresEquipmentID(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := helpers.NewYardFixture(t)

	// Act
	_, err := f.Mediator.Send(ctx, &queries.ListByEquipmentQuery{EquipmentID: "", IncludeCompleted: true})

	// Assert
	require.Error(t, err)
	assert.Equal(t, shared.CodeValidation, shared.CodeOf(err))

	var invalid *shared.ValidationError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "equipmentId", invalid.Field)
}
