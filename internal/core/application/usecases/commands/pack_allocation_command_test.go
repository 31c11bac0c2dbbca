package commands_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"
)

func TestNewPackAllocationCommand(t *testing.T) {
	t.Run("creates a valid command", func(t *testing.T) {
		cmd, err := commands.NewPackAllocationCommand("order-1", "1")
		require.NoError(t, err)
		assert.NoError(t, cmd.Validate())
		assert.Equal(t, "order-1", cmd.OrderID())
		assert.Equal(t, "1", cmd.AllocationID())
	})

	t.Run("rejects blank identifiers", func(t *testing.T) {
		_, err := commands.NewPackAllocationCommand("", "1")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = commands.NewPackAllocationCommand("order-1", "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.PackAllocationCommand
		assert.ErrorIs(t, cmd.Validate(), commands.ErrPackAllocationCommandIsNotConstructed)
	})
}
