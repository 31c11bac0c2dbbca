package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/runtime"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
)

type MockOrderRuntime struct{ mock.Mock }

func (m *MockOrderRuntime) SubmitOrder(
	ctx context.Context,
	orderID string,
	items map[string]order.OrderItem,
	customer order.Customer,
) error {
	args := m.Called(ctx, orderID, items, customer)
	return args.Error(0)
}

func (m *MockOrderRuntime) PackAllocation(ctx context.Context, orderID, allocationID string) (string, error) {
	args := m.Called(ctx, orderID, allocationID)
	return args.String(0), args.Error(1)
}

func (m *MockOrderRuntime) UpdateTracking(ctx context.Context, orderID, allocationID string, status order.Status) error {
	args := m.Called(ctx, orderID, allocationID, status)
	return args.Error(0)
}

func TestSubmitOrderCommandHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("submits the order to the runtime", func(t *testing.T) {
		rt := new(MockOrderRuntime)
		rt.On("SubmitOrder", ctx, "order-1", testItems(t), testCustomer(t)).Return(nil).Once()
		handler := commands.NewSubmitOrderCommandHandler(rt)

		cmd, err := commands.NewSubmitOrderCommand("order-1", testItems(t), testCustomer(t))
		require.NoError(t, err)

		require.NoError(t, handler.Handle(ctx, cmd))
		rt.AssertExpectations(t)
	})

	t.Run("propagates runtime errors", func(t *testing.T) {
		rt := new(MockOrderRuntime)
		rt.On("SubmitOrder", ctx, "order-1", testItems(t), testCustomer(t)).
			Return(runtime.ErrOrderAlreadyExists).Once()
		handler := commands.NewSubmitOrderCommandHandler(rt)

		cmd, err := commands.NewSubmitOrderCommand("order-1", testItems(t), testCustomer(t))
		require.NoError(t, err)

		assert.ErrorIs(t, handler.Handle(ctx, cmd), runtime.ErrOrderAlreadyExists)
		rt.AssertExpectations(t)
	})

	t.Run("rejects an unconstructed command without touching the runtime", func(t *testing.T) {
		rt := new(MockOrderRuntime)
		handler := commands.NewSubmitOrderCommandHandler(rt)

		err := handler.Handle(ctx, commands.SubmitOrderCommand{})
		assert.ErrorIs(t, err, commands.ErrSubmitOrderCommandIsNotConstructed)
		rt.AssertNotCalled(t, "SubmitOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
