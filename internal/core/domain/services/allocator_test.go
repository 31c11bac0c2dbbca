package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCustomer(t *testing.T) order.Customer {
	t.Helper()
	address, err := order.NewAddress("Some Street 42", "Some City", "Israel", 12345)
	require.NoError(t, err)
	customer, err := order.NewCustomer("Eran", "Eyal", address, "someone@gmail.com", "0521234567")
	require.NoError(t, err)
	return customer
}

func testItems(t *testing.T, count int) map[string]order.OrderItem {
	t.Helper()
	names := []string{"pencil", "pen", "notebook", "folder"}
	items := make(map[string]order.OrderItem, count)
	for i := 0; i < count; i++ {
		id := string(rune('1' + i))
		item, err := order.NewOrderItem(id, names[i%len(names)], i+1)
		require.NoError(t, err)
		items[id] = item
	}
	return items
}

func itemCount(allocations map[string]order.Allocation) int {
	total := 0
	for _, allocation := range allocations {
		total += len(allocation.Items())
	}
	return total
}

func TestNewAllocator(t *testing.T) {
	t.Run("requires_sites", func(t *testing.T) {
		_, err := services.NewAllocator(nil)
		require.ErrorIs(t, err, services.ErrNoAllocationSites)
	})

	t.Run("rejects_unconstructed_sites", func(t *testing.T) {
		_, err := services.NewAllocator([]services.AllocationSite{{}})
		require.ErrorIs(t, err, services.ErrAllocationSiteIsNotConstructed)
	})

	t.Run("default_sites_are_valid", func(t *testing.T) {
		sites := services.DefaultAllocationSites()
		require.Len(t, sites, 2)
		for _, site := range sites {
			require.NoError(t, site.Validate())
		}
	})
}

func TestAllocator_Allocate(t *testing.T) {
	customer := testCustomer(t)

	t.Run("single_item_always_yields_one_allocation", func(t *testing.T) {
		allocator, err := services.NewAllocatorWithRandom(
			services.DefaultAllocationSites(),
			func() float64 { return 0.99 }, // would split if it could
		)
		require.NoError(t, err)

		items := testItems(t, 1)
		allocations, err := allocator.Allocate(items, customer)

		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.Equal(t, 1, itemCount(allocations))
	})

	t.Run("coin_flip_below_half_yields_one_allocation", func(t *testing.T) {
		allocator, err := services.NewAllocatorWithRandom(
			services.DefaultAllocationSites(),
			func() float64 { return 0.1 },
		)
		require.NoError(t, err)

		items := testItems(t, 4)
		allocations, err := allocator.Allocate(items, customer)

		require.NoError(t, err)
		require.Len(t, allocations, 1)
		assert.Equal(t, len(items), itemCount(allocations))
	})

	t.Run("coin_flip_above_half_splits_into_two", func(t *testing.T) {
		allocator, err := services.NewAllocatorWithRandom(
			services.DefaultAllocationSites(),
			func() float64 { return 0.9 },
		)
		require.NoError(t, err)

		items := testItems(t, 4)
		allocations, err := allocator.Allocate(items, customer)

		require.NoError(t, err)
		require.Len(t, allocations, 2)

		one, ok := allocations["1"]
		require.True(t, ok)
		two, ok := allocations["2"]
		require.True(t, ok)
		assert.Len(t, one.Items(), 1)
		assert.Len(t, two.Items(), len(items)-1)
	})

	t.Run("items_are_covered_exactly_once", func(t *testing.T) {
		allocator, err := services.NewAllocatorWithRandom(
			services.DefaultAllocationSites(),
			func() float64 { return 0.9 },
		)
		require.NoError(t, err)

		items := testItems(t, 4)
		allocations, err := allocator.Allocate(items, customer)
		require.NoError(t, err)

		seen := make(map[string]bool)
		for _, allocation := range allocations {
			for id := range allocation.Items() {
				assert.False(t, seen[id], "item %s allocated twice", id)
				seen[id] = true
			}
		}
		assert.Len(t, seen, len(items))
	})

	t.Run("allocations_are_preseeded_allocated", func(t *testing.T) {
		allocator, err := services.NewAllocator(services.DefaultAllocationSites())
		require.NoError(t, err)

		allocations, err := allocator.Allocate(testItems(t, 2), customer)
		require.NoError(t, err)

		for _, allocation := range allocations {
			assert.Equal(t, order.Allocated, allocation.LatestStatus())
			assert.Empty(t, allocation.TrackingID())
			assert.NotEmpty(t, allocation.Courier())
		}
	})

	t.Run("rejects_empty_items", func(t *testing.T) {
		allocator, err := services.NewAllocator(services.DefaultAllocationSites())
		require.NoError(t, err)

		_, err = allocator.Allocate(nil, customer)
		require.Error(t, err)
	})

	t.Run("rejects_unconstructed_customer", func(t *testing.T) {
		allocator, err := services.NewAllocator(services.DefaultAllocationSites())
		require.NoError(t, err)

		var blank order.Customer
		_, err = allocator.Allocate(testItems(t, 1), blank)
		require.ErrorIs(t, err, order.ErrCustomerIsNotConstructed)
	})
}
