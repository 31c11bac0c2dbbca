package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("constructed guard validates with any error", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("tracking label not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero value guard returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard
		notConstructed := errors.New("allocation must be created via NewAllocation")

		err := g.Validate(notConstructed)

		require.Error(t, err)
		assert.Equal(t, notConstructed, err)
	})

	t.Run("zero value guard falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default error names the constructor requirement", func(t *testing.T) {
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardInValueObject exercises the guard the way the order
// value objects embed it: a validating constructor sets the guard, and
// Validate detects instances that bypassed it.
func TestConstructorGuardInValueObject(t *testing.T) {
	type trackingLabel struct {
		courier string
		code    string
		guard   guard.ConstructorGuard
	}

	errLabelNotConstructed := errors.New("tracking label must be created via newTrackingLabel")

	newTrackingLabel := func(courier, code string) (trackingLabel, error) {
		if courier == "" {
			return trackingLabel{}, errors.New("courier is required")
		}
		if code == "" {
			return trackingLabel{}, errors.New("code is required")
		}
		return trackingLabel{
			courier: courier,
			code:    code,
			guard:   guard.NewConstructorGuard(),
		}, nil
	}

	t.Run("constructed value object passes validation", func(t *testing.T) {
		label, err := newTrackingLabel("FedEx", "9000177")

		require.NoError(t, err)
		require.NoError(t, label.guard.Validate(errLabelNotConstructed))
		assert.Equal(t, "FedEx", label.courier)
		assert.Equal(t, "9000177", label.code)
	})

	t.Run("zero value object fails validation", func(t *testing.T) {
		var label trackingLabel

		err := label.guard.Validate(errLabelNotConstructed)

		require.Error(t, err)
		assert.Equal(t, errLabelNotConstructed, err)
	})

	t.Run("constructor rejects invalid inputs before guarding", func(t *testing.T) {
		_, err := newTrackingLabel("", "9000177")
		require.Error(t, err)

		_, err = newTrackingLabel("FedEx", "")
		require.Error(t, err)
	})
}

func TestConstructorGuardPerOwnerErrors(t *testing.T) {
	ownerErrors := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "order item",
			expectedError: errors.New("order item must be created via NewOrderItem"),
		},
		{
			name:          "allocation",
			expectedError: errors.New("allocation must be created via NewAllocation"),
		},
		{
			name:          "customer",
			expectedError: errors.New("customer must be created via NewCustomer"),
		},
		{
			name:          "nil error uses default",
			expectedError: nil,
		},
	}

	for _, tc := range ownerErrors {
		t.Run(tc.name, func(t *testing.T) {
			g := guard.NewConstructorGuard()

			require.NoError(t, g.Validate(tc.expectedError))
		})
	}
}

// The guard is read-only after construction, so concurrent validation from
// the per-order goroutines must be safe.
func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	notConstructed := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 500 {
				err := g.Validate(notConstructed)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}

func TestConstructorGuardCopySemantics(t *testing.T) {
	t.Run("a copied guard keeps its constructed state", func(t *testing.T) {
		g := guard.NewConstructorGuard()
		notConstructed := errors.New("not constructed")

		copied := g

		require.NoError(t, g.Validate(notConstructed))
		require.NoError(t, copied.Validate(notConstructed))
	})
}
