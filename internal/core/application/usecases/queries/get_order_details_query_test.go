package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/pkg/errs"
)

func TestNewGetOrderDetailsQuery(t *testing.T) {
	t.Run("creates a valid query", func(t *testing.T) {
		query, err := queries.NewGetOrderDetailsQuery("order-1")
		require.NoError(t, err)
		assert.NoError(t, query.Validate())
		assert.Equal(t, "order-1", query.OrderID())
	})

	t.Run("rejects a blank order id", func(t *testing.T) {
		_, err := queries.NewGetOrderDetailsQuery("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var query queries.GetOrderDetailsQuery
		assert.ErrorIs(t, query.Validate(), queries.ErrGetOrderDetailsQueryIsNotConstructed)
	})
}
