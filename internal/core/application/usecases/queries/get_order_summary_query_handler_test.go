package queries_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGetOrderSummaryQueryHandler_Handle(t *testing.T) {
	t.Run("should summarize weights and allowed actions", func(t *testing.T) {
		// Given
		store := &MockOrderStore{}
		o := salesOrder(t, order.Confirmed,
			item(t, "P1", "20", measure.Kilograms, measure.Packed),
			item(t, "P2", "300", measure.Kilograms, measure.Loose),
		)
		store.On("GetOrder", mock.Anything, principal, o.ID()).Return(o, nil).Once()
		handler := queries.NewGetOrderSummaryQueryHandler(store)
		query, err := queries.NewGetOrderSummaryQuery(principal, "SO-4004")
		require.NoError(t, err)

		// When
		summary, err := handler.Handle(t.Context(), query)

		// Then
		require.NoError(t, err)
		assert.Equal(t, "SO-4004", summary.OrderID)
		assert.Equal(t, "SO/24/4004", summary.OrderNumber)
		assert.Equal(t, order.Confirmed, summary.Status)
		assert.Equal(t, o.Version(), summary.Version)
		assert.Contains(t, summary.AllowedActions, order.Dispatch)
		assert.Contains(t, summary.AllowedActions, order.Cancel)
		assert.NotContains(t, summary.AllowedActions, order.Deliver)

		require.Len(t, summary.Items, 2)
		packed := summary.Items[0]
		assert.Equal(t, "P1", packed.ProductID)
		assert.True(t, decimal.NewFromInt(1000).Equal(packed.Kilograms), "got %s", packed.Kilograms)
		assert.Equal(t, measure.DisplayPackets, packed.Display.Unit)
		assert.True(t, decimal.NewFromInt(20).Equal(packed.Display.Value), "got %s", packed.Display.Value)

		loose := summary.Items[1]
		assert.True(t, decimal.NewFromInt(300).Equal(loose.Kilograms))
		assert.Equal(t, measure.DisplayKilograms, loose.Display.Unit)
		assert.True(t, decimal.NewFromInt(300).Equal(loose.Display.Value))

		assert.True(t, decimal.NewFromInt(1300).Equal(summary.TotalKilograms))
		assert.True(t, decimal.RequireFromString("1.3").Equal(summary.TotalTons), "got %s", summary.TotalTons)
		store.AssertExpectations(t)
	})

	t.Run("should keep the order store tons formula for tons lines", func(t *testing.T) {
		// Given
		store := &MockOrderStore{}
		o := salesOrder(t, order.Pending, item(t, "P1", "4", measure.Tons, measure.Packed))
		store.On("GetOrder", mock.Anything, principal, o.ID()).Return(o, nil).Once()
		query, _ := queries.NewGetOrderSummaryQuery(principal, "SO-4004")

		// When
		summary, err := queries.NewGetOrderSummaryQueryHandler(store).Handle(t.Context(), query)

		// Then
		require.NoError(t, err)
		assert.True(t, decimal.NewFromFloat(0.2).Equal(summary.TotalKilograms), "got %s", summary.TotalKilograms)
		assert.True(t, decimal.RequireFromString("0.0002").Equal(summary.TotalTons), "got %s", summary.TotalTons)
	})

	t.Run("should return order store error", func(t *testing.T) {
		// Given
		store := &MockOrderStore{}
		storeErr := errors.New("boom")
		store.On("GetOrder", mock.Anything, principal, mock.Anything).Return(nil, storeErr).Once()
		query, _ := queries.NewGetOrderSummaryQuery(principal, "SO-4004")

		// When
		_, err := queries.NewGetOrderSummaryQueryHandler(store).Handle(t.Context(), query)

		// Then
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("should reject query not built by constructor", func(t *testing.T) {
		store := &MockOrderStore{}

		_, err := queries.NewGetOrderSummaryQueryHandler(store).Handle(t.Context(), queries.GetOrderSummaryQuery{})

		assert.ErrorIs(t, err, queries.ErrGetOrderSummaryQueryIsNotConstructed)
		store.AssertNotCalled(t, "GetOrder", mock.Anything, mock.Anything, mock.Anything)
	})
}
