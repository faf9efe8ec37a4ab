package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create packed item with hints", func(t *testing.T) {
		available := decimal.NewFromInt(40)

		it, err := order.NewItem(order.ItemParams{
			ProductID:     "P-1",
			Quantity:      decimal.NewFromInt(10),
			Unit:          measure.Kilograms,
			ProductType:   measure.Packed,
			PackageWeight: decimal.NewFromInt(50),
			Available:     &available,
		})

		require.NoError(t, err)
		require.NoError(t, it.Validate())
		assert.Equal(t, measure.Kilograms, it.PackageWeightUnit())
		got, ok := it.AvailableHint()
		require.True(t, ok)
		assert.True(t, available.Equal(got))
		_, ok = it.NeededHint()
		assert.False(t, ok)
		assert.Equal(t, measure.Packed, it.Line().ProductType)
	})

	t.Run("should create loose item without package weight", func(t *testing.T) {
		it, err := order.NewItem(order.ItemParams{
			ProductID:   "P-2",
			Quantity:    decimal.RequireFromString("250.5"),
			Unit:        measure.Tons,
			ProductType: measure.Loose,
		})

		require.NoError(t, err)
		assert.Equal(t, measure.Tons, it.Unit())
	})

	t.Run("should report every invalid field", func(t *testing.T) {
		_, err := order.NewItem(order.ItemParams{
			Quantity:    decimal.NewFromInt(-1),
			Unit:        measure.Grams,
			ProductType: measure.Packed,
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "productId")
		assert.Contains(t, err.Error(), "quantity")
		assert.Contains(t, err.Error(), "unit")
		assert.Contains(t, err.Error(), "packageWeight")
	})

	t.Run("should reject unknown product type", func(t *testing.T) {
		_, err := order.NewItem(order.ItemParams{
			ProductID:   "P-3",
			Quantity:    decimal.NewFromInt(1),
			Unit:        measure.Kilograms,
			ProductType: "bulk",
		})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value item is invalid", func(t *testing.T) {
		var it order.Item
		assert.Equal(t, order.ErrItemIsNotConstructed, it.Validate())
	})
}
