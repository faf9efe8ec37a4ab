package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var updatedAt = time.Date(2024, 5, 14, 9, 30, 0, 0, time.UTC)

func packedItem(t *testing.T, productID, bags string) order.Item {
	t.Helper()
	it, err := order.NewItem(order.ItemParams{
		ID:            "item-" + productID,
		ProductID:     productID,
		Quantity:      decimal.RequireFromString(bags),
		Unit:          measure.Kilograms,
		ProductType:   measure.Packed,
		PackageWeight: decimal.NewFromInt(50),
	})
	require.NoError(t, err)
	return it
}

func newOrder(t *testing.T, status order.Status, items ...order.Item) *order.SalesOrder {
	t.Helper()
	id, err := kernel.NewOrderID("SO-1001")
	require.NoError(t, err)
	o, err := order.RestoreSalesOrder(order.Snapshot{
		ID:          id,
		OrderNumber: "SO/24/1001",
		Status:      status,
		Items:       items,
		UpdatedAt:   updatedAt,
	})
	require.NoError(t, err)
	return o
}
