package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	updatedAt = time.Date(2024, 6, 10, 7, 0, 0, 0, time.UTC)
	principal = ports.Principal{UserID: "user-7", Role: "dispatcher", Token: "token-7"}
)

func orderID(t *testing.T) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID("SO-4004")
	require.NoError(t, err)
	return id
}

func item(t *testing.T, productID string, qty string, unit measure.Unit, pt measure.ProductType) order.Item {
	t.Helper()
	p := order.ItemParams{
		ID:          "item-" + productID,
		ProductID:   productID,
		ProductName: "Product " + productID,
		Quantity:    decimal.RequireFromString(qty),
		Unit:        unit,
		ProductType: pt,
	}
	if pt == measure.Packed {
		p.PackageWeight = decimal.NewFromInt(50)
	}
	it, err := order.NewItem(p)
	require.NoError(t, err)
	return it
}

func salesOrder(t *testing.T, status order.Status, items ...order.Item) *order.SalesOrder {
	t.Helper()
	o, err := order.RestoreSalesOrder(order.Snapshot{
		ID:          orderID(t),
		OrderNumber: "SO/24/4004",
		Status:      status,
		Items:       items,
		UpdatedAt:   updatedAt,
	})
	require.NoError(t, err)
	return o
}
