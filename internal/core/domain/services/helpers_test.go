package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 3, 14, 0, 0, 0, time.UTC)

type itemOption func(*order.ItemParams)

func withAvailable(v string) itemOption {
	return func(p *order.ItemParams) {
		d := decimal.RequireFromString(v)
		p.Available = &d
	}
}

func withNeeded(v string) itemOption {
	return func(p *order.ItemParams) {
		d := decimal.RequireFromString(v)
		p.Needed = &d
	}
}

func packed(t *testing.T, productID, bags string, opts ...itemOption) order.Item {
	t.Helper()
	p := order.ItemParams{
		ID:            "item-" + productID,
		ProductID:     productID,
		Quantity:      decimal.RequireFromString(bags),
		Unit:          measure.Kilograms,
		ProductType:   measure.Packed,
		PackageWeight: decimal.NewFromInt(50),
	}
	for _, opt := range opts {
		opt(&p)
	}
	it, err := order.NewItem(p)
	require.NoError(t, err)
	return it
}

func salesOrder(t *testing.T, status order.Status, items ...order.Item) *order.SalesOrder {
	t.Helper()
	id, err := kernel.NewOrderID("SO-2002")
	require.NoError(t, err)
	o, err := order.RestoreSalesOrder(order.Snapshot{ID: id, Status: status, Items: items, UpdatedAt: now.Add(-time.Hour)})
	require.NoError(t, err)
	return o
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
