// Package queries contains the read operations of the fulfillment workflow.
// Queries never change an order; they return read models shaped for display.
package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery reads an order with its weights and the actions its
// status allows.
//
// Example:
//
//	query, err := NewGetOrderSummaryQuery(principal, "SO-1001")
//	if err != nil {
//	    return err
//	}
//	summary, err := handler.Handle(ctx, query)
//	fmt.Printf("%s weighs %s t\n", summary.OrderNumber, summary.TotalTons)
type GetOrderSummaryQuery struct {
	principal ports.Principal
	orderID   kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetOrderSummaryQuery(principal ports.Principal, orderID string) (GetOrderSummaryQuery, error) {
	id, idErr := kernel.NewOrderID(orderID)
	if err := errors.Join(principal.Validate(), idErr); err != nil {
		return GetOrderSummaryQuery{}, err
	}

	return GetOrderSummaryQuery{
		principal: principal,
		orderID:   id,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

func (q GetOrderSummaryQuery) Principal() ports.Principal {
	return q.principal
}

func (q GetOrderSummaryQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// GetOrderSummaryQueryResponse is the order read model.
// TotalTons follows the order-aggregation rules; each item additionally
// carries its weight in stock-display units (packets or kg).
type GetOrderSummaryQueryResponse struct {
	OrderID        string
	OrderNumber    string
	Status         order.Status
	Version        string
	AllowedActions []order.Action
	Items          []OrderItemSummary
	TotalKilograms decimal.Decimal
	TotalTons      decimal.Decimal
}

type OrderItemSummary struct {
	ItemID      string
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	Unit        measure.Unit
	ProductType measure.ProductType
	Kilograms   decimal.Decimal
	Display     measure.StockDisplay
}
