package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

var thousand = decimal.NewFromInt(1000)

// OrderReader is the part of the order store the queries need.
type OrderReader interface {
	GetOrder(ctx context.Context, p ports.Principal, id kernel.OrderID) (*order.SalesOrder, error)
}

// GetOrderSummaryQueryHandler builds the order read model from the order store.
type GetOrderSummaryQueryHandler struct {
	orders OrderReader
}

func NewGetOrderSummaryQueryHandler(orders OrderReader) GetOrderSummaryQueryHandler {
	return GetOrderSummaryQueryHandler{orders: orders}
}

func (h GetOrderSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetOrderSummaryQuery,
) (GetOrderSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	o, err := h.orders.GetOrder(ctx, query.Principal(), query.OrderID())
	if err != nil {
		return GetOrderSummaryQueryResponse{}, err
	}

	return summarize(o), nil
}

func summarize(o *order.SalesOrder) GetOrderSummaryQueryResponse {
	items := o.Items()
	summaries := make([]OrderItemSummary, 0, len(items))
	for _, it := range items {
		line := it.Line()
		kg := measure.LineKilograms(line)
		summaries = append(summaries, OrderItemSummary{
			ItemID:      it.ID(),
			ProductID:   it.ProductID(),
			ProductName: it.ProductName(),
			Quantity:    it.Quantity(),
			Unit:        it.Unit(),
			ProductType: it.ProductType(),
			Kilograms:   kg,
			Display:     measure.DisplayStock(it.ProductType(), kg.Div(thousand), line.PackageWeightKilograms()),
		})
	}

	lines := o.Lines()
	return GetOrderSummaryQueryResponse{
		OrderID:        o.ID().String(),
		OrderNumber:    o.OrderNumber(),
		Status:         o.Status(),
		Version:        o.Version(),
		AllowedActions: o.Status().AllowedActions(),
		Items:          summaries,
		TotalKilograms: measure.AggregateKilograms(lines),
		TotalTons:      measure.AggregateTons(lines),
	}
}
