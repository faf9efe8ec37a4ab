package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetDispatchPlanQueryIsNotConstructed = errors.New(
	"GetDispatchPlanQuery must be created via NewGetDispatchPlanQuery constructor",
)

// GetDispatchPlanQuery reads what a partial dispatch of the order may contain.
type GetDispatchPlanQuery struct {
	principal ports.Principal
	orderID   kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetDispatchPlanQuery(principal ports.Principal, orderID string) (GetDispatchPlanQuery, error) {
	id, idErr := kernel.NewOrderID(orderID)
	if err := errors.Join(principal.Validate(), idErr); err != nil {
		return GetDispatchPlanQuery{}, err
	}

	return GetDispatchPlanQuery{
		principal: principal,
		orderID:   id,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetDispatchPlanQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchPlanQueryIsNotConstructed)
}

func (q GetDispatchPlanQuery) Principal() ports.Principal {
	return q.principal
}

func (q GetDispatchPlanQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// GetDispatchPlanQueryResponse lists the resolved quantities per product.
// SelectableComplementary are the order's products not yet sent as
// complementary items.
type GetDispatchPlanQueryResponse struct {
	OrderID                 string
	Status                  order.Status
	CanDispatch             bool
	Products                []PlannedProduct
	Complementary           []dispatch.ComplementaryItem
	SelectableComplementary []string
}

// PlannedProduct carries the quantities in order line units. A nil quantity is
// unknown. AvailableDisplay is the available stock in packets or kg.
type PlannedProduct struct {
	ProductID        string
	ItemID           string
	ProductName      string
	Available        *decimal.Decimal
	Needed           *decimal.Decimal
	Ordered          *decimal.Decimal
	Remaining        *decimal.Decimal
	AvailableDisplay *measure.StockDisplay
}
