package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderActionHistoryQueryIsNotConstructed = errors.New(
	"GetOrderActionHistoryQuery must be created via NewGetOrderActionHistoryQuery constructor",
)

// GetOrderActionHistoryQuery lists the keyed workflow actions recorded for an order.
type GetOrderActionHistoryQuery struct {
	orderID kernel.OrderID

	guard guard.ConstructorGuard
}

func NewGetOrderActionHistoryQuery(orderID string) (GetOrderActionHistoryQuery, error) {
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return GetOrderActionHistoryQuery{}, err
	}

	return GetOrderActionHistoryQuery{
		orderID: id,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderActionHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderActionHistoryQueryIsNotConstructed)
}

func (q GetOrderActionHistoryQuery) OrderID() kernel.OrderID {
	return q.orderID
}

// GetOrderActionHistoryQueryResponse is one ledger entry. ResultStatus and
// ResultMessage are empty while the action is pending.
type GetOrderActionHistoryQueryResponse struct {
	IdempotencyKey string
	Action         order.Action
	State          string
	ResultStatus   order.Status
	ResultMessage  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
