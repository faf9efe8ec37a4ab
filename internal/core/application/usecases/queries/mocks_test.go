package queries_test

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// MockOrderStore is a mock implementation of queries.DispatchPlanReader.
type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) GetOrder(ctx context.Context, p ports.Principal, id kernel.OrderID) (*order.SalesOrder, error) {
	args := m.Called(ctx, p, id)
	o, _ := args.Get(0).(*order.SalesOrder)
	return o, args.Error(1)
}

func (m *MockOrderStore) GetPartialDispatchStatus(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
) (dispatch.StatusSnapshot, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(dispatch.StatusSnapshot), args.Error(1)
}
