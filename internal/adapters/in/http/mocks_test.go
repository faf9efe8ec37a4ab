package http_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderActions struct{ mock.Mock }

func (m *MockOrderActions) LoadOrder(
	ctx context.Context,
	principal ports.Principal,
	orderID string,
) (*order.SalesOrder, error) {
	args := m.Called(ctx, principal, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

func (m *MockOrderActions) RequestDispatch(
	ctx context.Context,
	cmd commands.DispatchOrderCommand,
) (commands.DispatchResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchResult), args.Error(1)
}

func (m *MockOrderActions) RequestCancel(
	ctx context.Context,
	cmd commands.CancelOrderCommand,
) (commands.CancelResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.CancelResult), args.Error(1)
}

func (m *MockOrderActions) RequestDeliver(
	ctx context.Context,
	cmd commands.DeliverOrderCommand,
) (commands.DeliverResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DeliverResult), args.Error(1)
}

func (m *MockOrderActions) RequestDeliveryOTP(ctx context.Context, cmd commands.RequestDeliveryOTPCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockOrderSummaryHandler struct{ mock.Mock }

func (m *MockOrderSummaryHandler) Handle(
	ctx context.Context,
	query queries.GetOrderSummaryQuery,
) (queries.GetOrderSummaryQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetOrderSummaryQueryResponse), args.Error(1)
}

type MockDispatchPlanHandler struct{ mock.Mock }

func (m *MockDispatchPlanHandler) Handle(
	ctx context.Context,
	query queries.GetDispatchPlanQuery,
) (queries.GetDispatchPlanQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetDispatchPlanQueryResponse), args.Error(1)
}

type MockActionHistoryHandler struct{ mock.Mock }

func (m *MockActionHistoryHandler) Handle(
	ctx context.Context,
	query queries.GetOrderActionHistoryQuery,
) ([]queries.GetOrderActionHistoryQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetOrderActionHistoryQueryResponse), args.Error(1)
}
