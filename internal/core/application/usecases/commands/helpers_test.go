package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/logging"
	"fulfillment/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testOrderID = "SO-3003"

var (
	now       = time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)
	principal = ports.Principal{UserID: "user-7", Role: "dispatcher", Token: "token-7"}
)

func orderID(t *testing.T) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(testOrderID)
	require.NoError(t, err)
	return id
}

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

func salesOrder(t *testing.T, status order.Status, items ...order.Item) *order.SalesOrder {
	t.Helper()
	if len(items) == 0 {
		items = []order.Item{packedItem(t, "P1", "20")}
	}
	o, err := order.RestoreSalesOrder(order.Snapshot{
		ID:          orderID(t),
		OrderNumber: "SO/24/3003",
		Status:      status,
		Items:       items,
		UpdatedAt:   now.Add(-time.Hour),
	})
	require.NoError(t, err)
	return o
}

// fixture holds the mocks behind one set of handler dependencies.
type fixture struct {
	backend   *MockFulfillmentBackend
	publisher *MockOrderEventPublisher
	archive   *MockInvoiceArchive
	ledger    *MockTransitionLedger
	attempts  *MockOTPAttemptStore
	uow       *MockUoW
	factory   *MockUoWFactory
	metrics   *metrics.Metrics
	deps      commands.HandlerDeps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		backend:   &MockFulfillmentBackend{},
		publisher: &MockOrderEventPublisher{},
		archive:   &MockInvoiceArchive{},
		ledger:    &MockTransitionLedger{},
		attempts:  &MockOTPAttemptStore{},
		uow:       &MockUoW{},
		factory:   &MockUoWFactory{},
		metrics:   metrics.New(),
	}

	f.uow.On("Begin", mock.Anything).Return(nil).Maybe()
	f.uow.On("Commit", mock.Anything).Return(nil).Maybe()
	f.uow.On("Rollback", mock.Anything).Return(nil).Maybe()
	f.uow.On("TransitionLedger").Return(f.ledger).Maybe()
	f.uow.On("OTPAttempts").Return(f.attempts).Maybe()
	f.factory.On("Create").Return(f.uow).Maybe()

	f.deps = commands.HandlerDeps{
		Backend:    f.backend,
		Publisher:  f.publisher,
		UoWFactory: f.factory,
		Metrics:    f.metrics,
		Logger:     logging.Discard(),
		Clock:      func() time.Time { return now },
	}
	return f
}

func (f *fixture) stateMachine(t *testing.T) *commands.OrderStateMachine {
	t.Helper()
	verifier, err := services.NewDeliveryVerifier(services.DefaultOTPMaxAttempts, services.DefaultOTPLockoutWindow)
	require.NoError(t, err)
	return commands.NewOrderStateMachine(f.deps, verifier, f.archive)
}

func (f *fixture) assertExpectations(t *testing.T) {
	t.Helper()
	f.backend.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
	f.archive.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
	f.attempts.AssertExpectations(t)
}

// assertNothingCalled checks that nothing outside the process was used.
func (f *fixture) assertNothingCalled(t *testing.T) {
	t.Helper()
	assert.Empty(t, f.backend.Calls, "order store calls")
	assert.Empty(t, f.factory.Calls, "unit of work calls")
	assert.Empty(t, f.ledger.Calls, "ledger calls")
	assert.Empty(t, f.attempts.Calls, "otp attempt calls")
	assert.Empty(t, f.publisher.Calls, "publisher calls")
}

// expectOrder makes the order store return o.
func (f *fixture) expectOrder(o *order.SalesOrder) {
	f.backend.On("GetOrder", mock.Anything, principal, o.ID()).Return(o, nil).Once()
}

func (f *fixture) expectPublished(types ...order.EventType) {
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []order.DomainEvent) bool {
		if len(events) != len(types) {
			return false
		}
		for i, e := range events {
			if e.Type != types[i] {
				return false
			}
		}
		return true
	})).Return(nil).Once()
}
