package commands_test

import (
	"context"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockFulfillmentBackend struct{ mock.Mock }

func (m *MockFulfillmentBackend) GetOrder(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
) (*order.SalesOrder, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SalesOrder), args.Error(1)
}

func (m *MockFulfillmentBackend) GetDispatchEligibility(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
) (dispatch.Eligibility, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(dispatch.Eligibility), args.Error(1)
}

func (m *MockFulfillmentBackend) GetPartialDispatchStatus(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
) (dispatch.StatusSnapshot, error) {
	args := m.Called(ctx, p, id)
	return args.Get(0).(dispatch.StatusSnapshot), args.Error(1)
}

func (m *MockFulfillmentBackend) Dispatch(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	manifest dispatch.Manifest,
	opts ports.CallOptions,
) (ports.TransitionResponse, error) {
	args := m.Called(ctx, p, id, manifest, opts)
	return args.Get(0).(ports.TransitionResponse), args.Error(1)
}

func (m *MockFulfillmentBackend) RequestDeliveryOTP(ctx context.Context, p ports.Principal, id kernel.OrderID) error {
	args := m.Called(ctx, p, id)
	return args.Error(0)
}

func (m *MockFulfillmentBackend) Deliver(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	otp order.OTPConfirmation,
	opts ports.CallOptions,
) (ports.TransitionResponse, error) {
	args := m.Called(ctx, p, id, otp, opts)
	return args.Get(0).(ports.TransitionResponse), args.Error(1)
}

func (m *MockFulfillmentBackend) UploadSignedInvoice(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	inv order.SignedInvoiceConfirmation,
) (ports.UploadResponse, error) {
	args := m.Called(ctx, p, id, inv)
	return args.Get(0).(ports.UploadResponse), args.Error(1)
}

func (m *MockFulfillmentBackend) Cancel(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	record order.CancellationRecord,
	opts ports.CallOptions,
) (ports.TransitionResponse, error) {
	args := m.Called(ctx, p, id, record, opts)
	return args.Get(0).(ports.TransitionResponse), args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) Publish(ctx context.Context, events ...order.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

type MockInvoiceArchive struct{ mock.Mock }

func (m *MockInvoiceArchive) Store(
	ctx context.Context,
	id kernel.OrderID,
	inv order.SignedInvoiceConfirmation,
) (string, error) {
	args := m.Called(ctx, id, inv)
	return args.String(0), args.Error(1)
}

type MockTransitionLedger struct{ mock.Mock }

func (m *MockTransitionLedger) Add(ctx context.Context, entry ports.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransitionLedger) Get(ctx context.Context, key string) (ports.LedgerEntry, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(ports.LedgerEntry), args.Error(1)
}

func (m *MockTransitionLedger) Update(ctx context.Context, entry ports.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTransitionLedger) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockTransitionLedger) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockOTPAttemptStore struct{ mock.Mock }

func (m *MockOTPAttemptStore) AddFailure(ctx context.Context, attempt ports.OTPAttempt) error {
	args := m.Called(ctx, attempt)
	return args.Error(0)
}

func (m *MockOTPAttemptStore) CountFailuresSince(ctx context.Context, id kernel.OrderID, since time.Time) (int, error) {
	args := m.Called(ctx, id, since)
	return args.Int(0), args.Error(1)
}

func (m *MockOTPAttemptStore) Clear(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOTPAttemptStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) TransitionLedger() ports.TransitionLedger {
	args := m.Called()
	return args.Get(0).(ports.TransitionLedger)
}

func (m *MockUoW) OTPAttempts() ports.OTPAttemptStore {
	args := m.Called()
	return args.Get(0).(ports.OTPAttemptStore)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}
