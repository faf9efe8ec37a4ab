package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// CallOptions tune a single state-changing call to the order store.
type CallOptions struct {
	// IdempotencyKey is forwarded as the Idempotency-Key header when set.
	IdempotencyKey string
}

// TransitionResponse is the order store's answer to a state-changing call.
// OrderStatus is order.Unknown when the store did not report one.
type TransitionResponse struct {
	OrderStatus order.Status
	Message     string
}

// UploadResponse is the order store's answer to a signed invoice upload.
type UploadResponse struct {
	Message string
}

// FulfillmentBackend is the order store. It owns the order record; this
// service only reads it and requests transitions through these calls.
//
// Transport failures are returned as *errs.NetworkError and non-success
// answers as *errs.BackendRejectionError carrying the server message.
type FulfillmentBackend interface {
	// GetOrder reads the current order record.
	GetOrder(ctx context.Context, p Principal, id kernel.OrderID) (*order.SalesOrder, error)

	// GetDispatchEligibility asks whether the order may be dispatched now.
	GetDispatchEligibility(ctx context.Context, p Principal, id kernel.OrderID) (dispatch.Eligibility, error)

	// GetPartialDispatchStatus reads per-product available, needed, ordered
	// and remaining quantities.
	GetPartialDispatchStatus(ctx context.Context, p Principal, id kernel.OrderID) (dispatch.StatusSnapshot, error)

	// Dispatch submits the manifest.
	Dispatch(ctx context.Context, p Principal, id kernel.OrderID, m dispatch.Manifest, opts CallOptions) (TransitionResponse, error)

	// RequestDeliveryOTP makes the store send a delivery OTP to the customer.
	RequestDeliveryOTP(ctx context.Context, p Principal, id kernel.OrderID) error

	// Deliver submits the OTP read out by the customer.
	Deliver(ctx context.Context, p Principal, id kernel.OrderID, otp order.OTPConfirmation, opts CallOptions) (TransitionResponse, error)

	// UploadSignedInvoice uploads the signed invoice as proof of delivery.
	UploadSignedInvoice(ctx context.Context, p Principal, id kernel.OrderID, inv order.SignedInvoiceConfirmation) (UploadResponse, error)

	// Cancel submits a cancellation or a dispatched return.
	Cancel(ctx context.Context, p Principal, id kernel.OrderID, record order.CancellationRecord, opts CallOptions) (TransitionResponse, error)
}
