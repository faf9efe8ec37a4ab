package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
)

// OrderStateMachine is the entry point for every order action. It checks
// transitions against the status table and routes each request to its handler.
//
// Transitions:
//
//	Pending, AwaitingPaymentConfirmation, Confirmed --cancel--> Cancelled
//	Confirmed --dispatch--> Dispatched
//	Dispatched --deliver--> Delivered
//	Dispatched --return-cancel--> Cancelled
//
// Delivered and Cancelled are terminal. Each action is requested on an order
// the caller already holds (see LoadOrder). Illegal transitions and invalid
// input fail locally, before the ledger or the order store is called.
// Failures of the order store come back as *ActionError and are never retried.
type OrderStateMachine struct {
	backend ports.FulfillmentBackend

	dispatch   DispatchOrderCommandHandler
	cancel     CancelOrderCommandHandler
	deliver    DeliverOrderCommandHandler
	requestOTP RequestDeliveryOTPCommandHandler
}

// NewOrderStateMachine wires the action handlers around shared dependencies.
// The handlers share one locker, so actions on an order never overlap.
func NewOrderStateMachine(
	deps HandlerDeps,
	verifier services.DeliveryVerifier,
	archive ports.InvoiceArchive,
) *OrderStateMachine {
	if deps.Locker == nil {
		deps.Locker = NewOrderLocker()
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}

	return &OrderStateMachine{
		backend:    deps.Backend,
		dispatch:   NewDispatchOrderCommandHandler(deps, services.NewDispatchReconciler()),
		cancel:     NewCancelOrderCommandHandler(deps, services.NewCancellationWorkflow()),
		deliver:    NewDeliverOrderCommandHandler(deps, verifier, archive),
		requestOTP: NewRequestDeliveryOTPCommandHandler(deps, verifier),
	}
}

// LoadOrder reads the current state of an order from the order store. Every
// action is requested on an order read this way; a stale order is refused by
// the order store, or locally when the command carries its version.
func (m *OrderStateMachine) LoadOrder(
	ctx context.Context,
	principal ports.Principal,
	orderID string,
) (*order.SalesOrder, error) {
	p, err := parsePrincipal(principal)
	if err != nil {
		return nil, err
	}
	id, err := kernel.NewOrderID(orderID)
	if err != nil {
		return nil, err
	}

	o, err := m.backend.GetOrder(ctx, p, id)
	if err != nil {
		return nil, wrapActionError(actionLoad, id, err)
	}
	return o, nil
}

// CanTransition reports whether action is allowed for the order's current status.
func (m *OrderStateMachine) CanTransition(o *order.SalesOrder, action order.Action) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.CanTransition(action)
}

func (m *OrderStateMachine) RequestDispatch(ctx context.Context, cmd DispatchOrderCommand) (DispatchResult, error) {
	return m.dispatch.Handle(ctx, cmd)
}

// RequestCancel cancels before dispatch or records a return after it.
func (m *OrderStateMachine) RequestCancel(ctx context.Context, cmd CancelOrderCommand) (CancelResult, error) {
	return m.cancel.Handle(ctx, cmd)
}

// RequestDeliver confirms delivery with an OTP or a signed invoice.
func (m *OrderStateMachine) RequestDeliver(ctx context.Context, cmd DeliverOrderCommand) (DeliverResult, error) {
	return m.deliver.Handle(ctx, cmd)
}

func (m *OrderStateMachine) RequestDeliveryOTP(ctx context.Context, cmd RequestDeliveryOTPCommand) error {
	return m.requestOTP.Handle(ctx, cmd)
}
