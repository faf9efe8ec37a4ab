package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DeliverResult is the outcome of a delivery confirmation. ProofLocation is
// set when a signed invoice was archived.
type DeliverResult struct {
	TransitionResult
	Method        order.DeliveryMethod
	ProofLocation string
}

// DeliverOrderCommandHandler confirms delivery of a Dispatched order.
//
// OTP path:
//   - the status and the code format are checked locally, before any call
//   - the order is refused while it is locked out by failed attempts
//   - an OTP the order store rejects with a 4xx is counted, an accepted one
//     clears the count
//   - on success the order is marked Delivered
//
// Signed invoice path:
//   - the file is checked locally and uploaded
//   - it has its own idempotency ledger action, distinct from the OTP path
//   - the upload is proof of delivery only; the status does not change
//   - a copy is archived when an archive is configured
type DeliverOrderCommandHandler struct {
	runner   *transitionRunner
	verifier services.DeliveryVerifier
	archive  ports.InvoiceArchive
}

// NewDeliverOrderCommandHandler creates the handler. archive may be nil.
func NewDeliverOrderCommandHandler(
	deps HandlerDeps,
	verifier services.DeliveryVerifier,
	archive ports.InvoiceArchive,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		runner:   newTransitionRunner(deps),
		verifier: verifier,
		archive:  archive,
	}
}

func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (DeliverResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeliverResult{}, err
	}

	switch cmd.Method() {
	case order.DeliveryByOTP:
		return h.handleOTP(ctx, cmd)
	case order.DeliveryBySignedInvoice:
		return h.handleSignedInvoice(ctx, cmd)
	default:
		return DeliverResult{}, errs.NewValueIsInvalidError("deliveryMethod")
	}
}

func (h *DeliverOrderCommandHandler) handleOTP(ctx context.Context, cmd DeliverOrderCommand) (DeliverResult, error) {
	var otp order.OTPConfirmation
	req := runRequest{
		name:         actionDeliver,
		ledgerAction: order.Deliver,
		principal:    cmd.Principal(),
		salesOrder:   cmd.Order(),
		options:      cmd.Options(),
		check: func(o *order.SalesOrder) error {
			var err error
			otp, err = h.verifier.PrepareOTP(o, cmd.OTP())
			return err
		},
	}

	result, err := h.runner.run(ctx, req, func(ctx context.Context, o *order.SalesOrder) (ports.TransitionResponse, error) {
		if err := h.checkLockout(ctx, o.ID()); err != nil {
			return ports.TransitionResponse{}, err
		}

		resp, err := h.runner.backend.Deliver(ctx, cmd.Principal(), o.ID(), otp, ports.CallOptions{
			IdempotencyKey: cmd.Options().key(),
		})
		if isOTPRejection(err) {
			h.recordFailure(ctx, o.ID())
		}
		if err != nil {
			return ports.TransitionResponse{}, err
		}

		h.clearFailures(ctx, o.ID())

		if err = o.MarkDelivered(order.DeliveryDetails{
			Method:      order.DeliveryByOTP,
			DeliveredAt: h.runner.now(),
		}); err != nil {
			return ports.TransitionResponse{}, err
		}

		return resp, nil
	})
	if err != nil {
		return DeliverResult{}, err
	}

	return DeliverResult{TransitionResult: result, Method: order.DeliveryByOTP}, nil
}

func (h *DeliverOrderCommandHandler) handleSignedInvoice(ctx context.Context, cmd DeliverOrderCommand) (DeliverResult, error) {
	var (
		invoice  order.SignedInvoiceConfirmation
		location string
	)
	req := runRequest{
		name:         actionSignedInvoice,
		ledgerAction: order.AttachSignedInvoice,
		principal:    cmd.Principal(),
		salesOrder:   cmd.Order(),
		options:      cmd.Options(),
		check: func(o *order.SalesOrder) error {
			var err error
			invoice, err = h.verifier.PrepareSignedInvoice(o, cmd.FileName(), cmd.ContentType(), cmd.Content())
			return err
		},
	}

	result, err := h.runner.run(ctx, req, func(ctx context.Context, o *order.SalesOrder) (ports.TransitionResponse, error) {
		resp, err := h.runner.backend.UploadSignedInvoice(ctx, cmd.Principal(), o.ID(), invoice)
		if err != nil {
			return ports.TransitionResponse{}, err
		}

		location = h.archiveInvoice(ctx, o.ID(), invoice)
		return ports.TransitionResponse{Message: resp.Message}, nil
	})
	if err != nil {
		return DeliverResult{}, err
	}

	return DeliverResult{
		TransitionResult: result,
		Method:           order.DeliveryBySignedInvoice,
		ProofLocation:    location,
	}, nil
}

// isOTPRejection reports whether the order store refused the code itself.
// Server errors say nothing about the code and are not counted.
func isOTPRejection(err error) bool {
	var rejection *errs.BackendRejectionError
	if !errors.As(err, &rejection) {
		return false
	}
	return rejection.StatusCode >= http.StatusBadRequest && rejection.StatusCode < http.StatusInternalServerError
}

func (h *DeliverOrderCommandHandler) checkLockout(ctx context.Context, id kernel.OrderID) error {
	var failures int
	err := inTx(ctx, h.runner.uowFactory, func(uow UoW) error {
		n, err := uow.OTPAttempts().CountFailuresSince(ctx, id, h.verifier.WindowStart(h.runner.now()))
		failures = n
		return err
	})
	if err != nil {
		return fmt.Errorf("count failed otp attempts: %w", err)
	}

	if err = h.verifier.CheckLockout(failures); err != nil {
		h.runner.metrics.OTPLockouts.Inc()
		return err
	}
	return nil
}

func (h *DeliverOrderCommandHandler) recordFailure(ctx context.Context, id kernel.OrderID) {
	ctx = context.WithoutCancel(ctx)
	err := inTx(ctx, h.runner.uowFactory, func(uow UoW) error {
		return uow.OTPAttempts().AddFailure(ctx, ports.OTPAttempt{
			ID:          kernel.NewUUID(),
			OrderID:     id,
			AttemptedAt: h.runner.now(),
		})
	})
	if err != nil {
		h.runner.logger.Error("failed to record otp failure", "orderId", id.String(), "error", err)
	}
}

func (h *DeliverOrderCommandHandler) clearFailures(ctx context.Context, id kernel.OrderID) {
	ctx = context.WithoutCancel(ctx)
	err := inTx(ctx, h.runner.uowFactory, func(uow UoW) error {
		return uow.OTPAttempts().Clear(ctx, id)
	})
	if err != nil {
		h.runner.logger.Error("failed to clear otp failures", "orderId", id.String(), "error", err)
	}
}

// archiveInvoice keeps a copy of an accepted invoice. The order store already
// holds the proof, so an archive failure only loses the copy.
func (h *DeliverOrderCommandHandler) archiveInvoice(
	ctx context.Context,
	id kernel.OrderID,
	invoice order.SignedInvoiceConfirmation,
) string {
	if h.archive == nil {
		return ""
	}

	location, err := h.archive.Store(ctx, id, invoice)
	if err != nil {
		h.runner.logger.Warn("failed to archive signed invoice", "orderId", id.String(), "error", err)
		return ""
	}
	return location
}
