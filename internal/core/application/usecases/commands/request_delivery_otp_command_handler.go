package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RequestDeliveryOTPCommandHandler makes the order store send the delivery
// OTP. Only Dispatched orders can receive one; the status does not change.
type RequestDeliveryOTPCommandHandler struct {
	runner   *transitionRunner
	verifier services.DeliveryVerifier
}

func NewRequestDeliveryOTPCommandHandler(
	deps HandlerDeps,
	verifier services.DeliveryVerifier,
) RequestDeliveryOTPCommandHandler {
	return RequestDeliveryOTPCommandHandler{
		runner:   newTransitionRunner(deps),
		verifier: verifier,
	}
}

func (h *RequestDeliveryOTPCommandHandler) Handle(ctx context.Context, cmd RequestDeliveryOTPCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	req := runRequest{
		name:         actionRequestOTP,
		ledgerAction: order.Deliver,
		principal:    cmd.Principal(),
		salesOrder:   cmd.Order(),
		check:        h.verifier.CanConfirm,
	}

	_, err := h.runner.run(ctx, req, func(ctx context.Context, o *order.SalesOrder) (ports.TransitionResponse, error) {
		return ports.TransitionResponse{}, h.runner.backend.RequestDeliveryOTP(ctx, cmd.Principal(), o.ID())
	})
	return err
}
