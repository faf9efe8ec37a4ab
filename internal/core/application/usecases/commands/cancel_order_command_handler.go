package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CancelResult is the outcome of a cancellation or a dispatched return.
type CancelResult struct {
	TransitionResult
	IsDispatchedReturn bool
}

// CancelOrderCommandHandler cancels an order before dispatch or records the
// return of a dispatched one. The form is validated for the status of the
// order in the command; nothing is submitted unless the whole form is valid.
type CancelOrderCommandHandler struct {
	runner   *transitionRunner
	workflow services.CancellationWorkflow
}

func NewCancelOrderCommandHandler(deps HandlerDeps, workflow services.CancellationWorkflow) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		runner:   newTransitionRunner(deps),
		workflow: workflow,
	}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (CancelResult, error) {
	if err := cmd.Validate(); err != nil {
		return CancelResult{}, err
	}

	var record order.CancellationRecord
	req := runRequest{
		name:         actionCancel,
		ledgerAction: cancelLedgerAction(cmd.Order()),
		principal:    cmd.Principal(),
		salesOrder:   cmd.Order(),
		options:      cmd.Options(),
		check: func(o *order.SalesOrder) error {
			var err error
			record, _, err = h.workflow.Prepare(o, cmd.Form(), h.runner.now())
			return err
		},
	}

	result, err := h.runner.run(ctx, req, func(ctx context.Context, o *order.SalesOrder) (ports.TransitionResponse, error) {
		resp, err := h.runner.backend.Cancel(ctx, cmd.Principal(), o.ID(), record, ports.CallOptions{
			IdempotencyKey: cmd.Options().key(),
		})
		if err != nil {
			return ports.TransitionResponse{}, err
		}

		if err = o.Cancel(record); err != nil {
			return ports.TransitionResponse{}, err
		}
		return resp, nil
	})
	if err != nil {
		return CancelResult{}, err
	}

	return CancelResult{
		TransitionResult:   result,
		IsDispatchedReturn: result.ledgerAction == order.ReturnCancel,
	}, nil
}

// cancelLedgerAction is the action a cancellation of o is recorded under.
func cancelLedgerAction(o *order.SalesOrder) order.Action {
	if o.Status().IsPreDispatch() {
		return order.Cancel
	}
	return order.ReturnCancel
}
