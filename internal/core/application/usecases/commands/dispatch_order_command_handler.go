package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// DispatchResult is the outcome of a dispatch. Manifest is what was
// submitted and is empty for a replayed request.
type DispatchResult struct {
	TransitionResult
	Manifest dispatch.Manifest
}

// DispatchOrderCommandHandler moves a Confirmed order to Dispatched.
//
// Steps:
//   - the transition and the vehicle fields are checked locally, before any call
//   - eligibility and, for a partial dispatch, the status snapshot are fetched concurrently
//   - a refused eligibility stops the dispatch with the reason given by the order store
//   - the reconciler builds the manifest; any invalid destination rejects the whole request
//   - the manifest is submitted and the order is marked Dispatched
type DispatchOrderCommandHandler struct {
	runner     *transitionRunner
	reconciler services.DispatchReconciler
}

func NewDispatchOrderCommandHandler(deps HandlerDeps, reconciler services.DispatchReconciler) DispatchOrderCommandHandler {
	return DispatchOrderCommandHandler{
		runner:     newTransitionRunner(deps),
		reconciler: reconciler,
	}
}

func (h *DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	var manifest dispatch.Manifest
	request := cmd.Request()
	req := runRequest{
		name:         actionDispatch,
		ledgerAction: order.Dispatch,
		principal:    cmd.Principal(),
		salesOrder:   cmd.Order(),
		options:      cmd.Options(),
		check: func(o *order.SalesOrder) error {
			if err := o.CanTransition(order.Dispatch); err != nil {
				return err
			}
			return request.ValidateVehicle()
		},
	}

	result, err := h.runner.run(ctx, req, func(ctx context.Context, o *order.SalesOrder) (ports.TransitionResponse, error) {
		eligibility, snapshot, err := h.fetchDispatchState(ctx, cmd.Principal(), o.ID(), request.IsPartial)
		if err != nil {
			return ports.TransitionResponse{}, err
		}
		if !eligibility.Eligible {
			return ports.TransitionResponse{}, dispatch.NewNotEligibleError(eligibility.Reason)
		}

		manifest, err = h.reconciler.BuildManifest(o, request, snapshot)
		if err != nil {
			return ports.TransitionResponse{}, err
		}

		resp, err := h.runner.backend.Dispatch(ctx, cmd.Principal(), o.ID(), manifest, ports.CallOptions{
			IdempotencyKey: cmd.Options().key(),
		})
		if err != nil {
			return ports.TransitionResponse{}, err
		}

		if err = o.MarkDispatched(order.DispatchDetails{
			TruckNumber:  manifest.TruckNumber,
			DriverName:   manifest.DriverName,
			DriverMobile: manifest.DriverMobile,
			IsPartial:    manifest.IsPartial,
			DispatchedAt: h.runner.now(),
		}); err != nil {
			return ports.TransitionResponse{}, err
		}

		return resp, nil
	})
	if err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{TransitionResult: result, Manifest: manifest}, nil
}

func (h *DispatchOrderCommandHandler) fetchDispatchState(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	partial bool,
) (dispatch.Eligibility, dispatch.StatusSnapshot, error) {
	var (
		eligibility dispatch.Eligibility
		snapshot    dispatch.StatusSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := h.runner.backend.GetDispatchEligibility(gctx, p, id)
		eligibility = e
		return err
	})
	if partial {
		g.Go(func() error {
			s, err := h.runner.backend.GetPartialDispatchStatus(gctx, p, id)
			snapshot = s
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return dispatch.Eligibility{}, dispatch.StatusSnapshot{}, err
	}
	return eligibility, snapshot, nil
}
