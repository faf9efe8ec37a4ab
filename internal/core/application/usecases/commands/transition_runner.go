package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"
)

// DefaultActionTimeout bounds a whole action, from waiting for the order lock
// to the last write of the ledger.
const DefaultActionTimeout = 30 * time.Second

const maxIdempotencyKeyLength = 128

// Action names used in logs, metrics and ActionError.
const (
	actionDispatch      = "dispatch"
	actionCancel        = "cancel"
	actionDeliver       = "deliver"
	actionSignedInvoice = "signed-invoice"
	actionRequestOTP    = "request-otp"
	actionLoad          = "load"
)

// HandlerDeps are the collaborators shared by every order action handler.
// Backend and UoWFactory are required; the rest fall back to defaults.
type HandlerDeps struct {
	Backend       ports.FulfillmentBackend
	Publisher     ports.OrderEventPublisher
	UoWFactory    UoWFactory
	Locker        *OrderLocker
	Metrics       *metrics.Metrics
	Logger        *slog.Logger
	Clock         func() time.Time
	ActionTimeout time.Duration
}

// TransitionOptions are the optional concurrency controls of an action.
type TransitionOptions struct {
	// ExpectedVersion is the order version the caller based its request on.
	// Empty skips the check.
	ExpectedVersion string

	// IdempotencyKey makes a repeated request replay the first outcome.
	IdempotencyKey string
}

func (o TransitionOptions) validate() error {
	if len(strings.TrimSpace(o.IdempotencyKey)) > maxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotencyKey", len(o.IdempotencyKey), 1, maxIdempotencyKeyLength)
	}
	return nil
}

func (o TransitionOptions) key() string {
	return strings.TrimSpace(o.IdempotencyKey)
}

// TransitionResult is the outcome shared by every transition.
type TransitionResult struct {
	OrderID        string
	Action         string
	PreviousStatus order.Status

	// Status is the status after the action as derived from the transition table.
	Status order.Status

	// ReportedStatus is the status the order store answered with.
	ReportedStatus order.Status
	Message        string

	// Replayed is true when the result comes from the idempotency ledger.
	Replayed bool

	ledgerAction order.Action
}

// actionFunc submits one action for an order that passed its local checks.
type actionFunc func(ctx context.Context, o *order.SalesOrder) (ports.TransitionResponse, error)

type runRequest struct {
	name         string
	ledgerAction order.Action
	principal    ports.Principal
	salesOrder   *order.SalesOrder
	options      TransitionOptions

	// check validates the order and the input without leaving the process.
	check func(o *order.SalesOrder) error
}

type transitionRunner struct {
	backend    ports.FulfillmentBackend
	publisher  ports.OrderEventPublisher
	uowFactory UoWFactory
	locker     *OrderLocker
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
	timeout    time.Duration
}

func newTransitionRunner(deps HandlerDeps) *transitionRunner {
	r := &transitionRunner{
		backend:    deps.Backend,
		publisher:  deps.Publisher,
		uowFactory: deps.UoWFactory,
		locker:     deps.Locker,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Clock,
		timeout:    deps.ActionTimeout,
	}
	if r.locker == nil {
		r.locker = NewOrderLocker()
	}
	if r.metrics == nil {
		r.metrics = metrics.New()
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.timeout <= 0 {
		r.timeout = DefaultActionTimeout
	}
	r.logger = r.logger.With("component", "order-actions")
	return r
}

// run executes one action on the order the caller supplied:
//  1. check the version and the action locally; nothing else runs on failure
//  2. bound the rest by the action timeout and wait for the per-order lock
//  3. reserve the idempotency key or replay its stored result
//  4. submit via fn
//  5. complete or release the key, then publish the raised events
//
// A keyed retry whose first attempt already moved the order fails the local
// check; it replays the stored result instead when there is one.
func (r *transitionRunner) run(ctx context.Context, req runRequest, fn actionFunc) (result TransitionResult, err error) {
	started := time.Now()
	id := req.salesOrder.ID()
	log := r.logger.With("action", req.name, "orderId", id.String(), "userId", req.principal.UserID)

	defer func() {
		r.metrics.RecordAction(req.name, outcomeOf(err), time.Since(started))
		r.logOutcome(log, result, err)
	}()

	key := req.options.key()

	if err = r.precheck(req); err != nil {
		if key == "" || !orderMovedOn(err) {
			return TransitionResult{}, err
		}
		replayed, lookupErr := r.lookup(ctx, key, req)
		if lookupErr != nil {
			log.Warn("failed to look up idempotency key", "key", key, "error", lookupErr)
		}
		if replayed == nil {
			return TransitionResult{}, err
		}
		return *replayed, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	unlock, err := r.locker.Lock(ctx, id)
	if err != nil {
		return TransitionResult{}, wrapActionError(req.name, id, fmt.Errorf("wait for order lock: %w", err))
	}
	defer unlock()

	if key != "" {
		replayed, err := r.reserve(ctx, key, req)
		if err != nil {
			return TransitionResult{}, err
		}
		if replayed != nil {
			return *replayed, nil
		}
	}

	result, err = r.execute(ctx, req, fn)

	if key != "" {
		// The ledger must be settled even when the action ran out of time.
		cleanupCtx := context.WithoutCancel(ctx)
		if err != nil {
			if delErr := r.release(cleanupCtx, key); delErr != nil {
				log.Error("failed to release idempotency key", "key", key, "error", delErr)
			}
		} else if compErr := r.complete(cleanupCtx, key, req, result); compErr != nil {
			log.Error("failed to complete idempotency key", "key", key, "error", compErr)
		}
	}

	return result, err
}

func (r *transitionRunner) precheck(req runRequest) error {
	o := req.salesOrder
	if err := o.CheckVersion(req.options.ExpectedVersion); err != nil {
		return err
	}
	if req.check == nil {
		return nil
	}
	return req.check(o)
}

func (r *transitionRunner) execute(ctx context.Context, req runRequest, fn actionFunc) (TransitionResult, error) {
	o := req.salesOrder
	from := o.Status()

	resp, err := fn(ctx, o)
	if err != nil {
		return TransitionResult{}, wrapActionError(req.name, o.ID(), err)
	}

	result := TransitionResult{
		OrderID:        o.ID().String(),
		Action:         req.name,
		PreviousStatus: from,
		Status:         o.Status(),
		ReportedStatus: resp.OrderStatus,
		Message:        resp.Message,
		ledgerAction:   req.ledgerAction,
	}
	if result.ReportedStatus == order.Unknown {
		result.ReportedStatus = o.Status()
	} else if result.ReportedStatus != o.Status() {
		r.logger.Warn("order store reported an unexpected status",
			"orderId", result.OrderID, "expected", o.Status().String(), "reported", result.ReportedStatus.String())
	}

	r.publish(ctx, o)
	return result, nil
}

func (r *transitionRunner) reserve(ctx context.Context, key string, req runRequest) (*TransitionResult, error) {
	var replayed *TransitionResult
	id := req.salesOrder.ID()

	err := inTx(ctx, r.uowFactory, func(uow UoW) error {
		ledger := uow.TransitionLedger()

		entry, err := ledger.Get(ctx, key)
		switch {
		case err == nil:
			if !entry.OrderID.IsEqual(id) || !sameLedgerAction(entry.Action, req.ledgerAction) {
				return errs.NewValueIsInvalidErrorWithCause("idempotencyKey",
					fmt.Errorf("already used to %s order %s", entry.Action, entry.OrderID))
			}
			if entry.State != ports.LedgerCompleted {
				return ErrDuplicateRequest
			}
			replayed = replayOf(entry, req)
			return nil
		case !errors.Is(err, errs.ErrObjectNotFound):
			return err
		}

		now := r.now()
		err = ledger.Add(ctx, ports.LedgerEntry{
			ID:             kernel.NewUUID(),
			IdempotencyKey: key,
			OrderID:        id,
			Action:         req.ledgerAction,
			State:          ports.LedgerPending,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
		if errors.Is(err, ports.ErrIdempotencyKeyTaken) {
			return ErrDuplicateRequest
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return replayed, nil
}

// lookup returns the stored result of a completed request made with key for
// the same order and action, or nil. It never reserves the key.
func (r *transitionRunner) lookup(ctx context.Context, key string, req runRequest) (*TransitionResult, error) {
	var replayed *TransitionResult

	err := inTx(ctx, r.uowFactory, func(uow UoW) error {
		entry, err := uow.TransitionLedger().Get(ctx, key)
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if entry.State == ports.LedgerCompleted &&
			entry.OrderID.IsEqual(req.salesOrder.ID()) &&
			sameLedgerAction(entry.Action, req.ledgerAction) {
			replayed = replayOf(entry, req)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return replayed, nil
}

func replayOf(entry ports.LedgerEntry, req runRequest) *TransitionResult {
	return &TransitionResult{
		OrderID:        entry.OrderID.String(),
		Action:         req.name,
		Status:         entry.ResultStatus,
		ReportedStatus: entry.ResultStatus,
		Message:        entry.ResultMessage,
		Replayed:       true,
		ledgerAction:   entry.Action,
	}
}

// sameLedgerAction treats Cancel and ReturnCancel as one action. Which of the
// two a cancellation is depends on the status when it was first requested.
func sameLedgerAction(stored, requested order.Action) bool {
	isCancel := func(a order.Action) bool { return a == order.Cancel || a == order.ReturnCancel }
	return stored == requested || (isCancel(stored) && isCancel(requested))
}

// orderMovedOn reports whether a local check failed because the order is no
// longer in the state the request expects.
func orderMovedOn(err error) bool {
	return errors.Is(err, errs.ErrInvalidTransition) || errors.Is(err, errs.ErrVersionIsInvalid)
}

func (r *transitionRunner) complete(ctx context.Context, key string, req runRequest, result TransitionResult) error {
	return inTx(ctx, r.uowFactory, func(uow UoW) error {
		ledger := uow.TransitionLedger()

		entry, err := ledger.Get(ctx, key)
		if err != nil {
			return err
		}

		entry.State = ports.LedgerCompleted
		entry.ResultStatus = result.Status
		entry.ResultMessage = result.Message
		entry.UpdatedAt = r.now()
		return ledger.Update(ctx, entry)
	})
}

func (r *transitionRunner) release(ctx context.Context, key string) error {
	return inTx(ctx, r.uowFactory, func(uow UoW) error {
		return uow.TransitionLedger().Delete(ctx, key)
	})
}

// publish announces the raised events. The transition already happened in
// the order store, so a publishing failure is logged and not returned.
func (r *transitionRunner) publish(ctx context.Context, o *order.SalesOrder) {
	events := o.Events()
	if len(events) == 0 || r.publisher == nil {
		return
	}

	err := r.publisher.Publish(context.WithoutCancel(ctx), events...)
	for _, e := range events {
		r.metrics.RecordEventPublished(string(e.Type), err == nil)
	}
	if err != nil {
		r.logger.Error("failed to publish order events", "orderId", o.ID().String(), "error", err)
		return
	}
	o.ClearEvents()
}

func (r *transitionRunner) logOutcome(log *slog.Logger, result TransitionResult, err error) {
	var actionErr *ActionError
	switch {
	case err == nil:
		log.Info("order action completed",
			"from", result.PreviousStatus.String(), "to", result.Status.String(), "replayed", result.Replayed)
	case errors.As(err, &actionErr) && errors.Is(err, errs.ErrNetwork):
		log.Error("order action failed", "error", err)
	default:
		log.Warn("order action rejected", "error", err)
	}
}

func outcomeOf(err error) string {
	var actionErr *ActionError
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errs.IsValidation(err),
		errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrExceedsAvailable),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, order.ErrOTPLocked),
		errors.Is(err, ErrDuplicateRequest):
		return metrics.OutcomeInvalid
	case errors.As(err, &actionErr) && !errors.Is(err, errs.ErrNetwork):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}
