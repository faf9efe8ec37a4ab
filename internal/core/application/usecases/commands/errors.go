package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrDuplicateRequest is returned while another request with the same
// idempotency key is still in flight.
var ErrDuplicateRequest = errors.New("a request with this idempotency key is already in progress")

// ActionError is how an order action reports a failure of the order store:
// a transport error, a rejection or a refused dispatch. Message is the single
// text meant for the operator; Cause keeps the original error.
type ActionError struct {
	Action  string
	OrderID string
	Message string
	Cause   error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s order %s: %s", e.Action, e.OrderID, e.Message)
}

func (e *ActionError) Unwrap() error {
	return e.Cause
}

// wrapActionError turns order store failures into *ActionError and returns
// every other error unchanged.
func wrapActionError(action string, id kernel.OrderID, err error) error {
	if err == nil {
		return nil
	}

	var actionErr *ActionError
	if errors.As(err, &actionErr) {
		return err
	}

	newErr := func(msg string, cause error) error {
		return &ActionError{Action: action, OrderID: id.String(), Message: msg, Cause: cause}
	}

	var netErr *errs.NetworkError
	if errors.As(err, &netErr) {
		return newErr(netErr.Kind.UserMessage(), err)
	}

	var rejection *errs.BackendRejectionError
	if errors.As(err, &rejection) {
		return newErr(rejection.Message, err)
	}

	var notEligible *dispatch.NotEligibleError
	if errors.As(err, &notEligible) {
		msg := notEligible.Reason
		if msg == "" {
			msg = dispatch.ErrNotEligible.Error()
		}
		return newErr(msg, err)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return newErr(errs.NetworkTimeout.UserMessage(), errs.NewNetworkError(errs.NetworkTimeout, action, err))
	}

	return err
}
