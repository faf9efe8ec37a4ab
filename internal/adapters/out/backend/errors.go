package backend

import (
	"context"
	"errors"
	"net"
	"syscall"

	"fulfillment/internal/pkg/errs"
)

// classify maps a transport failure onto the three network kinds operators
// are shown distinct messages for.
func classify(ctx context.Context, operation string, err error) *errs.NetworkError {
	var netErr net.Error
	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return errs.NewNetworkError(errs.NetworkConnectionRefused, operation, err)
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(ctx.Err(), context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return errs.NewNetworkError(errs.NetworkTimeout, operation, err)
	default:
		return errs.NewNetworkError(errs.NetworkGeneric, operation, err)
	}
}
