package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// toHTTPError maps a use case error to a status and the message shown to the operator.
func toHTTPError(err error) *echo.HTTPError {
	status, message := classify(err)
	return echo.NewHTTPError(status, message).SetInternal(err)
}

func classify(err error) (int, string) {
	message := err.Error()
	var actionErr *commands.ActionError
	if errors.As(err, &actionErr) {
		message = actionErr.Message
	}

	var netErr *errs.NetworkError
	var rejection *errs.BackendRejectionError

	switch {
	case errors.Is(err, commands.ErrDuplicateRequest):
		return http.StatusConflict, message
	case errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusPreconditionFailed, message
	case errors.Is(err, order.ErrOTPLocked):
		return http.StatusTooManyRequests, message
	case errors.Is(err, errs.ErrExceedsAvailable):
		return http.StatusUnprocessableEntity, message
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, dispatch.ErrNotEligible):
		return http.StatusConflict, message
	case errors.As(err, &netErr):
		return networkStatus(netErr.Kind), netErr.Kind.UserMessage()
	case errors.As(err, &rejection):
		return rejectionStatus(rejection.StatusCode), message
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, message
	case errs.IsValidation(err):
		return http.StatusUnprocessableEntity, message
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout, message
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func networkStatus(kind errs.NetworkKind) int {
	switch kind {
	case errs.NetworkTimeout:
		return http.StatusGatewayTimeout
	case errs.NetworkConnectionRefused:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// rejectionStatus passes the order store's status through when it is an error status.
func rejectionStatus(code int) int {
	if code >= http.StatusBadRequest && code <= 599 {
		return code
	}
	return http.StatusBadGateway
}

// NewErrorHandler writes every error as an Error body. Server errors are logged.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if !errors.As(err, &he) {
			he = toHTTPError(err)
		}

		message := fmt.Sprint(he.Message)

		if he.Code >= http.StatusInternalServerError {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", he.Code,
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(he.Code)
		} else {
			writeErr = c.JSON(he.Code, Error{Code: he.Code, Message: message})
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "failed to write error response", "error", writeErr)
		}
	}
}
