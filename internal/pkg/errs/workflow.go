package errs

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("transition is not allowed")
	ErrExceedsAvailable  = errors.New("quantity exceeds available stock")
	ErrNetwork           = errors.New("network error")
	ErrBackendRejection  = errors.New("request rejected by backend")
)

// InvalidTransitionError is returned when an action is not allowed from the
// current order status. From and Action are kept as strings so that this
// package stays free of domain imports.
type InvalidTransitionError struct {
	From   string
	Action string
}

func NewInvalidTransitionError(from, action fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), Action: action.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s is not a valid status to %s", ErrInvalidTransition, e.From, e.Action)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ExceedsAvailableError is returned when a dispatch destination asks for more
// than the resolved available quantity of its product.
type ExceedsAvailableError struct {
	ProductID string
	Requested string
	Available string
}

func NewExceedsAvailableError(productID string, requested, available fmt.Stringer) *ExceedsAvailableError {
	return &ExceedsAvailableError{
		ProductID: productID,
		Requested: requested.String(),
		Available: available.String(),
	}
}

func (e *ExceedsAvailableError) Error() string {
	return fmt.Sprintf("%s: product %s requested %s, available %s",
		ErrExceedsAvailable, e.ProductID, e.Requested, e.Available)
}

func (e *ExceedsAvailableError) Unwrap() error {
	return ErrExceedsAvailable
}

// NetworkKind classifies transport failures so that callers can pick a
// distinct user-facing message for each.
type NetworkKind string

const (
	NetworkConnectionRefused NetworkKind = "connection_refused"
	NetworkTimeout           NetworkKind = "timeout"
	NetworkGeneric           NetworkKind = "generic"
)

// UserMessage returns the message shown to the operator for this kind.
func (k NetworkKind) UserMessage() string {
	switch k {
	case NetworkConnectionRefused:
		return "Unable to connect to the order service. Please check that it is running and try again."
	case NetworkTimeout:
		return "The order service did not respond in time. Please try again."
	default:
		return "A network error occurred while contacting the order service."
	}
}

// NetworkError wraps a transport-level failure of a collaborator call.
type NetworkError struct {
	Kind      NetworkKind
	Operation string
	Cause     error
}

func NewNetworkError(kind NetworkKind, operation string, cause error) *NetworkError {
	return &NetworkError{Kind: kind, Operation: operation, Cause: cause}
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s) during %s: %v", ErrNetwork, e.Kind, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s (%s) during %s", ErrNetwork, e.Kind, e.Operation)
}

// Unwrap exposes both the sentinel and the transport cause.
func (e *NetworkError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNetwork}
	}
	return []error{ErrNetwork, e.Cause}
}

// BackendRejectionError carries a non-success response of a collaborator.
// Message is the server text, passed through verbatim.
type BackendRejectionError struct {
	StatusCode int
	Message    string
}

func NewBackendRejectionError(statusCode int, message string) *BackendRejectionError {
	return &BackendRejectionError{StatusCode: statusCode, Message: message}
}

func (e *BackendRejectionError) Error() string {
	return fmt.Sprintf("%s (status %d): %s", ErrBackendRejection, e.StatusCode, e.Message)
}

func (e *BackendRejectionError) Unwrap() error {
	return ErrBackendRejection
}
