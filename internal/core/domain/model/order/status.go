package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of a sales order.
//
// State transitions:
//
//	Pending ──> AwaitingPaymentConfirmation ──> Confirmed ──> Dispatched ──> Delivered
//	   │                    │                       │              │
//	   └────────────────────┴───────────────────────┴──────────────┴──> Cancelled
//
// The first two steps are driven by the order store and only observed here.
// Cancelled is reached with Cancel before dispatch and with ReturnCancel after
// it. Delivered and Cancelled are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly placed order.
	Pending

	// AwaitingPaymentConfirmation means a payment request was raised and
	// has not been confirmed yet.
	AwaitingPaymentConfirmation

	// Confirmed orders are paid for and may be dispatched.
	Confirmed

	// Dispatched orders are on a truck.
	Dispatched

	// Delivered is a final state reached after delivery confirmation.
	Delivered

	// Cancelled is a final state for both plain cancellations and returns.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                     "Unknown",
		Pending:                     "Pending",
		AwaitingPaymentConfirmation: "AwaitingPaymentConfirmation",
		Confirmed:                   "Confirmed",
		Dispatched:                  "Dispatched",
		Delivered:                   "Delivered",
		Cancelled:                   "Cancelled",
	}
}

// getTransitions returns the transition table. A (status, action) pair that
// is not listed is rejected.
func getTransitions() map[Status]map[Action]Status {
	//nolint:exhaustive // terminal and unknown statuses have no outgoing transitions
	return map[Status]map[Action]Status{
		Pending:                     {Cancel: Cancelled},
		AwaitingPaymentConfirmation: {Cancel: Cancelled},
		Confirmed:                   {Cancel: Cancelled, Dispatch: Dispatched},
		Dispatched:                  {Deliver: Delivered, ReturnCancel: Cancelled},
	}
}

// Statuses lists every valid status.
func Statuses() []Status {
	return []Status{Pending, AwaitingPaymentConfirmation, Confirmed, Dispatched, Delivered, Cancelled}
}

// ParseStatus reads a status as sent by the order store. Case, spaces,
// underscores and hyphens are ignored, and the "canceled" spelling is accepted.
//
// Example:
//
//	s, _ := order.ParseStatus("awaiting_payment_confirmation") // AwaitingPaymentConfirmation
func ParseStatus(s string) (Status, error) {
	key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if key == "canceled" {
		key = "cancelled"
	}
	for _, st := range Statuses() {
		if strings.ToLower(st.String()) == key {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the declared statuses.
//
// Returns:
//   - nil if the status is valid
//   - error with details if the status is invalid
func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It is safe to call
// on any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no action is accepted from s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// IsPreDispatch reports whether the order has not left the warehouse yet.
func (s Status) IsPreDispatch() bool {
	return s == Pending || s == AwaitingPaymentConfirmation || s == Confirmed
}

// Transition returns the status reached by applying action to s.
//
// Returns:
//   - (next, nil) when the pair is in the transition table
//   - (s, *errs.InvalidTransitionError) otherwise; the receiver is returned
//     unchanged so callers never observe a partial transition
//
// Example:
//
//	next, err := order.Confirmed.Transition(order.Dispatch) // Dispatched, nil
//	_, err = order.Delivered.Transition(order.Cancel)        // InvalidTransitionError
func (s Status) Transition(action Action) (Status, error) {
	if next, ok := getTransitions()[s][action]; ok {
		return next, nil
	}
	return s, errs.NewInvalidTransitionError(s, action)
}

// ValidateTransition checks the transition table without performing it.
func (s Status) ValidateTransition(action Action) error {
	_, err := s.Transition(action)
	return err
}

// AllowedActions lists the actions accepted from s, in declaration order.
func (s Status) AllowedActions() []Action {
	allowed := make([]Action, 0, 2)
	for _, a := range Actions() {
		if _, ok := getTransitions()[s][a]; ok {
			allowed = append(allowed, a)
		}
	}
	return allowed
}
