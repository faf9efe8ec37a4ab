package dispatch

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Destination is one line of a partial dispatch as typed by the operator.
// Quantity stays a string until the reconciler parses it.
type Destination struct {
	ProductID string
	Quantity  string
}

// Request is a dispatch request before reconciliation.
type Request struct {
	TruckNumber   string
	DriverName    string
	DriverMobile  string
	IsPartial     bool
	Destinations  []Destination
	Complementary *ComplementaryList
}

// ValidateVehicle checks the truck and driver fields. All missing fields are reported.
func (r Request) ValidateVehicle() error {
	var problems []error
	if strings.TrimSpace(r.TruckNumber) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("truckNumber"))
	}
	if strings.TrimSpace(r.DriverName) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("driverName"))
	}
	if strings.TrimSpace(r.DriverMobile) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("driverMobile"))
	}
	return errors.Join(problems...)
}

// ComplementaryItems returns the complementary items of the request, if any.
func (r Request) ComplementaryItems() []ComplementaryItem {
	if r.Complementary == nil {
		return nil
	}
	return r.Complementary.Items()
}

// Eligibility is the order store's answer to "may this order be dispatched".
type Eligibility struct {
	Eligible bool
	Reason   string
}

// ErrNotEligible is matched by NotEligibleError.
var ErrNotEligible = errors.New("order is not eligible for dispatch")

// NotEligibleError carries the reason given by the order store.
type NotEligibleError struct {
	Reason string
}

func NewNotEligibleError(reason string) *NotEligibleError {
	return &NotEligibleError{Reason: reason}
}

func (e *NotEligibleError) Error() string {
	if e.Reason == "" {
		return ErrNotEligible.Error()
	}
	return ErrNotEligible.Error() + ": " + e.Reason
}

func (e *NotEligibleError) Unwrap() error {
	return ErrNotEligible
}
