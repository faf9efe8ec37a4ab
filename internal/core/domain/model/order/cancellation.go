package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrCancellationIsNotConstructed is returned by CancellationRecord.Validate for zero values.
var ErrCancellationIsNotConstructed = errors.New("CancellationRecord must be created via NewCancellation or NewDispatchedReturn")

// ReturnType classifies why dispatched goods come back.
type ReturnType string

const (
	DamageDelivery     ReturnType = "damage_delivery"
	QualityIssue       ReturnType = "quality_issue"
	ExpiredGoods       ReturnType = "expired_goods"
	CustomerPreference ReturnType = "customer_preference"
	OtherReturn        ReturnType = "other"
)

func ReturnTypes() []ReturnType {
	return []ReturnType{DamageDelivery, QualityIssue, ExpiredGoods, CustomerPreference, OtherReturn}
}

func ParseReturnType(s string) (ReturnType, error) {
	v := ReturnType(strings.ToLower(strings.TrimSpace(s)))
	for _, rt := range ReturnTypes() {
		if rt == v {
			return rt, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("returnType", fmt.Errorf("%q is not a valid return type", s))
}

// PaymentMode is how the customer is compensated for a return.
type PaymentMode string

const (
	CreditNote  PaymentMode = "credit_note"
	Replacement PaymentMode = "replacement"
	Refund      PaymentMode = "refund"
)

func PaymentModes() []PaymentMode {
	return []PaymentMode{CreditNote, Replacement, Refund}
}

func ParsePaymentMode(s string) (PaymentMode, error) {
	v := PaymentMode(strings.ToLower(strings.TrimSpace(s)))
	for _, pm := range PaymentModes() {
		if pm == v {
			return pm, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("paymentMode", fmt.Errorf("%q is not a valid payment mode", s))
}

// ReturnDetails describes the goods coming back from a dispatched order.
type ReturnDetails struct {
	ProductID      string
	ReturnType     ReturnType
	ReturnReason   string
	ReturnQuantity decimal.Decimal
	PaymentMode    PaymentMode
	Description    string
}

// CancellationRecord is what gets submitted to cancel an order. Records built
// by NewDispatchedReturn also carry ReturnDetails and use the return reason
// as the cancellation reason.
type CancellationRecord struct {
	reason      string
	ret         *ReturnDetails
	cancelledAt time.Time
	guard       guard.ConstructorGuard
}

// NewCancellation builds a pre-dispatch cancellation. The reason is trimmed and required.
func NewCancellation(reason string, cancelledAt time.Time) (CancellationRecord, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return CancellationRecord{}, errs.NewValueIsRequiredError("reason")
	}
	return CancellationRecord{
		reason:      reason,
		cancelledAt: cancelledAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// NewDispatchedReturn builds a return of a dispatched order. Every missing or
// invalid field is reported. Bounds against the ordered quantity are checked
// by the caller, which knows the order.
func NewDispatchedReturn(d ReturnDetails, cancelledAt time.Time) (CancellationRecord, error) {
	d.ProductID = strings.TrimSpace(d.ProductID)
	d.ReturnReason = strings.TrimSpace(d.ReturnReason)
	d.Description = strings.TrimSpace(d.Description)

	var problems []error
	if d.ProductID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("productId"))
	}
	if d.ReturnType == "" {
		problems = append(problems, errs.NewValueIsRequiredError("returnType"))
	} else if _, err := ParseReturnType(string(d.ReturnType)); err != nil {
		problems = append(problems, err)
	}
	if d.ReturnReason == "" {
		problems = append(problems, errs.NewValueIsRequiredError("returnReason"))
	}
	if !d.ReturnQuantity.IsPositive() {
		problems = append(problems, errs.NewValueIsRequiredError("returnQuantity"))
	}
	if d.PaymentMode == "" {
		problems = append(problems, errs.NewValueIsRequiredError("paymentMode"))
	} else if _, err := ParsePaymentMode(string(d.PaymentMode)); err != nil {
		problems = append(problems, err)
	}
	if err := errors.Join(problems...); err != nil {
		return CancellationRecord{}, err
	}

	return CancellationRecord{
		reason:      d.ReturnReason,
		ret:         &d,
		cancelledAt: cancelledAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CancellationRecord) Validate() error {
	return c.guard.Validate(ErrCancellationIsNotConstructed)
}

func (c CancellationRecord) Reason() string {
	return c.reason
}

func (c CancellationRecord) CancelledAt() time.Time {
	return c.cancelledAt
}

func (c CancellationRecord) IsDispatchedReturn() bool {
	return c.ret != nil
}

// Return returns the return details of a dispatched return.
func (c CancellationRecord) Return() (ReturnDetails, bool) {
	if c.ret == nil {
		return ReturnDetails{}, false
	}
	return *c.ret, true
}

// Action returns the transition this record requests.
func (c CancellationRecord) Action() Action {
	if c.ret != nil {
		return ReturnCancel
	}
	return Cancel
}
