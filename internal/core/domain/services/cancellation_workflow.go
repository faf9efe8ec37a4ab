package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// CancellationForm holds the raw cancellation input. Reason is used before
// dispatch; the remaining fields make up the return form of a dispatched order.
type CancellationForm struct {
	Reason         string
	ProductID      string
	ReturnType     string
	ReturnReason   string
	ReturnQuantity string
	PaymentMode    string
	Description    string
}

// CancellationWorkflow decides what cancelling an order means for its
// current status and validates the matching form.
//
// Business rules:
//   - Pending, AwaitingPaymentConfirmation and Confirmed orders only need a reason
//   - Dispatched orders need a complete return form; the return reason becomes
//     the cancellation reason
//   - Delivered and Cancelled orders cannot be cancelled
//   - Validation is all or nothing and happens before anything is submitted
type CancellationWorkflow struct{}

func NewCancellationWorkflow() CancellationWorkflow {
	return CancellationWorkflow{}
}

// Prepare validates form against the order and returns the record to submit
// together with the action it requests.
//
// Returns:
//   - (record, Cancel, nil) for a pre-dispatch cancellation
//   - (record, ReturnCancel, nil) for a dispatched return
//   - *errs.InvalidTransitionError for terminal orders
//   - every field error joined otherwise
func (w CancellationWorkflow) Prepare(
	o *order.SalesOrder,
	form CancellationForm,
	now time.Time,
) (order.CancellationRecord, order.Action, error) {
	if err := o.Validate(); err != nil {
		return order.CancellationRecord{}, order.ActionUnknown, err
	}

	switch status := o.Status(); {
	case status.IsPreDispatch():
		record, err := order.NewCancellation(form.Reason, now)
		if err != nil {
			return order.CancellationRecord{}, order.ActionUnknown, err
		}
		return record, order.Cancel, nil

	case status == order.Dispatched:
		record, err := w.prepareReturn(o, form, now)
		if err != nil {
			return order.CancellationRecord{}, order.ActionUnknown, err
		}
		return record, order.ReturnCancel, nil

	default:
		return order.CancellationRecord{}, order.ActionUnknown, errs.NewInvalidTransitionError(status, order.Cancel)
	}
}

func (w CancellationWorkflow) prepareReturn(
	o *order.SalesOrder,
	form CancellationForm,
	now time.Time,
) (order.CancellationRecord, error) {
	var problems []error
	details := order.ReturnDetails{
		ProductID:    strings.TrimSpace(form.ProductID),
		ReturnReason: strings.TrimSpace(form.ReturnReason),
		Description:  strings.TrimSpace(form.Description),
	}

	item, hasItem := order.Item{}, false
	if details.ProductID == "" {
		problems = append(problems, errs.NewValueIsRequiredError("productId"))
	} else if item, hasItem = o.Item(details.ProductID); !hasItem {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause("productId",
			fmt.Errorf("%s is not an item of order %s", details.ProductID, o.ID())))
	}

	if strings.TrimSpace(form.ReturnType) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("returnType"))
	} else if rt, err := order.ParseReturnType(form.ReturnType); err != nil {
		problems = append(problems, err)
	} else {
		details.ReturnType = rt
	}

	if details.ReturnReason == "" {
		problems = append(problems, errs.NewValueIsRequiredError("returnReason"))
	}

	if qty, err := w.parseReturnQuantity(form.ReturnQuantity, item, hasItem); err != nil {
		problems = append(problems, err)
	} else {
		details.ReturnQuantity = qty
	}

	if strings.TrimSpace(form.PaymentMode) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("paymentMode"))
	} else if pm, err := order.ParsePaymentMode(form.PaymentMode); err != nil {
		problems = append(problems, err)
	} else {
		details.PaymentMode = pm
	}

	if err := errors.Join(problems...); err != nil {
		return order.CancellationRecord{}, err
	}
	return order.NewDispatchedReturn(details, now)
}

// parseReturnQuantity bounds the returned quantity by 1 and the ordered quantity.
func (w CancellationWorkflow) parseReturnQuantity(raw string, item order.Item, hasItem bool) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, errs.NewValueIsRequiredError("returnQuantity")
	}

	qty, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("returnQuantity",
			fmt.Errorf("%q is not a number", raw))
	}

	minQty := decimal.NewFromInt(1)
	if !hasItem {
		if qty.LessThan(minQty) {
			return decimal.Zero, errs.NewValueIsOutOfRangeError("returnQuantity", qty, minQty, "ordered quantity")
		}
		return qty, nil
	}
	if qty.LessThan(minQty) || qty.GreaterThan(item.Quantity()) {
		return decimal.Zero, errs.NewValueIsOutOfRangeError("returnQuantity", qty, minQty, item.Quantity())
	}
	return qty, nil
}
