package kernel

import (
	"strings"

	"fulfillment/internal/pkg/errs"
)

// OrderID is the identifier assigned to a sales order by the external order
// store. Its format is opaque to this service; it only has to be non-blank.
type OrderID struct {
	value string
}

// NewOrderID trims s and rejects blank values.
func NewOrderID(s string) (OrderID, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return OrderID{}, errs.NewValueIsRequiredError("orderId")
	}
	return OrderID{value: v}, nil
}

func (id OrderID) String() string {
	return id.value
}

func (id OrderID) IsEqual(other OrderID) bool {
	return id.value == other.value
}

func (id OrderID) IsZero() bool {
	return id.value == ""
}

// Validate fails for the zero value.
func (id OrderID) Validate() error {
	if id.value == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	return nil
}
