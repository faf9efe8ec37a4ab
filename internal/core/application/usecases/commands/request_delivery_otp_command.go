package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrRequestDeliveryOTPCommandIsNotConstructed = errors.New(
	"RequestDeliveryOTPCommand must be created via NewRequestDeliveryOTPCommand constructor",
)

// RequestDeliveryOTPCommand asks the order store to send the delivery OTP
// of a dispatched order to its customer.
type RequestDeliveryOTPCommand struct { //nolint:recvcheck //using for validation
	principal  ports.Principal
	salesOrder *order.SalesOrder

	guard guard.ConstructorGuard
}

func NewRequestDeliveryOTPCommand(
	principal ports.Principal,
	salesOrder *order.SalesOrder,
) (RequestDeliveryOTPCommand, error) {
	cmd := RequestDeliveryOTPCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrder(salesOrder),
	); err != nil {
		return RequestDeliveryOTPCommand{}, err
	}

	return cmd, nil
}

func (c RequestDeliveryOTPCommand) Validate() error {
	return c.guard.Validate(ErrRequestDeliveryOTPCommandIsNotConstructed)
}

func (c RequestDeliveryOTPCommand) Principal() ports.Principal {
	return c.principal
}

// Order is the order the action is requested on, as the caller read it.
func (c RequestDeliveryOTPCommand) Order() *order.SalesOrder {
	return c.salesOrder
}

func (c RequestDeliveryOTPCommand) OrderID() kernel.OrderID {
	if c.salesOrder == nil {
		return kernel.OrderID{}
	}
	return c.salesOrder.ID()
}

func (c *RequestDeliveryOTPCommand) setPrincipal(p ports.Principal) error {
	principal, err := parsePrincipal(p)
	c.principal = principal
	return err
}

func (c *RequestDeliveryOTPCommand) setOrder(o *order.SalesOrder) error {
	salesOrder, err := parseOrder(o)
	c.salesOrder = salesOrder
	return err
}
