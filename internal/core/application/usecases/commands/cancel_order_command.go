package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a cancellation or, for a dispatched order,
// a return. Which fields of the form are needed depends on the order status,
// so the form is validated by the handler.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	principal  ports.Principal
	salesOrder *order.SalesOrder
	form       services.CancellationForm
	options    TransitionOptions

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a cancellation command.
func NewCancelOrderCommand(
	principal ports.Principal,
	salesOrder *order.SalesOrder,
	form services.CancellationForm,
	options TransitionOptions,
) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		form:  form,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrder(salesOrder),
		cmd.setOptions(options),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

func (c CancelOrderCommand) Principal() ports.Principal {
	return c.principal
}

// Order is the order the action is requested on, as the caller read it.
func (c CancelOrderCommand) Order() *order.SalesOrder {
	return c.salesOrder
}

func (c CancelOrderCommand) OrderID() kernel.OrderID {
	if c.salesOrder == nil {
		return kernel.OrderID{}
	}
	return c.salesOrder.ID()
}

func (c CancelOrderCommand) Form() services.CancellationForm {
	return c.form
}

func (c CancelOrderCommand) Options() TransitionOptions {
	return c.options
}

func (c *CancelOrderCommand) setPrincipal(p ports.Principal) error {
	principal, err := parsePrincipal(p)
	c.principal = principal
	return err
}

func (c *CancelOrderCommand) setOrder(o *order.SalesOrder) error {
	salesOrder, err := parseOrder(o)
	c.salesOrder = salesOrder
	return err
}

func (c *CancelOrderCommand) setOptions(o TransitionOptions) error {
	if err := o.validate(); err != nil {
		return err
	}
	c.options = o
	return nil
}
