package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand represents a request to load a confirmed order on a truck.
// The vehicle fields and destinations are validated by the handler against the
// current order, because the available quantities are only known there.
//
// Example:
//
//	cmd, err := NewDispatchOrderCommand(principal, salesOrder, dispatch.Request{
//	    TruckNumber:  "KA-01-AB-1234",
//	    DriverName:   "Ravi",
//	    DriverMobile: "9876543210",
//	}, TransitionOptions{})
//	if err != nil {
//	    return fmt.Errorf("invalid dispatch request: %w", err)
//	}
//
//	result, err := stateMachine.RequestDispatch(ctx, cmd)
type DispatchOrderCommand struct { //nolint:recvcheck //using for validation
	principal  ports.Principal
	salesOrder *order.SalesOrder
	request    dispatch.Request
	options    TransitionOptions

	guard guard.ConstructorGuard
}

// NewDispatchOrderCommand creates a dispatch command.
// Validates the principal, the order and the transition options.
func NewDispatchOrderCommand(
	principal ports.Principal,
	salesOrder *order.SalesOrder,
	request dispatch.Request,
	options TransitionOptions,
) (DispatchOrderCommand, error) {
	cmd := DispatchOrderCommand{
		request: request,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrder(salesOrder),
		cmd.setOptions(options),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) Principal() ports.Principal {
	return c.principal
}

// Order is the order the action is requested on, as the caller read it.
func (c DispatchOrderCommand) Order() *order.SalesOrder {
	return c.salesOrder
}

func (c DispatchOrderCommand) OrderID() kernel.OrderID {
	if c.salesOrder == nil {
		return kernel.OrderID{}
	}
	return c.salesOrder.ID()
}

func (c DispatchOrderCommand) Request() dispatch.Request {
	return c.request
}

func (c DispatchOrderCommand) Options() TransitionOptions {
	return c.options
}

func (c *DispatchOrderCommand) setPrincipal(p ports.Principal) error {
	principal, err := parsePrincipal(p)
	c.principal = principal
	return err
}

func (c *DispatchOrderCommand) setOrder(o *order.SalesOrder) error {
	salesOrder, err := parseOrder(o)
	c.salesOrder = salesOrder
	return err
}

func (c *DispatchOrderCommand) setOptions(o TransitionOptions) error {
	if err := o.validate(); err != nil {
		return err
	}
	c.options = o
	return nil
}
