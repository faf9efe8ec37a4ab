package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverWithOTPCommand or NewDeliverWithSignedInvoiceCommand constructor",
)

// DeliverOrderCommand confirms delivery of a dispatched order, either with the
// OTP the customer received or with a signed invoice. Only the OTP path moves
// the order to Delivered; the signed invoice is recorded as proof.
//
// Example:
//
//	cmd, err := NewDeliverWithOTPCommand(principal, salesOrder, "482913", TransitionOptions{})
//	if err != nil {
//	    return err // order.ErrOTPRequired when the code is blank
//	}
//	result, err := stateMachine.RequestDeliver(ctx, cmd)
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	principal  ports.Principal
	salesOrder *order.SalesOrder
	method     order.DeliveryMethod
	otp        string
	invoice    signedInvoice
	options    TransitionOptions

	guard guard.ConstructorGuard
}

type signedInvoice struct {
	fileName    string
	contentType string
	content     []byte
}

// NewDeliverWithOTPCommand creates an OTP delivery command. A blank code
// fails with order.ErrOTPRequired; the format is checked by the handler.
func NewDeliverWithOTPCommand(
	principal ports.Principal,
	salesOrder *order.SalesOrder,
	otp string,
	options TransitionOptions,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		method: order.DeliveryByOTP,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrder(salesOrder),
		cmd.setOTP(otp),
		cmd.setOptions(options),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return cmd, nil
}

// NewDeliverWithSignedInvoiceCommand creates a signed invoice delivery command.
func NewDeliverWithSignedInvoiceCommand(
	principal ports.Principal,
	salesOrder *order.SalesOrder,
	fileName, contentType string,
	content []byte,
	options TransitionOptions,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		method: order.DeliveryBySignedInvoice,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setOrder(salesOrder),
		cmd.setInvoice(fileName, contentType, content),
		cmd.setOptions(options),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return cmd, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) Principal() ports.Principal {
	return c.principal
}

// Order is the order the action is requested on, as the caller read it.
func (c DeliverOrderCommand) Order() *order.SalesOrder {
	return c.salesOrder
}

func (c DeliverOrderCommand) OrderID() kernel.OrderID {
	if c.salesOrder == nil {
		return kernel.OrderID{}
	}
	return c.salesOrder.ID()
}

// Method tells which confirmation the command carries.
func (c DeliverOrderCommand) Method() order.DeliveryMethod {
	return c.method
}

func (c DeliverOrderCommand) OTP() string {
	return c.otp
}

func (c DeliverOrderCommand) FileName() string {
	return c.invoice.fileName
}

func (c DeliverOrderCommand) ContentType() string {
	return c.invoice.contentType
}

func (c DeliverOrderCommand) Content() []byte {
	return c.invoice.content
}

func (c DeliverOrderCommand) Options() TransitionOptions {
	return c.options
}

func (c *DeliverOrderCommand) setPrincipal(p ports.Principal) error {
	principal, err := parsePrincipal(p)
	c.principal = principal
	return err
}

func (c *DeliverOrderCommand) setOrder(o *order.SalesOrder) error {
	salesOrder, err := parseOrder(o)
	c.salesOrder = salesOrder
	return err
}

func (c *DeliverOrderCommand) setOTP(otp string) error {
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return order.ErrOTPRequired
	}
	c.otp = otp
	return nil
}

func (c *DeliverOrderCommand) setInvoice(fileName, contentType string, content []byte) error {
	if len(content) == 0 {
		return errs.NewValueIsRequiredError("signedInvoice")
	}
	c.invoice = signedInvoice{fileName: fileName, contentType: contentType, content: content}
	return nil
}

func (c *DeliverOrderCommand) setOptions(o TransitionOptions) error {
	if err := o.validate(); err != nil {
		return err
	}
	c.options = o
	return nil
}
