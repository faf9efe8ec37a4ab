package commands

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

func parsePrincipal(p ports.Principal) (ports.Principal, error) {
	if err := p.Validate(); err != nil {
		return ports.Principal{}, err
	}
	return p, nil
}

func parseOrder(o *order.SalesOrder) (*order.SalesOrder, error) {
	if o == nil {
		return nil, errs.NewValueIsRequiredError("order")
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}
