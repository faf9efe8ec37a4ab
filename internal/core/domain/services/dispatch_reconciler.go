package services

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// DispatchReconciler checks a dispatch request against the stock the order
// store reports and turns it into the manifest that is submitted.
//
// Business rules:
//   - Every destination needs a product and a positive quantity
//   - The quantities sent for one product never exceed its available stock
//   - Stock that is reported nowhere is not checked
//   - One bad destination rejects the whole request; no partial manifest is built
//
// The reconciler is pure: it performs no I/O and is safe for concurrent use.
//
// Example usage:
//
//	r := services.NewDispatchReconciler()
//	manifest, err := r.BuildManifest(o, req, snapshot)
//	if errors.Is(err, errs.ErrExceedsAvailable) {
//	    // Ask the operator to lower the quantity
//	}
type DispatchReconciler struct{}

func NewDispatchReconciler() DispatchReconciler {
	return DispatchReconciler{}
}

// Validate reconciles partial dispatch destinations.
//
// Parameters:
//   - o: the order being dispatched
//   - destinations: the lines typed by the operator
//   - snapshot: the partial dispatch status read from the order store
//
// Returns:
//   - the normalized destinations, in input order, when every line passes
//   - nil and every destination error joined otherwise
//
// Available stock for a product is taken from the snapshot, then from the
// order line's own hint. When neither is known the line is not bounded.
func (r DispatchReconciler) Validate(
	o *order.SalesOrder,
	destinations []dispatch.Destination,
	snapshot dispatch.StatusSnapshot,
) ([]dispatch.NormalizedDestination, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, errs.NewValueIsRequiredError("destinations")
	}

	var problems []error
	requested := make(map[string]decimal.Decimal, len(destinations))
	normalized := make([]dispatch.NormalizedDestination, 0, len(destinations))

	for i, d := range destinations {
		productID := strings.TrimSpace(d.ProductID)
		raw := strings.TrimSpace(d.Quantity)

		var missing []error
		if productID == "" {
			missing = append(missing, errs.NewValueIsRequiredError(fmt.Sprintf("destinations[%d].productId", i)))
		}
		if raw == "" {
			missing = append(missing, errs.NewValueIsRequiredError(fmt.Sprintf("destinations[%d].quantity", i)))
		}
		if len(missing) > 0 {
			problems = append(problems, missing...)
			continue
		}

		qty, err := decimal.NewFromString(raw)
		if err != nil || !qty.IsPositive() {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("destinations[%d].quantity", i),
				fmt.Errorf("%q is not a positive number", raw),
			))
			continue
		}

		status, _ := snapshot.Product(productID)
		item, hasItem := o.Item(productID)

		available := resolveAvailable(status, item, hasItem)
		total := requested[productID].Add(qty)
		if available != nil && total.GreaterThan(*available) {
			problems = append(problems, errs.NewExceedsAvailableError(productID, total, *available))
			continue
		}
		requested[productID] = total

		normalized = append(normalized, dispatch.NormalizedDestination{
			ProductID: productID,
			ItemID:    resolveItemID(status, item, hasItem),
			Quantity:  qty,
			Required:  resolveNeeded(status, item, hasItem),
			Available: available,
			Ordered:   resolveOrdered(status, item, hasItem),
		})
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	return normalized, nil
}

// FullManifest lists every order line at its full ordered quantity.
func (r DispatchReconciler) FullManifest(o *order.SalesOrder) []dispatch.NormalizedDestination {
	items := o.Items()
	out := make([]dispatch.NormalizedDestination, 0, len(items))
	for _, it := range items {
		qty := it.Quantity()
		nd := dispatch.NormalizedDestination{
			ProductID: it.ProductID(),
			ItemID:    it.ID(),
			Quantity:  qty,
			Ordered:   dispatch.Quantity(qty),
		}
		if v, ok := it.NeededHint(); ok {
			nd.Required = dispatch.Quantity(v)
		}
		if v, ok := it.AvailableHint(); ok {
			nd.Available = dispatch.Quantity(v)
		}
		out = append(out, nd)
	}
	return out
}

// BuildManifest validates the vehicle fields, picks the partial or full path
// and merges the complementary items of the request.
//
// Returns:
//   - the manifest with TotalTons in order-aggregation mode
//   - every vehicle and destination error joined otherwise
func (r DispatchReconciler) BuildManifest(
	o *order.SalesOrder,
	req dispatch.Request,
	snapshot dispatch.StatusSnapshot,
) (dispatch.Manifest, error) {
	if err := o.Validate(); err != nil {
		return dispatch.Manifest{}, err
	}

	vehicleErr := req.ValidateVehicle()

	var destinations []dispatch.NormalizedDestination
	var destErr error
	if req.IsPartial {
		destinations, destErr = r.Validate(o, req.Destinations, snapshot)
	} else {
		destinations = r.FullManifest(o)
	}

	if err := errors.Join(vehicleErr, destErr); err != nil {
		return dispatch.Manifest{}, err
	}

	return dispatch.Manifest{
		TruckNumber:   strings.TrimSpace(req.TruckNumber),
		DriverName:    strings.TrimSpace(req.DriverName),
		DriverMobile:  strings.TrimSpace(req.DriverMobile),
		IsPartial:     req.IsPartial,
		Destinations:  destinations,
		Complementary: req.ComplementaryItems(),
		TotalTons:     r.totalTons(o, destinations),
	}, nil
}

// totalTons weighs the destinations with the measurement data of their order line.
// Lines for products the order does not contain have no weight data and add nothing.
func (r DispatchReconciler) totalTons(o *order.SalesOrder, destinations []dispatch.NormalizedDestination) decimal.Decimal {
	lines := make([]measure.Line, 0, len(destinations))
	for _, d := range destinations {
		it, ok := o.Item(d.ProductID)
		if !ok {
			continue
		}
		line := it.Line()
		line.Quantity = d.Quantity
		lines = append(lines, line)
	}
	return measure.AggregateTons(lines)
}

// Resolve reports, for every order line, the quantities the reconciler
// would use: snapshot values first, then the line's own hints.
// Remaining is only known from the snapshot.
func (r DispatchReconciler) Resolve(o *order.SalesOrder, snapshot dispatch.StatusSnapshot) []dispatch.ProductStatus {
	items := o.Items()
	out := make([]dispatch.ProductStatus, 0, len(items))
	for _, it := range items {
		s, _ := snapshot.Product(it.ProductID())
		ps := dispatch.ProductStatus{
			ProductID: it.ProductID(),
			ItemID:    resolveItemID(s, it, true),
			Available: resolveAvailable(s, it, true),
			Needed:    resolveNeeded(s, it, true),
			Ordered:   resolveOrdered(s, it, true),
		}
		if s.Remaining != nil {
			ps.Remaining = dispatch.Quantity(*s.Remaining)
		}
		out = append(out, ps)
	}
	return out
}

func resolveAvailable(s dispatch.ProductStatus, it order.Item, hasItem bool) *decimal.Decimal {
	if s.Available != nil {
		return dispatch.Quantity(*s.Available)
	}
	if hasItem {
		if v, ok := it.AvailableHint(); ok {
			return dispatch.Quantity(v)
		}
	}
	return nil
}

func resolveNeeded(s dispatch.ProductStatus, it order.Item, hasItem bool) *decimal.Decimal {
	if s.Needed != nil {
		return dispatch.Quantity(*s.Needed)
	}
	if hasItem {
		if v, ok := it.NeededHint(); ok {
			return dispatch.Quantity(v)
		}
	}
	return nil
}

func resolveOrdered(s dispatch.ProductStatus, it order.Item, hasItem bool) *decimal.Decimal {
	if s.Ordered != nil {
		return dispatch.Quantity(*s.Ordered)
	}
	if hasItem {
		return dispatch.Quantity(it.Quantity())
	}
	return nil
}

func resolveItemID(s dispatch.ProductStatus, it order.Item, hasItem bool) string {
	if s.ItemID != "" {
		return s.ItemID
	}
	if hasItem {
		return it.ID()
	}
	return ""
}
