package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"

	"golang.org/x/sync/errgroup"
)

// DispatchPlanReader is the part of the order store the dispatch plan needs.
type DispatchPlanReader interface {
	OrderReader
	GetPartialDispatchStatus(ctx context.Context, p ports.Principal, id kernel.OrderID) (dispatch.StatusSnapshot, error)
}

// GetDispatchPlanQueryHandler reads the order and its partial dispatch status
// concurrently and resolves them the way the dispatch reconciler does.
type GetDispatchPlanQueryHandler struct {
	reader     DispatchPlanReader
	reconciler services.DispatchReconciler
}

func NewGetDispatchPlanQueryHandler(reader DispatchPlanReader) GetDispatchPlanQueryHandler {
	return GetDispatchPlanQueryHandler{
		reader:     reader,
		reconciler: services.NewDispatchReconciler(),
	}
}

func (h GetDispatchPlanQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchPlanQuery,
) (GetDispatchPlanQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDispatchPlanQueryResponse{}, err
	}

	var (
		o        *order.SalesOrder
		snapshot dispatch.StatusSnapshot
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		o, err = h.reader.GetOrder(gctx, query.Principal(), query.OrderID())
		return err
	})
	g.Go(func() error {
		var err error
		snapshot, err = h.reader.GetPartialDispatchStatus(gctx, query.Principal(), query.OrderID())
		return err
	})
	if err := g.Wait(); err != nil {
		return GetDispatchPlanQueryResponse{}, err
	}

	resolved := h.reconciler.Resolve(o, snapshot)
	products := make([]PlannedProduct, 0, len(resolved))
	productIDs := make([]string, 0, len(resolved))
	for _, ps := range resolved {
		it, _ := o.Item(ps.ProductID)
		p := PlannedProduct{
			ProductID:   ps.ProductID,
			ItemID:      ps.ItemID,
			ProductName: it.ProductName(),
			Available:   ps.Available,
			Needed:      ps.Needed,
			Ordered:     ps.Ordered,
			Remaining:   ps.Remaining,
		}
		if ps.Available != nil {
			line := it.Line()
			line.Quantity = *ps.Available
			display := measure.DisplayStock(it.ProductType(), measure.LineKilograms(line).Div(thousand),
				line.PackageWeightKilograms())
			p.AvailableDisplay = &display
		}
		products = append(products, p)
		productIDs = append(productIDs, ps.ProductID)
	}

	complementary, err := dispatch.NewComplementaryList(snapshot.Complementary...)
	if err != nil {
		return GetDispatchPlanQueryResponse{}, err
	}

	return GetDispatchPlanQueryResponse{
		OrderID:                 o.ID().String(),
		Status:                  o.Status(),
		CanDispatch:             o.CanTransition(order.Dispatch) == nil,
		Products:                products,
		Complementary:           complementary.Items(),
		SelectableComplementary: complementary.Available(productIDs),
	}, nil
}
