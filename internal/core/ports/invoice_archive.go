package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// InvoiceArchive keeps a copy of every signed invoice accepted by the order store.
type InvoiceArchive interface {
	// Store saves the invoice and returns where it was saved.
	Store(ctx context.Context, id kernel.OrderID, inv order.SignedInvoiceConfirmation) (string, error)
}
