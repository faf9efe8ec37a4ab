package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderEventPublisher announces completed transitions to other services.
type OrderEventPublisher interface {
	Publish(ctx context.Context, events ...order.DomainEvent) error
}
