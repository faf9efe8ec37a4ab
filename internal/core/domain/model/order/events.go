package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// EventType names a domain event raised by SalesOrder.
type EventType string

const (
	OrderDispatched EventType = "OrderDispatched"
	OrderDelivered  EventType = "OrderDelivered"
	OrderCancelled  EventType = "OrderCancelled"
	OrderReturned   EventType = "OrderReturned"
)

// DomainEvent records a completed transition. Attributes carry event
// specific details such as the truck number or the cancellation reason.
type DomainEvent struct {
	ID          kernel.UUID
	Type        EventType
	OrderID     kernel.OrderID
	OrderNumber string
	From        Status
	To          Status
	OccurredAt  time.Time
	Attributes  map[string]string
}

func newEvent(o *SalesOrder, t EventType, from Status, at time.Time, attrs map[string]string) DomainEvent {
	return DomainEvent{
		ID:          kernel.NewUUID(),
		Type:        t,
		OrderID:     o.id,
		OrderNumber: o.orderNumber,
		From:        from,
		To:          o.status,
		OccurredAt:  at,
		Attributes:  attrs,
	}
}
