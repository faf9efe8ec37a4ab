package order

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when a SalesOrder instance was not
	// created through RestoreSalesOrder.
	ErrOrderIsNotConstructed = errors.New("SalesOrder must be created via RestoreSalesOrder")
)

// DispatchDetails records the truck that carries a dispatched order.
type DispatchDetails struct {
	TruckNumber  string
	DriverName   string
	DriverMobile string
	IsPartial    bool
	DispatchedAt time.Time
}

// DeliveryDetails records how delivery was confirmed.
type DeliveryDetails struct {
	Method      DeliveryMethod
	DeliveredAt time.Time
}

// Snapshot is the state of a sales order as read from the order store.
type Snapshot struct {
	ID            kernel.OrderID
	OrderNumber   string
	Status        Status
	Items         []Item
	CustomerRef   string
	WarehouseRef  string
	PaymentStatus string
	Dispatch      *DispatchDetails
	Delivery      *DeliveryDetails
	Cancellation  *CancellationRecord
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalesOrder is the aggregate root of the fulfillment workflow. It is a
// transient copy of the record owned by the order store, rebuilt for the
// duration of one workflow action.
//
// SalesOrder follows these invariants:
//   - Must have an order id and a valid status
//   - Items are valid order lines
//   - Status only changes through the transition table (see Status.Transition)
//   - A failed transition leaves the order unchanged
//
// Every successful transition records a DomainEvent, collected with Events.
type SalesOrder struct {
	id            kernel.OrderID
	orderNumber   string
	status        Status
	items         []Item
	customerRef   string
	warehouseRef  string
	paymentStatus string
	dispatch      *DispatchDetails
	delivery      *DeliveryDetails
	cancellation  *CancellationRecord
	createdAt     time.Time
	updatedAt     time.Time

	events []DomainEvent

	isConstructed bool
}

// RestoreSalesOrder rebuilds the aggregate from a snapshot.
//
// Parameters:
//   - s: the order as read from the order store
//
// Returns:
//   - *SalesOrder: the restored order if all validations pass
//   - error: every validation error joined, if any
//
// Example:
//
//	id, _ := kernel.NewOrderID("SO-1001")
//	o, err := order.RestoreSalesOrder(order.Snapshot{ID: id, Status: order.Confirmed, Items: items})
//	if err != nil {
//	    // Handle validation error
//	}
func RestoreSalesOrder(s Snapshot) (*SalesOrder, error) {
	o := &SalesOrder{
		orderNumber:   strings.TrimSpace(s.OrderNumber),
		customerRef:   s.CustomerRef,
		warehouseRef:  s.WarehouseRef,
		paymentStatus: s.PaymentStatus,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setStatus(s.Status),
		o.setItems(s.Items),
	); err != nil {
		return nil, err
	}

	if s.Dispatch != nil {
		d := *s.Dispatch
		o.dispatch = &d
	}
	if s.Delivery != nil {
		d := *s.Delivery
		o.delivery = &d
	}
	if s.Cancellation != nil {
		c := *s.Cancellation
		o.cancellation = &c
	}

	return o, nil
}

// Validate ensures the SalesOrder was built by RestoreSalesOrder.
func (o *SalesOrder) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *SalesOrder) ID() kernel.OrderID {
	return o.id
}

func (o *SalesOrder) OrderNumber() string {
	return o.orderNumber
}

func (o *SalesOrder) Status() Status {
	return o.status
}

// Items returns a copy of the order lines.
func (o *SalesOrder) Items() []Item {
	items := make([]Item, len(o.items))
	copy(items, o.items)
	return items
}

// Item looks up the line ordering productID.
func (o *SalesOrder) Item(productID string) (Item, bool) {
	productID = strings.TrimSpace(productID)
	for _, it := range o.items {
		if it.productID == productID {
			return it, true
		}
	}
	return Item{}, false
}

func (o *SalesOrder) CustomerRef() string {
	return o.customerRef
}

func (o *SalesOrder) WarehouseRef() string {
	return o.warehouseRef
}

func (o *SalesOrder) PaymentStatus() string {
	return o.paymentStatus
}

func (o *SalesOrder) DispatchDetails() (DispatchDetails, bool) {
	if o.dispatch == nil {
		return DispatchDetails{}, false
	}
	return *o.dispatch, true
}

func (o *SalesOrder) DeliveryDetails() (DeliveryDetails, bool) {
	if o.delivery == nil {
		return DeliveryDetails{}, false
	}
	return *o.delivery, true
}

func (o *SalesOrder) Cancellation() (CancellationRecord, bool) {
	if o.cancellation == nil {
		return CancellationRecord{}, false
	}
	return *o.cancellation, true
}

func (o *SalesOrder) CreatedAt() time.Time {
	return o.createdAt
}

func (o *SalesOrder) UpdatedAt() time.Time {
	return o.updatedAt
}

// Version is the concurrency token of the order: its last update time.
// An order the store never stamped has an empty version.
func (o *SalesOrder) Version() string {
	if o.updatedAt.IsZero() {
		return ""
	}
	return o.updatedAt.UTC().Format(time.RFC3339Nano)
}

// CheckVersion fails with VersionIsInvalidError when expected is set and
// differs from Version.
func (o *SalesOrder) CheckVersion(expected string) error {
	expected = strings.TrimSpace(expected)
	if expected == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, expected); err == nil && t.Equal(o.updatedAt) {
		return nil
	}
	return errs.NewVersionIsInvalidErrorWithCause("updatedAt")
}

// Lines returns the measurable view of every item.
func (o *SalesOrder) Lines() []measure.Line {
	lines := make([]measure.Line, 0, len(o.items))
	for _, it := range o.items {
		lines = append(lines, it.Line())
	}
	return lines
}

// TotalTons is the order total in order-aggregation mode.
func (o *SalesOrder) TotalTons() decimal.Decimal {
	return measure.AggregateTons(o.Lines())
}

// CanTransition checks the transition table for action without changing the order.
func (o *SalesOrder) CanTransition(action Action) error {
	return o.status.ValidateTransition(action)
}

// MarkDispatched moves a Confirmed order to Dispatched.
//
// Returns:
//   - nil on success; an OrderDispatched event is recorded
//   - *errs.InvalidTransitionError if the order is not Confirmed
func (o *SalesOrder) MarkDispatched(details DispatchDetails) error {
	from := o.status
	next, err := from.Transition(Dispatch)
	if err != nil {
		return err
	}

	o.status = next
	o.dispatch = &details
	o.updatedAt = details.DispatchedAt
	o.events = append(o.events, newEvent(o, OrderDispatched, from, details.DispatchedAt, map[string]string{
		"truckNumber": details.TruckNumber,
		"driverName":  details.DriverName,
	}))
	return nil
}

// MarkDelivered moves a Dispatched order to Delivered.
//
// Returns:
//   - nil on success; an OrderDelivered event is recorded
//   - *errs.InvalidTransitionError if the order is not Dispatched
func (o *SalesOrder) MarkDelivered(details DeliveryDetails) error {
	from := o.status
	next, err := from.Transition(Deliver)
	if err != nil {
		return err
	}

	o.status = next
	o.delivery = &details
	o.updatedAt = details.DeliveredAt
	o.events = append(o.events, newEvent(o, OrderDelivered, from, details.DeliveredAt, map[string]string{
		"method": string(details.Method),
	}))
	return nil
}

// Cancel applies a cancellation record. Plain cancellations use the Cancel
// action and dispatched returns use ReturnCancel. Both end in Cancelled.
//
// Returns:
//   - nil on success; an OrderCancelled or OrderReturned event is recorded
//   - *errs.InvalidTransitionError if the record does not fit the status
func (o *SalesOrder) Cancel(record CancellationRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	from := o.status
	next, err := from.Transition(record.Action())
	if err != nil {
		return err
	}

	o.status = next
	o.cancellation = &record
	o.updatedAt = record.CancelledAt()

	eventType := OrderCancelled
	attrs := map[string]string{"reason": record.Reason()}
	if ret, ok := record.Return(); ok {
		eventType = OrderReturned
		attrs["productId"] = ret.ProductID
		attrs["returnType"] = string(ret.ReturnType)
		attrs["returnQuantity"] = ret.ReturnQuantity.String()
		attrs["paymentMode"] = string(ret.PaymentMode)
	}
	o.events = append(o.events, newEvent(o, eventType, from, record.CancelledAt(), attrs))
	return nil
}

// Events returns the events raised since the last ClearEvents.
func (o *SalesOrder) Events() []DomainEvent {
	events := make([]DomainEvent, len(o.events))
	copy(events, o.events)
	return events
}

func (o *SalesOrder) ClearEvents() {
	o.events = nil
}

func (o *SalesOrder) setID(id kernel.OrderID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *SalesOrder) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *SalesOrder) setItems(items []Item) error {
	var problems []error
	for _, it := range items {
		if err := it.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		o.items = append(o.items, it)
	}
	return errors.Join(problems...)
}
