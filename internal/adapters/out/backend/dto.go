package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/measure"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/shopspring/decimal"
)

type manifestDTO struct {
	TruckNumber        string             `json:"truckNumber"`
	DriverName         string             `json:"driverName"`
	DriverMobile       string             `json:"driverMobile"`
	IsPartialDispatch  bool               `json:"isPartialDispatch"`
	Destinations       []map[string]any   `json:"destinations,omitempty"`
	ComplementaryItems []complementaryDTO `json:"complementaryItems,omitempty"`
	TotalTons          json.Number        `json:"totalTons"`
}

type destinationDTO struct {
	ProductID string
	ItemID    string
	Quantity  decimal.Decimal
	Required  *decimal.Decimal
	Available *decimal.Decimal
	Ordered   *decimal.Decimal
}

type complementaryDTO struct {
	ProductID string `json:"productId"`
	Bags      int    `json:"bags"`
}

type otpDTO struct {
	OTP string `json:"otp"`
}

type cancelDTO struct {
	Reason             string           `json:"reason"`
	CancelledAt        time.Time        `json:"cancelledAt"`
	IsDispatchedReturn bool             `json:"isDispatchedReturn,omitempty"`
	ProductID          string           `json:"productId,omitempty"`
	ReturnType         string           `json:"returnType,omitempty"`
	ReturnReason       string           `json:"returnReason,omitempty"`
	ReturnQuantity     json.Number      `json:"returnQuantity,omitempty"`
	PaymentMode        string           `json:"paymentMode,omitempty"`
	Description        string           `json:"description,omitempty"`
}

func manifestFromDomain(m dispatch.Manifest) manifestDTO {
	dto := manifestDTO{
		TruckNumber:       m.TruckNumber,
		DriverName:        m.DriverName,
		DriverMobile:      m.DriverMobile,
		IsPartialDispatch: m.IsPartial,
		TotalTons:         number(m.TotalTons),
	}
	for _, c := range m.Complementary {
		dto.ComplementaryItems = append(dto.ComplementaryItems, complementaryDTO{ProductID: c.ProductID, Bags: c.Bags})
	}
	for _, d := range m.Destinations {
		dto.Destinations = append(dto.Destinations, destinationAliases(destinationDTO{
			ProductID: d.ProductID,
			ItemID:    d.ItemID,
			Quantity:  d.Quantity,
			Required:  d.Required,
			Available: d.Available,
			Ordered:   d.Ordered,
		}))
	}
	return dto
}

func cancelFromDomain(r order.CancellationRecord) cancelDTO {
	dto := cancelDTO{
		Reason:      r.Reason(),
		CancelledAt: r.CancelledAt().UTC(),
	}
	if ret, ok := r.Return(); ok {
		dto.IsDispatchedReturn = true
		dto.ProductID = ret.ProductID
		dto.ReturnType = string(ret.ReturnType)
		dto.ReturnReason = ret.ReturnReason
		dto.ReturnQuantity = number(ret.ReturnQuantity)
		dto.PaymentMode = string(ret.PaymentMode)
		dto.Description = ret.Description
	}
	return dto
}

func orderToDomain(obj object) (*order.SalesOrder, error) {
	obj = obj.unwrap()

	id, err := kernel.NewOrderID(obj.str(orderIDAliases...))
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(obj.str(statusAliases...))
	if err != nil {
		return nil, err
	}

	var problems []error
	lines := obj.list(itemsAliases...)
	items := make([]order.Item, 0, len(lines))
	for i, line := range lines {
		it, itemErr := itemToDomain(line)
		if itemErr != nil {
			problems = append(problems, fmt.Errorf("item %d: %w", i, itemErr))
			continue
		}
		items = append(items, it)
	}
	if err = errors.Join(problems...); err != nil {
		return nil, err
	}

	return order.RestoreSalesOrder(order.Snapshot{
		ID:            id,
		OrderNumber:   obj.str(orderNumberAliases...),
		Status:        status,
		Items:         items,
		CustomerRef:   reference(obj, "customerId", "customer"),
		WarehouseRef:  reference(obj, "warehouseId", "warehouse"),
		PaymentStatus: obj.str("paymentStatus"),
		Dispatch:      dispatchDetails(obj),
		Delivery:      deliveryDetails(obj),
		CreatedAt:     timestamp(obj, "createdAt"),
		UpdatedAt:     timestamp(obj, "updatedAt"),
	})
}

func itemToDomain(line object) (order.Item, error) {
	unit, unitErr := measure.ParseUnit(line.str(unitAliases...))

	productType, typeErr := measure.ParseProductType(line.productField(productTypeAliases...))
	if err := errors.Join(unitErr, typeErr); err != nil {
		return order.Item{}, err
	}

	params := order.ItemParams{
		ID:          line.str(itemIDAliases...),
		ProductID:   line.productID(),
		ProductName: line.productField(productNameAliases...),
		Unit:        unit,
		ProductType: productType,
		Available:   line.amount(availableAliases...),
		Needed:      line.amount(neededAliases...),
	}
	if qty := line.amount(quantityAliases...); qty != nil {
		params.Quantity = *qty
	}
	if w := line.productAmount(packageWeightAliases...); w != nil {
		params.PackageWeight = *w
	}
	if u := line.productField(packageWeightUnitAliases...); u != "" {
		pwu, err := measure.ParseUnit(u)
		if err != nil {
			return order.Item{}, err
		}
		params.PackageWeightUnit = pwu
	}

	return order.NewItem(params)
}

func reference(obj object, idField, docField string) string {
	if v := obj.str(idField); v != "" {
		return v
	}
	if doc, ok := obj.nested(docField); ok {
		return doc.str("_id", "id")
	}
	return obj.str(docField)
}

func timestamp(obj object, names ...string) time.Time {
	s := obj.str(names...)
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func dispatchDetails(obj object) *order.DispatchDetails {
	d, ok := obj.nested("dispatchDetails", "dispatch")
	if !ok {
		return nil
	}
	partial, _ := d.boolean("isPartialDispatch", "isPartial")
	return &order.DispatchDetails{
		TruckNumber:  d.str("truckNumber"),
		DriverName:   d.str("driverName"),
		DriverMobile: d.str("driverMobile"),
		IsPartial:    partial,
		DispatchedAt: timestamp(d, "dispatchedAt", "dispatchDate"),
	}
}

func deliveryDetails(obj object) *order.DeliveryDetails {
	at := timestamp(obj, "deliveredAt", "deliveryDate")
	if at.IsZero() {
		return nil
	}
	method := order.DeliveryByOTP
	if m := obj.str("deliveryMethod"); m == string(order.DeliveryBySignedInvoice) {
		method = order.DeliveryBySignedInvoice
	}
	return &order.DeliveryDetails{Method: method, DeliveredAt: at}
}

func eligibilityToDomain(obj object) dispatch.Eligibility {
	obj = obj.unwrap()
	eligible, _ := obj.boolean(eligibleAliases...)
	e := dispatch.Eligibility{Eligible: eligible}
	if !eligible {
		e.Reason = obj.str(reasonAliases...)
	}
	return e
}

func snapshotToDomain(obj object) dispatch.StatusSnapshot {
	obj = obj.unwrap()

	var snapshot dispatch.StatusSnapshot
	for _, p := range obj.list(itemsAliases...) {
		productID := p.productID()
		if productID == "" {
			continue
		}
		snapshot.Products = append(snapshot.Products, dispatch.ProductStatus{
			ProductID: productID,
			ItemID:    p.str(itemIDAliases...),
			Available: p.amount(availableAliases...),
			Needed:    p.amount(neededAliases...),
			Ordered:   p.amount(orderedAliases...),
			Remaining: p.amount(remainingAliases...),
		})
	}

	for _, c := range obj.list(complementaryAliases...) {
		bags := c.amount("bags", "quantity")
		if bags == nil {
			continue
		}
		snapshot.Complementary = append(snapshot.Complementary, dispatch.ComplementaryItem{
			ProductID: c.productID(),
			Bags:      int(bags.IntPart()),
		})
	}

	return snapshot
}

// transitionToDomain reads the status the store reports after a transition.
// An unreadable status is reported as order.Unknown.
func transitionToDomain(obj object) ports.TransitionResponse {
	inner := obj.unwrap()
	resp := ports.TransitionResponse{Message: obj.str(messageAliases...)}
	if resp.Message == "" {
		resp.Message = inner.str(messageAliases...)
	}

	status := inner.str(statusAliases...)
	if status == "" {
		if o, ok := inner.nested("order", "salesOrder"); ok {
			status = o.str(statusAliases...)
		}
	}
	if st, err := order.ParseStatus(status); err == nil {
		resp.OrderStatus = st
	}
	return resp
}

// rejectionMessage returns the server message of a non-success response, or
// the status text when the body carries none.
func rejectionMessage(statusCode int, body []byte) string {
	if obj, err := decodeObject(body); err == nil {
		if msg := obj.str(messageAliases...); msg != "" {
			return msg
		}
		if inner, ok := obj.nested("error"); ok {
			if msg := inner.str(messageAliases...); msg != "" {
				return msg
			}
		}
	}
	if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 512 && !strings.HasPrefix(text, "{") &&
		!strings.HasPrefix(text, "<") {
		return text
	}
	return http.StatusText(statusCode)
}
