package http

import (
	"encoding/json"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/services"

	"github.com/shopspring/decimal"
)

// quantity accepts a JSON number or string and keeps the text as typed.
// Parsing is left to the domain so that malformed input gets the domain error.
type quantity string

func (q *quantity) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*q = quantity(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*q = quantity(n.String())
	return nil
}

type DispatchRequest struct {
	TruckNumber        string                 `json:"truckNumber"`
	DriverName         string                 `json:"driverName"`
	DriverMobile       string                 `json:"driverMobile"`
	IsPartial          bool                   `json:"isPartial"`
	Destinations       []DestinationRequest   `json:"destinations" validate:"dive"`
	ComplementaryItems []ComplementaryRequest `json:"complementaryItems" validate:"dive"`
}

type DestinationRequest struct {
	ProductID string   `json:"productId" validate:"required"`
	Quantity  quantity `json:"quantity"`
}

type ComplementaryRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Bags      int    `json:"bags" validate:"gt=0"`
}

func (r DispatchRequest) toDomain() (dispatch.Request, error) {
	req := dispatch.Request{
		TruckNumber:  r.TruckNumber,
		DriverName:   r.DriverName,
		DriverMobile: r.DriverMobile,
		IsPartial:    r.IsPartial,
	}

	for _, d := range r.Destinations {
		req.Destinations = append(req.Destinations, dispatch.Destination{
			ProductID: d.ProductID,
			Quantity:  string(d.Quantity),
		})
	}

	if len(r.ComplementaryItems) > 0 {
		items := make([]dispatch.ComplementaryItem, 0, len(r.ComplementaryItems))
		for _, it := range r.ComplementaryItems {
			items = append(items, dispatch.ComplementaryItem{ProductID: it.ProductID, Bags: it.Bags})
		}
		list, err := dispatch.NewComplementaryList(items...)
		if err != nil {
			return dispatch.Request{}, err
		}
		req.Complementary = list
	}

	return req, nil
}

type CancelRequest struct {
	Reason         string   `json:"reason"`
	ProductID      string   `json:"productId"`
	ReturnType     string   `json:"returnType"`
	ReturnReason   string   `json:"returnReason"`
	ReturnQuantity quantity `json:"returnQuantity"`
	PaymentMode    string   `json:"paymentMode"`
	Description    string   `json:"description"`
}

func (r CancelRequest) toDomain() services.CancellationForm {
	return services.CancellationForm{
		Reason:         r.Reason,
		ProductID:      r.ProductID,
		ReturnType:     r.ReturnType,
		ReturnReason:   r.ReturnReason,
		ReturnQuantity: string(r.ReturnQuantity),
		PaymentMode:    r.PaymentMode,
		Description:    r.Description,
	}
}

type DeliverRequest struct {
	OTP string `json:"otp" validate:"required,max=16"`
}

type TransitionResponse struct {
	OrderID        string `json:"orderId"`
	Action         string `json:"action"`
	PreviousStatus string `json:"previousStatus"`
	Status         string `json:"status"`
	ReportedStatus string `json:"reportedStatus,omitempty"`
	Message        string `json:"message,omitempty"`
	Replayed       bool   `json:"replayed"`
}

func newTransitionResponse(r commands.TransitionResult) TransitionResponse {
	resp := TransitionResponse{
		OrderID:        r.OrderID,
		Action:         r.Action,
		PreviousStatus: r.PreviousStatus.String(),
		Status:         r.Status.String(),
		Message:        r.Message,
		Replayed:       r.Replayed,
	}
	if r.ReportedStatus.Validate() == nil {
		resp.ReportedStatus = r.ReportedStatus.String()
	}
	return resp
}

type DispatchResponse struct {
	TransitionResponse
	TotalTons     decimal.Decimal         `json:"totalTons"`
	Destinations  []ManifestDestination   `json:"destinations,omitempty"`
	Complementary []ComplementaryResponse `json:"complementaryItems,omitempty"`
}

type ManifestDestination struct {
	ProductID string          `json:"productId"`
	ItemID    string          `json:"itemId,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type ComplementaryResponse struct {
	ProductID string `json:"productId"`
	Bags      int    `json:"bags"`
}

func newDispatchResponse(r commands.DispatchResult) DispatchResponse {
	resp := DispatchResponse{
		TransitionResponse: newTransitionResponse(r.TransitionResult),
		TotalTons:          r.Manifest.TotalTons,
		Complementary:      complementaryResponses(r.Manifest.Complementary),
	}
	for _, d := range r.Manifest.Destinations {
		resp.Destinations = append(resp.Destinations, ManifestDestination{
			ProductID: d.ProductID,
			ItemID:    d.ItemID,
			Quantity:  d.Quantity,
		})
	}
	return resp
}

func complementaryResponses(items []dispatch.ComplementaryItem) []ComplementaryResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]ComplementaryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ComplementaryResponse{ProductID: it.ProductID, Bags: it.Bags})
	}
	return out
}

type CancelResponse struct {
	TransitionResponse
	IsDispatchedReturn bool `json:"isDispatchedReturn"`
}

type DeliverResponse struct {
	TransitionResponse
	Method        string `json:"method"`
	ProofLocation string `json:"proofLocation,omitempty"`
}

func newDeliverResponse(r commands.DeliverResult) DeliverResponse {
	return DeliverResponse{
		TransitionResponse: newTransitionResponse(r.TransitionResult),
		Method:             string(r.Method),
		ProofLocation:      r.ProofLocation,
	}
}

type OrderSummaryResponse struct {
	OrderID        string             `json:"orderId"`
	OrderNumber    string             `json:"orderNumber"`
	Status         string             `json:"status"`
	Version        string             `json:"version,omitempty"`
	AllowedActions []string           `json:"allowedActions"`
	Items          []OrderItemSummary `json:"items"`
	TotalKilograms decimal.Decimal    `json:"totalKilograms"`
	TotalTons      decimal.Decimal    `json:"totalTons"`
}

type OrderItemSummary struct {
	ItemID       string          `json:"itemId"`
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName,omitempty"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	ProductType  string          `json:"productType"`
	Kilograms    decimal.Decimal `json:"kilograms"`
	DisplayValue decimal.Decimal `json:"displayValue"`
	DisplayUnit  string          `json:"displayUnit"`
}

func newOrderSummaryResponse(s queries.GetOrderSummaryQueryResponse) OrderSummaryResponse {
	resp := OrderSummaryResponse{
		OrderID:        s.OrderID,
		OrderNumber:    s.OrderNumber,
		Status:         s.Status.String(),
		Version:        s.Version,
		AllowedActions: make([]string, 0, len(s.AllowedActions)),
		Items:          make([]OrderItemSummary, 0, len(s.Items)),
		TotalKilograms: s.TotalKilograms,
		TotalTons:      s.TotalTons,
	}
	for _, a := range s.AllowedActions {
		resp.AllowedActions = append(resp.AllowedActions, a.String())
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, OrderItemSummary{
			ItemID:       it.ItemID,
			ProductID:    it.ProductID,
			ProductName:  it.ProductName,
			Quantity:     it.Quantity,
			Unit:         it.Unit.String(),
			ProductType:  it.ProductType.String(),
			Kilograms:    it.Kilograms,
			DisplayValue: it.Display.Value,
			DisplayUnit:  string(it.Display.Unit),
		})
	}
	return resp
}

type DispatchPlanResponse struct {
	OrderID                 string                  `json:"orderId"`
	Status                  string                  `json:"status"`
	CanDispatch             bool                    `json:"canDispatch"`
	Products                []PlannedProduct        `json:"products"`
	Complementary           []ComplementaryResponse `json:"complementaryItems"`
	SelectableComplementary []string                `json:"selectableComplementary"`
}

type PlannedProduct struct {
	ProductID        string           `json:"productId"`
	ItemID           string           `json:"itemId,omitempty"`
	ProductName      string           `json:"productName,omitempty"`
	Available        *decimal.Decimal `json:"available"`
	Needed           *decimal.Decimal `json:"needed"`
	Ordered          *decimal.Decimal `json:"ordered"`
	Remaining        *decimal.Decimal `json:"remaining"`
	AvailableDisplay *StockDisplay    `json:"availableDisplay,omitempty"`
}

type StockDisplay struct {
	Unit  string          `json:"unit"`
	Value decimal.Decimal `json:"value"`
}

func newDispatchPlanResponse(p queries.GetDispatchPlanQueryResponse) DispatchPlanResponse {
	resp := DispatchPlanResponse{
		OrderID:                 p.OrderID,
		Status:                  p.Status.String(),
		CanDispatch:             p.CanDispatch,
		Products:                make([]PlannedProduct, 0, len(p.Products)),
		Complementary:           complementaryResponses(p.Complementary),
		SelectableComplementary: p.SelectableComplementary,
	}
	if resp.Complementary == nil {
		resp.Complementary = []ComplementaryResponse{}
	}
	if resp.SelectableComplementary == nil {
		resp.SelectableComplementary = []string{}
	}
	for _, pr := range p.Products {
		planned := PlannedProduct{
			ProductID:   pr.ProductID,
			ItemID:      pr.ItemID,
			ProductName: pr.ProductName,
			Available:   pr.Available,
			Needed:      pr.Needed,
			Ordered:     pr.Ordered,
			Remaining:   pr.Remaining,
		}
		if pr.AvailableDisplay != nil {
			planned.AvailableDisplay = &StockDisplay{
				Unit:  string(pr.AvailableDisplay.Unit),
				Value: pr.AvailableDisplay.Value,
			}
		}
		resp.Products = append(resp.Products, planned)
	}
	return resp
}

type ActionHistoryEntry struct {
	IdempotencyKey string    `json:"idempotencyKey"`
	Action         string    `json:"action"`
	State          string    `json:"state"`
	ResultStatus   string    `json:"resultStatus,omitempty"`
	ResultMessage  string    `json:"resultMessage,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func newActionHistoryResponse(entries []queries.GetOrderActionHistoryQueryResponse) []ActionHistoryEntry {
	out := make([]ActionHistoryEntry, 0, len(entries))
	for _, e := range entries {
		entry := ActionHistoryEntry{
			IdempotencyKey: e.IdempotencyKey,
			Action:         e.Action.String(),
			State:          e.State,
			ResultMessage:  e.ResultMessage,
			CreatedAt:      e.CreatedAt,
			UpdatedAt:      e.UpdatedAt,
		}
		if e.ResultStatus.Validate() == nil {
			entry.ResultStatus = e.ResultStatus.String()
		}
		out = append(out, entry)
	}
	return out
}
