package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const (
	headerIdempotencyKey = "Idempotency-Key"
	headerIfMatch        = "If-Match"
	signedInvoiceField   = "signedInvoice"

	// MaxSignedInvoiceSize bounds the uploaded invoice file.
	MaxSignedInvoiceSize = 10 << 20
)

type (
	// OrderActions runs the state-changing order workflow. Actions are
	// requested on an order read with LoadOrder.
	OrderActions interface {
		LoadOrder(ctx context.Context, principal ports.Principal, orderID string) (*order.SalesOrder, error)
		RequestDispatch(ctx context.Context, cmd commands.DispatchOrderCommand) (commands.DispatchResult, error)
		RequestCancel(ctx context.Context, cmd commands.CancelOrderCommand) (commands.CancelResult, error)
		RequestDeliver(ctx context.Context, cmd commands.DeliverOrderCommand) (commands.DeliverResult, error)
		RequestDeliveryOTP(ctx context.Context, cmd commands.RequestDeliveryOTPCommand) error
	}

	OrderSummaryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderSummaryQuery) (queries.GetOrderSummaryQueryResponse, error)
	}

	DispatchPlanHandler interface {
		Handle(ctx context.Context, query queries.GetDispatchPlanQuery) (queries.GetDispatchPlanQueryResponse, error)
	}

	ActionHistoryHandler interface {
		Handle(
			ctx context.Context,
			query queries.GetOrderActionHistoryQuery,
		) ([]queries.GetOrderActionHistoryQueryResponse, error)
	}
)

// Server maps HTTP requests onto order commands and queries.
type Server struct {
	actions OrderActions

	summaryHandler      OrderSummaryHandler
	dispatchPlanHandler DispatchPlanHandler
	historyHandler      ActionHistoryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	actions OrderActions,
	summaryHandler OrderSummaryHandler,
	dispatchPlanHandler DispatchPlanHandler,
	historyHandler ActionHistoryHandler,
) *Server {
	return &Server{
		actions:             actions,
		summaryHandler:      summaryHandler,
		dispatchPlanHandler: dispatchPlanHandler,
		historyHandler:      historyHandler,
	}
}

// GetOrderSummary handles GET /api/v1/orders/:id/summary.
// The order version is also returned as ETag for use in If-Match.
func (s *Server) GetOrderSummary(c echo.Context) error {
	query, err := queries.NewGetOrderSummaryQuery(principalFrom(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	summary, err := s.summaryHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return toHTTPError(err)
	}

	if summary.Version != "" {
		c.Response().Header().Set("ETag", `"`+summary.Version+`"`)
	}
	return c.JSON(http.StatusOK, newOrderSummaryResponse(summary))
}

// GetDispatchPlan handles GET /api/v1/orders/:id/dispatch-plan.
func (s *Server) GetDispatchPlan(c echo.Context) error {
	query, err := queries.NewGetDispatchPlanQuery(principalFrom(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	plan, err := s.dispatchPlanHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, newDispatchPlanResponse(plan))
}

// GetActionHistory handles GET /api/v1/orders/:id/history.
func (s *Server) GetActionHistory(c echo.Context) error {
	query, err := queries.NewGetOrderActionHistoryQuery(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	history, err := s.historyHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, newActionHistoryResponse(history))
}

// DispatchOrder handles POST /api/v1/orders/:id/dispatch.
func (s *Server) DispatchOrder(c echo.Context) error {
	var body DispatchRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	req, err := body.toDomain()
	if err != nil {
		return toHTTPError(err)
	}

	o, err := s.loadOrder(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDispatchOrderCommand(principalFrom(c), o, req, transitionOptions(c))
	if err != nil {
		return toHTTPError(err)
	}

	result, err := s.actions.RequestDispatch(c.Request().Context(), cmd)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, newDispatchResponse(result))
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. A dispatched order is
// returned instead of cancelled and needs the return fields.
func (s *Server) CancelOrder(c echo.Context) error {
	var body CancelRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	o, err := s.loadOrder(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(principalFrom(c), o, body.toDomain(), transitionOptions(c))
	if err != nil {
		return toHTTPError(err)
	}

	result, err := s.actions.RequestCancel(c.Request().Context(), cmd)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, CancelResponse{
		TransitionResponse: newTransitionResponse(result.TransitionResult),
		IsDispatchedReturn: result.IsDispatchedReturn,
	})
}

// RequestDeliveryOTP handles POST /api/v1/orders/:id/deliver-otp.
func (s *Server) RequestDeliveryOTP(c echo.Context) error {
	o, err := s.loadOrder(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRequestDeliveryOTPCommand(principalFrom(c), o)
	if err != nil {
		return toHTTPError(err)
	}

	if err = s.actions.RequestDeliveryOTP(c.Request().Context(), cmd); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusAccepted)
}

// DeliverOrder handles POST /api/v1/orders/:id/deliver with the customer's OTP.
func (s *Server) DeliverOrder(c echo.Context) error {
	var body DeliverRequest
	if err := bindAndValidate(c, &body); err != nil {
		return err
	}

	o, err := s.loadOrder(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeliverWithOTPCommand(principalFrom(c), o, body.OTP, transitionOptions(c))
	if err != nil {
		return toHTTPError(err)
	}

	result, err := s.actions.RequestDeliver(c.Request().Context(), cmd)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, newDeliverResponse(result))
}

// UploadSignedInvoice handles POST /api/v1/orders/:id/signed-invoice with a
// multipart signedInvoice file.
func (s *Server) UploadSignedInvoice(c echo.Context) error {
	file, err := c.FormFile(signedInvoiceField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, signedInvoiceField+" file is required").SetInternal(err)
	}
	if file.Size > MaxSignedInvoiceSize {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "signed invoice is too large")
	}

	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read signed invoice").SetInternal(err)
	}
	defer src.Close()

	content, err := io.ReadAll(io.LimitReader(src, MaxSignedInvoiceSize))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read signed invoice").SetInternal(err)
	}

	o, err := s.loadOrder(c)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeliverWithSignedInvoiceCommand(
		principalFrom(c),
		o,
		file.Filename,
		file.Header.Get(echo.HeaderContentType),
		content,
		transitionOptions(c),
	)
	if err != nil {
		return toHTTPError(err)
	}

	result, err := s.actions.RequestDeliver(c.Request().Context(), cmd)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, newDeliverResponse(result))
}

// loadOrder reads the order named by the :id path parameter.
func (s *Server) loadOrder(c echo.Context) (*order.SalesOrder, error) {
	o, err := s.actions.LoadOrder(c.Request().Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		return nil, toHTTPError(err)
	}
	return o, nil
}

// transitionOptions reads the Idempotency-Key and If-Match headers.
func transitionOptions(c echo.Context) commands.TransitionOptions {
	h := c.Request().Header
	return commands.TransitionOptions{
		IdempotencyKey:  strings.TrimSpace(h.Get(headerIdempotencyKey)),
		ExpectedVersion: strings.Trim(strings.TrimSpace(h.Get(headerIfMatch)), `"`),
	}
}
