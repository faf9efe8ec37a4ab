package http

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewRouter builds the echo instance with every route of the service.
// /health and /metrics are public; /api/v1 requires a bearer token.
func NewRouter(server *Server, auth *Authenticator, metricsHandler http.Handler, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.InfoContext(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"requestId", v.RequestID,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(metricsHandler))
	}

	api := e.Group("/api/v1", auth.Middleware())
	orders := api.Group("/orders/:id")
	orders.GET("/summary", server.GetOrderSummary)
	orders.GET("/dispatch-plan", server.GetDispatchPlan)
	orders.GET("/history", server.GetActionHistory)
	orders.POST("/dispatch", server.DispatchOrder)
	orders.POST("/cancel", server.CancelOrder)
	orders.POST("/deliver-otp", server.RequestDeliveryOTP)
	orders.POST("/deliver", server.DeliverOrder)
	orders.POST("/signed-invoice", server.UploadSignedInvoice, middleware.BodyLimit("12M"))

	return e
}
