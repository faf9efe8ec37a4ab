// Package backend is the HTTP client of the order store. It implements
// ports.FulfillmentBackend behind a circuit breaker and translates transport
// failures and non-success answers into the errs types the workflow expects.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"

	"github.com/sony/gobreaker"
)

const (
	DefaultTimeout = 15 * time.Second

	maxResponseSize = 1 << 20
	breakerName     = "order-store"
)

// Paths are the order store endpoints. Entries containing %s receive the
// escaped order id.
type Paths struct {
	Order                 string
	DispatchEligibility   string
	PartialDispatchStatus string
	Dispatch              string
	DeliverOTP            string
	Deliver               string
	UploadSignedInvoice   string
	Cancel                string
}

func DefaultPaths() Paths {
	return Paths{
		Order:                 "/sales-orders/%s",
		DispatchEligibility:   "/sales-orders/%s/dispatch-eligibility",
		PartialDispatchStatus: "/sales-orders/%s/partial-dispatch-status",
		Dispatch:              "/sales-orders/%s/dispatch",
		DeliverOTP:            "/sales-orders/%s/deliver-otp",
		Deliver:               "/sales-orders/%s/deliver",
		UploadSignedInvoice:   "/sales-orders/upload-signed-invoice",
		Cancel:                "/sales-orders/%s/cancel",
	}
}

// BreakerConfig tunes the circuit breaker. Zero values take the defaults.
type BreakerConfig struct {
	// MaxRequests allowed through while half-open.
	MaxRequests uint32
	// Interval after which closed-state counts are cleared.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open.
	OpenTimeout time.Duration
	// FailureThreshold is the number of consecutive failures that trips it.
	FailureThreshold uint32
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Paths   Paths
	Breaker BreakerConfig
}

// Client talks to the order store. It is safe for concurrent use.
type Client struct {
	baseURL *url.URL
	paths   Paths
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *slog.Logger
}

var _ ports.FulfillmentBackend = (*Client)(nil)

func NewClient(cfg Config, m *metrics.Metrics, logger *slog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, errs.NewValueIsInvalidErrorWithCause("backendBaseURL",
			fmt.Errorf("%q is not an absolute URL", cfg.BaseURL))
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Paths == (Paths{}) {
		cfg.Paths = DefaultPaths()
	}
	if m == nil {
		m = metrics.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "order-store-client")

	c := &Client{
		baseURL: base,
		paths:   cfg.Paths,
		http:    &http.Client{Timeout: cfg.Timeout},
		metrics: m,
		logger:  logger,
	}
	c.breaker = gobreaker.NewCircuitBreaker(breakerSettings(cfg.Breaker, m, logger))
	m.SetBreakerState(breakerName, int(gobreaker.StateClosed))

	return c, nil
}

func breakerSettings(cfg BreakerConfig, m *metrics.Metrics, logger *slog.Logger) gobreaker.Settings {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}
	if cfg.OpenTimeout == 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	return gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
			m.SetBreakerState(name, int(to))
		},
	}
}

type request struct {
	operation      string
	method         string
	path           string
	principal      ports.Principal
	body           []byte
	contentType    string
	idempotencyKey string
}

type response struct {
	statusCode int
	body       []byte
}

// serverFailure makes a 5xx answer count against the breaker while keeping
// the response for the caller.
type serverFailure struct {
	resp *response
}

func (e *serverFailure) Error() string {
	return "order store answered " + strconv.Itoa(e.resp.statusCode)
}

// do sends req and returns the body of a 2xx answer. Transport failures come
// back as *errs.NetworkError, other answers as *errs.BackendRejectionError.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	start := time.Now()

	result, err := c.breaker.Execute(func() (interface{}, error) {
		resp, sendErr := c.send(ctx, req)
		if sendErr != nil {
			return nil, sendErr
		}
		if resp.statusCode >= http.StatusInternalServerError {
			return nil, &serverFailure{resp: resp}
		}
		return resp, nil
	})

	var failure *serverFailure
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.RecordBackendRequest(req.operation, "breaker_open", time.Since(start))
		c.logger.WarnContext(ctx, "Circuit breaker rejected request", "operation", req.operation)
		return nil, errs.NewNetworkError(errs.NetworkGeneric, req.operation, err)
	case errors.As(err, &failure):
		result = failure.resp
	case err != nil:
		c.metrics.RecordBackendRequest(req.operation, "error", time.Since(start))
		return nil, classify(ctx, req.operation, err)
	}

	resp := result.(*response)
	c.metrics.RecordBackendRequest(req.operation, strconv.Itoa(resp.statusCode), time.Since(start))

	if resp.statusCode < http.StatusOK || resp.statusCode >= http.StatusMultipleChoices {
		return nil, errs.NewBackendRejectionError(resp.statusCode, rejectionMessage(resp.statusCode, resp.body))
	}
	return resp.body, nil
}

func (c *Client) send(ctx context.Context, req request) (*response, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL.String()+req.path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+req.principal.Token)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if req.idempotencyKey != "" {
		httpReq.Header.Set("Idempotency-Key", req.idempotencyKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, err
	}

	return &response{statusCode: resp.StatusCode, body: data}, nil
}

func (c *Client) orderPath(pattern string, id fmt.Stringer) string {
	if !strings.Contains(pattern, "%s") {
		return pattern
	}
	return fmt.Sprintf(pattern, url.PathEscape(id.String()))
}
