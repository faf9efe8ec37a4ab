package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"fulfillment/internal/core/domain/model/dispatch"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

const jsonContentType = "application/json"

func (c *Client) GetOrder(ctx context.Context, p ports.Principal, id kernel.OrderID) (*order.SalesOrder, error) {
	obj, err := c.getObject(ctx, "get-order", c.orderPath(c.paths.Order, id), p)
	if err != nil {
		return nil, err
	}

	o, err := orderToDomain(obj)
	if err != nil {
		return nil, fmt.Errorf("decode order %s: %w", id, err)
	}
	return o, nil
}

func (c *Client) GetDispatchEligibility(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
) (dispatch.Eligibility, error) {
	obj, err := c.getObject(ctx, "dispatch-eligibility", c.orderPath(c.paths.DispatchEligibility, id), p)
	if err != nil {
		return dispatch.Eligibility{}, err
	}
	return eligibilityToDomain(obj), nil
}

func (c *Client) GetPartialDispatchStatus(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
) (dispatch.StatusSnapshot, error) {
	obj, err := c.getObject(ctx, "partial-dispatch-status", c.orderPath(c.paths.PartialDispatchStatus, id), p)
	if err != nil {
		return dispatch.StatusSnapshot{}, err
	}
	return snapshotToDomain(obj), nil
}

func (c *Client) Dispatch(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	m dispatch.Manifest,
	opts ports.CallOptions,
) (ports.TransitionResponse, error) {
	return c.transition(ctx, request{
		operation:      "dispatch",
		method:         http.MethodPut,
		path:           c.orderPath(c.paths.Dispatch, id),
		principal:      p,
		idempotencyKey: opts.IdempotencyKey,
	}, manifestFromDomain(m))
}

func (c *Client) RequestDeliveryOTP(ctx context.Context, p ports.Principal, id kernel.OrderID) error {
	_, err := c.do(ctx, request{
		operation: "request-otp",
		method:    http.MethodGet,
		path:      c.orderPath(c.paths.DeliverOTP, id),
		principal: p,
	})
	return err
}

func (c *Client) Deliver(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	otp order.OTPConfirmation,
	opts ports.CallOptions,
) (ports.TransitionResponse, error) {
	return c.transition(ctx, request{
		operation:      "deliver",
		method:         http.MethodPost,
		path:           c.orderPath(c.paths.Deliver, id),
		principal:      p,
		idempotencyKey: opts.IdempotencyKey,
	}, otpDTO{OTP: otp.Code()})
}

func (c *Client) Cancel(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	record order.CancellationRecord,
	opts ports.CallOptions,
) (ports.TransitionResponse, error) {
	return c.transition(ctx, request{
		operation:      "cancel",
		method:         http.MethodPost,
		path:           c.orderPath(c.paths.Cancel, id),
		principal:      p,
		idempotencyKey: opts.IdempotencyKey,
	}, cancelFromDomain(record))
}

// UploadSignedInvoice posts the invoice as multipart form fields salesOrderId
// and signedInvoice.
func (c *Client) UploadSignedInvoice(
	ctx context.Context,
	p ports.Principal,
	id kernel.OrderID,
	inv order.SignedInvoiceConfirmation,
) (ports.UploadResponse, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := w.WriteField("salesOrderId", id.String()); err != nil {
		return ports.UploadResponse{}, err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="signedInvoice"; filename=%q`, inv.FileName()))
	header.Set("Content-Type", inv.ContentType())
	part, err := w.CreatePart(header)
	if err != nil {
		return ports.UploadResponse{}, err
	}
	if _, err = part.Write(inv.Content()); err != nil {
		return ports.UploadResponse{}, err
	}
	if err = w.Close(); err != nil {
		return ports.UploadResponse{}, err
	}

	body, err := c.do(ctx, request{
		operation:   "upload-signed-invoice",
		method:      http.MethodPost,
		path:        c.orderPath(c.paths.UploadSignedInvoice, id),
		principal:   p,
		body:        buf.Bytes(),
		contentType: w.FormDataContentType(),
	})
	if err != nil {
		return ports.UploadResponse{}, err
	}

	resp := ports.UploadResponse{}
	if obj, decodeErr := decodeObject(body); decodeErr == nil {
		resp.Message = obj.str(messageAliases...)
	}
	return resp, nil
}

func (c *Client) getObject(ctx context.Context, operation, path string, p ports.Principal) (object, error) {
	body, err := c.do(ctx, request{
		operation: operation,
		method:    http.MethodGet,
		path:      path,
		principal: p,
	})
	if err != nil {
		return nil, err
	}

	obj, err := decodeObject(body)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", operation, err)
	}
	return obj, nil
}

func (c *Client) transition(ctx context.Context, req request, payload any) (ports.TransitionResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return ports.TransitionResponse{}, fmt.Errorf("encode %s request: %w", req.operation, err)
	}
	req.body = data
	req.contentType = jsonContentType

	body, err := c.do(ctx, req)
	if err != nil {
		return ports.TransitionResponse{}, err
	}

	obj, err := decodeObject(body)
	if err != nil {
		// A 2xx answer without a JSON object carries no status.
		return ports.TransitionResponse{}, nil
	}
	return transitionToDomain(obj), nil
}
