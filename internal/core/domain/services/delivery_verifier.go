package services

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
)

// Default OTP lockout policy.
const (
	DefaultOTPMaxAttempts   = 5
	DefaultOTPLockoutWindow = 15 * time.Minute
)

// DeliveryVerifier guards both delivery confirmation paths.
//
// Business rules:
//   - Only Dispatched orders accept an OTP request, an OTP or a signed invoice
//   - An OTP is exactly six digits and is checked before anything is sent
//   - After maxAttempts rejected OTPs within the window, further OTPs are refused
//     locally until the oldest failure leaves the window
//   - A signed invoice is proof of delivery only; it does not move the order
type DeliveryVerifier struct {
	maxAttempts int
	window      time.Duration
}

// NewDeliveryVerifier returns a verifier with the given lockout policy.
func NewDeliveryVerifier(maxAttempts int, window time.Duration) (DeliveryVerifier, error) {
	if maxAttempts <= 0 {
		return DeliveryVerifier{}, fmt.Errorf("otp max attempts must be positive, got %d", maxAttempts)
	}
	if window <= 0 {
		return DeliveryVerifier{}, fmt.Errorf("otp lockout window must be positive, got %s", window)
	}
	return DeliveryVerifier{maxAttempts: maxAttempts, window: window}, nil
}

func (v DeliveryVerifier) MaxAttempts() int {
	return v.maxAttempts
}

func (v DeliveryVerifier) Window() time.Duration {
	return v.window
}

// CanConfirm fails with InvalidTransitionError unless the order is Dispatched.
func (v DeliveryVerifier) CanConfirm(o *order.SalesOrder) error {
	if err := o.Validate(); err != nil {
		return err
	}
	return o.CanTransition(order.Deliver)
}

// PrepareOTP checks the order status and the code, in that order.
func (v DeliveryVerifier) PrepareOTP(o *order.SalesOrder, code string) (order.OTPConfirmation, error) {
	if err := v.CanConfirm(o); err != nil {
		return order.OTPConfirmation{}, err
	}
	return order.NewOTPConfirmation(code)
}

// PrepareSignedInvoice checks the order status and the uploaded file.
func (v DeliveryVerifier) PrepareSignedInvoice(
	o *order.SalesOrder,
	fileName, contentType string,
	content []byte,
) (order.SignedInvoiceConfirmation, error) {
	if err := v.CanConfirm(o); err != nil {
		return order.SignedInvoiceConfirmation{}, err
	}
	return order.NewSignedInvoiceConfirmation(fileName, contentType, content)
}

// WindowStart is the earliest failure time still counted at now.
func (v DeliveryVerifier) WindowStart(now time.Time) time.Time {
	return now.Add(-v.window)
}

// CheckLockout returns order.ErrOTPLocked once recentFailures reaches the limit.
func (v DeliveryVerifier) CheckLockout(recentFailures int) error {
	if recentFailures >= v.maxAttempts {
		return order.ErrOTPLocked
	}
	return nil
}
