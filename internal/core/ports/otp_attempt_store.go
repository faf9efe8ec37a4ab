package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OTPAttempt is one OTP submission the order store rejected.
type OTPAttempt struct {
	ID          kernel.UUID
	OrderID     kernel.OrderID
	AttemptedAt time.Time
}

// OTPAttemptStore counts rejected OTP submissions per order.
type OTPAttemptStore interface {
	AddFailure(ctx context.Context, attempt OTPAttempt) error

	// CountFailuresSince counts failures of the order recorded at or after since.
	CountFailuresSince(ctx context.Context, id kernel.OrderID, since time.Time) (int, error)

	// Clear forgets every failure of the order.
	Clear(ctx context.Context, id kernel.OrderID) error

	// DeleteOlderThan removes failures recorded before cutoff and returns how many.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
