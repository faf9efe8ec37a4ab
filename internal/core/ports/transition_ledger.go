package ports

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ErrIdempotencyKeyTaken is returned by TransitionLedger.Add when the key is already recorded.
var ErrIdempotencyKeyTaken = errors.New("idempotency key is already recorded")

// LedgerState is the progress of a keyed request.
type LedgerState string

const (
	LedgerPending   LedgerState = "pending"
	LedgerCompleted LedgerState = "completed"
)

// LedgerEntry remembers a state-changing request made with an idempotency key
// and, once completed, the order store's answer.
type LedgerEntry struct {
	ID             kernel.UUID
	IdempotencyKey string
	OrderID        kernel.OrderID
	Action         order.Action
	State          LedgerState
	ResultStatus   order.Status
	ResultMessage  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TransitionLedger stores ledger entries keyed by idempotency key.
type TransitionLedger interface {
	// Add records a new entry. It returns ErrIdempotencyKeyTaken when the key exists.
	Add(ctx context.Context, entry LedgerEntry) error

	// Get returns the entry for key or *errs.ObjectNotFoundError.
	Get(ctx context.Context, key string) (LedgerEntry, error)

	// Update overwrites the state and result of an existing entry.
	Update(ctx context.Context, entry LedgerEntry) error

	// Delete removes the entry for key so that the request may be retried.
	Delete(ctx context.Context, key string) error

	// DeleteOlderThan removes entries created before cutoff and returns how many.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
