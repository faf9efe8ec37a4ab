package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a transaction over the records this service owns: the
// idempotency ledger and the OTP attempt log. Orders are never stored here.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// TransitionLedger returns the ledger bound to the current transaction.
	TransitionLedger() TransitionLedger

	// OTPAttempts returns the OTP attempt store bound to the current transaction.
	OTPAttempts() OTPAttemptStore
}
