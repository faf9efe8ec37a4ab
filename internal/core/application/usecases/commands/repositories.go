// Package commands contains the order workflow actions: dispatch, cancel,
// deliver and the delivery OTP request. Every action is a command validated
// at construction and a handler that runs it against the order store.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces give handlers transactional access to the records
// this service owns.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// LedgerRepoFactory provides the idempotency ledger within a transaction.
	LedgerRepoFactory interface {
		TransitionLedger() ports.TransitionLedger
	}

	// OTPAttemptRepoFactory provides the OTP attempt log within a transaction.
	OTPAttemptRepoFactory interface {
		OTPAttempts() ports.OTPAttemptStore
	}

	// UoW manages transactions across the ledger and the OTP attempt log.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   ledger := uow.TransitionLedger()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		LedgerRepoFactory
		OTPAttemptRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// inTx runs fn inside a transaction and commits when fn succeeds.
func inTx(ctx context.Context, factory UoWFactory, fn func(uow UoW) error) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := fn(uow); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
