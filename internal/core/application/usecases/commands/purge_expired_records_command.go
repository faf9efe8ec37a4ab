package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrPurgeExpiredRecordsCommandIsNotConstructed = errors.New(
	"PurgeExpiredRecordsCommand must be created via NewPurgeExpiredRecordsCommand constructor",
)

// PurgeExpiredRecordsCommand removes ledger entries and OTP failures older
// than the retention period.
type PurgeExpiredRecordsCommand struct { //nolint:recvcheck //using for validation
	retention time.Duration

	guard guard.ConstructorGuard
}

func NewPurgeExpiredRecordsCommand(retention time.Duration) (PurgeExpiredRecordsCommand, error) {
	if retention <= 0 {
		return PurgeExpiredRecordsCommand{}, errs.NewValueIsInvalidError("retention")
	}

	return PurgeExpiredRecordsCommand{
		retention: retention,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c PurgeExpiredRecordsCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredRecordsCommandIsNotConstructed)
}

func (c PurgeExpiredRecordsCommand) Retention() time.Duration {
	return c.retention
}
