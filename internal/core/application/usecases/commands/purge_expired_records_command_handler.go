package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/pkg/metrics"
)

// PurgeResult counts the rows removed by one purge.
type PurgeResult struct {
	LedgerEntries int64
	OTPAttempts   int64
}

func (r PurgeResult) Total() int64 {
	return r.LedgerEntries + r.OTPAttempts
}

// PurgeExpiredRecordsCommandHandler deletes expired ledger entries and OTP
// failures in one transaction.
type PurgeExpiredRecordsCommandHandler struct {
	uowFactory UoWFactory
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

func NewPurgeExpiredRecordsCommandHandler(deps HandlerDeps) PurgeExpiredRecordsCommandHandler {
	h := PurgeExpiredRecordsCommandHandler{
		uowFactory: deps.UoWFactory,
		metrics:    deps.Metrics,
		logger:     deps.Logger,
		now:        deps.Clock,
	}
	if h.metrics == nil {
		h.metrics = metrics.New()
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.now == nil {
		h.now = time.Now
	}
	h.logger = h.logger.With("component", "retention")
	return h
}

func (h *PurgeExpiredRecordsCommandHandler) Handle(ctx context.Context, cmd PurgeExpiredRecordsCommand) (PurgeResult, error) {
	if err := cmd.Validate(); err != nil {
		return PurgeResult{}, err
	}

	cutoff := h.now().Add(-cmd.Retention())

	var result PurgeResult
	err := inTx(ctx, h.uowFactory, func(uow UoW) error {
		n, err := uow.TransitionLedger().DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("purge ledger entries: %w", err)
		}
		result.LedgerEntries = n

		n, err = uow.OTPAttempts().DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("purge otp attempts: %w", err)
		}
		result.OTPAttempts = n
		return nil
	})
	if err != nil {
		return PurgeResult{}, err
	}

	h.metrics.LedgerEntriesPurged.Add(float64(result.Total()))
	if result.Total() > 0 {
		h.logger.InfoContext(ctx, "expired records purged",
			"cutoff", cutoff,
			"ledgerEntries", result.LedgerEntries,
			"otpAttempts", result.OTPAttempts,
		)
	}

	return result, nil
}
