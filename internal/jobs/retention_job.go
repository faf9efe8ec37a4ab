package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultRetentionSchedule runs the purge at minute zero of every hour.
const DefaultRetentionSchedule = "0 0 * * * *"

// PurgeHandler removes expired idempotency ledger entries and OTP failures.
type PurgeHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeExpiredRecordsCommand) (commands.PurgeResult, error)
}

// RetentionJob periodically purges records older than the retention period.
type RetentionJob struct {
	handler   PurgeHandler
	retention time.Duration
	schedule  string
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewRetentionJob creates the job. An empty schedule means DefaultRetentionSchedule.
func NewRetentionJob(handler PurgeHandler, retention time.Duration, schedule string, logger *slog.Logger) *RetentionJob {
	if schedule == "" {
		schedule = DefaultRetentionSchedule
	}
	return &RetentionJob{
		handler:   handler,
		retention: retention,
		schedule:  schedule,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "retention_job"),
	}
}

// Start validates the retention and schedules the purge.
func (j *RetentionJob) Start() error {
	cmd, err := commands.NewPurgeExpiredRecordsCommand(j.retention)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), cmd)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Retention job started",
		"schedule", j.schedule, "retention", j.retention.String())
	return nil
}

// Run executes one purge. Failures are logged and retried on the next tick.
func (j *RetentionJob) Run(ctx context.Context, cmd commands.PurgeExpiredRecordsCommand) {
	ctx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	if _, err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Retention job failed", "error", err)
	}
}

// Stop stops scheduling and waits for a running purge to finish.
func (j *RetentionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Retention job stopped")
}
